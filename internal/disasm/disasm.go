// Package disasm produces assembly listings of CHIP-8 programs by following
// the execution flow from the program start address.
package disasm

import (
	"context"
	"fmt"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	startLabel  = "Start"
)

// Disasm traces the code paths of a program and converts the reached
// instructions into assembly.
type Disasm struct {
	logger  *log.Logger
	program []byte
	offsets []offset

	branchDestinations set.Set[uint16] // set of all addresses that are branched to
	callDestinations   set.Set[uint16]

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New returns a disassembler for a program that is loaded at
// chip8.ProgramStart.
func New(logger *log.Logger, program []byte) (*Disasm, error) {
	if len(program) > chip8.MaxROMSize {
		return nil, fmt.Errorf("%w: %d bytes", chip8.ErrROMTooLarge, len(program))
	}

	dis := &Disasm{
		logger:              logger,
		program:             program,
		offsets:             make([]offset, len(program)),
		branchDestinations:  set.New[uint16](),
		callDestinations:    set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
	}
	for i := range dis.offsets {
		dis.offsets[i].address = chip8.ProgramStart + uint16(i)
	}
	return dis, nil
}

// Process follows the execution flow of the program and returns the
// resulting listing. Bytes that are not reached by any code path are
// output as data.
func (dis *Disasm) Process(ctx context.Context) (Listing, error) {
	if len(dis.program) == 0 {
		return Listing{}, nil
	}

	dis.offsets[0].label = startLabel
	dis.addAddressToParse(chip8.ProgramStart, false)

	if err := dis.followExecutionFlow(ctx); err != nil {
		return nil, err
	}
	dis.processJumpDestinations()

	listing := dis.convertToListing()
	dis.logger.Debug("Disassembled program",
		log.Int("size", len(dis.program)),
		log.Int("lines", len(listing)))
	return listing, nil
}

// followExecutionFlow parses all queued addresses, adding new ones for
// every reachable instruction.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		dis.processOffset(address)
	}
	return nil
}

// processOffset decodes the instruction at address and queues its
// successors.
func (dis *Disasm) processOffset(address uint16) {
	index, ok := dis.addressToIndex(address)
	if !ok || int(index)+1 >= len(dis.program) {
		return // a trailing single byte can not hold an instruction
	}
	offsetInfo := &dis.offsets[index]
	if offsetInfo.typ == codeOffset || dis.offsets[index+1].typ == codeOffset {
		return
	}

	word := uint16(dis.program[index])<<8 | uint16(dis.program[index+1])
	in := chip8.Decode(word)
	op := chip8.Lookup(in)
	if op == chip8.OpInvalid {
		offsetInfo.comment = "unknown instruction"
		return
	}

	offsetInfo.typ = codeOffset
	offsetInfo.data = dis.program[index : index+2]
	offsetInfo.in = in
	offsetInfo.op = op
	dis.offsets[index+1].typ = codeOffset

	dis.handleControlFlow(address, in, op)
}

// handleControlFlow queues the addresses that can be executed after the
// instruction at address.
func (dis *Disasm) handleControlFlow(address uint16, in chip8.Instruction, op chip8.Op) {
	next := address + 2

	switch {
	case op == chip8.OpJP:
		dis.addAddressToParse(in.NNN, true)

	case op == chip8.OpCALL:
		dis.addAddressToParse(in.NNN, true)
		dis.callDestinations.Add(in.NNN)
		dis.addAddressToParse(next, false)

	case op == chip8.OpRET, op == chip8.OpJPV0:
		// the destination of a computed jump is unknown

	case op == chip8.OpSEImm, op == chip8.OpSNEImm, op == chip8.OpSEReg,
		op == chip8.OpSNEReg, op == chip8.OpSKP, op == chip8.OpSKNP:
		dis.addAddressToParse(next, false)
		dis.addAddressToParse(next+2, false)

	case op == chip8.OpLDI:
		dis.addDataReference(in.NNN)
		dis.addAddressToParse(next, false)

	default:
		dis.addAddressToParse(next, false)
	}
}

// addAddressToParse queues an address to be parsed, ignoring addresses
// outside of the program.
func (dis *Disasm) addAddressToParse(address uint16, isABranchDestination bool) {
	if _, ok := dis.addressToIndex(address); !ok {
		return
	}
	if isABranchDestination {
		dis.branchDestinations.Add(address)
	}
	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

// addDataReference labels the target of an LD I instruction.
func (dis *Disasm) addDataReference(address uint16) {
	if _, ok := dis.addressToIndex(address); !ok {
		return
	}
	dis.branchDestinations.Add(address)
}

// addressToIndex converts a memory address to an index into the program.
func (dis *Disasm) addressToIndex(address uint16) (uint16, bool) {
	if address < chip8.ProgramStart {
		return 0, false
	}
	index := address - chip8.ProgramStart
	if int(index) >= len(dis.program) {
		return 0, false
	}
	return index, true
}

// processJumpDestinations names all branch destinations.
func (dis *Disasm) processJumpDestinations() {
	for address := range dis.branchDestinations {
		index, _ := dis.addressToIndex(address)
		offsetInfo := &dis.offsets[index]
		if offsetInfo.label != "" {
			continue
		}

		switch {
		case dis.callDestinations.Contains(address):
			offsetInfo.label = fmt.Sprintf(funcNaming, address)
		default:
			offsetInfo.label = fmt.Sprintf(labelNaming, address)
		}
	}
}

// labelAt returns the label at the given address if one exists.
func (dis *Disasm) labelAt(address uint16) string {
	index, ok := dis.addressToIndex(address)
	if !ok {
		return ""
	}
	return dis.offsets[index].label
}
