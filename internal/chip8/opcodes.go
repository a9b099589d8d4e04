package chip8

import "fmt"

// Op identifies a single instruction of the instruction set.
type Op uint8

// All instructions of the instruction set. OpInvalid is returned by Lookup
// for words that do not encode a known instruction.
const (
	OpInvalid Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEImm      // 3xkk
	OpSNEImm     // 4xkk
	OpSEReg      // 5xy0
	OpLDImm      // 6xkk
	OpADDImm     // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65

	opCount
)

var opNames = [opCount]string{
	OpInvalid: "invalid",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP addr",
	OpCALL:    "CALL addr",
	OpSEImm:   "SE Vx, byte",
	OpSNEImm:  "SNE Vx, byte",
	OpSEReg:   "SE Vx, Vy",
	OpLDImm:   "LD Vx, byte",
	OpADDImm:  "ADD Vx, byte",
	OpLDReg:   "LD Vx, Vy",
	OpOR:      "OR Vx, Vy",
	OpAND:     "AND Vx, Vy",
	OpXOR:     "XOR Vx, Vy",
	OpADDReg:  "ADD Vx, Vy",
	OpSUB:     "SUB Vx, Vy",
	OpSHR:     "SHR Vx",
	OpSUBN:    "SUBN Vx, Vy",
	OpSHL:     "SHL Vx",
	OpSNEReg:  "SNE Vx, Vy",
	OpLDI:     "LD I, addr",
	OpJPV0:    "JP V0, addr",
	OpRND:     "RND Vx, byte",
	OpDRW:     "DRW Vx, Vy, nibble",
	OpSKP:     "SKP Vx",
	OpSKNP:    "SKNP Vx",
	OpLDVxDT:  "LD Vx, DT",
	OpLDVxK:   "LD Vx, K",
	OpLDDTVx:  "LD DT, Vx",
	OpLDSTVx:  "LD ST, Vx",
	OpADDI:    "ADD I, Vx",
	OpLDF:     "LD F, Vx",
	OpLDB:     "LD B, Vx",
	OpLDIVx:   "LD [I], Vx",
	OpLDVxI:   "LD Vx, [I]",
}

func (o Op) String() string {
	if o >= opCount {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	return opNames[o]
}

// Ops returns all valid instructions of the instruction set.
func Ops() []Op {
	ops := make([]Op, 0, opCount-1)
	for op := OpInvalid + 1; op < opCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

// family is the first level of the decode tree. A family either maps to a
// single instruction, or selects a second level key from the instruction
// and looks it up in ops.
type family struct {
	op  Op
	key func(Instruction) uint16
	ops map[uint16]Op
}

func byAddress(in Instruction) uint16 { return in.NNN }
func byNibble(in Instruction) uint16  { return uint16(in.N) }
func byByte(in Instruction) uint16    { return uint16(in.KK) }

// families is indexed by the opcode nibble.
var families = [16]family{
	0x0: {key: byAddress, ops: map[uint16]Op{
		0x0E0: OpCLS,
		0x0EE: OpRET,
	}},
	0x1: {op: OpJP},
	0x2: {op: OpCALL},
	0x3: {op: OpSEImm},
	0x4: {op: OpSNEImm},
	0x5: {key: byNibble, ops: map[uint16]Op{
		0x0: OpSEReg,
	}},
	0x6: {op: OpLDImm},
	0x7: {op: OpADDImm},
	0x8: {key: byNibble, ops: map[uint16]Op{
		0x0: OpLDReg,
		0x1: OpOR,
		0x2: OpAND,
		0x3: OpXOR,
		0x4: OpADDReg,
		0x5: OpSUB,
		0x6: OpSHR,
		0x7: OpSUBN,
		0xE: OpSHL,
	}},
	0x9: {key: byNibble, ops: map[uint16]Op{
		0x0: OpSNEReg,
	}},
	0xA: {op: OpLDI},
	0xB: {op: OpJPV0},
	0xC: {op: OpRND},
	0xD: {op: OpDRW},
	0xE: {key: byByte, ops: map[uint16]Op{
		0x9E: OpSKP,
		0xA1: OpSKNP,
	}},
	0xF: {key: byByte, ops: map[uint16]Op{
		0x07: OpLDVxDT,
		0x0A: OpLDVxK,
		0x15: OpLDDTVx,
		0x18: OpLDSTVx,
		0x1E: OpADDI,
		0x29: OpLDF,
		0x33: OpLDB,
		0x55: OpLDIVx,
		0x65: OpLDVxI,
	}},
}

// Lookup returns the instruction encoded by the decoded instruction word,
// or OpInvalid if the word is not part of the instruction set.
func Lookup(in Instruction) Op {
	f := families[in.Opcode&0x0F]
	if f.key == nil {
		return f.op
	}
	op, ok := f.ops[f.key(in)]
	if !ok {
		return OpInvalid
	}
	return op
}
