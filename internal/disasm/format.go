package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
	cpuchip8 "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// lookupInstruction returns the instruction definition for an instruction
// word, or nil if the word does not match any opcode.
func lookupInstruction(word uint16) *cpuchip8.Instruction {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range cpuchip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// mnemonic returns the name of the instruction.
func mnemonic(word uint16, op chip8.Op) string {
	if ins := lookupInstruction(word); ins != nil {
		return ins.Name
	}
	name, _, _ := strings.Cut(op.String(), " ")
	return strings.ToLower(name)
}

// memoryAccess returns a comment describing the memory accessed through I.
func memoryAccess(word uint16) string {
	ins := lookupInstruction(word)
	if ins == nil {
		return ""
	}
	switch {
	case cpuchip8.MemoryReadInstructions.Contains(ins.Name):
		return "reads memory at I"
	case cpuchip8.MemoryWriteInstructions.Contains(ins.Name):
		return "writes memory at I"
	}
	return ""
}

// FormatInstruction returns the assembly representation of an instruction
// word, or an empty string if the word is not a valid instruction.
func FormatInstruction(word uint16) string {
	in := chip8.Decode(word)
	op := chip8.Lookup(in)
	if op == chip8.OpInvalid {
		return ""
	}
	return formatInstruction(in, op, "")
}

// formatInstruction formats an instruction. A non-empty target replaces the
// address operand of jumps, calls and LD I.
func formatInstruction(in chip8.Instruction, op chip8.Op, target string) string {
	name := mnemonic(in.Word, op)
	if params := formatParams(in, op, target); params != "" {
		return name + " " + params
	}
	return name
}

// formatParams returns the formatted parameters of an instruction.
func formatParams(in chip8.Instruction, op chip8.Op, target string) string {
	address := target
	if address == "" {
		address = fmt.Sprintf("$%03X", in.NNN)
	}

	switch op {
	case chip8.OpCLS, chip8.OpRET:
		return ""
	case chip8.OpJP, chip8.OpCALL:
		return address
	case chip8.OpJPV0:
		return "V0, " + address
	case chip8.OpLDI:
		return "I, " + address
	case chip8.OpSEImm, chip8.OpSNEImm, chip8.OpLDImm, chip8.OpADDImm, chip8.OpRND:
		return fmt.Sprintf("V%X, $%02X", in.X, in.KK)
	case chip8.OpSEReg, chip8.OpSNEReg, chip8.OpLDReg, chip8.OpOR, chip8.OpAND,
		chip8.OpXOR, chip8.OpADDReg, chip8.OpSUB, chip8.OpSUBN:
		return fmt.Sprintf("V%X, V%X", in.X, in.Y)
	case chip8.OpSHR, chip8.OpSHL:
		return fmt.Sprintf("V%X", in.X)
	case chip8.OpDRW:
		return fmt.Sprintf("V%X, V%X, $%X", in.X, in.Y, in.N)
	case chip8.OpSKP, chip8.OpSKNP:
		return fmt.Sprintf("V%X", in.X)
	case chip8.OpLDVxDT:
		return fmt.Sprintf("V%X, DT", in.X)
	case chip8.OpLDVxK:
		return fmt.Sprintf("V%X, K", in.X)
	case chip8.OpLDDTVx:
		return fmt.Sprintf("DT, V%X", in.X)
	case chip8.OpLDSTVx:
		return fmt.Sprintf("ST, V%X", in.X)
	case chip8.OpADDI:
		return fmt.Sprintf("I, V%X", in.X)
	case chip8.OpLDF:
		return fmt.Sprintf("F, V%X", in.X)
	case chip8.OpLDB:
		return fmt.Sprintf("B, V%X", in.X)
	case chip8.OpLDIVx:
		return fmt.Sprintf("[I], V%X", in.X)
	case chip8.OpLDVxI:
		return fmt.Sprintf("V%X, [I]", in.X)
	}
	return ""
}
