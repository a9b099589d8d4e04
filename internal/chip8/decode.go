package chip8

import "fmt"

// Instruction holds the fields of a decoded instruction word. Which fields
// are meaningful depends on the instruction.
type Instruction struct {
	Word   uint16 // raw instruction word
	Opcode uint8  // bits 15-12, the instruction family
	X      uint8  // bits 11-8, register index
	Y      uint8  // bits 7-4, register index
	KK     uint8  // bits 7-0, immediate byte
	NNN    uint16 // bits 11-0, address or immediate
	N      uint8  // bits 3-0, sprite height or sub-operation
}

// Decode extracts the instruction fields from an instruction word.
func Decode(word uint16) Instruction {
	return Instruction{
		Word:   word,
		Opcode: uint8(word >> 12),
		X:      uint8(word>>8) & 0x0F,
		Y:      uint8(word>>4) & 0x0F,
		KK:     uint8(word),
		NNN:    word & 0x0FFF,
		N:      uint8(word) & 0x0F,
	}
}

func (in Instruction) String() string {
	return fmt.Sprintf("%04X", in.Word)
}
