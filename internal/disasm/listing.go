package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
)

// maxDataBytesPerLine is the number of data bytes grouped into a single
// .byte line.
const maxDataBytesPerLine = 8

type offsetType uint8

const (
	unknownOffset offsetType = iota
	codeOffset
)

// offset contains the disassembly state of a single program byte.
type offset struct {
	address uint16
	typ     offsetType
	label   string
	comment string

	data []byte // instruction bytes, set for the first byte of an instruction
	in   chip8.Instruction
	op   chip8.Op
}

// Line is a single line of a listing, either an instruction or a group of
// data bytes.
type Line struct {
	Address uint16
	Label   string
	Data    []byte
	Code    string // formatted instruction, empty for data
	Comment string
}

// IsCode returns whether the line contains an instruction.
func (l Line) IsCode() bool {
	return l.Code != ""
}

// Listing is the disassembled program in address order.
type Listing []Line

// convertToListing converts the offsets into lines, grouping consecutive
// data bytes.
func (dis *Disasm) convertToListing() Listing {
	var listing Listing
	var data *Line

	for i := 0; i < len(dis.offsets); i++ {
		offsetInfo := &dis.offsets[i]

		if offsetInfo.data != nil {
			if dis.offsets[i+1].label == "" {
				data = nil
				listing = append(listing, dis.codeLine(offsetInfo))
				i++
				continue
			}
			offsetInfo.comment = "branch into instruction detected: " +
				formatInstruction(offsetInfo.in, offsetInfo.op, "")
		}

		if data == nil || offsetInfo.label != "" || offsetInfo.comment != "" ||
			len(data.Data) == maxDataBytesPerLine {

			listing = append(listing, Line{
				Address: offsetInfo.address,
				Label:   offsetInfo.label,
				Comment: offsetInfo.comment,
			})
			data = &listing[len(listing)-1]
		}
		data.Data = append(data.Data, dis.program[i])
	}

	return listing
}

// codeLine returns the listing line of the instruction at offsetInfo.
func (dis *Disasm) codeLine(offsetInfo *offset) Line {
	var target string
	switch offsetInfo.op {
	case chip8.OpJP, chip8.OpCALL, chip8.OpLDI:
		target = dis.labelAt(offsetInfo.in.NNN)
	}

	comment := offsetInfo.comment
	if comment == "" {
		comment = memoryAccess(offsetInfo.in.Word)
	}

	return Line{
		Address: offsetInfo.address,
		Label:   offsetInfo.label,
		Data:    offsetInfo.data,
		Code:    formatInstruction(offsetInfo.in, offsetInfo.op, target),
		Comment: comment,
	}
}

// Write writes the listing as assembly source.
func (l Listing) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 program disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	for _, line := range l {
		if line.Label != "" {
			if _, err := fmt.Fprintf(w, "%s:\n", line.Label); err != nil {
				return fmt.Errorf("writing label %s: %w", line.Label, err)
			}
		}
		if err := writeLine(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeLine writes either code or data of a single line.
func writeLine(w io.Writer, line Line) error {
	var buf strings.Builder
	buf.WriteString("    ")
	if line.IsCode() {
		buf.WriteString(line.Code)
	} else {
		fmt.Fprintf(&buf, ".byte $%02X", line.Data[0])
		for _, b := range line.Data[1:] {
			fmt.Fprintf(&buf, ", $%02X", b)
		}
	}

	comment := fmt.Sprintf("$%04X", line.Address)
	if line.Comment != "" {
		comment += " " + line.Comment
	}

	if _, err := fmt.Fprintf(w, "%-32s ; %s\n", buf.String(), comment); err != nil {
		return fmt.Errorf("writing line at $%04X: %w", line.Address, err)
	}
	return nil
}
