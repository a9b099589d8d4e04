package chip8

import (
	"errors"
	"fmt"
)

// ErrHalted is returned by Step once the program counter has run past the
// end of memory. It signals a normal termination of the program.
var ErrHalted = errors.New("program counter ran past end of memory")

// Fault causes, wrapped by a *Fault.
var (
	ErrROMTooLarge        = errors.New("rom does not fit into program memory")
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrStackOverflow      = errors.New("stack overflow")
	ErrStackUnderflow     = errors.New("stack underflow")
)

// FaultKind classifies a fatal machine fault.
type FaultKind int

// Fault kinds.
const (
	LoadFault FaultKind = iota + 1
	DecodeFault
	StackFault
)

func (k FaultKind) String() string {
	switch k {
	case LoadFault:
		return "load fault"
	case DecodeFault:
		return "decode fault"
	case StackFault:
		return "stack fault"
	default:
		return fmt.Sprintf("fault(%d)", int(k))
	}
}

// A Fault is a fatal error raised by the machine. PC and Word identify the
// offending instruction, they are zero for load faults.
type Fault struct {
	Kind FaultKind
	PC   uint16
	Word uint16
	Err  error
}

func (f *Fault) Error() string {
	if f.Kind == LoadFault {
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("%s at $%04X (instruction $%04X): %v", f.Kind, f.PC, f.Word, f.Err)
}

// Unwrap returns the cause of the fault.
func (f *Fault) Unwrap() error {
	return f.Err
}
