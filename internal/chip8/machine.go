package chip8

import (
	"fmt"
)

// Mode is the execution mode of the machine.
type Mode uint8

// Execution modes.
const (
	// Running executes an instruction on every Step.
	Running Mode = iota
	// AwaitingKey suspends execution until a key is pressed.
	AwaitingKey
)

func (m Mode) String() string {
	switch m {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// TraceFunc is called for every instruction before it is executed, with
// the address it was fetched from.
type TraceFunc func(pc uint16, in Instruction)

// Machine holds the complete architectural state of a CHIP-8 machine.
// It is not safe for concurrent use, a single host loop owns it.
type Machine struct {
	// Memory is the 4KB of addressable memory.
	Memory [MemorySize]byte
	// V holds the registers V0-VF. VF doubles as carry, borrow and
	// collision flag.
	V [RegisterCount]uint8
	// I is the address register.
	I uint16
	// PC is the program counter.
	PC uint16
	// Stack holds the return addresses of nested calls.
	Stack [StackSize]uint16
	// SP is the index of the top stack entry, -1 if the stack is empty.
	SP int
	// DT is the delay timer, ST the sound timer. Both count down at 60Hz
	// while non-zero and the machine beeps while ST is non-zero.
	DT uint8
	ST uint8
	// Display is the framebuffer.
	Display Framebuffer
	// Keys is the keypad latch.
	Keys Keypad
	// Cycles counts the executed instructions.
	Cycles uint64

	quirks Quirks
	rnd    RandomSource
	trace  TraceFunc

	mode         Mode
	waitRegister uint8
	halted       bool

	program []byte
}

// Option configures a Machine.
type Option func(*Machine)

// WithQuirks sets the quirks of the machine.
func WithQuirks(q Quirks) Option {
	return func(m *Machine) {
		m.quirks = q
	}
}

// WithRandom sets the random source used by the RND instruction.
func WithRandom(rnd RandomSource) Option {
	return func(m *Machine) {
		m.rnd = rnd
	}
}

// WithSeed seeds the random source used by the RND instruction.
func WithSeed(seed int64) Option {
	return func(m *Machine) {
		m.rnd = NewRandom(seed)
	}
}

// WithTracer sets a function that is called for every executed instruction.
func WithTracer(fn TraceFunc) Option {
	return func(m *Machine) {
		m.trace = fn
	}
}

// New returns a new machine with zeroed registers and timers, the font
// loaded and PC pointing to ProgramStart.
func New(opts ...Option) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}
	if m.rnd == nil {
		m.rnd = NewRandom(timeSeed())
	}
	m.Reset()
	return m
}

// Reset restores the state after creation. A loaded program is kept and
// copied into memory again.
func (m *Machine) Reset() {
	m.Memory = [MemorySize]byte{}
	m.V = [RegisterCount]uint8{}
	m.I = 0
	m.PC = ProgramStart
	m.Stack = [StackSize]uint16{}
	m.SP = -1
	m.DT = 0
	m.ST = 0
	m.Display.Clear()
	m.Keys.Reset()
	m.Cycles = 0
	m.mode = Running
	m.waitRegister = 0
	m.halted = false

	copy(m.Memory[FontStart:], font[:])
	copy(m.Memory[ProgramStart:], m.program)
}

// LoadROM copies a program into memory at ProgramStart. Programs larger than
// MaxROMSize are rejected with a load fault.
func (m *Machine) LoadROM(program []byte) error {
	if len(program) > MaxROMSize {
		return &Fault{
			Kind: LoadFault,
			Err:  fmt.Errorf("%w: %d bytes, %d bytes available", ErrROMTooLarge, len(program), MaxROMSize),
		}
	}

	m.program = make([]byte, len(program))
	copy(m.program, program)
	m.Reset()
	return nil
}

// Program returns the currently loaded program.
func (m *Machine) Program() []byte {
	return m.program
}

// Quirks returns the quirks the machine was configured with.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}

// Mode returns the current execution mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Halted returns whether the program counter ran past the end of memory.
func (m *Machine) Halted() bool {
	return m.halted
}

// Framebuffer returns a snapshot of the display.
func (m *Machine) Framebuffer() Framebuffer {
	return m.Display
}

// SoundActive returns whether the machine is beeping.
func (m *Machine) SoundActive() bool {
	return m.ST > 0
}

// TickTimers decrements the delay and sound timers once, stopping at zero.
func (m *Machine) TickTimers() {
	if m.DT > 0 {
		m.DT--
	}
	if m.ST > 0 {
		m.ST--
	}
}

// Fetch returns the big-endian instruction word at PC.
func (m *Machine) Fetch() uint16 {
	return uint16(m.Memory[m.PC&0x0FFF])<<8 | uint16(m.Memory[(m.PC+1)&0x0FFF])
}

// Step executes the instruction at PC. It returns the executed instruction,
// or a zero Instruction if no instruction was executed because the machine
// is waiting for a key. Once PC has run past the end of memory the machine
// halts and ErrHalted is returned. A failing instruction leaves the machine
// state untouched, including PC.
func (m *Machine) Step() (Instruction, error) {
	if m.halted {
		return Instruction{}, ErrHalted
	}
	if m.mode == AwaitingKey {
		return Instruction{}, nil
	}
	if int(m.PC)+instructionSize > MemorySize {
		m.halted = true
		return Instruction{}, ErrHalted
	}

	pc := m.PC
	in := Decode(m.Fetch())
	if m.trace != nil {
		m.trace(pc, in)
	}

	m.PC += instructionSize
	if err := m.Execute(in); err != nil {
		m.PC = pc
		return in, err
	}
	m.Cycles++

	if int(m.PC) >= MemorySize {
		m.halted = true
	}
	return in, nil
}

// push stores a return address on the stack.
func (m *Machine) push(in Instruction, address uint16) error {
	if m.SP >= StackSize-1 {
		return m.fault(StackFault, in, ErrStackOverflow)
	}
	m.SP++
	m.Stack[m.SP] = address
	return nil
}

// pop removes the top return address from the stack.
func (m *Machine) pop(in Instruction) (uint16, error) {
	if m.SP < 0 {
		return 0, m.fault(StackFault, in, ErrStackUnderflow)
	}
	address := m.Stack[m.SP]
	m.SP--
	return address, nil
}

// fault returns a fault for the instruction currently being executed. PC
// has already been advanced past it.
func (m *Machine) fault(kind FaultKind, in Instruction, err error) *Fault {
	return &Fault{
		Kind: kind,
		PC:   m.PC - instructionSize,
		Word: in.Word,
		Err:  err,
	}
}

// address returns the memory address at offset from I, wrapped to the
// size of memory.
func (m *Machine) address(offset int) uint16 {
	return uint16(int(m.I)+offset) & (MemorySize - 1)
}

// String returns formatted information about the state of the machine.
func (m *Machine) String() string {
	return fmt.Sprintf("Machine{V: [% 02X], I: %04X, PC: %04X, SP: %d, "+
		"Stack: [% 04X], DT: %02X, ST: %02X, Mode: %s, Cycles: %d}",
		m.V, m.I, m.PC, m.SP, m.Stack[:m.SP+1], m.DT, m.ST, m.mode, m.Cycles)
}
