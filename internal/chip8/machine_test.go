package chip8

import (
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	m := New()
	assert.Equal(t, uint16(ProgramStart), m.PC)
	assert.Equal(t, -1, m.SP)
	assert.Equal(t, uint16(0), m.I)
	assert.Equal(t, [RegisterCount]uint8{}, m.V)
	assert.Equal(t, uint8(0), m.DT)
	assert.Equal(t, uint8(0), m.ST)
	assert.Equal(t, 0, m.Display.Lit())
	assert.Equal(t, Running, m.Mode())
	assert.False(t, m.Halted())
	assert.Equal(t, font[:], m.Memory[FontStart:FontStart+len(font)])
	assert.Equal(t, DefaultQuirks(), m.Quirks())
}

func TestLoadROM(t *testing.T) {
	program := []byte{0x6A, 0x05, 0x60, 0x00}
	m := New()
	assert.NoError(t, m.LoadROM(program))
	assert.Equal(t, program, m.Memory[ProgramStart:ProgramStart+len(program)])
	assert.Equal(t, program, m.Program())

	// the machine keeps its own copy
	program[0] = 0xFF
	assert.Equal(t, byte(0x6A), m.Memory[ProgramStart])
}

func TestLoadROMMaxSize(t *testing.T) {
	m := New()
	program := make([]byte, MaxROMSize)
	program[len(program)-1] = 0xAB
	assert.NoError(t, m.LoadROM(program))
	assert.Equal(t, byte(0xAB), m.Memory[MemorySize-1])
}

func TestLoadROMTooLarge(t *testing.T) {
	m := New()
	err := m.LoadROM(make([]byte, MaxROMSize+1))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrROMTooLarge))

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, LoadFault, fault.Kind)
	assert.ErrorContains(t, err, "load fault")
	assert.Empty(t, m.Program())
}

func TestReset(t *testing.T) {
	m := newTestMachine(t, 0x6A05, 0xF015, 0x2300)
	m.V[0] = 9
	steps(t, m, 3)
	m.Display.flip(1, 1)
	m.HandleKey(KeyEvent{Key: 3, Pressed: true})

	m.Reset()
	assert.Equal(t, uint16(ProgramStart), m.PC)
	assert.Equal(t, -1, m.SP)
	assert.Equal(t, uint8(0), m.V[0xA])
	assert.Equal(t, uint8(0), m.DT)
	assert.Equal(t, uint64(0), m.Cycles)
	assert.Equal(t, 0, m.Display.Lit())
	assert.False(t, m.KeyPressed(3))
	assert.Equal(t, byte(0x6A), m.Memory[ProgramStart])
}

func TestCycles(t *testing.T) {
	m := newTestMachine(t, 0x6001, 0x6102, 0x6203)
	steps(t, m, 3)
	assert.Equal(t, uint64(3), m.Cycles)
}

func TestTracer(t *testing.T) {
	var traced []uint16
	m := New(WithTracer(func(pc uint16, in Instruction) {
		traced = append(traced, pc, in.Word)
	}))
	assert.NoError(t, m.LoadROM([]byte{0x60, 0x01, 0x12, 0x00}))
	steps(t, m, 3)
	assert.Equal(t, []uint16{0x200, 0x6001, 0x202, 0x1200, 0x200, 0x6001}, traced)
}

func TestHaltAtEndOfMemory(t *testing.T) {
	m := newTestMachine(t, 0x1FFE)
	m.Memory[0xFFE] = 0x60
	m.Memory[0xFFF] = 0x42

	steps(t, m, 2)
	assert.Equal(t, uint8(0x42), m.V[0])
	assert.Equal(t, uint16(MemorySize), m.PC)
	assert.True(t, m.Halted())

	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrHalted))
}

func TestHaltWhenInstructionExceedsMemory(t *testing.T) {
	m := newTestMachine(t, 0x1FFF)
	steps(t, m, 1)
	assert.Equal(t, uint16(0xFFF), m.PC)
	assert.False(t, m.Halted())

	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrHalted))
	assert.True(t, m.Halted())
	assert.Equal(t, uint64(1), m.Cycles)
}

func TestHaltAfterSkip(t *testing.T) {
	m := newTestMachine(t, 0x1FFC)
	m.Memory[0xFFC] = 0x30 // SE V0, 0x00
	m.Memory[0xFFD] = 0x00

	steps(t, m, 2)
	assert.Equal(t, uint16(MemorySize), m.PC)
	assert.True(t, m.Halted())
}

func TestMachineString(t *testing.T) {
	m := newTestMachine(t, 0x2206)
	steps(t, m, 1)
	s := m.String()
	assert.True(t, strings.Contains(s, "PC: 0206"))
	assert.True(t, strings.Contains(s, "SP: 0"))
	assert.True(t, strings.Contains(s, "Mode: running"))
}

func TestFaultError(t *testing.T) {
	tests := []struct {
		name     string
		fault    *Fault
		expected string
	}{
		{
			name:     "decode",
			fault:    &Fault{Kind: DecodeFault, PC: 0x204, Word: 0xE0FF, Err: ErrUnknownInstruction},
			expected: "decode fault at $0204 (instruction $E0FF): unknown instruction",
		},
		{
			name:     "load",
			fault:    &Fault{Kind: LoadFault, Err: ErrROMTooLarge},
			expected: "load fault: rom does not fit into program memory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.fault.Error())
		})
	}
}
