package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestAddRegisterCarry(t *testing.T) {
	m := newTestMachine(t, 0x8014)
	for a := range 256 {
		for b := range 256 {
			m.PC = ProgramStart
			m.V[0] = uint8(a)
			m.V[1] = uint8(b)
			steps(t, m, 1)

			assert.Equal(t, uint8((a+b)%256), m.V[0])
			if a+b > 255 {
				assert.Equal(t, uint8(1), m.V[0xF])
			} else {
				assert.Equal(t, uint8(0), m.V[0xF])
			}
		}
	}
}

func TestSubNotBorrow(t *testing.T) {
	m := newTestMachine(t, 0x8015)
	for a := range 256 {
		for b := range 256 {
			m.PC = ProgramStart
			m.V[0] = uint8(a)
			m.V[1] = uint8(b)
			steps(t, m, 1)

			assert.Equal(t, uint8(a-b), m.V[0])
			if a >= b {
				assert.Equal(t, uint8(1), m.V[0xF])
			} else {
				assert.Equal(t, uint8(0), m.V[0xF])
			}
		}
	}
}

func TestSubN(t *testing.T) {
	tests := []struct {
		name     string
		x, y     uint8
		expected uint8
		flag     uint8
	}{
		{"no borrow", 3, 10, 7, 1},
		{"equal", 5, 5, 0, 1},
		{"borrow", 10, 3, 249, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, 0x8017)
			m.V[0] = tt.x
			m.V[1] = tt.y
			steps(t, m, 1)
			assert.Equal(t, tt.expected, m.V[0])
			assert.Equal(t, tt.flag, m.V[0xF])
		})
	}
}

func TestFlagWrittenAfterResult(t *testing.T) {
	m := newTestMachine(t, 0x8F04) // ADD VF, V0
	m.V[0xF] = 0xFF
	m.V[0] = 0x01
	steps(t, m, 1)
	assert.Equal(t, uint8(1), m.V[0xF])
}

func TestBitwise(t *testing.T) {
	m := newTestMachine(t, 0x8011, 0x8022, 0x8033, 0x8430)
	m.V[0] = 0b1100
	m.V[1] = 0b1010
	m.V[2] = 0b0110
	m.V[3] = 0b1111
	steps(t, m, 1)
	assert.Equal(t, uint8(0b1110), m.V[0])
	steps(t, m, 1)
	assert.Equal(t, uint8(0b0110), m.V[0])
	steps(t, m, 1)
	assert.Equal(t, uint8(0b1001), m.V[0])
	steps(t, m, 1)
	assert.Equal(t, uint8(0b1111), m.V[4])
}

func TestAddImmediateWrapsWithoutFlag(t *testing.T) {
	m := newTestMachine(t, 0x7A10)
	m.V[0xA] = 0xF8
	m.V[0xF] = 0x42
	steps(t, m, 1)
	assert.Equal(t, uint8(0x08), m.V[0xA])
	assert.Equal(t, uint8(0x42), m.V[0xF])
}

func TestShift(t *testing.T) {
	tests := []struct {
		name     string
		quirks   Quirks
		word     uint16
		x, y     uint8
		expected uint8
		flag     uint8
	}{
		{"shr in place", DefaultQuirks(), 0x8016, 0x05, 0x80, 0x02, 1},
		{"shr in place no carry", DefaultQuirks(), 0x8016, 0x04, 0x81, 0x02, 0},
		{"shl in place", DefaultQuirks(), 0x801E, 0x81, 0x00, 0x02, 1},
		{"shr from vy", Quirks{ShiftUsesVY: true}, 0x8016, 0x04, 0x81, 0x40, 1},
		{"shl from vy", Quirks{ShiftUsesVY: true}, 0x801E, 0x81, 0x41, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachineWithQuirks(t, tt.quirks, tt.word)
			m.V[0] = tt.x
			m.V[1] = tt.y
			steps(t, m, 1)
			assert.Equal(t, tt.expected, m.V[0])
			assert.Equal(t, tt.flag, m.V[0xF])
		})
	}
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name    string
		word    uint16
		x, y    uint8
		skipped bool
	}{
		{"se imm equal", 0x3042, 0x42, 0, true},
		{"se imm not equal", 0x3042, 0x41, 0, false},
		{"sne imm equal", 0x4042, 0x42, 0, false},
		{"sne imm not equal", 0x4042, 0x41, 0, true},
		{"se reg equal", 0x5010, 7, 7, true},
		{"se reg not equal", 0x5010, 7, 8, false},
		{"sne reg equal", 0x9010, 7, 7, false},
		{"sne reg not equal", 0x9010, 7, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.word)
			m.V[0] = tt.x
			m.V[1] = tt.y
			steps(t, m, 1)
			if tt.skipped {
				assert.Equal(t, uint16(ProgramStart+4), m.PC)
			} else {
				assert.Equal(t, uint16(ProgramStart+2), m.PC)
			}
		})
	}
}

func TestJumps(t *testing.T) {
	m := newTestMachine(t, 0x1345)
	steps(t, m, 1)
	assert.Equal(t, uint16(0x345), m.PC)

	m = newTestMachine(t, 0xB300)
	m.V[0] = 0x12
	steps(t, m, 1)
	assert.Equal(t, uint16(0x312), m.PC)
}

func TestCallReturn(t *testing.T) {
	// 0x200: CALL 0x206, 0x202: LD V1, 1, 0x204: JP 0x204, 0x206: RET
	m := newTestMachine(t, 0x2206, 0x6101, 0x1204, 0x00EE)
	sp := m.SP

	steps(t, m, 1)
	assert.Equal(t, uint16(0x206), m.PC)
	assert.Equal(t, sp+1, m.SP)
	assert.Equal(t, uint16(0x202), m.Stack[m.SP])

	steps(t, m, 1)
	assert.Equal(t, uint16(0x202), m.PC)
	assert.Equal(t, sp, m.SP)

	steps(t, m, 1)
	assert.Equal(t, uint8(1), m.V[1])
}

func TestStackOverflow(t *testing.T) {
	m := newTestMachine(t, 0x2200) // calls itself forever
	steps(t, m, StackSize)
	assert.Equal(t, StackSize-1, m.SP)

	_, err := m.Step()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackOverflow))

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, StackFault, fault.Kind)
	assert.Equal(t, uint16(0x200), fault.PC)
	assert.Equal(t, uint16(0x2200), fault.Word)
	assert.Equal(t, uint16(0x200), m.PC)
	assert.Equal(t, StackSize-1, m.SP)
}

func TestStackUnderflow(t *testing.T) {
	m := newTestMachine(t, 0x00EE)
	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, StackFault, fault.Kind)
	assert.ErrorContains(t, err, "stack fault at $0200")
}

func TestUnknownInstruction(t *testing.T) {
	m := newTestMachine(t, 0x6001, 0x8AB9)
	steps(t, m, 1)

	in, err := m.Step()
	assert.Equal(t, uint16(0x8AB9), in.Word)
	assert.True(t, errors.Is(err, ErrUnknownInstruction))

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, DecodeFault, fault.Kind)
	assert.Equal(t, uint16(0x202), fault.PC)
	assert.Equal(t, uint16(0x8AB9), fault.Word)
	assert.Equal(t, uint16(0x202), m.PC)
	assert.Equal(t, uint64(1), m.Cycles)
}

func TestIndexRegister(t *testing.T) {
	m := newTestMachine(t, 0xAFFE)
	steps(t, m, 1)
	assert.Equal(t, uint16(0xFFE), m.I)
}

func TestRandom(t *testing.T) {
	m := newTestMachine(t, 0xC30F)
	steps(t, m, 1)
	assert.Equal(t, uint8(0x0F), m.V[3])
}

func TestRandomSeeded(t *testing.T) {
	program := []byte{0xC0, 0xFF, 0xC1, 0xFF, 0xC2, 0xFF}
	run := func(seed int64) [3]uint8 {
		m := New(WithSeed(seed))
		assert.NoError(t, m.LoadROM(program))
		steps(t, m, 3)
		return [3]uint8{m.V[0], m.V[1], m.V[2]}
	}
	assert.Equal(t, run(1234), run(1234))
}

func TestTimerRegisters(t *testing.T) {
	m := newTestMachine(t, 0xF015, 0xF118, 0xF207)
	m.V[0] = 10
	m.V[1] = 20
	steps(t, m, 3)
	assert.Equal(t, uint8(10), m.DT)
	assert.Equal(t, uint8(20), m.ST)
	assert.Equal(t, uint8(10), m.V[2])
	assert.True(t, m.SoundActive())
}

func TestAddIndex(t *testing.T) {
	tests := []struct {
		name   string
		quirks Quirks
		i      uint16
		result uint16
		flag   uint8
	}{
		{"default in range", DefaultQuirks(), 0x100, 0x110, 0x42},
		{"default overflow wraps", DefaultQuirks(), 0xFFF, 0x00F, 0x42},
		{"quirk in range", Quirks{AddIndexSetsVF: true}, 0x100, 0x110, 0},
		{"quirk overflow", Quirks{AddIndexSetsVF: true}, 0xFFF, 0x00F, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachineWithQuirks(t, tt.quirks, 0xF01E)
			m.I = tt.i
			m.V[0] = 0x10
			m.V[0xF] = 0x42
			steps(t, m, 1)
			assert.Equal(t, tt.result, m.I)
			assert.Equal(t, tt.flag, m.V[0xF])
		})
	}
}

func TestAddIndexAfterOverflow(t *testing.T) {
	// ADD I, V0; ADD I, V1
	m := newTestMachineWithQuirks(t, Quirks{AddIndexSetsVF: true}, 0xF01E, 0xF11E)
	m.I = 0xFFF
	m.V[0] = 0x10
	m.V[1] = 0

	steps(t, m, 1)
	assert.Equal(t, uint16(0x00F), m.I)
	assert.Equal(t, uint8(1), m.V[0xF])

	steps(t, m, 1)
	assert.Equal(t, uint16(0x00F), m.I)
	assert.Equal(t, uint8(0), m.V[0xF])
}

func TestLoadFont(t *testing.T) {
	m := newTestMachine(t, 0xF029)
	m.V[0] = 0xA
	steps(t, m, 1)
	assert.Equal(t, uint16(FontStart+5*0xA), m.I)
	assert.Equal(t, byte(0xF0), m.Memory[m.I])
	assert.Equal(t, byte(0x90), m.Memory[m.I+1])
}

func TestStoreBCD(t *testing.T) {
	m := newTestMachine(t, 0xF333)
	m.V[3] = 246
	m.I = 0x300
	steps(t, m, 1)
	assert.Equal(t, []byte{2, 4, 6}, m.Memory[0x300:0x303])
}

func TestStoreBCDWrapsAddress(t *testing.T) {
	m := newTestMachine(t, 0xF033)
	m.V[0] = 123
	m.I = 0xFFF
	steps(t, m, 1)
	assert.Equal(t, byte(1), m.Memory[0xFFF])
	assert.Equal(t, byte(2), m.Memory[0x000])
	assert.Equal(t, byte(3), m.Memory[0x001])
}

func TestStoreRegistersIncrementWrapsIndex(t *testing.T) {
	m := newTestMachineWithQuirks(t, Quirks{LoadStoreIncrementsI: true}, 0xF155)
	m.I = 0xFFF
	m.V[0] = 0xAA
	m.V[1] = 0xBB
	steps(t, m, 1)
	assert.Equal(t, byte(0xAA), m.Memory[0xFFF])
	assert.Equal(t, byte(0xBB), m.Memory[0x000])
	assert.Equal(t, uint16(0x001), m.I)
}

func TestStoreLoadRegisters(t *testing.T) {
	tests := []struct {
		name   string
		quirks Quirks
		i      uint16
	}{
		{"index unchanged", DefaultQuirks(), 0x300},
		{"index incremented", Quirks{LoadStoreIncrementsI: true}, 0x304},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachineWithQuirks(t, tt.quirks, 0xF355)
			m.I = 0x300
			m.V = [RegisterCount]uint8{1, 2, 3, 4, 5}
			steps(t, m, 1)
			assert.Equal(t, []byte{1, 2, 3, 4, 0}, m.Memory[0x300:0x305])
			assert.Equal(t, tt.i, m.I)

			m = newTestMachineWithQuirks(t, tt.quirks, 0xF365)
			m.I = 0x300
			copy(m.Memory[0x300:], []byte{9, 8, 7, 6, 5})
			steps(t, m, 1)
			assert.Equal(t, [RegisterCount]uint8{9, 8, 7, 6}, m.V)
			assert.Equal(t, tt.i, m.I)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	m := New()
	assert.NoError(t, m.LoadROM([]byte{0x6A, 0x05, 0x60, 0x00}))
	steps(t, m, 2)
	assert.Equal(t, uint8(5), m.V[0xA])
	assert.Equal(t, uint8(0), m.V[0])
	assert.Equal(t, uint16(0x204), m.PC)
}
