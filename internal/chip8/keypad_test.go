package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypadSet(t *testing.T) {
	var k Keypad
	assert.True(t, k.Set(0xA, true))
	assert.False(t, k.Set(0xA, true))
	assert.True(t, k.Pressed(0xA))
	assert.True(t, k.Pressed(0x1A))
	assert.False(t, k.Set(0x10, true))
	assert.True(t, k.Set(0xA, false))
	assert.False(t, k.Pressed(0xA))
}

func TestWaitKey(t *testing.T) {
	m := newTestMachine(t, 0xF30A, 0x6001)
	steps(t, m, 1)
	assert.Equal(t, AwaitingKey, m.Mode())
	pc := m.PC

	for range 5 {
		in, err := m.Step()
		assert.NoError(t, err)
		assert.Equal(t, Instruction{}, in)
	}
	assert.Equal(t, pc, m.PC)
	assert.Equal(t, uint8(0), m.V[0])

	m.HandleKey(KeyEvent{Key: 0x7, Pressed: true})
	assert.Equal(t, Running, m.Mode())
	assert.Equal(t, uint8(0x7), m.V[3])

	steps(t, m, 1)
	assert.Equal(t, uint8(1), m.V[0])
}

func TestWaitKeyIgnoresHeldKey(t *testing.T) {
	m := newTestMachine(t, 0xF30A)
	m.HandleKey(KeyEvent{Key: 0x2, Pressed: true})
	steps(t, m, 1)
	assert.Equal(t, AwaitingKey, m.Mode())

	// repeated press of a held key is not a transition
	m.HandleKey(KeyEvent{Key: 0x2, Pressed: true})
	assert.Equal(t, AwaitingKey, m.Mode())

	m.HandleKey(KeyEvent{Key: 0x2, Pressed: false})
	assert.Equal(t, AwaitingKey, m.Mode())

	m.HandleKey(KeyEvent{Key: 0x2, Pressed: true})
	assert.Equal(t, Running, m.Mode())
	assert.Equal(t, uint8(0x2), m.V[3])
}

func TestWaitKeyTimersContinue(t *testing.T) {
	m := newTestMachine(t, 0xF00A)
	m.DT = 2
	m.ST = 2
	steps(t, m, 1)
	m.TickTimers()
	assert.Equal(t, uint8(1), m.DT)
	assert.Equal(t, uint8(1), m.ST)
}

func TestSkipKey(t *testing.T) {
	tests := []struct {
		name    string
		word    uint16
		pressed bool
		skipped bool
	}{
		{"skp pressed", 0xE09E, true, true},
		{"skp released", 0xE09E, false, false},
		{"sknp pressed", 0xE0A1, true, false},
		{"sknp released", 0xE0A1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.word)
			m.V[0] = 0xB
			m.HandleKey(KeyEvent{Key: 0xB, Pressed: tt.pressed})
			steps(t, m, 1)
			if tt.skipped {
				assert.Equal(t, uint16(ProgramStart+4), m.PC)
			} else {
				assert.Equal(t, uint16(ProgramStart+2), m.PC)
			}
		})
	}
}
