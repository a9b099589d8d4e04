package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// fixedRandom returns the same byte on every call.
type fixedRandom uint8

func (r fixedRandom) Byte() uint8 { return uint8(r) }

// newTestMachine returns a machine with the given instruction words loaded
// at ProgramStart.
func newTestMachine(t *testing.T, words ...uint16) *Machine {
	t.Helper()
	return newTestMachineWithQuirks(t, DefaultQuirks(), words...)
}

func newTestMachineWithQuirks(t *testing.T, quirks Quirks, words ...uint16) *Machine {
	t.Helper()
	program := make([]byte, 0, 2*len(words))
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}

	m := New(WithQuirks(quirks), WithRandom(fixedRandom(0xFF)))
	assert.NoError(t, m.LoadROM(program))
	return m
}

// steps executes n instructions and fails the test on error.
func steps(t *testing.T, m *Machine, n int) {
	t.Helper()
	for i := range n {
		if _, err := m.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}
