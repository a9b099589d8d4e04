package chip8

// KeyEvent is a transition of one of the 16 logical keys.
type KeyEvent struct {
	Key     uint8
	Pressed bool
}

// Keypad latches the state of the 16 keys.
type Keypad [KeyCount]bool

// Set updates the state of a key and returns whether the state changed.
// Keys outside of 0x0-0xF are ignored.
func (k *Keypad) Set(key uint8, pressed bool) bool {
	if int(key) >= KeyCount {
		return false
	}
	if k[key] == pressed {
		return false
	}
	k[key] = pressed
	return true
}

// Pressed returns whether the key is currently held down. Only the low
// nibble of key is used.
func (k *Keypad) Pressed(key uint8) bool {
	return k[key&0x0F]
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	*k = Keypad{}
}

// HandleKey applies a key event to the keypad. A key that transitions to
// pressed while the machine is waiting for a key is stored in the register
// of the pending LD Vx, K instruction and resumes execution.
func (m *Machine) HandleKey(ev KeyEvent) {
	changed := m.Keys.Set(ev.Key, ev.Pressed)
	if !changed || !ev.Pressed || m.mode != AwaitingKey {
		return
	}
	m.V[m.waitRegister] = ev.Key
	m.mode = Running
}

// KeyPressed returns whether the key is currently held down.
func (m *Machine) KeyPressed(key uint8) bool {
	return m.Keys.Pressed(key)
}
