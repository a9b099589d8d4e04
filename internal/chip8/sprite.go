package chip8

// spriteWidth is the width of every sprite row in pixels.
const spriteWidth = 8

// draw XORs an N rows high sprite read from memory at I onto the display at
// VX, VY. Columns wrap around the right edge, rows below the bottom edge
// are clipped unless the VerticalWrap quirk is set. VF is set to 1 if any
// lit pixel was turned off, 0 otherwise.
func (m *Machine) draw(in Instruction) error {
	originX := int(m.V[in.X])
	originY := int(m.V[in.Y])
	m.V[flagRegister] = 0

	collision := false
	for row := range int(in.N) {
		y := originY + row
		if y >= DisplayHeight {
			if !m.quirks.VerticalWrap {
				break
			}
			y %= DisplayHeight
		}

		sprite := m.Memory[m.address(row)]
		for column := range spriteWidth {
			if sprite&(0x80>>column) == 0 {
				continue
			}
			x := (originX + column) % DisplayWidth
			if m.Display.flip(x, y) {
				collision = true
			}
		}
	}

	if collision {
		m.V[flagRegister] = 1
	}
	return nil
}
