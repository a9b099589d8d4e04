package chip8

// handler executes a single instruction. PC has already been advanced past
// the instruction.
type handler func(m *Machine, in Instruction) error

var handlers = [opCount]handler{
	OpCLS:    (*Machine).clearScreen,
	OpRET:    (*Machine).ret,
	OpJP:     (*Machine).jump,
	OpCALL:   (*Machine).call,
	OpSEImm:  (*Machine).skipEqualImmediate,
	OpSNEImm: (*Machine).skipNotEqualImmediate,
	OpSEReg:  (*Machine).skipEqualRegister,
	OpLDImm:  (*Machine).loadImmediate,
	OpADDImm: (*Machine).addImmediate,
	OpLDReg:  (*Machine).loadRegister,
	OpOR:     (*Machine).or,
	OpAND:    (*Machine).and,
	OpXOR:    (*Machine).xor,
	OpADDReg: (*Machine).addRegister,
	OpSUB:    (*Machine).sub,
	OpSHR:    (*Machine).shiftRight,
	OpSUBN:   (*Machine).subN,
	OpSHL:    (*Machine).shiftLeft,
	OpSNEReg: (*Machine).skipNotEqualRegister,
	OpLDI:    (*Machine).loadIndex,
	OpJPV0:   (*Machine).jumpOffset,
	OpRND:    (*Machine).random,
	OpDRW:    (*Machine).draw,
	OpSKP:    (*Machine).skipKeyPressed,
	OpSKNP:   (*Machine).skipKeyNotPressed,
	OpLDVxDT: (*Machine).loadDelayTimer,
	OpLDVxK:  (*Machine).waitKey,
	OpLDDTVx: (*Machine).setDelayTimer,
	OpLDSTVx: (*Machine).setSoundTimer,
	OpADDI:   (*Machine).addIndex,
	OpLDF:    (*Machine).loadFont,
	OpLDB:    (*Machine).storeBCD,
	OpLDIVx:  (*Machine).storeRegisters,
	OpLDVxI:  (*Machine).loadRegisters,
}

// Execute executes a decoded instruction. PC must already point to the
// next instruction. Words that are not part of the instruction set return
// a decode fault.
func (m *Machine) Execute(in Instruction) error {
	op := Lookup(in)
	if op == OpInvalid {
		return m.fault(DecodeFault, in, ErrUnknownInstruction)
	}
	return handlers[op](m, in)
}

// skipIf skips the next instruction if cond is true.
func (m *Machine) skipIf(cond bool) {
	if cond {
		m.PC += instructionSize
	}
}

// setFlag writes the flag register. It is always written after the result
// register so that the flag wins for instructions operating on VF.
func (m *Machine) setFlag(set bool) {
	if set {
		m.V[flagRegister] = 1
	} else {
		m.V[flagRegister] = 0
	}
}

func (m *Machine) clearScreen(Instruction) error {
	m.Display.Clear()
	return nil
}

func (m *Machine) ret(in Instruction) error {
	address, err := m.pop(in)
	if err != nil {
		return err
	}
	m.PC = address
	return nil
}

func (m *Machine) jump(in Instruction) error {
	m.PC = in.NNN
	return nil
}

func (m *Machine) call(in Instruction) error {
	if err := m.push(in, m.PC); err != nil {
		return err
	}
	m.PC = in.NNN
	return nil
}

func (m *Machine) skipEqualImmediate(in Instruction) error {
	m.skipIf(m.V[in.X] == in.KK)
	return nil
}

func (m *Machine) skipNotEqualImmediate(in Instruction) error {
	m.skipIf(m.V[in.X] != in.KK)
	return nil
}

func (m *Machine) skipEqualRegister(in Instruction) error {
	m.skipIf(m.V[in.X] == m.V[in.Y])
	return nil
}

func (m *Machine) skipNotEqualRegister(in Instruction) error {
	m.skipIf(m.V[in.X] != m.V[in.Y])
	return nil
}

func (m *Machine) loadImmediate(in Instruction) error {
	m.V[in.X] = in.KK
	return nil
}

func (m *Machine) addImmediate(in Instruction) error {
	m.V[in.X] += in.KK
	return nil
}

func (m *Machine) loadRegister(in Instruction) error {
	m.V[in.X] = m.V[in.Y]
	return nil
}

func (m *Machine) or(in Instruction) error {
	m.V[in.X] |= m.V[in.Y]
	return nil
}

func (m *Machine) and(in Instruction) error {
	m.V[in.X] &= m.V[in.Y]
	return nil
}

func (m *Machine) xor(in Instruction) error {
	m.V[in.X] ^= m.V[in.Y]
	return nil
}

func (m *Machine) addRegister(in Instruction) error {
	sum := uint16(m.V[in.X]) + uint16(m.V[in.Y])
	m.V[in.X] = uint8(sum)
	m.setFlag(sum > 0xFF)
	return nil
}

func (m *Machine) sub(in Instruction) error {
	x, y := m.V[in.X], m.V[in.Y]
	m.V[in.X] = x - y
	m.setFlag(x >= y)
	return nil
}

func (m *Machine) subN(in Instruction) error {
	x, y := m.V[in.X], m.V[in.Y]
	m.V[in.X] = y - x
	m.setFlag(y >= x)
	return nil
}

// shiftSource returns the value shifted by SHR and SHL.
func (m *Machine) shiftSource(in Instruction) uint8 {
	if m.quirks.ShiftUsesVY {
		return m.V[in.Y]
	}
	return m.V[in.X]
}

func (m *Machine) shiftRight(in Instruction) error {
	value := m.shiftSource(in)
	m.V[in.X] = value >> 1
	m.setFlag(value&0x01 != 0) // least significant bit
	return nil
}

func (m *Machine) shiftLeft(in Instruction) error {
	value := m.shiftSource(in)
	m.V[in.X] = value << 1
	m.setFlag(value&0x80 != 0) // most significant bit
	return nil
}

func (m *Machine) loadIndex(in Instruction) error {
	m.I = in.NNN
	return nil
}

func (m *Machine) jumpOffset(in Instruction) error {
	m.PC = in.NNN + uint16(m.V[0])
	return nil
}

func (m *Machine) random(in Instruction) error {
	m.V[in.X] = m.rnd.Byte() & in.KK
	return nil
}

func (m *Machine) skipKeyPressed(in Instruction) error {
	m.skipIf(m.Keys.Pressed(m.V[in.X]))
	return nil
}

func (m *Machine) skipKeyNotPressed(in Instruction) error {
	m.skipIf(!m.Keys.Pressed(m.V[in.X]))
	return nil
}

func (m *Machine) loadDelayTimer(in Instruction) error {
	m.V[in.X] = m.DT
	return nil
}

// waitKey suspends execution until HandleKey observes a key press.
func (m *Machine) waitKey(in Instruction) error {
	m.mode = AwaitingKey
	m.waitRegister = in.X
	return nil
}

func (m *Machine) setDelayTimer(in Instruction) error {
	m.DT = m.V[in.X]
	return nil
}

func (m *Machine) setSoundTimer(in Instruction) error {
	m.ST = m.V[in.X]
	return nil
}

func (m *Machine) addIndex(in Instruction) error {
	sum := m.I + uint16(m.V[in.X])
	m.I = sum & (MemorySize - 1)
	if m.quirks.AddIndexSetsVF {
		m.setFlag(sum > MemorySize-1)
	}
	return nil
}

func (m *Machine) loadFont(in Instruction) error {
	m.I = FontStart + FontGlyphSize*uint16(m.V[in.X]&0x0F)
	return nil
}

func (m *Machine) storeBCD(in Instruction) error {
	value := m.V[in.X]
	m.Memory[m.address(0)] = value / 100
	m.Memory[m.address(1)] = value / 10 % 10
	m.Memory[m.address(2)] = value % 10
	return nil
}

func (m *Machine) storeRegisters(in Instruction) error {
	for i := 0; i <= int(in.X); i++ {
		m.Memory[m.address(i)] = m.V[i]
	}
	if m.quirks.LoadStoreIncrementsI {
		m.I = (m.I + uint16(in.X) + 1) & (MemorySize - 1)
	}
	return nil
}

func (m *Machine) loadRegisters(in Instruction) error {
	for i := 0; i <= int(in.X); i++ {
		m.V[i] = m.Memory[m.address(i)]
	}
	if m.quirks.LoadStoreIncrementsI {
		m.I = (m.I + uint16(in.X) + 1) & (MemorySize - 1)
	}
	return nil
}
