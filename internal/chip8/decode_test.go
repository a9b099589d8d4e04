package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	in := Decode(0xD12F)
	assert.Equal(t, uint16(0xD12F), in.Word)
	assert.Equal(t, uint8(0xD), in.Opcode)
	assert.Equal(t, uint8(0x1), in.X)
	assert.Equal(t, uint8(0x2), in.Y)
	assert.Equal(t, uint8(0x2F), in.KK)
	assert.Equal(t, uint16(0x12F), in.NNN)
	assert.Equal(t, uint8(0xF), in.N)
	assert.Equal(t, "D12F", in.String())
}

func TestFetchBigEndian(t *testing.T) {
	m := newTestMachine(t, 0xA2F0)
	assert.Equal(t, uint16(0xA2F0), m.Fetch())
}

func TestLookup(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
	}{
		{0x00E0, OpCLS},
		{0x00EE, OpRET},
		{0x0123, OpInvalid},
		{0x01E0, OpInvalid},
		{0x1ABC, OpJP},
		{0x2ABC, OpCALL},
		{0x3A12, OpSEImm},
		{0x4A12, OpSNEImm},
		{0x5AB0, OpSEReg},
		{0x5AB1, OpInvalid},
		{0x6A12, OpLDImm},
		{0x7A12, OpADDImm},
		{0x8AB0, OpLDReg},
		{0x8AB1, OpOR},
		{0x8AB2, OpAND},
		{0x8AB3, OpXOR},
		{0x8AB4, OpADDReg},
		{0x8AB5, OpSUB},
		{0x8AB6, OpSHR},
		{0x8AB7, OpSUBN},
		{0x8AB8, OpInvalid},
		{0x8ABE, OpSHL},
		{0x9AB0, OpSNEReg},
		{0x9AB4, OpInvalid},
		{0xA123, OpLDI},
		{0xB123, OpJPV0},
		{0xCA12, OpRND},
		{0xDAB5, OpDRW},
		{0xEA9E, OpSKP},
		{0xEAA1, OpSKNP},
		{0xEA00, OpInvalid},
		{0xFA07, OpLDVxDT},
		{0xFA0A, OpLDVxK},
		{0xFA15, OpLDDTVx},
		{0xFA18, OpLDSTVx},
		{0xFA1E, OpADDI},
		{0xFA29, OpLDF},
		{0xFA33, OpLDB},
		{0xFA55, OpLDIVx},
		{0xFA65, OpLDVxI},
		{0xFAFF, OpInvalid},
	}

	for _, tt := range tests {
		t.Run(Decode(tt.word).String(), func(t *testing.T) {
			assert.Equal(t, tt.op, Lookup(Decode(tt.word)))
		})
	}
}

func TestOpsHaveHandlers(t *testing.T) {
	ops := Ops()
	assert.Len(t, ops, int(opCount)-1)
	for _, op := range ops {
		assert.True(t, handlers[op] != nil, op.String())
		assert.True(t, opNames[op] != "")
	}
	assert.Equal(t, "invalid", OpInvalid.String())
}
