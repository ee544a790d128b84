package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		mode    AddressingMode
		x, y    uint8
		operand []uint8
		memory  map[uint16]uint8
		addr    uint16
		crossed bool
	}{
		{name: "immediate", mode: Immediate, operand: []uint8{0x42}, addr: 0x0400},
		{name: "zero page", mode: ZeroPage, operand: []uint8{0x80}, addr: 0x0080},
		{name: "zero page,X wraps", mode: ZeroPageX, x: 0x20, operand: []uint8{0xf0}, addr: 0x0010},
		{name: "zero page,Y wraps", mode: ZeroPageY, y: 0xff, operand: []uint8{0x01}, addr: 0x0000},
		{name: "relative forward", mode: Relative, operand: []uint8{0x10}, addr: 0x0411},
		{name: "relative backward", mode: Relative, operand: []uint8{0xfe}, addr: 0x03ff},
		{name: "absolute", mode: Absolute, operand: []uint8{0x34, 0x12}, addr: 0x1234},
		{name: "absolute,X", mode: AbsoluteX, x: 0x01, operand: []uint8{0x34, 0x12}, addr: 0x1235},
		{name: "absolute,X crosses", mode: AbsoluteX, x: 0x01, operand: []uint8{0xff, 0x12}, addr: 0x1300, crossed: true},
		{name: "absolute,Y crosses", mode: AbsoluteY, y: 0x10, operand: []uint8{0xf8, 0x20}, addr: 0x2108, crossed: true},
		{name: "absolute,X wraps address space", mode: AbsoluteX, x: 0x02, operand: []uint8{0xff, 0xff}, addr: 0x0001, crossed: true},
		{
			name: "indirect", mode: Indirect, operand: []uint8{0x00, 0x30},
			memory: map[uint16]uint8{0x3000: 0xcd, 0x3001: 0xab},
			addr:   0xabcd,
		},
		{
			name: "indirect page wrap", mode: Indirect, operand: []uint8{0xff, 0x10},
			memory: map[uint16]uint8{0x10ff: 0x00, 0x1000: 0x80, 0x1100: 0xff},
			addr:   0x8000,
		},
		{
			name: "(indirect,X)", mode: IndirectX, x: 0x04, operand: []uint8{0x20},
			memory: map[uint16]uint8{0x24: 0x74, 0x25: 0x20},
			addr:   0x2074,
		},
		{
			name: "(indirect,X) wraps in zero page", mode: IndirectX, x: 0x01, operand: []uint8{0xfe},
			memory: map[uint16]uint8{0xff: 0x34, 0x00: 0x12, 0x100: 0x99},
			addr:   0x1234,
		},
		{
			name: "(indirect),Y", mode: IndirectY, y: 0x10, operand: []uint8{0x86},
			memory: map[uint16]uint8{0x86: 0x28, 0x87: 0x40},
			addr:   0x4038,
		},
		{
			name: "(indirect),Y crosses", mode: IndirectY, y: 0x10, operand: []uint8{0x86},
			memory: map[uint16]uint8{0x86: 0xf8, 0x87: 0x40},
			addr:   0x4108, crossed: true,
		},
		{
			name: "(indirect),Y pointer wraps in zero page", mode: IndirectY, operand: []uint8{0xff},
			memory: map[uint16]uint8{0xff: 0x00, 0x00: 0x50, 0x100: 0x60},
			addr:   0x5000,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mem := newFlatMemory()
			mem.load(0x0400, tc.operand...)
			for addr, v := range tc.memory {
				mem.data[addr] = v
			}

			c := New(mem)
			c.pc.Store(0x0400)
			c.x.Store(tc.x)
			c.y.Store(tc.y)

			crossed, err := c.resolve(tc.mode)
			require.NoError(t, err)
			assert.Equal(t, tc.addr, c.addr, "address $%04X", c.addr)
			assert.Equal(t, tc.crossed, crossed)
			assert.Equal(t, 0x0400+uint16(tc.mode.operandBytes()), c.pc.Load(), "operand bytes consumed")
		})
	}
}

func TestResolve_NoOperand(t *testing.T) {
	for _, mode := range []AddressingMode{Implied, Accumulator} {
		c := New(newFlatMemory())
		c.pc.Store(0x0400)

		crossed, err := c.resolve(mode)
		assert.NoError(t, err)
		assert.False(t, crossed)
		assert.Equal(t, uint16(0x0400), c.pc.Load())
	}
}

func TestResolve_UnknownMode(t *testing.T) {
	c := New(newFlatMemory())
	_, err := c.resolve(AddressingMode(99))
	assert.ErrorIs(t, err, ErrAddressingMode)
	assert.Equal(t, "unknown", AddressingMode(99).String())
}

func TestJMP_IndirectPageWrap(t *testing.T) {
	c, mem := newTestCPU(t, 0x0600, 0x6c, 0xff, 0x10)
	mem.load(0x10ff, 0x00)
	mem.load(0x1000, 0x80)
	mem.load(0x1100, 0xff)

	execute(t, c)
	assert.Equal(t, uint16(0x8000), c.Registers().PC)
	assert.Equal(t, 5, c.Cycles())
}
