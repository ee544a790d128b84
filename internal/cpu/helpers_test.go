package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// flatMemory is a 64KB address space with no mirroring or devices.
type flatMemory struct {
	data   [0x10000]uint8
	writes map[uint16]int
}

func newFlatMemory() *flatMemory {
	return &flatMemory{writes: make(map[uint16]int)}
}

func (m *flatMemory) Read(addr uint16) uint8 {
	return m.data[addr]
}

func (m *flatMemory) Write(addr uint16, value uint8) {
	m.writes[addr]++
	m.data[addr] = value
}

func (m *flatMemory) ReadWord(addr uint16) uint16 {
	return uint16(m.data[addr+1])<<8 | uint16(m.data[addr])
}

func (m *flatMemory) load(addr uint16, values ...uint8) {
	for i, v := range values {
		m.data[addr+uint16(i)] = v
	}
}

// newTestCPU loads program at origin, points the reset vector at it and
// counts down the reset delay so that the next tick fetches the first
// instruction.
func newTestCPU(t *testing.T, origin uint16, program ...uint8) (*CPU, *flatMemory) {
	t.Helper()

	mem := newFlatMemory()
	mem.load(resetVector, uint8(origin), uint8(origin>>8))
	mem.load(origin, program...)

	c := New(mem)
	c.Reset()
	for i := 0; i < resetCycles; i++ {
		require.NoError(t, c.Tick())
	}
	require.Zero(t, c.Cycles())
	return c, mem
}

// execute runs the next instruction, counting down whatever remains of the
// current one first.
func execute(t *testing.T, c *CPU) {
	t.Helper()
	for c.Cycles() > 0 {
		require.NoError(t, c.Tick())
	}
	require.NoError(t, c.Tick())
}

// executeN runs n instructions.
func executeN(t *testing.T, c *CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		execute(t, c)
	}
}
