package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nescore/internal/logger"
)

func TestReset(t *testing.T) {
	assert := assert.New(t)

	mem := newFlatMemory()
	mem.load(resetVector, 0x34, 0x82)
	mem.load(0x8234, 0xea)

	c := New(mem)
	c.Reset()

	r := c.Registers()
	assert.Equal(uint16(0x8234), r.PC)
	assert.Equal(uint8(0xfd), r.SP)
	assert.True(c.Flag(InterruptDisable))
	assert.Equal(5, c.Cycles())

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Tick())
		assert.Equal("", c.Mnemonic(), "tick %d", i)
		assert.Equal(uint16(0x8234), c.Registers().PC, "tick %d", i)
	}

	require.NoError(t, c.Tick())
	assert.Equal("NOP", c.Mnemonic())
	assert.Equal(uint16(0x8235), c.Registers().PC)
	assert.Equal(uint64(6), c.Ticks())
}

func TestTick_CountsDown(t *testing.T) {
	assert := assert.New(t)

	// LDA $1234 takes four cycles, the next fetch happens on the fifth tick
	c, _ := newTestCPU(t, 0x8000, 0xad, 0x34, 0x12, 0xe8)
	require.NoError(t, c.Tick())
	assert.Equal("LDA", c.Mnemonic())

	for i := 4; i > 0; i-- {
		assert.Equal(i, c.Cycles())
		require.NoError(t, c.Tick())
		assert.Equal("LDA", c.Mnemonic())
	}

	require.NoError(t, c.Tick())
	assert.Equal("INX", c.Mnemonic())
}

func TestTick_UndefinedOpcode(t *testing.T) {
	assert := assert.New(t)

	c, _ := newTestCPU(t, 0x8000, 0x02)
	err := c.Tick()
	require.Error(t, err)
	assert.ErrorIs(err, ErrDecode)
	assert.ErrorIs(err, ErrUndefinedOpcode)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(uint8(0x02), de.Opcode)
	assert.Equal(uint16(0x8000), de.PC)
	assert.Contains(err.Error(), "$02")

	// the processor stays halted
	assert.Equal(err, c.Tick())
	assert.Equal(err, c.Fault())

	c.Reset()
	assert.NoError(c.Fault())
}

func TestStack_Word(t *testing.T) {
	assert := assert.New(t)

	c, mem := newTestCPU(t, 0x8000)
	sp := c.Registers().SP

	c.pushWord(0x1234)
	assert.Equal(sp-2, c.Registers().SP)
	assert.Equal(uint8(0x12), mem.data[stackBase+uint16(sp)])
	assert.Equal(uint8(0x34), mem.data[stackBase+uint16(sp-1)])

	assert.Equal(uint16(0x1234), c.popWord())
	assert.Equal(sp, c.Registers().SP)
}

func TestStack_Wraps(t *testing.T) {
	assert := assert.New(t)

	c, mem := newTestCPU(t, 0x8000)
	c.sp.Store(0x00)
	c.push(0xaa)
	assert.Equal(uint8(0xff), c.Registers().SP)
	assert.Equal(uint8(0xaa), mem.data[0x0100])

	assert.Equal(uint8(0xaa), c.pop())
	assert.Equal(uint8(0x00), c.Registers().SP)
}

func TestInterrupts(t *testing.T) {
	assert := assert.New(t)

	c, mem := newTestCPU(t, 0x8000, 0xea, 0xea)
	mem.load(nmiVector, 0x00, 0xa0)
	mem.load(irqVector, 0x00, 0xb0)

	// IRQ is masked after reset
	c.IRQ(true)
	execute(t, c)
	assert.Equal("NOP", c.Mnemonic())

	c.NMI()
	execute(t, c)
	assert.Equal("NMI", c.Mnemonic())
	assert.Equal(uint16(0xa000), c.Registers().PC)
	assert.Equal(7, c.Cycles())
	assert.Zero(mem.data[0x01fb]&uint8(Break), "break clear for hardware interrupts")
	assert.Equal(uint8(0x01), mem.data[0x01fc])
}

func TestInterrupts_IRQEnabled(t *testing.T) {
	assert := assert.New(t)

	// CLI; NOP
	c, mem := newTestCPU(t, 0x8000, 0x58, 0xea)
	mem.load(irqVector, 0x00, 0xb0)

	execute(t, c)
	c.IRQ(true)
	execute(t, c)
	assert.Equal("IRQ", c.Mnemonic())
	assert.Equal(uint16(0xb000), c.Registers().PC)
	assert.True(c.Flag(InterruptDisable))
}

func TestTrace(t *testing.T) {
	logger.Clear()
	defer logger.Clear()

	c, _ := newTestCPU(t, 0x8000, 0xa9, 0x01)
	c.SetTrace(true)
	execute(t, c)

	s := &strings.Builder{}
	logger.Tail(s, 1)
	assert.Contains(t, s.String(), "cpu: $8000 A9 LDA immediate")
}

func TestInstructionTable(t *testing.T) {
	assert := assert.New(t)

	defined := 0
	mnemonics := map[string]bool{}
	for op := 0; op < 256; op++ {
		ins := Lookup(uint8(op))
		if ins == nil {
			continue
		}
		defined++
		mnemonics[ins.Mnemonic] = true
		assert.Equal(uint8(op), ins.Opcode)
		assert.NotNil(ins.exec, ins.Mnemonic)
		assert.GreaterOrEqual(ins.Cycles, uint8(2))

		switch ins.Mode {
		case AbsoluteX, AbsoluteY, IndirectY:
		default:
			assert.False(ins.PagePenalty, "%s %s", ins.Mnemonic, ins.Mode)
		}
	}

	assert.Equal(151, defined)
	assert.Len(mnemonics, 56)
	assert.Nil(Lookup(0xff))
	assert.Equal(3, Lookup(0x6c).Size())
	assert.Equal(1, Lookup(0x0a).Size())
	assert.Equal(2, Lookup(0xf0).Size())
}

func TestRestore(t *testing.T) {
	assert := assert.New(t)

	c, _ := newTestCPU(t, 0x8000, 0x02)
	require.Error(t, c.Tick())

	saved := Registers{PC: 0x9000, SP: 0x80, A: 1, X: 2, Y: 3, P: uint8(Carry | Unused)}
	c.NMI()
	c.Restore(saved, 3)

	assert.NoError(c.Fault())
	assert.Equal(saved, c.Registers())
	assert.Equal(3, c.Cycles())
	assert.True(c.Flag(Carry))

	// counts down the restored cycles, then fetches from the restored PC
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Tick())
	}
	require.NoError(t, c.Tick())
	assert.Equal("BRK", c.Mnemonic(), "no pending NMI")
}
