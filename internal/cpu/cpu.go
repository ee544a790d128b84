// Package cpu implements the 6502 processor core used by the NES.
//
// The processor is ticked once per CPU cycle. An instruction is fetched,
// decoded and executed in full on the tick that finds the cycle counter at
// zero; the counter is then loaded with the cost of the instruction and the
// following ticks only count it down. Effects of an instruction are
// therefore visible immediately after the tick that fetched it.
package cpu

import (
	"fmt"

	"nescore/internal/logger"
)

const (
	stackBase = 0x0100

	nmiVector   = 0xfffa
	resetVector = 0xfffc
	irqVector   = 0xfffe

	// cycles counted down after a reset before the first fetch
	resetCycles = 5

	// cycles taken to enter an interrupt handler
	interruptCycles = 7
)

// Bus is the view of the address space used by the processor.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	ReadWord(addr uint16) uint16
}

// CPU is the 6502 processor. The registers are only ever written by the
// processor itself.
type CPU struct {
	bus Bus

	pc Register16
	sp Register8
	a  Register8
	x  Register8
	y  Register8
	p  Status

	// operand address of the instruction being executed
	addr uint16

	// remaining cycles of the instruction in flight
	cycles uint8

	// total number of ticks since reset
	ticks uint64

	mnemonic string
	fault    error

	nmi bool
	irq bool

	trace bool
}

// New creates a CPU attached to bus. Reset must be called before the first
// tick.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Reset reinitialises the registers and loads PC from the reset vector. The
// first fetch happens after the startup delay has been counted down.
func (c *CPU) Reset() {
	c.a.Clear()
	c.x.Clear()
	c.y.Clear()
	c.sp.Store(0xfd)
	c.p.Store(uint8(InterruptDisable | Unused))
	c.pc.Store(c.bus.ReadWord(resetVector))
	c.addr = 0
	c.cycles = resetCycles
	c.ticks = 0
	c.mnemonic = ""
	c.fault = nil
	c.nmi = false
	c.irq = false

	if c.trace {
		logger.Logf("cpu", "reset PC=%s", c.pc)
	}
}

// Tick advances the processor by one cycle. A decode failure is returned
// as a *DecodeError and is returned again on every tick until Reset.
func (c *CPU) Tick() error {
	if c.fault != nil {
		return c.fault
	}

	c.ticks++

	if c.cycles > 0 {
		c.cycles--
		return nil
	}

	if c.interrupt() {
		return nil
	}

	pc := c.pc.Load()
	opcode := c.fetch()

	ins := instructions[opcode]
	if ins == nil {
		c.fault = &DecodeError{Opcode: opcode, PC: pc, Err: ErrUndefinedOpcode}
		return c.fault
	}

	crossed, err := c.resolve(ins.Mode)
	if err != nil {
		c.fault = &DecodeError{Opcode: opcode, PC: pc, Err: err}
		return c.fault
	}

	cycles := ins.Cycles + ins.exec(c, ins.Mode)
	if crossed && ins.PagePenalty {
		cycles++
	}
	c.cycles = cycles
	c.mnemonic = ins.Mnemonic

	if c.trace {
		logger.Logf("cpu", "$%04X %02X %-3s %-13s %s cyc=%d", pc, opcode, ins.Mnemonic, ins.Mode, c.Registers(), cycles)
	}

	return nil
}

// NMI requests a non-maskable interrupt. It is taken at the next instruction
// boundary.
func (c *CPU) NMI() {
	c.nmi = true
}

// IRQ sets the state of the interrupt request line. The request is taken at
// an instruction boundary while interrupts are enabled.
func (c *CPU) IRQ(state bool) {
	c.irq = state
}

// interrupt enters a pending interrupt handler. Returns true if an
// interrupt was taken.
func (c *CPU) interrupt() bool {
	var vector uint16
	switch {
	case c.nmi:
		c.nmi = false
		vector = nmiVector
		c.mnemonic = "NMI"
	case c.irq && !c.p.Get(InterruptDisable):
		vector = irqVector
		c.mnemonic = "IRQ"
	default:
		return false
	}

	c.pushWord(c.pc.Load())
	c.push(c.p.Load()&^uint8(Break) | uint8(Unused))
	c.p.Set(InterruptDisable, true)
	c.pc.Store(c.bus.ReadWord(vector))
	c.cycles = interruptCycles

	if c.trace {
		logger.Logf("cpu", "%s -> $%04X", c.mnemonic, c.pc.Load())
	}

	return true
}

// fetch reads the byte at PC and advances PC.
func (c *CPU) fetch() uint8 {
	v := c.bus.Read(c.pc.Load())
	c.pc.Add(1)
	return v
}

// fetchWord reads the little-endian word at PC and advances PC past it.
func (c *CPU) fetchWord() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

func (c *CPU) push(v uint8) {
	c.bus.Write(stackBase+uint16(c.sp.Load()), v)
	c.sp.Subtract(1)
}

func (c *CPU) pop() uint8 {
	c.sp.Add(1)
	return c.bus.Read(stackBase + uint16(c.sp.Load()))
}

// pushWord pushes the high byte and then the low byte.
func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// Mnemonic returns the mnemonic of the last instruction executed.
func (c *CPU) Mnemonic() string {
	return c.mnemonic
}

// Cycles returns the number of cycles still to be counted down before the
// next instruction is fetched.
func (c *CPU) Cycles() int {
	return int(c.cycles)
}

// Ticks returns the number of ticks since the last reset.
func (c *CPU) Ticks() uint64 {
	return c.ticks
}

// Fault returns the decode failure that halted the processor, if any.
func (c *CPU) Fault() error {
	return c.fault
}

// SetTrace enables logging of every executed instruction.
func (c *CPU) SetTrace(trace bool) {
	c.trace = trace
}

// Registers is a copy of the register file.
type Registers struct {
	PC uint16
	SP uint8
	A  uint8
	X  uint8
	Y  uint8
	P  uint8
}

func (r Registers) String() string {
	return fmt.Sprintf("A=$%02X X=$%02X Y=$%02X SP=$%02X PC=$%04X P=%s",
		r.A, r.X, r.Y, r.SP, r.PC, statusString(r.P))
}

// Registers returns a snapshot of the register file.
func (c *CPU) Registers() Registers {
	return Registers{
		PC: c.pc.Load(),
		SP: c.sp.Load(),
		A:  c.a.Load(),
		X:  c.x.Load(),
		Y:  c.y.Load(),
		P:  c.p.Load(),
	}
}

// Flag returns the state of a single status flag.
func (c *CPU) Flag(flag Flag) bool {
	return c.p.Get(flag)
}

// Restore loads the register file and the cycle counter, as saved by
// Registers and Cycles. Pending interrupts and any latched fault are
// discarded.
func (c *CPU) Restore(r Registers, cycles int) {
	c.pc.Store(r.PC)
	c.sp.Store(r.SP)
	c.a.Store(r.A)
	c.x.Store(r.X)
	c.y.Store(r.Y)
	c.p.Store(r.P)
	c.cycles = uint8(cycles)
	c.fault = nil
	c.nmi = false
	c.irq = false
}
