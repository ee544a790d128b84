// Package apu implements the register side of the 2A03 audio unit: the
// channel registers, the channel enable/status register, length counters
// and the frame counter with its interrupt. No samples are produced.
package apu

import "fmt"

// Register addresses.
const (
	Pulse1Control   = 0x4000
	Pulse1LengthHi  = 0x4003
	Pulse2Control   = 0x4004
	Pulse2LengthHi  = 0x4007
	TriangleControl = 0x4008
	TriangleLength  = 0x400b
	NoiseControl    = 0x400c
	NoiseLength     = 0x400f
	DMCLength       = 0x4013
	Status          = 0x4015
	FrameCounter    = 0x4017
)

// Channel indexes for the length counted channels.
const (
	Pulse1 = iota
	Pulse2
	Triangle
	Noise
	numChannels
)

const (
	statusFrameIRQ = 0x40

	frameModeFiveStep = 0x80
	frameIRQInhibit   = 0x40
)

// frame counter sequence points in CPU cycles
const (
	quarterFrame1 = 7457
	halfFrame1    = 14913
	quarterFrame3 = 22371
	fourStepEnd   = 29829
	fourStepIRQ   = 29830
	fiveStepEnd   = 37281
)

var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6,
	160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 8, 48, 6, 96, 4,
	192, 2, 72, 16, 28, 32, 52, 2,
}

// lengthRegister and haltBit locate each channel's length counter load
// register and the bit of its control register that halts the counter.
var (
	lengthRegister = [numChannels]uint16{Pulse1LengthHi, Pulse2LengthHi, TriangleLength, NoiseLength}
	controlAddr    = [numChannels]uint16{Pulse1Control, Pulse2Control, TriangleControl, NoiseControl}
	haltBit        = [numChannels]uint8{0x20, 0x20, 0x80, 0x20}
)

// APU is the audio unit.
type APU struct {
	regs    [DMCLength - Pulse1Control + 1]uint8
	enabled [numChannels]bool
	length  [numChannels]uint8

	fiveStep   bool
	irqInhibit bool
	frameIRQ   bool
	sequence   uint32

	cycles uint64
}

// New returns a powered up APU.
func New() *APU {
	a := &APU{}
	a.Reset()
	return a
}

// Reset silences every channel and restarts the frame counter.
func (a *APU) Reset() {
	*a = APU{}
}

// Read implements the bus.Reader interface. Only the status register is
// readable.
func (a *APU) Read(addr uint16) (uint8, bool) {
	if addr != Status {
		return 0, false
	}

	var v uint8
	for ch, n := range a.length {
		if n > 0 {
			v |= 1 << ch
		}
	}
	if a.frameIRQ {
		v |= statusFrameIRQ
	}
	a.frameIRQ = false
	return v, true
}

// Write implements the bus.Writer interface.
func (a *APU) Write(addr uint16, value uint8) bool {
	switch {
	case addr >= Pulse1Control && addr <= DMCLength:
		a.regs[addr-Pulse1Control] = value
		for ch, reg := range lengthRegister {
			if addr == reg && a.enabled[ch] {
				a.length[ch] = lengthTable[value>>3]
			}
		}
	case addr == Status:
		for ch := range a.enabled {
			a.enabled[ch] = value&(1<<ch) != 0
			if !a.enabled[ch] {
				a.length[ch] = 0
			}
		}
	case addr == FrameCounter:
		a.fiveStep = value&frameModeFiveStep != 0
		a.irqInhibit = value&frameIRQInhibit != 0
		if a.irqInhibit {
			a.frameIRQ = false
		}
		a.sequence = 0
		if a.fiveStep {
			a.clockLength()
		}
	default:
		return false
	}
	return true
}

// Tick advances the frame counter by one CPU cycle.
func (a *APU) Tick() {
	a.cycles++
	a.sequence++

	switch a.sequence {
	case halfFrame1:
		a.clockLength()
	case fourStepEnd:
		if !a.fiveStep {
			a.clockLength()
		}
	case fourStepIRQ:
		if !a.fiveStep {
			if !a.irqInhibit {
				a.frameIRQ = true
			}
			a.sequence = 0
		}
	case fiveStepEnd:
		a.clockLength()
		a.sequence = 0
	}
}

func (a *APU) clockLength() {
	for ch := range a.length {
		halted := a.regs[controlAddr[ch]-Pulse1Control]&haltBit[ch] != 0
		if a.length[ch] > 0 && !halted {
			a.length[ch]--
		}
	}
}

// IRQ returns true while the frame interrupt is pending.
func (a *APU) IRQ() bool {
	return a.frameIRQ
}

// Length returns the length counter of a channel.
func (a *APU) Length(ch int) uint8 {
	return a.length[ch]
}

// Register returns the last value written to a channel register.
func (a *APU) Register(addr uint16) uint8 {
	if addr < Pulse1Control || addr > DMCLength {
		return 0
	}
	return a.regs[addr-Pulse1Control]
}

// Cycles returns the number of ticks since reset.
func (a *APU) Cycles() uint64 {
	return a.cycles
}

func (a *APU) String() string {
	return fmt.Sprintf("cycles=%d length=%v irq=%v", a.cycles, a.length, a.frameIRQ)
}
