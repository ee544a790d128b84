// Package nes assembles the console. A Machine owns every device in a
// single arena on the bus and refers to them by handle; the CPU and the
// devices never hold references to one another.
package nes

import (
	"nescore/internal/apu"
	"nescore/internal/bus"
	"nescore/internal/cartridge"
	"nescore/internal/cpu"
	"nescore/internal/input"
	"nescore/internal/logger"
	"nescore/internal/memory"
	"nescore/internal/ppu"
)

// NTSC timing.
const (
	CyclesPerFrame   = 29781
	PPUTicksPerCycle = 3
	APUTicksPerCycle = 1
)

// Arena handles of the fixed devices. Devices are registered, and so
// consulted by the bus, in this order. CartridgeHandle is only valid when a
// cartridge is inserted. The controller ports follow the cartridge, then
// any extra devices.
const (
	RAMHandle bus.Handle = iota
	PPUHandle
	APUHandle
	CartridgeHandle
)

// Machine is the console.
type Machine struct {
	bus  *bus.Bus
	cpu  *cpu.CPU
	cart *cartridge.Cartridge

	extra []bus.Device
	trace bool

	inputHandle bus.Handle

	frames uint64
}

// New builds a machine and resets it. Without a cartridge the upper half of
// the address space is unmapped and the reset vector reads as zero.
func New(opts ...Option) (*Machine, error) {
	m := &Machine{}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	devices := []bus.Device{memory.NewRAM(), ppu.New(), apu.New()}
	if m.cart != nil {
		devices = append(devices, m.cart.Device())
	}
	m.inputHandle = bus.Handle(len(devices))
	devices = append(devices, input.NewPorts())
	devices = append(devices, m.extra...)

	m.bus = bus.New(devices...)
	m.cpu = cpu.New(m.bus)
	m.cpu.SetTrace(m.trace)
	m.PPU().SetNMI(m.cpu.NMI)

	m.Reset()
	return m, nil
}

// Reset resets the CPU, the picture unit and the audio unit. RAM and
// cartridge memory keep their contents.
func (m *Machine) Reset() {
	m.PPU().Reset()
	m.APU().Reset()
	m.cpu.Reset()
	m.frames = 0
	logger.Logf("nes", "reset PC=$%04X", m.cpu.Registers().PC)
}

// TickCPU advances the CPU by a single cycle and returns the mnemonic of the
// last instruction executed. The other devices are not clocked.
func (m *Machine) TickCPU() (string, error) {
	err := m.cpu.Tick()
	return m.cpu.Mnemonic(), err
}

// TickFrame runs one frame's worth of CPU cycles, clocking the picture unit
// and audio unit after each. It stops at the first decode failure and
// returns it; the frame is not counted.
func (m *Machine) TickFrame() error {
	p := m.PPU()
	a := m.APU()

	for range CyclesPerFrame {
		if err := m.cpu.Tick(); err != nil {
			logger.Logf("nes", "frame %d: %v", m.frames, err)
			return err
		}
		for range PPUTicksPerCycle {
			p.Tick()
		}
		for range APUTicksPerCycle {
			a.Tick()
		}
		m.cpu.IRQ(a.IRQ())
	}

	m.frames++
	return nil
}

// Read reads a byte from the CPU address space.
func (m *Machine) Read(addr uint16) uint8 {
	return m.bus.Read(addr)
}

// Write writes a byte into the CPU address space.
func (m *Machine) Write(addr uint16, value uint8) {
	m.bus.Write(addr, value)
}

// Frames returns the number of frames completed since reset.
func (m *Machine) Frames() uint64 {
	return m.frames
}

// CPU returns the processor.
func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

// Bus returns the CPU bus.
func (m *Machine) Bus() *bus.Bus {
	return m.bus
}

// RAM returns the work RAM.
func (m *Machine) RAM() *memory.RAM {
	return m.bus.Device(RAMHandle).(*memory.RAM)
}

// PPU returns the picture unit.
func (m *Machine) PPU() *ppu.PPU {
	return m.bus.Device(PPUHandle).(*ppu.PPU)
}

// APU returns the audio unit.
func (m *Machine) APU() *apu.APU {
	return m.bus.Device(APUHandle).(*apu.APU)
}

// Input returns the controller ports.
func (m *Machine) Input() *input.Ports {
	return m.bus.Device(m.inputHandle).(*input.Ports)
}

// Cartridge returns the inserted cartridge or nil.
func (m *Machine) Cartridge() *cartridge.Cartridge {
	return m.cart
}
