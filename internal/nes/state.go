package nes

import (
	"fmt"

	"nescore/internal/cpu"
	"nescore/internal/memory"
)

// State is the part of the machine that survives a save and restore: the
// processor, work RAM and cartridge RAM. The picture and audio units are
// reset on restore.
type State struct {
	Registers cpu.Registers
	Cycles    int
	Frames    uint64
	RAM       []uint8
	PRGRAM    []uint8
}

// SaveState copies the current state.
func (m *Machine) SaveState() State {
	s := State{
		Registers: m.cpu.Registers(),
		Cycles:    m.cpu.Cycles(),
		Frames:    m.frames,
		RAM:       m.RAM().Snapshot(nil),
	}
	if m.cart != nil {
		s.PRGRAM = append([]uint8(nil), m.cart.PRGRAM()...)
	}
	return s
}

// LoadState restores a state taken with SaveState.
func (m *Machine) LoadState(s State) error {
	if len(s.RAM) != memory.RAMSize {
		return fmt.Errorf("%w: %d bytes", ErrStateRAM, len(s.RAM))
	}
	var prgRAM []uint8
	if m.cart != nil {
		prgRAM = m.cart.PRGRAM()
	}
	if len(s.PRGRAM) != len(prgRAM) {
		return fmt.Errorf("%w: %d bytes", ErrStatePRGRAM, len(s.PRGRAM))
	}

	m.PPU().Reset()
	m.APU().Reset()
	m.RAM().Load(s.RAM)
	copy(prgRAM, s.PRGRAM)
	m.cpu.Restore(s.Registers, s.Cycles)
	m.frames = s.Frames
	return nil
}
