package nes

import (
	"nescore/internal/bus"
	"nescore/internal/cartridge"
)

// Option configures a Machine under construction.
type Option func(*Machine) error

// WithCartridge inserts a cartridge.
func WithCartridge(cart *cartridge.Cartridge) Option {
	return func(m *Machine) error {
		m.cart = cart
		return nil
	}
}

// WithROM loads an iNES file and inserts it.
func WithROM(filename string) Option {
	return func(m *Machine) error {
		cart, err := cartridge.LoadFromFile(filename)
		if err != nil {
			return err
		}
		m.cart = cart
		return nil
	}
}

// WithProgram inserts a cartridge built from raw program bytes.
func WithProgram(prg []uint8) Option {
	return func(m *Machine) error {
		cart, err := cartridge.FromPRG(prg)
		if err != nil {
			return err
		}
		m.cart = cart
		return nil
	}
}

// WithDevice attaches an additional device. Extra devices are consulted
// after the built in ones, in the order given.
func WithDevice(dev bus.Device) Option {
	return func(m *Machine) error {
		m.extra = append(m.extra, dev)
		return nil
	}
}

// WithTrace logs every executed instruction.
func WithTrace(trace bool) Option {
	return func(m *Machine) error {
		m.trace = trace
		return nil
	}
}
