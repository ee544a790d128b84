package cartridge

// NROM is the CPU side of a mapper 0 board:
//
//	0x6000-0x7FFF  8KB PRG-RAM
//	0x8000-0xFFFF  PRG-ROM, a 16KB image appears twice
//
// Writes into the ROM window are accepted and discarded so that no later
// device on the bus sees them.
type NROM struct {
	cart *Cartridge
	mask uint16
}

func newNROM(cart *Cartridge) *NROM {
	return &NROM{
		cart: cart,
		mask: uint16(len(cart.prgROM) - 1),
	}
}

// Read implements the bus.Reader interface.
func (m *NROM) Read(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x8000:
		return m.cart.prgROM[(addr-0x8000)&m.mask], true
	case addr >= 0x6000:
		return m.cart.prgRAM[addr-0x6000], true
	}
	return 0, false
}

// Write implements the bus.Writer interface.
func (m *NROM) Write(addr uint16, value uint8) bool {
	switch {
	case addr >= 0x8000:
		return true
	case addr >= 0x6000:
		m.cart.prgRAM[addr-0x6000] = value
		return true
	}
	return false
}
