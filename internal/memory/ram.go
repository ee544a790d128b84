// Package memory implements the NES work RAM.
package memory

const (
	// RAMSize is the amount of physical work RAM.
	RAMSize = 0x0800

	// ramEnd is the last address of the window in which RAM is mirrored.
	ramEnd = 0x1fff

	ramMask = RAMSize - 1
)

// RAM is the 2KB of work RAM. It answers the address range 0x0000 to
// 0x1FFF, the physical RAM repeating every 0x0800 bytes.
type RAM struct {
	data [RAMSize]uint8
}

// NewRAM returns zero filled RAM.
func NewRAM() *RAM {
	return &RAM{}
}

// Read implements the bus.Reader interface.
func (r *RAM) Read(addr uint16) (uint8, bool) {
	if addr > ramEnd {
		return 0, false
	}
	return r.data[addr&ramMask], true
}

// Write implements the bus.Writer interface.
func (r *RAM) Write(addr uint16, value uint8) bool {
	if addr > ramEnd {
		return false
	}
	r.data[addr&ramMask] = value
	return true
}

// Reset zero fills the RAM.
func (r *RAM) Reset() {
	r.data = [RAMSize]uint8{}
}

// Peek returns the byte at offset in physical RAM. The offset is masked to
// the size of the RAM.
func (r *RAM) Peek(offset int) uint8 {
	return r.data[offset&ramMask]
}

// Snapshot copies the physical RAM into dst, returning dst. A nil dst is
// allocated.
func (r *RAM) Snapshot(dst []uint8) []uint8 {
	if len(dst) < RAMSize {
		dst = make([]uint8, RAMSize)
	}
	copy(dst, r.data[:])
	return dst
}

// Load copies src into physical RAM, starting at offset zero. Bytes beyond
// RAMSize are ignored.
func (r *RAM) Load(src []uint8) {
	copy(r.data[:], src)
}
