// Package bus implements the CPU address bus of the NES. Devices are
// attached when the bus is created and are consulted in that order for every
// read and write. The first device to accept an address services the access.
package bus

import "fmt"

// Reader is implemented by devices that can be read from. The bool is false
// if the device does not respond to the address.
type Reader interface {
	Read(addr uint16) (uint8, bool)
}

// Writer is implemented by devices that can be written to. Returns false if
// the device does not respond to the address.
type Writer interface {
	Write(addr uint16, value uint8) bool
}

// Device is anything that can be attached to the bus. A device that
// implements neither Reader nor Writer is held by the bus but never
// dispatched to.
type Device any

// Handle identifies an attached device. It is the index of the device in
// the bus arena and is stable for the lifetime of the bus.
type Handle int

// Stats counts dispatched accesses.
type Stats struct {
	Reads          uint64
	Writes         uint64
	UnmappedReads  uint64
	UnmappedWrites uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("reads=%d (unmapped %d) writes=%d (unmapped %d)",
		s.Reads, s.UnmappedReads, s.Writes, s.UnmappedWrites)
}

// Bus routes reads and writes to the attached devices.
type Bus struct {
	devices []Device

	// indices into devices, in registration order
	readers []Handle
	writers []Handle

	stats Stats
}

// New creates a bus with devices attached in priority order. The set of
// devices cannot be changed afterwards.
func New(devices ...Device) *Bus {
	b := &Bus{
		devices: make([]Device, 0, len(devices)),
	}
	for _, d := range devices {
		h := Handle(len(b.devices))
		b.devices = append(b.devices, d)
		if _, ok := d.(Reader); ok {
			b.readers = append(b.readers, h)
		}
		if _, ok := d.(Writer); ok {
			b.writers = append(b.writers, h)
		}
	}
	return b
}

// Read returns the value of the first device to accept addr. Unmapped
// addresses read as zero.
func (b *Bus) Read(addr uint16) uint8 {
	b.stats.Reads++
	for _, h := range b.readers {
		if v, ok := b.devices[h].(Reader).Read(addr); ok {
			return v
		}
	}
	b.stats.UnmappedReads++
	return 0
}

// Write value to the first device to accept addr. Writes to unmapped
// addresses are dropped.
func (b *Bus) Write(addr uint16, value uint8) {
	b.stats.Writes++
	for _, h := range b.writers {
		if b.devices[h].(Writer).Write(addr, value) {
			return
		}
	}
	b.stats.UnmappedWrites++
}

// ReadWord reads the little-endian word at addr and addr+1. The second
// address wraps at the top of the address space and is not confined to the
// page of the first.
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return hi<<8 | lo
}

// Device returns the device attached with handle h.
func (b *Bus) Device(h Handle) Device {
	return b.devices[h]
}

// Len returns the number of attached devices.
func (b *Bus) Len() int {
	return len(b.devices)
}

// Stats returns the access counters.
func (b *Bus) Stats() Stats {
	return b.stats
}
