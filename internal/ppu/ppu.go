// Package ppu implements the CPU facing side of the 2C02 picture unit: the
// register window, video memory access through PPUADDR/PPUDATA, and the dot
// clock with its vertical blank timing. Nothing is rendered.
package ppu

import "fmt"

// Timing of the NTSC dot clock.
const (
	DotsPerScanline   = 341
	ScanlinesPerFrame = 262

	vblankScanline    = 241
	preRenderScanline = 261
)

// Register indexes in the window at 0x2000, repeated every 8 bytes up to
// 0x3FFF.
const (
	PPUCTRL = iota
	PPUMASK
	PPUSTATUS
	OAMADDR
	OAMDATA
	PPUSCROLL
	PPUADDR
	PPUDATA
)

const (
	windowStart = 0x2000
	windowEnd   = 0x3fff

	ctrlIncrement32 = 0x04
	ctrlNMI         = 0x80
	statusVBlank    = 0x80
	vramMask        = 0x3fff
)

// PPU is the picture unit.
type PPU struct {
	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8
	oam     [256]uint8

	// v is the video memory address, t the pending address assembled by
	// PPUSCROLL/PPUADDR writes, w the two-write latch.
	v    uint16
	t    uint16
	x    uint8
	w    bool
	vram [vramMask + 1]uint8

	// readBuffer holds the delayed PPUDATA byte. openBus is the value last
	// written to any register and is what write-only registers read back.
	readBuffer uint8
	openBus    uint8

	dot      int
	scanline int
	frames   uint64

	nmi func()
}

// New returns a powered up PPU.
func New() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// Reset clears the registers and restarts the dot clock at the top of the
// frame. Video memory is kept.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.openBus = 0
	p.dot = 0
	p.scanline = 0
	p.frames = 0
}

// SetNMI sets the function called when vertical blank begins with NMI
// output enabled in PPUCTRL.
func (p *PPU) SetNMI(nmi func()) {
	p.nmi = nmi
}

// Read implements the bus.Reader interface.
func (p *PPU) Read(addr uint16) (uint8, bool) {
	if addr < windowStart || addr > windowEnd {
		return 0, false
	}

	switch addr & 0x07 {
	case PPUSTATUS:
		v := p.status&0xe0 | p.openBus&0x1f
		p.status &^= statusVBlank
		p.w = false
		return v, true
	case OAMDATA:
		return p.oam[p.oamAddr], true
	case PPUDATA:
		return p.readData(), true
	}
	return p.openBus, true
}

// Write implements the bus.Writer interface.
func (p *PPU) Write(addr uint16, value uint8) bool {
	if addr < windowStart || addr > windowEnd {
		return false
	}
	p.openBus = value

	switch addr & 0x07 {
	case PPUCTRL:
		wasEnabled := p.ctrl&ctrlNMI != 0
		p.ctrl = value
		p.t = p.t&0xf3ff | uint16(value&0x03)<<10

		// enabling NMI output during vertical blank raises it immediately
		if !wasEnabled && value&ctrlNMI != 0 && p.status&statusVBlank != 0 {
			p.raiseNMI()
		}
	case PPUMASK:
		p.mask = value
	case OAMADDR:
		p.oamAddr = value
	case OAMDATA:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case PPUSCROLL:
		if !p.w {
			p.t = p.t&0xffe0 | uint16(value)>>3
			p.x = value & 0x07
		} else {
			p.t = p.t&0x8fff | uint16(value&0x07)<<12
			p.t = p.t&0xfc1f | uint16(value&0xf8)<<2
		}
		p.w = !p.w
	case PPUADDR:
		if !p.w {
			p.t = p.t&0x80ff | uint16(value&0x3f)<<8
		} else {
			p.t = p.t&0xff00 | uint16(value)
			p.v = p.t
		}
		p.w = !p.w
	case PPUDATA:
		p.vram[p.v&vramMask] = value
		p.increment()
	}
	return true
}

func (p *PPU) readData() uint8 {
	addr := p.v & vramMask
	var v uint8
	if addr >= 0x3f00 {
		// palette reads are not delayed
		v = p.vram[addr]
		p.readBuffer = p.vram[addr&0x2fff]
	} else {
		v = p.readBuffer
		p.readBuffer = p.vram[addr]
	}
	p.increment()
	return v
}

func (p *PPU) increment() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= vramMask
}

// Tick advances the dot clock by one dot.
func (p *PPU) Tick() {
	p.dot++
	if p.dot == DotsPerScanline {
		p.dot = 0
		p.scanline++
		if p.scanline == ScanlinesPerFrame {
			p.scanline = 0
			p.frames++
		}
	}

	if p.dot != 1 {
		return
	}
	switch p.scanline {
	case vblankScanline:
		p.status |= statusVBlank
		if p.ctrl&ctrlNMI != 0 {
			p.raiseNMI()
		}
	case preRenderScanline:
		p.status = 0
	}
}

func (p *PPU) raiseNMI() {
	if p.nmi != nil {
		p.nmi()
	}
}

// OAM returns the byte of sprite memory at addr.
func (p *PPU) OAM(addr uint8) uint8 {
	return p.oam[addr]
}

// VRAM returns the byte of video memory at addr.
func (p *PPU) VRAM(addr uint16) uint8 {
	return p.vram[addr&vramMask]
}

// VBlank returns true while the vertical blank flag is set.
func (p *PPU) VBlank() bool {
	return p.status&statusVBlank != 0
}

// Dot returns the position of the dot clock within the current scanline.
func (p *PPU) Dot() int {
	return p.dot
}

// Scanline returns the current scanline. Scanline 261 is the pre-render
// line.
func (p *PPU) Scanline() int {
	return p.scanline
}

// Frames returns the number of frames completed by the dot clock.
func (p *PPU) Frames() uint64 {
	return p.frames
}

func (p *PPU) String() string {
	return fmt.Sprintf("frame=%d scanline=%d dot=%d ctrl=$%02X mask=$%02X status=$%02X v=$%04X",
		p.frames, p.scanline, p.dot, p.ctrl, p.mask, p.status, p.v)
}
