package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tickTo(p *PPU, scanline, dot int) {
	for p.scanline != scanline || p.dot != dot {
		p.Tick()
	}
}

func TestWindow(t *testing.T) {
	p := New()

	_, ok := p.Read(0x1fff)
	assert.False(t, ok)
	_, ok = p.Read(0x4000)
	assert.False(t, ok)
	assert.False(t, p.Write(0x4000, 1))

	for _, addr := range []uint16{0x2000, 0x2008, 0x3ff8} {
		assert.True(t, p.Write(addr+OAMADDR, 0x10))
		assert.True(t, p.Write(addr+OAMDATA, 0xab))
		assert.Equal(t, uint8(0xab), p.OAM(0x10), "$%04X", addr)
	}
}

func TestWriteOnlyRegistersReadOpenBus(t *testing.T) {
	p := New()
	p.Write(0x2000+PPUMASK, 0x1e)

	v, ok := p.Read(0x2000 + PPUCTRL)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x1e), v)
}

func TestVideoMemory(t *testing.T) {
	p := New()

	p.Write(0x2006, 0x21)
	p.Write(0x2006, 0x08)
	p.Write(0x2007, 0x11)
	p.Write(0x2007, 0x22)
	assert.Equal(t, uint8(0x11), p.VRAM(0x2108))
	assert.Equal(t, uint8(0x22), p.VRAM(0x2109))

	p.Write(0x2006, 0x21)
	p.Write(0x2006, 0x08)
	v, _ := p.Read(0x2007)
	assert.Zero(t, v, "first read returns the stale buffer")
	v, _ = p.Read(0x2007)
	assert.Equal(t, uint8(0x11), v)
	v, _ = p.Read(0x2007)
	assert.Equal(t, uint8(0x22), v)
}

func TestVideoMemoryIncrement32(t *testing.T) {
	p := New()
	p.Write(0x2000, ctrlIncrement32)
	p.Write(0x2006, 0x20)
	p.Write(0x2006, 0x00)
	p.Write(0x2007, 1)
	p.Write(0x2007, 2)

	assert.Equal(t, uint8(1), p.VRAM(0x2000))
	assert.Equal(t, uint8(2), p.VRAM(0x2020))
}

func TestPaletteReadsAreImmediate(t *testing.T) {
	p := New()
	p.Write(0x2006, 0x3f)
	p.Write(0x2006, 0x01)
	p.Write(0x2007, 0x2c)

	p.Write(0x2006, 0x3f)
	p.Write(0x2006, 0x01)
	v, _ := p.Read(0x2007)
	assert.Equal(t, uint8(0x2c), v)
}

func TestStatusReadResetsLatch(t *testing.T) {
	p := New()
	p.Write(0x2006, 0x23)
	p.Read(0x2002)
	p.Write(0x2006, 0x24)
	p.Write(0x2006, 0x00)
	p.Write(0x2007, 0x77)
	assert.Equal(t, uint8(0x77), p.VRAM(0x2400))
}

func TestDotClock(t *testing.T) {
	p := New()
	for range DotsPerScanline {
		p.Tick()
	}
	assert.Equal(t, 1, p.Scanline())
	assert.Equal(t, 0, p.Dot())

	for range DotsPerScanline * (ScanlinesPerFrame - 1) {
		p.Tick()
	}
	assert.Equal(t, uint64(1), p.Frames())
	assert.Equal(t, 0, p.Scanline())
}

func TestVBlank(t *testing.T) {
	p := New()
	tickTo(p, vblankScanline, 0)
	assert.False(t, p.VBlank())
	p.Tick()
	assert.True(t, p.VBlank())

	v, _ := p.Read(0x2002)
	assert.Equal(t, uint8(statusVBlank), v&statusVBlank)
	assert.False(t, p.VBlank(), "status read clears vblank")

	p.Tick()
	tickTo(p, vblankScanline, 1)
	assert.True(t, p.VBlank(), "set again next frame")
	tickTo(p, preRenderScanline, 1)
	assert.False(t, p.VBlank(), "cleared on the pre-render line")
}

func TestNMI(t *testing.T) {
	p := New()
	var raised int
	p.SetNMI(func() { raised++ })

	tickTo(p, vblankScanline, 1)
	assert.Zero(t, raised, "NMI output disabled")

	p.Write(0x2000, ctrlNMI)
	assert.Equal(t, 1, raised, "enabling during vblank")

	tickTo(p, preRenderScanline, 0)
	tickTo(p, vblankScanline, 1)
	assert.Equal(t, 2, raised)
}

func TestReset(t *testing.T) {
	p := New()
	p.Write(0x2006, 0x20)
	p.Write(0x2006, 0x00)
	p.Write(0x2007, 0x5a)
	tickTo(p, 100, 50)

	p.Reset()
	assert.Equal(t, 0, p.Scanline())
	assert.Equal(t, 0, p.Dot())
	assert.Equal(t, uint8(0x5a), p.VRAM(0x2000))
}
