package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAM_Mirroring(t *testing.T) {
	assert := assert.New(t)

	r := NewRAM()
	assert.True(r.Write(0x0000, 0x42))

	for _, addr := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		v, ok := r.Read(addr)
		assert.True(ok)
		assert.Equal(uint8(0x42), v, "$%04X", addr)
	}

	assert.True(r.Write(0x1fff, 0x99))
	v, _ := r.Read(0x07ff)
	assert.Equal(uint8(0x99), v)
	assert.Equal(uint8(0x99), r.Peek(0x07ff))
}

func TestRAM_Declines(t *testing.T) {
	assert := assert.New(t)

	r := NewRAM()
	for _, addr := range []uint16{0x2000, 0x4016, 0x8000, 0xffff} {
		_, ok := r.Read(addr)
		assert.False(ok, "$%04X", addr)
		assert.False(r.Write(addr, 0x01), "$%04X", addr)
	}
	assert.Equal(make([]uint8, RAMSize), r.Snapshot(nil))
}

func TestRAM_Reset(t *testing.T) {
	assert := assert.New(t)

	r := NewRAM()
	r.Write(0x0123, 0xff)
	snap := r.Snapshot(nil)
	assert.Equal(uint8(0xff), snap[0x0123])

	r.Reset()
	v, _ := r.Read(0x0123)
	assert.Zero(v)
}

func TestRAM_Load(t *testing.T) {
	assert := assert.New(t)

	r := NewRAM()
	src := make([]uint8, RAMSize+16)
	src[0] = 0x01
	src[RAMSize-1] = 0x02
	src[RAMSize] = 0x03
	r.Load(src)

	assert.Equal(uint8(0x01), r.Peek(0))
	assert.Equal(uint8(0x02), r.Peek(RAMSize-1))
	assert.Equal(src[:RAMSize], r.Snapshot(nil))
}
