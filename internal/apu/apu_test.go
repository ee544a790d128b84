package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func run(a *APU, n int) {
	for range n {
		a.Tick()
	}
}

func TestWindow(t *testing.T) {
	a := New()

	for _, addr := range []uint16{0x4000, 0x4010, DMCLength, Status, FrameCounter} {
		assert.True(t, a.Write(addr, 0), "$%04X", addr)
	}
	for _, addr := range []uint16{0x3fff, 0x4014, 0x4016, 0x4018} {
		assert.False(t, a.Write(addr, 0), "$%04X", addr)
	}

	_, ok := a.Read(Status)
	assert.True(t, ok)
	for _, addr := range []uint16{0x4000, 0x4016, FrameCounter} {
		_, ok := a.Read(addr)
		assert.False(t, ok, "$%04X", addr)
	}
}

func TestRegisters(t *testing.T) {
	a := New()
	a.Write(0x4002, 0xfd)
	assert.Equal(t, uint8(0xfd), a.Register(0x4002))
	assert.Zero(t, a.Register(Status))
}

func TestLengthCounter(t *testing.T) {
	a := New()

	a.Write(Pulse1LengthHi, 0x08)
	assert.Zero(t, a.Length(Pulse1), "disabled channels ignore loads")

	a.Write(Status, 0x0f)
	a.Write(Pulse1LengthHi, 0x08) // index 1
	a.Write(TriangleLength, 0x00) // index 0
	assert.Equal(t, uint8(254), a.Length(Pulse1))
	assert.Equal(t, uint8(10), a.Length(Triangle))

	v, _ := a.Read(Status)
	assert.Equal(t, uint8(0x05), v)

	run(a, halfFrame1)
	assert.Equal(t, uint8(253), a.Length(Pulse1))
	assert.Equal(t, uint8(9), a.Length(Triangle))

	a.Write(Status, 0x04)
	assert.Zero(t, a.Length(Pulse1))
	assert.Equal(t, uint8(9), a.Length(Triangle))
}

func TestLengthHalt(t *testing.T) {
	a := New()
	a.Write(Status, 0x01)
	a.Write(Pulse1Control, 0x20)
	a.Write(Pulse1LengthHi, 0x00)

	run(a, halfFrame1)
	assert.Equal(t, uint8(10), a.Length(Pulse1))
}

func TestFrameIRQ(t *testing.T) {
	a := New()
	run(a, fourStepIRQ-1)
	assert.False(t, a.IRQ())
	a.Tick()
	assert.True(t, a.IRQ())

	v, _ := a.Read(Status)
	assert.Equal(t, uint8(statusFrameIRQ), v)
	assert.False(t, a.IRQ(), "status read acknowledges")
}

func TestFrameIRQInhibit(t *testing.T) {
	a := New()
	run(a, fourStepIRQ)
	assert.True(t, a.IRQ())

	a.Write(FrameCounter, frameIRQInhibit)
	assert.False(t, a.IRQ())
	run(a, fourStepIRQ)
	assert.False(t, a.IRQ())
}

func TestFiveStepMode(t *testing.T) {
	a := New()
	a.Write(Status, 0x01)
	a.Write(Pulse1LengthHi, 0x00)

	a.Write(FrameCounter, frameModeFiveStep)
	assert.Equal(t, uint8(9), a.Length(Pulse1), "clocked on write")

	run(a, fiveStepEnd)
	assert.False(t, a.IRQ())
	assert.Equal(t, uint8(7), a.Length(Pulse1))
	assert.Equal(t, uint64(fiveStepEnd), a.Cycles())
}
