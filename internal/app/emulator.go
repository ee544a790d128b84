package app

import (
	"time"

	"nescore/internal/graphics"
	"nescore/internal/input"
	"nescore/internal/nes"
)

// timingWindow is the number of recent frames averaged by the emulator's
// timing statistics.
const timingWindow = 60

// Emulator adapts a machine to the graphics.Emulator interface and keeps
// frame timing statistics.
type Emulator struct {
	machine *nes.Machine

	times [timingWindow]time.Duration
	next  int
	count int
	total time.Duration
}

// NewEmulator wraps m.
func NewEmulator(m *nes.Machine) *Emulator {
	return &Emulator{machine: m}
}

// Frame implements the graphics.Emulator interface.
func (e *Emulator) Frame() error {
	start := time.Now()
	err := e.machine.TickFrame()
	e.record(time.Since(start))
	return err
}

func (e *Emulator) record(d time.Duration) {
	e.total -= e.times[e.next]
	e.times[e.next] = d
	e.total += d
	e.next = (e.next + 1) % timingWindow
	e.count = min(e.count+1, timingWindow)
}

// Snapshot implements the graphics.Emulator interface.
func (e *Emulator) Snapshot() graphics.View {
	return graphics.View{
		Frame:     e.machine.Frames(),
		Registers: e.machine.CPU().Registers(),
		Mnemonic:  e.machine.CPU().Mnemonic(),
		RAM:       e.machine.RAM().Snapshot(nil),
		Buttons: [2]input.Button{
			e.machine.Input().Controller(0).Buttons(),
			e.machine.Input().Controller(1).Buttons(),
		},
	}
}

// SetButtons implements the graphics.Emulator interface.
func (e *Emulator) SetButtons(port int, buttons input.Button) {
	e.machine.Input().Controller(port).SetButtons(buttons)
}

// AverageFrameTime returns the mean time spent emulating each of the recent
// frames.
func (e *Emulator) AverageFrameTime() time.Duration {
	if e.count == 0 {
		return 0
	}
	return e.total / time.Duration(e.count)
}

// Speed returns emulation speed relative to a frame rate, where 1.0 means
// frames are emulated exactly as fast as they are displayed.
func (e *Emulator) Speed(frameRate int) float64 {
	avg := e.AverageFrameTime()
	if avg == 0 || frameRate <= 0 {
		return 0
	}
	return float64(time.Second/time.Duration(frameRate)) / float64(avg)
}

// Machine returns the emulated machine.
func (e *Emulator) Machine() *nes.Machine {
	return e.machine
}
