// Package graphics provides the front ends that drive a machine: a window,
// a terminal status line and a silent headless runner.
package graphics

import (
	"fmt"
	"io"
	"os"

	"nescore/internal/cpu"
	"nescore/internal/input"
)

// View is a copy of the machine state taken between frames.
type View struct {
	Frame     uint64
	Registers cpu.Registers
	Mnemonic  string
	RAM       []uint8
	Buttons   [2]input.Button
}

// Emulator is the machine as seen by a backend.
type Emulator interface {
	// Frame runs one frame.
	Frame() error

	// Snapshot returns the current state.
	Snapshot() View

	// SetButtons sets the buttons held on the controller in port 0 or 1.
	SetButtons(port int, buttons input.Button)
}

// Backend drives an Emulator until it stops.
type Backend interface {
	// Initialize prepares the backend. It must be called once before Run.
	Initialize(config Config) error

	// Run drives emu until the frame limit is reached, the user quits or a
	// frame fails.
	Run(emu Emulator) error

	// Cleanup releases the backend's resources.
	Cleanup() error

	// Name returns the backend name for identification.
	Name() string
}

// Config contains configuration for backends.
type Config struct {
	WindowTitle string
	Scale       int
	FrameRate   int

	// Frames is the number of frames to run. Zero runs until stopped, which
	// for the headless backend means a single frame.
	Frames int

	// Output receives terminal and headless progress. Defaults to stdout.
	Output io.Writer
}

func (c Config) output() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

// BackendType names a backend.
type BackendType string

// List of backend types.
const (
	BackendEbitengine BackendType = "ebitengine"
	BackendHeadless   BackendType = "headless"
	BackendTerminal   BackendType = "terminal"
)

// CreateBackend creates a backend of the specified type.
func CreateBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendEbitengine:
		return NewEbitengineBackend(), nil
	case BackendHeadless:
		return NewHeadlessBackend(), nil
	case BackendTerminal:
		return NewTerminalBackend(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backendType)
}
