package graphics

import (
	"fmt"

	"nescore/internal/logger"
)

// HeadlessBackend runs a fixed number of frames with no output other than
// a summary line when it finishes.
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// NewHeadlessBackend creates a new headless backend.
func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

// Initialize implements the Backend interface.
func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return ErrAlreadyInitialized
	}
	b.config = config
	b.initialized = true
	return nil
}

// Run implements the Backend interface.
func (b *HeadlessBackend) Run(emu Emulator) error {
	if !b.initialized {
		return ErrNotInitialized
	}

	frames := max(b.config.Frames, 1)
	for range frames {
		if err := emu.Frame(); err != nil {
			return err
		}
	}

	v := emu.Snapshot()
	logger.Logf("headless", "stopped after frame %d", v.Frame)
	fmt.Fprintf(b.config.output(), "frame %d: %s\n", v.Frame, v.Registers)
	return nil
}

// Cleanup implements the Backend interface.
func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// Name implements the Backend interface.
func (b *HeadlessBackend) Name() string {
	return "Headless"
}
