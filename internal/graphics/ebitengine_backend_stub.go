//go:build headless

package graphics

// EbitengineBackend is unavailable in headless builds.
type EbitengineBackend struct{}

// NewEbitengineBackend creates a stub backend for headless builds.
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

// Initialize implements the Backend interface.
func (b *EbitengineBackend) Initialize(config Config) error {
	return ErrUnavailable
}

// Run implements the Backend interface.
func (b *EbitengineBackend) Run(emu Emulator) error {
	return ErrUnavailable
}

// Cleanup implements the Backend interface.
func (b *EbitengineBackend) Cleanup() error {
	return nil
}

// Name implements the Backend interface.
func (b *EbitengineBackend) Name() string {
	return "Ebitengine-Stub"
}
