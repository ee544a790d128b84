package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"nescore/internal/cartridge"
)

// writeROM writes an NROM image with code at 0x8000 and returns its path.
func writeROM(t *testing.T, dir, name string, code ...uint8) string {
	t.Helper()
	prg := make([]uint8, 0x4000)
	copy(prg, code)
	prg[0x3ffc] = 0x00
	prg[0x3ffd] = 0x80

	cart, err := cartridge.FromPRG(prg)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, cart.Bytes(), 0o644))
	return path
}

// headlessConfig returns a configuration using the headless backend and a
// scratch save directory.
func headlessConfig(t *testing.T) *Config {
	t.Helper()
	cfg := NewConfig()
	cfg.Video.Backend = "headless"
	cfg.Paths.SaveStates = filepath.Join(t.TempDir(), "states")
	return cfg
}
