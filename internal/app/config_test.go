package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nescore/internal/graphics"
)

func TestNewConfig(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, "ebitengine", c.Video.Backend)
	assert.Equal(t, 2, c.Window.Scale)
	assert.Equal(t, 60, c.Emulation.FrameRate)
	assert.NoError(t, c.validate())
	assert.False(t, c.IsLoaded())
}

func TestLoadFromFile_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "nescore.toml")

	c := NewConfig()
	require.NoError(t, c.LoadFromFile(path))
	assert.FileExists(t, path)
	assert.Equal(t, path, c.ConfigPath())

	again := NewConfig()
	again.Window.Title = "changed"
	require.NoError(t, again.LoadFromFile(path))
	assert.Equal(t, "nescore", again.Window.Title)
	assert.True(t, again.IsLoaded())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nescore.toml")
	require.NoError(t, os.WriteFile(path, []uint8(`
[window]
title = "test"
scale = 20

[video]
backend = "terminal"

[emulation]
frame_rate = 0
frames = -4

[debug]
cpu_tracing = true

[paths]
rom = "game.nes"
`), 0o644))

	c := NewConfig()
	require.NoError(t, c.LoadFromFile(path))
	assert.Equal(t, "test", c.Window.Title)
	assert.Equal(t, maxScale, c.Window.Scale)
	assert.Equal(t, "terminal", c.Video.Backend)
	assert.Equal(t, defaultFrameRate, c.Emulation.FrameRate)
	assert.Zero(t, c.Emulation.Frames)
	assert.Equal(t, defaultSlots, c.Emulation.SaveStateSlots)
	assert.True(t, c.Debug.CPUTracing)
	assert.Equal(t, "game.nes", c.Paths.ROM)
	assert.Equal(t, "./states", c.Paths.SaveStates, "unset keys keep defaults")
}

func TestLoadFromFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []uint8("[window\n"), 0o644))
	assert.Error(t, NewConfig().LoadFromFile(bad))

	backend := filepath.Join(dir, "backend.toml")
	require.NoError(t, os.WriteFile(backend, []uint8("[video]\nbackend = \"sdl\"\n"), 0o644))
	err := NewConfig().LoadFromFile(backend)
	assert.ErrorIs(t, err, graphics.ErrUnknownBackend)

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "video.backend", ce.Field)
}

func TestSave(t *testing.T) {
	assert.Error(t, NewConfig().Save())

	path := filepath.Join(t.TempDir(), "nescore.toml")
	c := NewConfig()
	require.NoError(t, c.SaveToFile(path))
	c.Emulation.Frames = 300
	require.NoError(t, c.Save())

	loaded := NewConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, 300, loaded.Emulation.Frames)
}
