// Package app ties the machine to a configuration, a graphics backend and
// save states.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"nescore/internal/graphics"
	"nescore/internal/logger"
)

// Config holds all application configuration.
type Config struct {
	Window    WindowConfig    `toml:"window"`
	Video     VideoConfig     `toml:"video"`
	Emulation EmulationConfig `toml:"emulation"`
	Debug     DebugConfig     `toml:"debug"`
	Paths     PathsConfig     `toml:"paths"`

	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration.
type WindowConfig struct {
	Title string `toml:"title"`
	Scale int    `toml:"scale"`
}

// VideoConfig selects the graphics backend.
type VideoConfig struct {
	Backend string `toml:"backend"` // "ebitengine", "terminal", "headless"
}

// EmulationConfig contains emulation settings.
type EmulationConfig struct {
	FrameRate      int `toml:"frame_rate"`
	Frames         int `toml:"frames"` // 0 runs until stopped
	SaveStateSlots int `toml:"save_state_slots"`
}

// DebugConfig contains debugging options.
type DebugConfig struct {
	CPUTracing bool `toml:"cpu_tracing"`
	LogEcho    bool `toml:"log_echo"`
	Statsview  bool `toml:"statsview"`
}

// PathsConfig contains file and directory paths.
type PathsConfig struct {
	ROM        string `toml:"rom"`
	Script     string `toml:"script"`
	SaveStates string `toml:"save_states"`
}

const (
	maxScale         = 8
	defaultFrameRate = 60
	defaultSlots     = 10
)

// NewConfig creates a configuration with default values.
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title: "nescore",
			Scale: 2,
		},
		Video: VideoConfig{
			Backend: string(graphics.BackendEbitengine),
		},
		Emulation: EmulationConfig{
			FrameRate:      defaultFrameRate,
			SaveStateSlots: defaultSlots,
		},
		Paths: PathsConfig{
			SaveStates: "./states",
		},
	}
}

// LoadFromFile loads configuration from a TOML file. A missing file is
// created with the current values.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return c.SaveToFile(path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logger.Logf("config", "%s: unknown key %s", path, key)
	}

	if err := c.validate(); err != nil {
		return err
	}

	c.loaded = true
	return nil
}

// SaveToFile saves configuration to a TOML file.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	c.configPath = path
	return nil
}

// Save saves the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return &ConfigError{Field: "path", Value: "", Err: os.ErrNotExist}
	}
	return c.SaveToFile(c.configPath)
}

// validate clamps out of range values and rejects those that cannot be
// repaired.
func (c *Config) validate() error {
	switch graphics.BackendType(c.Video.Backend) {
	case graphics.BackendEbitengine, graphics.BackendTerminal, graphics.BackendHeadless:
	default:
		return &ConfigError{Field: "video.backend", Value: c.Video.Backend, Err: graphics.ErrUnknownBackend}
	}

	c.Window.Scale = min(max(c.Window.Scale, 1), maxScale)

	if c.Emulation.FrameRate <= 0 {
		c.Emulation.FrameRate = defaultFrameRate
	}
	if c.Emulation.Frames < 0 {
		c.Emulation.Frames = 0
	}
	if c.Emulation.SaveStateSlots <= 0 {
		c.Emulation.SaveStateSlots = defaultSlots
	}

	return nil
}

// IsLoaded returns whether the configuration was loaded from file.
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// ConfigPath returns the path of the config file.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return "./config/nescore.toml"
}
