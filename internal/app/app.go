package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"nescore/internal/graphics"
	"nescore/internal/logger"
	"nescore/internal/nes"
	"nescore/internal/script"
)

// Application owns the machine and the backend driving it.
type Application struct {
	config   *Config
	emulator *Emulator
	backend  graphics.Backend
	states   *StateManager

	romPath string
	output  io.Writer

	initialized bool
}

// NewApplication creates an application from a configuration. The ROM in
// the configuration, if any, is loaded. Script and backend output goes to
// output.
func NewApplication(config *Config, output io.Writer) (*Application, error) {
	if output == nil {
		output = os.Stdout
	}
	app := &Application{
		config: config,
		output: output,
		states: NewStateManager(config.Paths.SaveStates, config.Emulation.SaveStateSlots),
	}

	if config.Debug.LogEcho {
		logger.SetEcho(os.Stderr)
	}

	if err := app.setMachine(); err != nil {
		return nil, &ApplicationError{Component: "machine", Operation: "create", Err: err}
	}
	if config.Paths.ROM != "" {
		if err := app.LoadROM(config.Paths.ROM); err != nil {
			return nil, err
		}
	}
	if err := app.initializeBackend(); err != nil {
		return nil, &ApplicationError{Component: "graphics", Operation: "initialize", Err: err}
	}

	app.initialized = true
	return app, nil
}

func (app *Application) setMachine(opts ...nes.Option) error {
	opts = append(opts, nes.WithTrace(app.config.Debug.CPUTracing))
	m, err := nes.New(opts...)
	if err != nil {
		return err
	}
	app.emulator = NewEmulator(m)
	return nil
}

// initializeBackend creates the configured backend, falling back to the
// headless backend if a window cannot be opened.
func (app *Application) initializeBackend() error {
	backendType := graphics.BackendType(app.config.Video.Backend)
	backend, err := graphics.CreateBackend(backendType)
	if err != nil {
		return err
	}

	cfg := graphics.Config{
		WindowTitle: app.config.Window.Title,
		Scale:       app.config.Window.Scale,
		FrameRate:   app.config.Emulation.FrameRate,
		Frames:      app.config.Emulation.Frames,
		Output:      app.output,
	}
	if app.romPath != "" {
		cfg.WindowTitle = fmt.Sprintf("%s - %s", app.config.Window.Title, filepath.Base(app.romPath))
	}

	if err := backend.Initialize(cfg); err != nil {
		if backendType != graphics.BackendEbitengine {
			return err
		}
		logger.Logf("app", "%s backend failed (%v), falling back to headless", backend.Name(), err)
		backend = graphics.NewHeadlessBackend()
		if err := backend.Initialize(cfg); err != nil {
			return err
		}
	}

	app.backend = backend
	logger.Logf("app", "using %s backend", backend.Name())
	return nil
}

// LoadROM loads an iNES file, replacing the machine with one built around
// the new cartridge.
func (app *Application) LoadROM(romPath string) error {
	if err := app.setMachine(nes.WithROM(romPath)); err != nil {
		return &ApplicationError{Component: "cartridge", Operation: "load ROM", Err: err}
	}
	app.romPath = romPath
	logger.Logf("app", "loaded %s", romPath)
	return nil
}

// RunScript runs a starlark file against the machine.
func (app *Application) RunScript(path string) error {
	if err := script.RunFile(app.Machine(), path, app.output); err != nil {
		return &ApplicationError{Component: "script", Operation: path, Err: err}
	}
	return nil
}

// Run runs the configured script, if any, and then hands the machine to
// the backend until it stops. Without a ROM only the script is run.
func (app *Application) Run() error {
	if !app.initialized {
		return ErrNotInitialized
	}

	if app.config.Paths.Script != "" {
		if err := app.RunScript(app.config.Paths.Script); err != nil {
			return err
		}
		if app.romPath == "" {
			return nil
		}
	}

	if app.romPath == "" {
		return ErrNoROM
	}

	logger.Logf("app", "running %s", app.romPath)
	if err := app.backend.Run(app.emulator); err != nil {
		return &ApplicationError{Component: "emulator", Operation: "run", Err: err}
	}
	logger.Logf("app", "stopped after %d frames, %.2fx speed",
		app.Machine().Frames(), app.emulator.Speed(app.config.Emulation.FrameRate))
	return nil
}

// Reset resets the machine.
func (app *Application) Reset() {
	app.Machine().Reset()
}

// SaveState saves the machine to a slot.
func (app *Application) SaveState(slot int) error {
	if app.romPath == "" {
		return ErrNoROM
	}
	return app.states.SaveState(app.Machine(), slot, app.romPath)
}

// LoadState restores the machine from a slot.
func (app *Application) LoadState(slot int) error {
	if app.romPath == "" {
		return ErrNoROM
	}
	return app.states.LoadState(app.Machine(), slot, app.romPath)
}

// Machine returns the emulated machine.
func (app *Application) Machine() *nes.Machine {
	return app.emulator.Machine()
}

// Emulator returns the frame runner handed to the backend.
func (app *Application) Emulator() *Emulator {
	return app.emulator
}

// Backend returns the graphics backend.
func (app *Application) Backend() graphics.Backend {
	return app.backend
}

// Config returns the configuration.
func (app *Application) Config() *Config {
	return app.config
}

// ROMPath returns the path of the loaded ROM.
func (app *Application) ROMPath() string {
	return app.romPath
}

// Cleanup releases the backend.
func (app *Application) Cleanup() error {
	app.initialized = false
	if app.backend != nil {
		return app.backend.Cleanup()
	}
	return nil
}
