// Package main implements the nescore emulator executable.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nescore/internal/app"
	"nescore/internal/logger"
	"nescore/internal/statsview"
	"nescore/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to NES ROM file")
		configFile = flag.String("config", "", "Path to configuration file")
		scriptFile = flag.String("script", "", "Path to starlark script run before the ROM")
		frames     = flag.Int("frames", -1, "Number of frames to run (0 runs until closed)")
		backend    = flag.String("backend", "", "Video backend: ebitengine, terminal or headless")
		nogui      = flag.Bool("nogui", false, "Run without GUI (headless mode)")
		debug      = flag.Bool("debug", false, "Enable CPU tracing and echo the log to stderr")
		loadSlot   = flag.Int("load", -1, "Save state slot to restore before running")
		saveSlot   = flag.Int("save", -1, "Save state slot to write after running")
		stats      = flag.Bool("statsview", false, "Launch the runtime statistics server")
		help       = flag.Bool("help", false, "Show help message")
		showVer    = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	if *showVer {
		version.PrintBuildInfo(os.Stdout)
		os.Exit(0)
	}

	setupGracefulShutdown()

	configPath := *configFile
	if configPath == "" {
		configPath = app.DefaultConfigPath()
	}

	config := app.NewConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		fatal(err)
	}

	if *romFile != "" {
		config.Paths.ROM = *romFile
	}
	if *scriptFile != "" {
		config.Paths.Script = *scriptFile
	}
	if *frames >= 0 {
		config.Emulation.Frames = *frames
	}
	if *backend != "" {
		config.Video.Backend = *backend
	}
	if *nogui {
		config.Video.Backend = "headless"
	}
	if *debug {
		config.Debug.CPUTracing = true
		config.Debug.LogEcho = true
	}
	if *stats {
		config.Debug.Statsview = true
	}

	if config.Debug.Statsview {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Fprintln(os.Stderr, "statsview not available in this build")
		}
	}

	application, err := app.NewApplication(config, os.Stdout)
	if err != nil {
		fatal(err)
	}

	if *loadSlot >= 0 {
		if err := application.LoadState(*loadSlot); err != nil {
			application.Cleanup()
			fatal(err)
		}
	}

	err = application.Run()
	if err == nil && *saveSlot >= 0 {
		err = application.SaveState(*saveSlot)
	}

	if cerr := application.Cleanup(); cerr != nil {
		logger.Logf("app", "cleanup: %v", cerr)
	}
	if err != nil {
		logger.Tail(os.Stderr, 10)
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "nescore: %v\n", err)
	os.Exit(1)
}

// setupGracefulShutdown exits cleanly on interrupt.
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\ninterrupted")
		os.Exit(0)
	}()
}

func printUsage() {
	fmt.Println("nescore - 6502 based NES core")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  nescore -rom <file> [options]          # Run a ROM in a window")
	fmt.Println("  nescore -nogui -rom <file> -frames 60  # Run 60 frames headless")
	fmt.Println("  nescore -script <file.star>            # Drive the machine from a script")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("CONTROLLER 1:")
	fmt.Println("  Arrow Keys / WASD - D-Pad")
	fmt.Println("  J / Z             - A Button")
	fmt.Println("  K / X             - B Button")
	fmt.Println("  Enter             - Start")
	fmt.Println("  Space             - Select")
	fmt.Println()
	fmt.Println("WINDOW KEYS:")
	fmt.Println("  Escape  - Quit")
	fmt.Println("  P       - Pause")
	fmt.Println("  N       - Step one frame while paused")
	fmt.Println()
	fmt.Println("CONFIGURATION:")
	fmt.Printf("  Config file: %s\n", app.DefaultConfigPath())
}
