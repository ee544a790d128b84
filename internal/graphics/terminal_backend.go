package graphics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// statusInterval is the number of frames between status lines.
const statusInterval = 30

// TerminalBackend runs frames and reports progress as a status line. On an
// interactive terminal the line is redrawn in place and fitted to the
// terminal width; otherwise one line is printed per interval.
type TerminalBackend struct {
	initialized bool
	config      Config

	interactive bool
	width       int
}

// NewTerminalBackend creates a new terminal backend.
func NewTerminalBackend() Backend {
	return &TerminalBackend{}
}

// Initialize implements the Backend interface.
func (b *TerminalBackend) Initialize(config Config) error {
	if b.initialized {
		return ErrAlreadyInitialized
	}
	b.config = config
	b.initialized = true

	if f, ok := config.output().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b.interactive = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			b.width = w
		}
	}
	return nil
}

// Run implements the Backend interface.
func (b *TerminalBackend) Run(emu Emulator) error {
	if !b.initialized {
		return ErrNotInitialized
	}

	out := b.config.output()
	defer func() {
		if b.interactive {
			fmt.Fprintln(out)
		}
	}()

	for n := 1; b.config.Frames == 0 || n <= b.config.Frames; n++ {
		if err := emu.Frame(); err != nil {
			b.status(out, emu.Snapshot())
			return err
		}
		if n%statusInterval == 0 || n == b.config.Frames {
			b.status(out, emu.Snapshot())
		}
	}
	return nil
}

func (b *TerminalBackend) status(out io.Writer, v View) {
	line := fmt.Sprintf("frame %-6d %-4s %s", v.Frame, v.Mnemonic, v.Registers)
	if !b.interactive {
		fmt.Fprintln(out, line)
		return
	}
	if b.width > 0 && len(line) >= b.width {
		line = line[:b.width-1]
	}
	fmt.Fprintf(out, "\r%s%s", line, strings.Repeat(" ", max(0, b.width-1-len(line))))
}

// Cleanup implements the Backend interface.
func (b *TerminalBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// Name implements the Backend interface.
func (b *TerminalBackend) Name() string {
	return "Terminal"
}
