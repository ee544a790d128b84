//go:build !headless

package graphics

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"nescore/internal/input"
	"nescore/internal/logger"
)

// Screen layout. Work RAM is shown as a 64x32 grid of cells, one per byte,
// above a text panel with the register file.
const (
	screenWidth  = 256
	screenHeight = 240

	ramColumns = 64
	ramRows    = 32
	cellSize   = screenWidth / ramColumns
	panelTop   = ramRows*cellSize + 8

	defaultFrameRate = 60
)

// EbitengineBackend opens a window and runs one frame per update.
type EbitengineBackend struct {
	initialized bool
	config      Config
}

// NewEbitengineBackend creates a new Ebitengine backend.
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

// Initialize implements the Backend interface.
func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return ErrAlreadyInitialized
	}
	b.config = config
	b.initialized = true

	scale := max(config.Scale, 1)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowSize(screenWidth*scale, screenHeight*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if config.FrameRate > 0 {
		ebiten.SetTPS(config.FrameRate)
	} else {
		ebiten.SetTPS(defaultFrameRate)
	}
	return nil
}

// Run implements the Backend interface. It blocks until the window is
// closed.
func (b *EbitengineBackend) Run(emu Emulator) error {
	if !b.initialized {
		return ErrNotInitialized
	}

	g := &game{
		emu:    emu,
		limit:  b.config.Frames,
		ram:    ebiten.NewImage(ramColumns, ramRows),
		pixels: make([]uint8, ramColumns*ramRows*4),
		view:   emu.Snapshot(),
	}
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Cleanup implements the Backend interface.
func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// Name implements the Backend interface.
func (b *EbitengineBackend) Name() string {
	return "Ebitengine"
}

// keymap binds keys to the first controller. Several keys may press the
// same button.
var keymap = []struct {
	key    ebiten.Key
	button input.Button
}{
	{ebiten.KeyArrowUp, input.ButtonUp},
	{ebiten.KeyW, input.ButtonUp},
	{ebiten.KeyArrowDown, input.ButtonDown},
	{ebiten.KeyS, input.ButtonDown},
	{ebiten.KeyArrowLeft, input.ButtonLeft},
	{ebiten.KeyA, input.ButtonLeft},
	{ebiten.KeyArrowRight, input.ButtonRight},
	{ebiten.KeyD, input.ButtonRight},
	{ebiten.KeyJ, input.ButtonA},
	{ebiten.KeyZ, input.ButtonA},
	{ebiten.KeyK, input.ButtonB},
	{ebiten.KeyX, input.ButtonB},
	{ebiten.KeyEnter, input.ButtonStart},
	{ebiten.KeySpace, input.ButtonSelect},
}

func heldButtons() input.Button {
	var b input.Button
	for _, k := range keymap {
		if ebiten.IsKeyPressed(k.key) {
			b |= k.button
		}
	}
	return b
}

// game implements ebiten.Game.
type game struct {
	emu    Emulator
	limit  int
	frames int
	paused bool

	view   View
	ram    *ebiten.Image
	pixels []uint8
}

// Update implements ebiten.Game. Escape quits, P pauses and N advances a
// single frame while paused.
func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		logger.Logf("ebitengine", "paused=%v", g.paused)
	}
	if g.paused && !inpututil.IsKeyJustPressed(ebiten.KeyN) {
		return nil
	}

	g.emu.SetButtons(0, heldButtons())
	if err := g.emu.Frame(); err != nil {
		return err
	}
	g.frames++
	g.view = g.emu.Snapshot()

	if g.limit > 0 && g.frames >= g.limit {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{A: 0xff})

	for i, v := range g.view.RAM {
		if i >= ramColumns*ramRows {
			break
		}
		c := cellColor(v)
		g.pixels[i*4] = c.R
		g.pixels[i*4+1] = c.G
		g.pixels[i*4+2] = c.B
		g.pixels[i*4+3] = c.A
	}
	g.ram.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(cellSize, cellSize)
	screen.DrawImage(g.ram, op)

	r := g.view.Registers
	status := ""
	if g.paused {
		status = " [paused]"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d%s", g.view.Frame, status), 4, panelTop)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("PC $%04X  %s", r.PC, g.view.Mnemonic), 4, panelTop+16)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("A $%02X  X $%02X  Y $%02X  SP $%02X", r.A, r.X, r.Y, r.SP), 4, panelTop+32)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("P $%02X  1P %s", r.P, g.view.Buttons[0]), 4, panelTop+48)
}

// Layout implements ebiten.Game.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// cellColor shades zero bytes black and spreads other values over a blue to
// yellow ramp.
func cellColor(v uint8) color.RGBA {
	if v == 0 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: v, G: v / 2, B: 0xff - v, A: 0xff}
}
