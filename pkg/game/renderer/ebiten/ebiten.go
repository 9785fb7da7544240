// Package ebiten is the graphical frontend: it draws frames in a window,
// slides actors between tiles and turns keys and mouse clicks into intents.
package ebiten

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	engineinput "sunstroke/pkg/engine/input"
	"sunstroke/pkg/engine/motion"
	"sunstroke/pkg/game/renderer"
)

// EbitenRenderer implements renderer.Renderer and ebiten.Game
type EbitenRenderer struct {
	bindings *engineinput.Bindings
	logger   *log.Logger
	tweens   *renderer.Tweens
	repeat   *engineinput.KeyRepeat

	tileSize int

	// set by Run
	ctx        context.Context
	controller renderer.Controller
	frame      *renderer.Frame
	quit       bool

	windowOpenedLogged bool
}

// New creates the GUI renderer. Nil bindings use the defaults; a nil logger discards.
func New(bindings *engineinput.Bindings, logger *log.Logger) *EbitenRenderer {
	if bindings == nil {
		bindings = engineinput.DefaultBindings()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &EbitenRenderer{
		bindings: bindings,
		logger:   logger,
		tweens:   renderer.NewTweens(),
		repeat:   engineinput.NewKeyRepeat(keyRepeatInitialDelay, keyRepeatInterval),
		tileSize: defaultTileSize,
	}
}

// Sink returns the motion sink the animator should report to so that moves
// are drawn as slides
func (e *EbitenRenderer) Sink() motion.Sink {
	return e.tweens
}

// Run opens the window and blocks until it is closed, the player quits or ctx is done.
// It must be called from the main goroutine.
func (e *EbitenRenderer) Run(ctx context.Context, c renderer.Controller) error {
	e.ctx = ctx
	e.controller = c

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Sunstroke")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update polls input once per tick (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.logger.Printf("window opened (%dx%d)", w, h)
	}
	if e.quit || e.ctx.Err() != nil {
		return ebiten.Termination
	}

	e.frame = e.controller.Frame()
	if e.frame == nil {
		return nil
	}

	e.handleZoom()
	if intent := e.checkInput(); intent.Action != engineinput.ActionNone {
		if intent.Action == engineinput.ActionQuit {
			e.quit = true
			return ebiten.Termination
		}
		e.controller.Submit(intent)
	}
	return nil
}

// Layout uses the window size as the logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

var _ renderer.Renderer = (*EbitenRenderer)(nil)
