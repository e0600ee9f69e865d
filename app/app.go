// Package app drives one snake game on top of a HAL: it decodes keys, steps
// the plane once per tick and renders the result.
package app

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"fbsnake/game"
	"fbsnake/gfx"
	"fbsnake/hal"
	"fbsnake/sprites"
)

// Config describes the arena. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	Cols     int
	Rows     int
	CellSize int
	OriginX  int
	OriginY  int

	// SelfCollision ends the game when the head runs into the body.
	SelfCollision bool

	// Seed fixes the food sequence. Zero seeds from the clock.
	Seed uint64

	Palette sprites.Palette
}

// DefaultConfig is a 32x24 grid of 25px cells: an 800x600 arena at the top
// left of the screen.
func DefaultConfig() Config {
	return Config{
		Cols:     32,
		Rows:     24,
		CellSize: 25,
		Palette:  sprites.DefaultPalette,
	}
}

var ErrArenaTooLarge = errors.New("app: arena does not fit the framebuffer")

// Game is the per-run state behind the step function.
type Game struct {
	cfg  Config
	log  hal.Logger
	kbd  hal.Keyboard
	beep hal.Beeper

	plane  *game.Plane
	screen *Screen

	dir    game.Direction
	paused bool
	over   bool
	reason string

	keys  keyDecoder
	inbuf [64]byte
	batch []key
}

// New builds a game for h and returns its step function.
func New(h hal.HAL, cfg Config) (hal.StepFunc, error) {
	g, err := NewGame(h, cfg)
	if err != nil {
		return nil, err
	}
	return guardStep(g.log, g.Step), nil
}

// Factory adapts New to the runners in package hal.
func Factory(cfg Config) hal.AppFactory {
	return func(h hal.HAL) (hal.StepFunc, error) { return New(h, cfg) }
}

// NewGame is New without the panic guard.
func NewGame(h hal.HAL, cfg Config) (*Game, error) {
	g := &Game{cfg: cfg, log: h.Logger(), beep: h.Beeper()}
	if g.log == nil {
		g.log = discardLogger{}
	}
	if in := h.Input(); in != nil {
		g.kbd = in.Keyboard()
	}

	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, fmt.Errorf("app: no framebuffer: %w", hal.ErrNotImplemented)
	}
	fb := disp.Framebuffer()
	if fb.Format() != hal.PixelFormatBGRX8888 {
		return nil, fmt.Errorf("app: framebuffer format %v: %w", fb.Format(), hal.ErrUnsupportedFormat)
	}

	var src rand.Source
	if cfg.Seed != 0 {
		src = rand.NewSource(cfg.Seed)
	}
	plane, err := game.New(cfg.Cols, cfg.Rows, src)
	if err != nil {
		return nil, err
	}
	g.plane = plane

	canvas, err := gfx.NewCanvas(fb)
	if err != nil {
		return nil, err
	}
	if g.screen, err = NewScreen(canvas, cfg); err != nil {
		return nil, err
	}

	g.dir = game.Down
	g.log.WriteLineString(fmt.Sprintf("fbsnake: %dx%d grid, %dpx cells, framebuffer %dx%d stride %d",
		cfg.Cols, cfg.Rows, cfg.CellSize, fb.Width(), fb.Height(), fb.StrideBytes()))
	return g, nil
}

func (g *Game) Plane() *game.Plane        { return g.plane }
func (g *Game) Direction() game.Direction { return g.dir }
func (g *Game) Paused() bool              { return g.paused }
func (g *Game) Over() bool                { return g.over }

// Step runs one tick: drain input, move, render, present. It returns
// hal.ErrQuit when a quit key was read.
func (g *Game) Step() error {
	keys, err := g.readKeys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		switch k.kind {
		case keyQuit:
			g.log.WriteLineString(fmt.Sprintf("fbsnake: quit, score %d", g.plane.Score()))
			return hal.ErrQuit
		case keyMove:
			g.dir = k.dir
		case keyPause:
			if !g.over {
				g.paused = !g.paused
			}
		case keyRestart:
			g.restart()
		}
	}

	if !g.paused && !g.over {
		g.advance()
	}

	return g.screen.Draw(g.plane, g.status())
}

func (g *Game) readKeys() ([]key, error) {
	g.batch = g.batch[:0]
	if g.kbd == nil {
		return g.batch, nil
	}
	n, err := g.kbd.ReadKeys(g.inbuf[:])
	if err != nil {
		return nil, fmt.Errorf("app: keyboard: %w", err)
	}
	g.batch = g.keys.decode(g.inbuf[:n], g.batch)
	return g.batch, nil
}

func (g *Game) advance() {
	ate := g.plane.MoveTo(g.dir)
	if ate {
		g.log.WriteLineString(fmt.Sprintf("fbsnake: ate at (%d,%d), length %d",
			g.plane.Head().X, g.plane.Head().Y, g.plane.Len()))
		if g.beep != nil {
			g.beep.Beep()
		}
	}

	switch {
	case g.plane.Full():
		g.endGame("board full")
	case g.cfg.SelfCollision && !ate && g.plane.HeadHitsBody():
		g.endGame("bit itself")
	}
}

func (g *Game) endGame(reason string) {
	g.over = true
	g.reason = reason
	g.log.WriteLineString(fmt.Sprintf("fbsnake: game over (%s), score %d", reason, g.plane.Score()))
}

func (g *Game) restart() {
	g.plane.Reset()
	g.dir = game.Down
	g.paused = false
	g.over = false
	g.reason = ""
	g.log.WriteLineString("fbsnake: restart")
}

func (g *Game) status() Status {
	return Status{
		Score:  g.plane.Score(),
		Paused: g.paused,
		Over:   g.over,
		Reason: g.reason,
	}
}

type discardLogger struct{}

func (discardLogger) WriteLineString(string) {}
func (discardLogger) WriteLineBytes([]byte)  {}
