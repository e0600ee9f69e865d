//go:build cgo

package hal

import (
	"errors"
	"time"

	"fbsnake/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window backend.
type WindowConfig struct {
	Width  int
	Height int
	Scale  int
	Tick   time.Duration
	Sound  bool
	Logger Logger
}

// RunWindow opens a desktop window that shows the framebuffer and forwards
// keyboard input. It blocks until the window closes or the step quits.
func RunWindow(newApp AppFactory, cfg WindowConfig) error {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("window: invalid size")
	}

	fb := NewMemFramebuffer(cfg.Width, cfg.Height, 0)
	kbd := newHostKeyboard()
	h := &hostHAL{logger: orNop(cfg.Logger), fb: fb, kbd: kbd}
	if cfg.Sound {
		h.beep = newHostBeeper()
	}

	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{fb: fb, kbd: kbd, step: step, pace: newPacer(cfg.Tick)}
	ebiten.SetWindowTitle("fbsnake (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetTPS(60)

	err = ebiten.RunGame(g)
	if g.err != nil {
		return g.err
	}
	return err
}

type hostGame struct {
	fb   *MemFramebuffer
	kbd  *hostKeyboard
	step StepFunc
	pace *pacer

	err     error
	scratch []byte
	rgba    []byte
	fbImg   *ebiten.Image
}

func (g *hostGame) Update() error {
	g.kbd.poll()

	// A stalled window steps once, not in a burst.
	if g.pace.due(time.Now()) == 0 {
		return nil
	}

	if err := g.step(); err != nil {
		if !IsQuit(err) {
			g.err = err
		}
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.fb
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.rgba = make([]byte, fb.width*fb.height*4)
	}

	g.scratch = fb.Snapshot(g.scratch)
	bgrxToRGBA(g.rgba, g.scratch, fb.width, fb.height, fb.stride)

	g.fbImg.WritePixels(g.rgba)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.width, g.fb.height
}
