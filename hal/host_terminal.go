package hal

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal preview backend.
type TerminalConfig struct {
	Width  int // framebuffer size in pixels
	Height int
	Tick   time.Duration
	Sound  bool // ring the terminal bell on Beep
	Logger Logger
}

// RunTerminal renders the framebuffer into the current terminal with
// half-block characters, two pixel rows per cell, downsampled to fit. Handy
// over ssh where there is neither a framebuffer nor a window.
func RunTerminal(ctx context.Context, newApp AppFactory, cfg TerminalConfig) error {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("terminal: invalid size %dx%d", cfg.Width, cfg.Height)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer s.Fini()
	s.HideCursor()

	fb := NewMemFramebuffer(cfg.Width, cfg.Height, 0)
	kbd := &bufKeyboard{}
	h := &hostHAL{logger: orNop(cfg.Logger), fb: fb, kbd: kbd}
	if cfg.Sound {
		h.beep = termBeeper{s: s}
	}

	step, err := newApp(h)
	if err != nil {
		return err
	}

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	t := time.NewTicker(cfg.Tick)
	defer t.Stop()

	r := &termRenderer{s: s, fb: fb}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				kbd.push(keyBytes(ev))
			case *tcell.EventResize:
				s.Sync()
			}
		case <-t.C:
			if err := step(); err != nil {
				if IsQuit(err) {
					return nil
				}
				return err
			}
			r.draw()
		}
	}
}

// keyBytes turns a tcell key event into the bytes a raw terminal would send.
func keyBytes(ev *tcell.EventKey) []byte {
	switch ev.Key() {
	case tcell.KeyRune:
		return utf8.AppendRune(nil, ev.Rune())
	case tcell.KeyUp:
		return []byte("\x1b[A")
	case tcell.KeyDown:
		return []byte("\x1b[B")
	case tcell.KeyRight:
		return []byte("\x1b[C")
	case tcell.KeyLeft:
		return []byte("\x1b[D")
	case tcell.KeyEscape:
		return []byte{0x1b}
	case tcell.KeyCtrlC:
		return []byte{0x03}
	case tcell.KeyEnter:
		return []byte{'\r'}
	}
	return nil
}

// bufKeyboard collects bytes pushed by an event loop running on the same
// goroutine as the step.
type bufKeyboard struct {
	pending []byte
}

const maxPendingKeys = 256

func (k *bufKeyboard) push(b []byte) {
	if len(k.pending)+len(b) > maxPendingKeys {
		return
	}
	k.pending = append(k.pending, b...)
}

func (k *bufKeyboard) ReadKeys(p []byte) (int, error) {
	n := copy(p, k.pending)
	k.pending = k.pending[n:]
	return n, nil
}

type termBeeper struct {
	s tcell.Screen
}

func (b termBeeper) Beep() { _ = b.s.Beep() }

type termRenderer struct {
	s     tcell.Screen
	fb    *MemFramebuffer
	frame []byte
}

// draw samples one framebuffer pixel per half cell. The scale is the
// smallest integer that fits the whole frame on screen.
func (r *termRenderer) draw() {
	r.frame = r.fb.Snapshot(r.frame)
	fw, fh, stride := r.fb.Width(), r.fb.Height(), r.fb.StrideBytes()

	cols, rows := r.s.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	scale := max((fw+cols-1)/cols, (fh+2*rows-1)/(2*rows), 1)

	r.s.Clear()
	for cy := 0; cy < rows; cy++ {
		top := 2 * cy * scale
		if top >= fh {
			break
		}
		for cx := 0; cx < cols; cx++ {
			x := cx * scale
			if x >= fw {
				break
			}
			tr, tg, tb := bgrxAt(r.frame, stride, x, top)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb)))
			if bottom := top + scale; bottom < fh {
				br, bg, bb := bgrxAt(r.frame, stride, x, bottom)
				style = style.Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
			}
			r.s.SetContent(cx, cy, '▀', nil, style)
		}
	}
	r.s.Show()
}
