package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fbsnake/game"
	"fbsnake/hal"
	"fbsnake/sprites"
)

type testKeyboard struct {
	pending []byte
}

func (k *testKeyboard) press(s string) { k.pending = append(k.pending, s...) }

func (k *testKeyboard) ReadKeys(p []byte) (int, error) {
	n := copy(p, k.pending)
	k.pending = k.pending[n:]
	return n, nil
}

type testBeeper struct{ beeps int }

func (b *testBeeper) Beep() { b.beeps++ }

type testLogger struct{ lines []string }

func (l *testLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *testLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *testLogger) contains(sub string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

type testHAL struct {
	fb   *hal.MemFramebuffer
	kbd  *testKeyboard
	beep *testBeeper
	log  *testLogger
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) Display() hal.Display { return h }
func (h *testHAL) Input() hal.Input     { return h }
func (h *testHAL) Beeper() hal.Beeper   { return h.beep }

func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *testHAL) Keyboard() hal.Keyboard       { return h.kbd }

func newTestHAL(w, h int) *testHAL {
	return &testHAL{
		fb:   hal.NewMemFramebuffer(w, h, 12),
		kbd:  &testKeyboard{},
		beep: &testBeeper{},
		log:  &testLogger{},
	}
}

// 8x6 grid of 5px cells: a 40x30 arena.
func smallConfig() Config {
	return Config{Cols: 8, Rows: 6, CellSize: 5, Seed: 7, Palette: sprites.DefaultPalette}
}

func newTestGame(t *testing.T, cfg Config) (*Game, *testHAL) {
	t.Helper()
	h := newTestHAL(40, 60)
	g, err := NewGame(h, cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g, h
}

func step(t *testing.T, g *Game) {
	t.Helper()
	if err := g.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestNewRejectsOversizedArena(t *testing.T) {
	h := newTestHAL(39, 60)
	if _, err := New(h, smallConfig()); !errors.Is(err, ErrArenaTooLarge) {
		t.Fatalf("err = %v, want ErrArenaTooLarge", err)
	}
	cfg := smallConfig()
	cfg.OriginY = 31
	if _, err := New(newTestHAL(40, 60), cfg); !errors.Is(err, ErrArenaTooLarge) {
		t.Fatalf("offset arena: err = %v, want ErrArenaTooLarge", err)
	}
}

func TestNewRejectsTinyGrid(t *testing.T) {
	cfg := smallConfig()
	cfg.Cols = 2
	if _, err := New(newTestHAL(40, 60), cfg); !errors.Is(err, game.ErrPlaneTooSmall) {
		t.Fatalf("err = %v, want ErrPlaneTooSmall", err)
	}
}

func TestInitialDirectionIsDown(t *testing.T) {
	g, h := newTestGame(t, smallConfig())
	step(t, g)
	if head := g.Plane().Head(); head.X != 2 || head.Y != 1 || head.Dir != game.Down {
		t.Fatalf("head = %+v, want (2,1,down)", head)
	}
	if h.fb.Frames() != 1 {
		t.Fatalf("frames = %d, want 1", h.fb.Frames())
	}
}

func TestKeysSteer(t *testing.T) {
	g, h := newTestGame(t, smallConfig())
	h.kbd.press("l")
	step(t, g)
	if head := g.Plane().Head(); head.X != 3 || head.Y != 0 {
		t.Fatalf("after l: head = %+v, want (3,0)", head)
	}
	h.kbd.press("\x1b[A")
	step(t, g)
	if head := g.Plane().Head(); head.X != 3 || head.Y != 5 {
		t.Fatalf("after up arrow: head = %+v, want (3,5) via wrap", head)
	}
	step(t, g)
	if head := g.Plane().Head(); head.Y != 4 || g.Direction() != game.Up {
		t.Fatalf("direction not kept: head = %+v", head)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, in := range []string{"q", "\x03"} {
		g, h := newTestGame(t, smallConfig())
		h.kbd.press(in)
		if err := g.Step(); !errors.Is(err, hal.ErrQuit) {
			t.Fatalf("%q: err = %v, want ErrQuit", in, err)
		}
	}
}

func TestEscapeQuitsOnNextIdleTick(t *testing.T) {
	g, h := newTestGame(t, smallConfig())
	h.kbd.press("\x1b")
	step(t, g)
	if err := g.Step(); !errors.Is(err, hal.ErrQuit) {
		t.Fatalf("err = %v, want ErrQuit", err)
	}
}

func TestPauseFreezesSnake(t *testing.T) {
	g, h := newTestGame(t, smallConfig())
	h.kbd.press("p")
	step(t, g)
	step(t, g)
	if head := g.Plane().Head(); head.X != 2 || head.Y != 0 {
		t.Fatalf("paused snake moved to %+v", head)
	}
	if !g.Paused() {
		t.Fatal("expected paused")
	}
	h.kbd.press(" ")
	step(t, g)
	if head := g.Plane().Head(); head.Y != 1 {
		t.Fatalf("resumed head = %+v, want y=1", head)
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	cfg := smallConfig()
	cfg.SelfCollision = true
	g, h := newTestGame(t, cfg)
	h.kbd.press("h")
	step(t, g)
	if !g.Over() {
		t.Fatal("expected game over after reversing into the neck")
	}
	if !h.log.contains("bit itself") {
		t.Fatalf("log = %q", h.log.lines)
	}

	before := g.Plane().Head()
	step(t, g)
	if g.Plane().Head() != before {
		t.Fatal("snake moved after game over")
	}

	h.kbd.press("r")
	step(t, g)
	if g.Over() {
		t.Fatal("still over after restart")
	}
	if head := g.Plane().Head(); head.X != 2 || head.Y != 1 {
		t.Fatalf("after restart head = %+v, want (2,1)", head)
	}
}

func TestReversalAllowedByDefault(t *testing.T) {
	g, h := newTestGame(t, smallConfig())
	h.kbd.press("h")
	step(t, g)
	if g.Over() {
		t.Fatal("game ended without self-collision enabled")
	}
	if head := g.Plane().Head(); head.X != 1 || head.Y != 0 {
		t.Fatalf("head = %+v, want (1,0)", head)
	}
}

// On a 4x1 board the start snake leaves one free cell, (3,0). Eating it
// grows the snake into that cell and the food moves to the vacated (0,0);
// eating that too leaves nothing free.
func TestFullBoardEndsAfterLastFreeCell(t *testing.T) {
	cfg := Config{Cols: 4, Rows: 1, CellSize: 5, Seed: 1, Palette: sprites.DefaultPalette}
	h := newTestHAL(20, 30)
	g, err := NewGame(h, cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if f := g.Plane().Food(); f.X != 3 || f.Y != 0 {
		t.Fatalf("food = %+v, want (3,0)", f)
	}

	h.kbd.press("l")
	step(t, g)
	if h.beep.beeps != 1 || g.Plane().Score() != 1 {
		t.Fatalf("beeps=%d score=%d, want 1 and 1", h.beep.beeps, g.Plane().Score())
	}
	if g.Over() {
		t.Fatalf("game over with (0,0) still free: snake=%v", g.Plane().Snake())
	}
	if f := g.Plane().Food(); f.X != 0 || f.Y != 0 {
		t.Fatalf("food = %+v, want (0,0)", f)
	}

	step(t, g)
	if h.beep.beeps != 2 || g.Plane().Score() != 2 {
		t.Fatalf("beeps=%d score=%d, want 2 and 2", h.beep.beeps, g.Plane().Score())
	}
	if !g.Over() || !h.log.contains("board full") {
		t.Fatalf("over=%v log=%q", g.Over(), h.log.lines)
	}
}

func TestEatingWithSelfCollisionKeepsPlaying(t *testing.T) {
	cfg := Config{Cols: 8, Rows: 1, CellSize: 5, Seed: 3, SelfCollision: true, Palette: sprites.DefaultPalette}
	h := newTestHAL(40, 30)
	g, err := NewGame(h, cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	h.kbd.press("l")
	for i := 0; i < 8 && g.Plane().Score() == 0; i++ {
		step(t, g)
	}
	if g.Plane().Score() == 0 {
		t.Fatal("snake never reached the food")
	}
	if g.Over() {
		t.Fatal("eating counted as a bite")
	}

	step(t, g)
	if g.Over() {
		t.Fatalf("game over one tick after eating: snake=%v", g.Plane().Snake())
	}
}

func TestArenaBorderPixels(t *testing.T) {
	g, h := newTestGame(t, smallConfig())
	step(t, g)

	px := func(x, y int) [3]uint8 {
		r, gr, b := h.fb.PixelRGB(x, y)
		return [3]uint8{r, gr, b}
	}
	border := [3]uint8{borderColor.R, borderColor.G, borderColor.B}

	// Bottom edge, away from the snake on rows 0 and 1.
	if got := px(20, 29); got != border {
		t.Fatalf("bottom border pixel = %v, want %v", got, border)
	}
	// Right edge.
	if got := px(39, 20); got != border {
		t.Fatalf("right border pixel = %v, want %v", got, border)
	}
	// Segment ends are exclusive, so the bottom-right corner stays dark.
	if got := px(39, 29); got != ([3]uint8{}) {
		t.Fatalf("corner pixel = %v, want black", got)
	}
}

func TestHeadTileDrawn(t *testing.T) {
	g, h := newTestGame(t, smallConfig())
	step(t, g)

	head := g.Plane().Head()
	want := sprites.DefaultPalette.Head
	// Top-left pixel of a head tile is fill, not eye.
	r, gr, b := h.fb.PixelRGB(head.X*5, head.Y*5)
	if r != want.R || gr != want.G || b != want.B {
		t.Fatalf("head pixel = %02x%02x%02x, want %02x%02x%02x", r, gr, b, want.R, want.G, want.B)
	}
}

func TestStatusString(t *testing.T) {
	if got := (Status{Score: 4}).String(); got != "score 4" {
		t.Fatalf("got %q", got)
	}
	if got := (Status{Score: 1, Paused: true}).String(); !strings.Contains(got, "paused") {
		t.Fatalf("got %q", got)
	}
	if got := (Status{Over: true, Reason: "bit itself"}).String(); !strings.Contains(got, "game over: bit itself") {
		t.Fatalf("got %q", got)
	}
}

func TestGuardStepRecoversPanic(t *testing.T) {
	l := &testLogger{}
	step := guardStep(l, func() error { panic("pixel (99,0) outside") })
	err := step()
	if err == nil || !strings.Contains(err.Error(), "pixel (99,0)") {
		t.Fatalf("err = %v", err)
	}
	if !l.contains("fbsnake panic") {
		t.Fatalf("log = %q", l.lines)
	}
}

func TestHeadlessRunQuits(t *testing.T) {
	cfg := smallConfig()
	hc := hal.HeadlessConfig{Width: 40, Height: 60, Tick: time.Millisecond, Ticks: 100, Keys: "llq"}
	if err := hal.RunHeadless(context.Background(), Factory(cfg), hc); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
}
