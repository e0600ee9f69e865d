package hal

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestMemFramebufferStride(t *testing.T) {
	fb := NewMemFramebuffer(3, 2, 4)
	if fb.StrideBytes() != 16 {
		t.Fatalf("stride = %d, want 16", fb.StrideBytes())
	}
	if fb.Format() != PixelFormatBGRX8888 {
		t.Fatalf("format = %v", fb.Format())
	}

	if err := fb.WriteFrame(make([]byte, 12)); err == nil {
		t.Fatal("expected short frame to be rejected")
	}
	if fb.Frames() != 0 {
		t.Fatalf("frames = %d after rejected write", fb.Frames())
	}

	frame := make([]byte, 32)
	copy(frame[16+4:], []byte{0x10, 0x20, 0x30, 0x00}) // (1,1)
	if err := fb.WriteFrame(frame); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if r, g, b := fb.PixelRGB(1, 1); r != 0x30 || g != 0x20 || b != 0x10 {
		t.Fatalf("pixel = %02x%02x%02x, want 302010", r, g, b)
	}
	if fb.Frames() != 1 {
		t.Fatalf("frames = %d, want 1", fb.Frames())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	fb := NewMemFramebuffer(1, 1, 0)
	fb.WriteFrame([]byte{1, 2, 3, 0})
	snap := fb.Snapshot(nil)
	snap[0] = 99
	if again := fb.Snapshot(nil); again[0] != 1 {
		t.Fatalf("snapshot aliases framebuffer: %v", again)
	}
}

func TestBGRXToRGBASkipsPadding(t *testing.T) {
	src := []byte{
		1, 2, 3, 0, 4, 5, 6, 0, 0xEE, 0xEE,
		7, 8, 9, 0, 10, 11, 12, 0, 0xEE, 0xEE,
	}
	dst := make([]byte, 2*2*4)
	bgrxToRGBA(dst, src, 2, 2, 10)
	want := []byte{
		3, 2, 1, 0xFF, 6, 5, 4, 0xFF,
		9, 8, 7, 0xFF, 12, 11, 10, 0xFF,
	}
	if !bytes.Equal(dst, want) {
		t.Fatalf("rgba = %v, want %v", dst, want)
	}
	if r, g, b := bgrxAt(src, 10, 1, 1); r != 12 || g != 11 || b != 10 {
		t.Fatalf("bgrxAt = %d,%d,%d", r, g, b)
	}
}

func TestScriptKeyboardReleasesOnePerTick(t *testing.T) {
	k := &scriptKeyboard{script: []byte("ab")}
	buf := make([]byte, 8)
	if n, _ := k.ReadKeys(buf); n != 0 {
		t.Fatalf("read %d bytes before first tick", n)
	}
	k.release()
	k.release()
	n, _ := k.ReadKeys(buf)
	if string(buf[:n]) != "ab" {
		t.Fatalf("keys = %q, want %q", buf[:n], "ab")
	}
	k.release()
	if n, _ := k.ReadKeys(buf); n != 0 {
		t.Fatalf("script exhausted but read %d bytes", n)
	}
}

func TestBufKeyboardDropsOverflow(t *testing.T) {
	k := &bufKeyboard{}
	k.push(bytes.Repeat([]byte{'x'}, maxPendingKeys))
	k.push([]byte("y"))
	buf := make([]byte, 2*maxPendingKeys)
	n, _ := k.ReadKeys(buf)
	if n != maxPendingKeys || bytes.IndexByte(buf[:n], 'y') >= 0 {
		t.Fatalf("read %d bytes, overflow not dropped", n)
	}
}

func TestKeyBytes(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), "h"},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "\x1b[A"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "\x1b[D"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "\x1b"},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "\x03"},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), ""},
	}
	for _, tc := range tests {
		if got := string(keyBytes(tc.ev)); got != tc.want {
			t.Fatalf("keyBytes(%v) = %q, want %q", tc.ev.Name(), got, tc.want)
		}
	}
}

func TestNewLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.WriteLineString("one")
	l.WriteLineBytes([]byte("two"))
	if buf.String() != "one\ntwo\n" {
		t.Fatalf("log = %q", buf.String())
	}
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var steps int
	var keys []byte
	newApp := func(h HAL) (StepFunc, error) {
		kbd := h.Input().Keyboard()
		return func() error {
			steps++
			buf := make([]byte, 4)
			n, _ := kbd.ReadKeys(buf)
			keys = append(keys, buf[:n]...)
			return nil
		}, nil
	}
	cfg := HeadlessConfig{Width: 4, Height: 4, Tick: time.Millisecond, Ticks: 5, Keys: "jjl"}
	if err := RunHeadless(context.Background(), newApp, cfg); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 5 {
		t.Fatalf("steps = %d, want 5", steps)
	}
	if string(keys) != "jjl" {
		t.Fatalf("keys = %q, want %q", keys, "jjl")
	}
}

func TestRunHeadlessQuitIsClean(t *testing.T) {
	newApp := func(HAL) (StepFunc, error) {
		return func() error { return ErrQuit }, nil
	}
	cfg := HeadlessConfig{Width: 4, Height: 4, Tick: time.Millisecond}
	if err := RunHeadless(context.Background(), newApp, cfg); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
}

func TestRunHeadlessPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	newApp := func(HAL) (StepFunc, error) {
		return func() error { return boom }, nil
	}
	cfg := HeadlessConfig{Width: 4, Height: 4, Tick: time.Millisecond}
	if err := RunHeadless(context.Background(), newApp, cfg); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	factoryErr := errors.New("factory")
	failing := func(HAL) (StepFunc, error) { return nil, factoryErr }
	if err := RunHeadless(context.Background(), failing, cfg); !errors.Is(err, factoryErr) {
		t.Fatalf("err = %v, want factory error", err)
	}
}

func TestRunHeadlessHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	newApp := func(HAL) (StepFunc, error) {
		return func() error { return nil }, nil
	}
	cfg := HeadlessConfig{Width: 4, Height: 4, Tick: time.Hour}
	if err := RunHeadless(ctx, newApp, cfg); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunHeadlessRejectsEmptyFramebuffer(t *testing.T) {
	newApp := func(HAL) (StepFunc, error) { return func() error { return nil }, nil }
	if err := RunHeadless(context.Background(), newApp, HeadlessConfig{}); err == nil {
		t.Fatal("expected error for 0x0 framebuffer")
	}
}

func TestPacerCarriesRemainder(t *testing.T) {
	p := newPacer(100 * time.Millisecond)
	t0 := time.Unix(0, 0)
	if n := p.due(t0); n != 1 {
		t.Fatalf("first due = %d, want 1", n)
	}
	if n := p.due(t0.Add(60 * time.Millisecond)); n != 0 {
		t.Fatalf("due at 60ms = %d, want 0", n)
	}
	if n := p.due(t0.Add(120 * time.Millisecond)); n != 1 {
		t.Fatalf("due at 120ms = %d, want 1", n)
	}
	// 20ms carried over, so 80ms more completes the next tick.
	if n := p.due(t0.Add(200 * time.Millisecond)); n != 1 {
		t.Fatalf("due at 200ms = %d, want 1", n)
	}
	if n := p.due(t0.Add(550 * time.Millisecond)); n != 3 {
		t.Fatalf("due at 550ms = %d, want 3", n)
	}
}
