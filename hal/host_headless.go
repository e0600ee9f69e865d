package hal

import (
	"context"
	"fmt"
	"time"
)

// AppFactory builds the per-tick step for a HAL.
type AppFactory func(HAL) (StepFunc, error)

// DefaultTick is the game cadence used when a config leaves Tick at zero.
const DefaultTick = 150 * time.Millisecond

// HeadlessConfig controls the no-output runner.
type HeadlessConfig struct {
	Width  int
	Height int
	Pad    int // extra bytes per framebuffer row
	Tick   time.Duration
	Ticks  uint64 // stop after N ticks (0 = run until quit or cancel)
	Keys   string // scripted input, one byte released per tick
	Logger Logger
}

// RunHeadless runs the game against an in-memory framebuffer. It returns nil
// when the step quits or the tick limit is reached.
func RunHeadless(ctx context.Context, newApp AppFactory, cfg HeadlessConfig) error {
	_, err := runHeadless(ctx, newApp, cfg)
	return err
}

func runHeadless(ctx context.Context, newApp AppFactory, cfg HeadlessConfig) (*MemFramebuffer, error) {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("headless: invalid size %dx%d", cfg.Width, cfg.Height)
	}

	fb := NewMemFramebuffer(cfg.Width, cfg.Height, cfg.Pad)
	kbd := &scriptKeyboard{script: []byte(cfg.Keys)}
	h := &hostHAL{logger: orNop(cfg.Logger), fb: fb, kbd: kbd}

	step, err := newApp(h)
	if err != nil {
		return fb, err
	}

	t := time.NewTicker(cfg.Tick)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return fb, ctx.Err()
		case <-t.C:
			kbd.release()
			if err := step(); err != nil {
				if IsQuit(err) {
					return fb, nil
				}
				return fb, err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return fb, nil
			}
		}
	}
}

// scriptKeyboard releases one scripted byte per tick.
type scriptKeyboard struct {
	script  []byte
	next    int
	pending []byte
}

func (k *scriptKeyboard) release() {
	if k.next < len(k.script) {
		k.pending = append(k.pending, k.script[k.next])
		k.next++
	}
}

func (k *scriptKeyboard) ReadKeys(p []byte) (int, error) {
	n := copy(p, k.pending)
	k.pending = k.pending[n:]
	return n, nil
}
