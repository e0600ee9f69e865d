package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fbsnake/app"
	"fbsnake/hal"
	"fbsnake/internal/buildinfo"
)

func main() {
	cfg := app.DefaultConfig()
	var (
		display = flag.String("display", "console", "console|window|term|headless.")
		fbPath  = flag.String("fb", "/dev/fb0", "Framebuffer device (console).")
		ttyPath = flag.String("tty", "/dev/tty", "Console switched to graphics mode (console).")
		kdMode  = flag.Bool("kd", true, "Put the console in KD graphics mode while running (console).")
		tick    = flag.Duration("tick", hal.DefaultTick, "Time between snake moves.")
		ticks   = flag.Uint64("ticks", 0, "Stop after N ticks (headless; 0 = run until quit).")
		keys    = flag.String("keys", "", "Scripted key bytes, one per tick (headless).")
		sound   = flag.Bool("sound", true, "Beep when the snake eats (window, term).")
		scale   = flag.Int("scale", 1, "Window scale factor (window).")
		logPath = flag.String("log", "", "Append log lines to this file instead of stderr.")
		version = flag.Bool("version", false, "Print version and exit.")
	)
	flag.IntVar(&cfg.Cols, "cols", cfg.Cols, "Grid columns.")
	flag.IntVar(&cfg.Rows, "rows", cfg.Rows, "Grid rows.")
	flag.IntVar(&cfg.CellSize, "cell", cfg.CellSize, "Cell size in pixels.")
	flag.IntVar(&cfg.OriginX, "x", cfg.OriginX, "Arena left edge in pixels.")
	flag.IntVar(&cfg.OriginY, "y", cfg.OriginY, "Arena top edge in pixels.")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "Food placement seed (0 = from clock).")
	flag.BoolVar(&cfg.SelfCollision, "self-collision", false, "End the game when the snake bites itself.")
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	logger, closeLog, err := openLog(*logPath, *display)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLog()
	logger.WriteLineString(buildinfo.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, h := app.FramebufferSize(cfg)
	newApp := app.Factory(cfg)

	switch *display {
	case "console":
		err = hal.RunConsole(ctx, newApp, hal.ConsoleConfig{
			FBPath: *fbPath, TTYPath: *ttyPath, KDMode: *kdMode, Tick: *tick, Logger: logger,
		})
	case "window":
		err = hal.RunWindow(newApp, hal.WindowConfig{
			Width: w, Height: h, Scale: *scale, Tick: *tick, Sound: *sound, Logger: logger,
		})
	case "term":
		err = hal.RunTerminal(ctx, newApp, hal.TerminalConfig{
			Width: w, Height: h, Tick: *tick, Sound: *sound, Logger: logger,
		})
	case "headless":
		err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Width: w, Height: h, Tick: *tick, Ticks: *ticks, Keys: *keys, Logger: logger,
		})
	default:
		fatalf("unknown display: %s", *display)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		closeLog()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openLog picks the log sink. The terminal backend owns the screen, so it
// logs nowhere unless a file is given.
func openLog(path, display string) (hal.Logger, func(), error) {
	if path == "" {
		if display == "term" {
			return discard{}, func() {}, nil
		}
		return hal.NewLogger(os.Stderr), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}
	l := hal.NewLogger(f)
	l.WriteLineString("--- " + time.Now().Format(time.RFC3339))
	return l, func() { _ = f.Close() }, nil
}

type discard struct{}

func (discard) WriteLineString(string) {}
func (discard) WriteLineBytes([]byte)  {}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
