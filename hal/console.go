package hal

import "time"

// ConsoleConfig controls the Linux virtual console backend.
type ConsoleConfig struct {
	FBPath  string // framebuffer device, default /dev/fb0
	TTYPath string // console switched to graphics mode, default /dev/tty
	KDMode  bool   // switch the console to KD graphics mode while running
	Tick    time.Duration
	Logger  Logger
}

func (c *ConsoleConfig) defaults() {
	if c.FBPath == "" {
		c.FBPath = "/dev/fb0"
	}
	if c.TTYPath == "" {
		c.TTYPath = "/dev/tty"
	}
	if c.Tick <= 0 {
		c.Tick = DefaultTick
	}
	c.Logger = orNop(c.Logger)
}
