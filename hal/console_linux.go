//go:build linux

package hal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// console holds everything the console backend acquires. close releases it
// in reverse order and is safe on a partially opened console.
type console struct {
	fb  *fbDevice
	kbd *ttyKeyboard
	tty *os.File
	kd  bool
}

func openConsole(cfg ConsoleConfig) (_ *console, err error) {
	c := &console{}
	defer func() {
		if err != nil {
			_ = c.close()
		}
	}()

	if c.fb, err = openFBDev(cfg.FBPath); err != nil {
		return nil, err
	}
	if c.kbd, err = openTTYKeyboard(os.Stdin); err != nil {
		return nil, err
	}
	if cfg.KDMode {
		if c.tty, err = os.OpenFile(cfg.TTYPath, os.O_RDWR, 0); err != nil {
			return nil, fmt.Errorf("console: %w", err)
		}
		if err = setKDMode(c.tty, kdGraphics); err != nil {
			return nil, fmt.Errorf("console: %w (not on a virtual console? try -kd=false)", err)
		}
		c.kd = true
	}
	return c, nil
}

func (c *console) close() error {
	var errs []error
	if c.kd {
		errs = append(errs, setKDMode(c.tty, kdText))
		c.kd = false
	}
	if c.tty != nil {
		errs = append(errs, c.tty.Close())
		c.tty = nil
	}
	if c.kbd != nil {
		errs = append(errs, c.kbd.Restore())
		c.kbd = nil
	}
	if c.fb != nil {
		errs = append(errs, c.fb.Close())
		c.fb = nil
	}
	return errors.Join(errs...)
}

// RunConsole draws straight to a Linux framebuffer device and reads keys
// from the controlling terminal in raw mode. The console is restored on
// every exit path, including panics and context cancellation.
func RunConsole(ctx context.Context, newApp AppFactory, cfg ConsoleConfig) (err error) {
	cfg.defaults()

	c, err := openConsole(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.close(); cerr != nil && err == nil {
			err = fmt.Errorf("console: restore: %w", cerr)
		}
	}()

	cfg.Logger.WriteLineString(fmt.Sprintf("console: %s %q %dx%d stride=%d", cfg.FBPath, c.fb.id, c.fb.width, c.fb.height, c.fb.stride))

	h := &hostHAL{logger: cfg.Logger, fb: c.fb, kbd: c.kbd}
	step, err := newApp(h)
	if err != nil {
		return err
	}

	t := time.NewTicker(cfg.Tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := step(); err != nil {
				if IsQuit(err) {
					return nil
				}
				return err
			}
		}
	}
}
