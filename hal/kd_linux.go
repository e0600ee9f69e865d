//go:build linux

package hal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// From linux/kd.h.
const (
	kdSetMode  = 0x4B3A
	kdText     = 0x00
	kdGraphics = 0x01
)

// setKDMode switches the virtual console between text and graphics. In
// graphics mode the kernel stops drawing the text console over the
// framebuffer.
func setKDMode(tty *os.File, mode int) error {
	if err := unix.IoctlSetInt(int(tty.Fd()), kdSetMode, mode); err != nil {
		return fmt.Errorf("KDSETMODE %d on %s: %w", mode, tty.Name(), err)
	}
	return nil
}
