//go:build linux

package hal

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ttyKeyboard reads raw bytes from a terminal in raw mode without blocking.
type ttyKeyboard struct {
	in    *os.File
	fd    int
	saved *term.State
}

func openTTYKeyboard(in *os.File) (*ttyKeyboard, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("tty: %s is not a terminal", in.Name())
	}
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("tty: raw mode: %w", err)
	}
	return &ttyKeyboard{in: in, fd: fd, saved: saved}, nil
}

// ReadKeys polls with a zero timeout, so it returns at once when no key is
// waiting.
func (k *ttyKeyboard) ReadKeys(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	fds := []unix.PollFd{{Fd: int32(k.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, fmt.Errorf("tty: poll: %w", err)
	}
	if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
		return 0, nil
	}
	rn, err := unix.Read(k.fd, p)
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return 0, nil
		}
		return 0, fmt.Errorf("tty: read: %w", err)
	}
	return rn, nil
}

// Restore puts the terminal back the way it was. Safe to call twice.
func (k *ttyKeyboard) Restore() error {
	if k.saved == nil {
		return nil
	}
	err := term.Restore(k.fd, k.saved)
	k.saved = nil
	return err
}
