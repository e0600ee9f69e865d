// Package hal is the only contact point between the game and the outside
// world: a frame sink, a keyboard, an optional beeper and a line logger.
//
// Backends live in this package too: the Linux console (fbdev), a desktop
// window, a terminal preview and a headless runner. Every backend drives the
// same step function at a fixed tick.
package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented    = errors.New("not implemented")
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatBGRX8888 is 32bpp: blue, green, red, unused.
	PixelFormatBGRX8888 PixelFormat = iota + 1
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatBGRX8888:
		return "BGRX8888"
	default:
		return "unknown"
	}
}

// Framebuffer is an output device that accepts whole frames. A frame is
// StrideBytes()*Height() bytes in Format().
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	WriteFrame(frame []byte) error
}

// Keyboard hands out raw key bytes. ReadKeys never blocks; it returns 0 when
// nothing is pending. Special keys arrive as ANSI escape sequences.
type Keyboard interface {
	ReadKeys(p []byte) (int, error)
}

// Beeper plays a short acknowledgement sound without blocking.
type Beeper interface {
	Beep()
}

// Display provides access to the framebuffer.
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices.
type Input interface {
	Keyboard() Keyboard
}

// HAL bundles what a backend offers. Beeper may return nil.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Beeper() Beeper
}

// StepFunc runs one tick. Returning an error stops the runner; see IsQuit.
type StepFunc func() error

// ErrQuit is returned by a step to end the run cleanly.
var ErrQuit = errors.New("quit")

// IsQuit reports whether err asks for a clean shutdown.
func IsQuit(err error) bool { return errors.Is(err, ErrQuit) }
