package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hostHAL is the backend-independent bundle every runner fills in.
type hostHAL struct {
	logger Logger
	fb     Framebuffer
	kbd    Keyboard
	beep   Beeper
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Beeper() Beeper   { return h.beep }

type hostDisplay struct {
	fb Framebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd Keyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

// NewLogger returns a Logger writing one line per call to w.
func NewLogger(w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &hostLogger{w: w}
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// nopLogger drops everything; used when a runner gets no logger.
type nopLogger struct{}

func (nopLogger) WriteLineString(string) {}
func (nopLogger) WriteLineBytes([]byte)  {}

func orNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}
