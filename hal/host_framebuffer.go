package hal

import (
	"fmt"
	"sync"
)

// MemFramebuffer keeps the last written frame in memory. The window, terminal
// and headless backends present from it; tests inspect it.
type MemFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	frames uint64
}

// NewMemFramebuffer returns a width x height BGRX framebuffer whose rows are
// padBytes wider than the visible pixels.
func NewMemFramebuffer(width, height, padBytes int) *MemFramebuffer {
	if padBytes < 0 {
		padBytes = 0
	}
	stride := width*4 + padBytes
	return &MemFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *MemFramebuffer) Width() int          { return f.width }
func (f *MemFramebuffer) Height() int         { return f.height }
func (f *MemFramebuffer) Format() PixelFormat { return PixelFormatBGRX8888 }
func (f *MemFramebuffer) StrideBytes() int    { return f.stride }

func (f *MemFramebuffer) WriteFrame(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(frame) != len(f.buf) {
		return fmt.Errorf("mem framebuffer: frame is %d bytes, want %d", len(frame), len(f.buf))
	}
	copy(f.buf, frame)
	f.frames++
	return nil
}

// Frames counts successful WriteFrame calls.
func (f *MemFramebuffer) Frames() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

// Snapshot copies the last frame into dst, growing it if needed.
func (f *MemFramebuffer) Snapshot(dst []byte) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(dst) < len(f.buf) {
		dst = make([]byte, len(f.buf))
	}
	dst = dst[:len(f.buf)]
	copy(dst, f.buf)
	return dst
}

// PixelRGB returns the color stored at (x, y) in the last frame.
func (f *MemFramebuffer) PixelRGB(x, y int) (r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.stride + x*4
	return f.buf[off+2], f.buf[off+1], f.buf[off]
}
