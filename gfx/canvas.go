// Package gfx rasterizes into a linear BGRX frame buffer with a device row
// stride, and hands finished frames to a Device.
//
// Pixel layout is fixed: 4 bytes per pixel (blue, green, red, unused) at
// offset y*stride + x*4. The stride may be wider than width*4.
package gfx

import (
	"errors"
	"fmt"
)

const BytesPerPixel = 4

// Device is the output a Canvas presents to.
type Device interface {
	Width() int
	Height() int
	StrideBytes() int
	WriteFrame(frame []byte) error
}

var ErrBadGeometry = errors.New("gfx: bad device geometry")

// Canvas owns one frame. Drawing calls take pixel coordinates that must lie
// inside the device resolution; the renderer is expected to clip.
type Canvas struct {
	dev Device

	width  int
	height int
	stride int
	frame  []byte

	color RGB
}

// NewCanvas allocates a zeroed frame sized for dev.
func NewCanvas(dev Device) (*Canvas, error) {
	w, h, stride := dev.Width(), dev.Height(), dev.StrideBytes()
	if w <= 0 || h <= 0 || stride < w*BytesPerPixel {
		return nil, fmt.Errorf("%w: %dx%d stride %d", ErrBadGeometry, w, h, stride)
	}
	return &Canvas{
		dev:    dev,
		width:  w,
		height: h,
		stride: stride,
		frame:  make([]byte, stride*h),
		color:  RGB{R: 0xFF, G: 0xFF, B: 0xFF},
	}, nil
}

func (c *Canvas) Width() int       { return c.width }
func (c *Canvas) Height() int      { return c.height }
func (c *Canvas) StrideBytes() int { return c.stride }

// Bytes returns the live frame buffer.
func (c *Canvas) Bytes() []byte { return c.frame }

// SetColor sets the color used by Point, Line, VLine, Rect and Text.
func (c *Canvas) SetColor(r, g, b uint8) { c.color = RGB{R: r, G: g, B: b} }

// Color returns the current drawing color.
func (c *Canvas) Color() RGB { return c.color }

func (c *Canvas) offset(x, y int) int {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		panic(fmt.Sprintf("gfx: pixel (%d,%d) outside %dx%d canvas", x, y, c.width, c.height))
	}
	return y*c.stride + x*BytesPerPixel
}

// Point writes the current color into the blue, green and red bytes of the
// pixel. The fourth byte is left as is.
func (c *Canvas) Point(x, y int) {
	off := c.offset(x, y)
	c.frame[off] = c.color.B
	c.frame[off+1] = c.color.G
	c.frame[off+2] = c.color.R
}

// Line plots one point per x in [from.X, to.X) on y = m*x + b, truncating y.
// Steep segments come out sparse. Segments with from.X == to.X are drawn
// with VLine.
func (c *Canvas) Line(from, to Point) {
	if from.X == to.X {
		c.VLine(from, to)
		return
	}
	m, b := SolveLinear(from, to)
	for x := from.X; x < to.X; x++ {
		y := int(m*float64(x) + b)
		c.Point(x, y)
	}
}

// VLine plots y in [from.Y, to.Y) at x = from.X.
func (c *Canvas) VLine(from, to Point) {
	for y := from.Y; y < to.Y; y++ {
		c.Point(from.X, y)
	}
}

// Rect fills [topLeft.X, bottomRight.X) x [topLeft.Y, bottomRight.Y).
func (c *Canvas) Rect(topLeft, bottomRight Point) {
	for y := topLeft.Y; y < bottomRight.Y; y++ {
		for x := topLeft.X; x < bottomRight.X; x++ {
			c.Point(x, y)
		}
	}
}

// BlitSprite copies s row by row with its top-left pixel at (x, y). All four
// bytes of every pixel are written. The whole sprite must fit.
func (c *Canvas) BlitSprite(x, y int, s *Sprite) {
	if s == nil || s.w == 0 || s.h == 0 {
		return
	}
	c.offset(x+s.w-1, y+s.h-1)
	off := c.offset(x, y)
	for _, row := range s.rows {
		copy(c.frame[off:off+len(row)], row)
		off += c.stride
	}
}

// Clear zeroes the whole frame, stride padding included.
func (c *Canvas) Clear() {
	clear(c.frame)
}

// Present hands the frame to the device.
func (c *Canvas) Present() error {
	if err := c.dev.WriteFrame(c.frame); err != nil {
		return fmt.Errorf("gfx: present: %w", err)
	}
	return nil
}
