package gfx

import "image/color"

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Color() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF} }

// BGRX returns the four bytes of c as stored in a frame: blue, green, red, 0.
func (c RGB) BGRX() [BytesPerPixel]byte { return [BytesPerPixel]byte{c.B, c.G, c.R, 0} }
