package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

// Distance from the top of a text line to the font baseline, in pixels.
const textAscent = 12

var textFont tinyfont.Fonter = &freemono.Regular9pt7b

// TextHeight is the vertical advance of one status line.
func TextHeight() int { return int(freemono.Regular9pt7b.YAdvance) }

// TextWidth returns the rendered width of s.
func TextWidth(s string) int {
	_, outbox := tinyfont.LineWidth(textFont, s)
	return int(outbox)
}

// Text draws s in the current color with its top-left corner at (x, y).
// Glyph pixels falling outside the canvas are dropped.
func (c *Canvas) Text(x, y int, s string) {
	tinyfont.WriteLine(textDisplayer{c: c}, textFont, int16(x), int16(y+textAscent), s, c.color.Color())
}

// textDisplayer adapts a Canvas to the display interface tinyfont draws on.
// Unlike Canvas.Point it clips.
type textDisplayer struct {
	c *Canvas
}

var _ drivers.Displayer = textDisplayer{}

func (d textDisplayer) Size() (x, y int16) {
	return int16(d.c.width), int16(d.c.height)
}

func (d textDisplayer) SetPixel(x, y int16, col color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= d.c.width || iy >= d.c.height {
		return
	}
	off := iy*d.c.stride + ix*BytesPerPixel
	d.c.frame[off] = col.B
	d.c.frame[off+1] = col.G
	d.c.frame[off+2] = col.R
}

func (d textDisplayer) Display() error { return nil }
