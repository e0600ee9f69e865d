// Package sprites generates the snake's tiles: a body tile and one head tile
// per direction, with the eyes drawn against the edge the head faces.
package sprites

import (
	"fbsnake/game"
	"fbsnake/gfx"
)

// Palette holds the tile colors.
type Palette struct {
	Body    gfx.RGB
	Outline gfx.RGB
	Head    gfx.RGB
	Eye     gfx.RGB
}

var DefaultPalette = Palette{
	Body:    gfx.RGB{R: 0x50, G: 0xFF, B: 0x50},
	Outline: gfx.RGB{R: 0x20, G: 0x90, B: 0x20},
	Head:    gfx.RGB{R: 0x50, G: 0xD1, B: 0xFF},
	Eye:     gfx.RGB{R: 0x10, G: 0x10, B: 0x10},
}

// Set is the tile lookup used by the renderer.
type Set struct {
	Size int
	Body *gfx.Sprite
	Head [game.NumDirections]*gfx.Sprite
}

// NewSet renders every tile at size x size pixels.
func NewSet(size int, p Palette) *Set {
	s := &Set{Size: size, Body: Body(size, p.Body, p.Outline)}
	for d := game.Direction(0); d < game.NumDirections; d++ {
		s.Head[d] = Head(d, size, p.Head, p.Eye)
	}
	return s
}

// HeadFor returns the head tile for d, falling back to Right for values
// outside the enum.
func (s *Set) HeadFor(d game.Direction) *gfx.Sprite {
	if d >= game.NumDirections {
		d = game.Right
	}
	return s.Head[d]
}

// Body is a filled square with a one pixel outline.
func Body(size int, fill, outline gfx.RGB) *gfx.Sprite {
	sp := gfx.NewSprite(size, size)
	sp.Fill(outline)
	sp.FillRect(1, 1, size-2, size-2, fill)
	return sp
}

// Head is a filled square with two eye dashes a short way in from the edge
// facing d, running parallel to it at one and three quarters of its length.
// Two brow dashes sit on the neighbouring edges, pointing back from the
// facing corners.
func Head(d game.Direction, size int, fill, eye gfx.RGB) *gfx.Sprite {
	sp := gfx.NewSprite(size, size)
	sp.Fill(fill)

	inset := max(size/8, 1)
	long := max(size/5, 1)
	thick := max(size/12, 1)
	a := size/4 - long/2
	b := size - long - a
	far := size - inset - thick

	switch d {
	case game.Left:
		sp.FillRect(inset, a, thick, long, eye)
		sp.FillRect(inset, b, thick, long, eye)
		sp.FillRect(inset, inset, long, thick, eye)
		sp.FillRect(inset, far, long, thick, eye)
	case game.Right:
		sp.FillRect(far, a, thick, long, eye)
		sp.FillRect(far, b, thick, long, eye)
		sp.FillRect(size-inset-long, inset, long, thick, eye)
		sp.FillRect(size-inset-long, far, long, thick, eye)
	case game.Up:
		sp.FillRect(a, inset, long, thick, eye)
		sp.FillRect(b, inset, long, thick, eye)
		sp.FillRect(inset, inset, thick, long, eye)
		sp.FillRect(far, inset, thick, long, eye)
	case game.Down:
		sp.FillRect(a, far, long, thick, eye)
		sp.FillRect(b, far, long, thick, eye)
		sp.FillRect(inset, size-inset-long, thick, long, eye)
		sp.FillRect(far, size-inset-long, thick, long, eye)
	}
	return sp
}
