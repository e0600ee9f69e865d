package app

import (
	"fmt"
	"strconv"

	"fbsnake/game"
	"fbsnake/gfx"
	"fbsnake/sprites"
)

var (
	borderColor   = gfx.RGB{R: 66, G: 134, B: 244}
	foodColor     = gfx.RGB{R: 0xB3, G: 0xE5, B: 0xFC}
	statusColor   = gfx.RGB{R: 0xE0, G: 0xE0, B: 0xE0}
	gameOverColor = gfx.RGB{R: 0xF4, G: 0x43, B: 0x36}
)

// statusGap separates the arena from the status line.
const statusGap = 2

// Status is what the text line under the arena reports.
type Status struct {
	Score  int
	Paused bool
	Over   bool
	Reason string
}

func (s Status) String() string {
	line := "score " + strconv.Itoa(s.Score)
	switch {
	case s.Over:
		line += "  game over: " + s.Reason + "  r restart  q quit"
	case s.Paused:
		line += "  paused"
	}
	return line
}

// Screen renders a plane into a canvas: arena border, food, snake tiles and
// an optional status line.
type Screen struct {
	c     *gfx.Canvas
	tiles *sprites.Set

	cell int
	x, y int
	w, h int

	statusY int // -1 when the line does not fit
}

// NewScreen lays out the arena described by cfg on c.
func NewScreen(c *gfx.Canvas, cfg Config) (*Screen, error) {
	if cfg.CellSize < 3 {
		return nil, fmt.Errorf("app: cell size %d, need at least 3", cfg.CellSize)
	}
	s := &Screen{
		c:     c,
		tiles: sprites.NewSet(cfg.CellSize, cfg.Palette),
		cell:  cfg.CellSize,
		x:     cfg.OriginX,
		y:     cfg.OriginY,
		w:     cfg.Cols * cfg.CellSize,
		h:     cfg.Rows * cfg.CellSize,
	}
	if s.x < 0 || s.y < 0 || s.x+s.w > c.Width() || s.y+s.h > c.Height() {
		return nil, fmt.Errorf("%w: %dx%d at (%d,%d) on %dx%d", ErrArenaTooLarge,
			s.w, s.h, s.x, s.y, c.Width(), c.Height())
	}

	s.statusY = s.y + s.h + statusGap
	if s.statusY+gfx.TextHeight() > c.Height() {
		s.statusY = -1
	}
	return s, nil
}

// Bounds returns the arena rectangle in pixels.
func (s *Screen) Bounds() (x, y, w, h int) { return s.x, s.y, s.w, s.h }

// CellOrigin is the top-left pixel of grid cell (cx, cy).
func (s *Screen) CellOrigin(cx, cy int) gfx.Point {
	return gfx.Pt(s.x+cx*s.cell, s.y+cy*s.cell)
}

// Draw renders one full frame and presents it.
func (s *Screen) Draw(p *game.Plane, st Status) error {
	s.c.Clear()
	s.drawArena()
	s.drawFood(p.Food())
	s.drawSnake(p)
	if st.Over {
		s.drawCross()
	}
	if s.statusY >= 0 {
		s.setColor(statusColor)
		s.c.Text(s.x, s.statusY, st.String())
	}
	return s.c.Present()
}

func (s *Screen) setColor(c gfx.RGB) { s.c.SetColor(c.R, c.G, c.B) }

// drawArena outlines the arena on its outermost pixels. The tiles are drawn
// over it afterwards.
func (s *Screen) drawArena() {
	s.setColor(borderColor)
	x, y, w, h := s.x, s.y, s.w, s.h
	s.c.Line(gfx.Pt(x, y), gfx.Pt(x+w-1, y))
	s.c.Line(gfx.Pt(x, y+h-1), gfx.Pt(x+w-1, y+h-1))
	s.c.VLine(gfx.Pt(x, y), gfx.Pt(x, y+h-1))
	s.c.VLine(gfx.Pt(x+w-1, y), gfx.Pt(x+w-1, y+h-1))
}

// drawFood draws a hollow plus: four squares of a third of a cell around
// the cell's middle.
func (s *Screen) drawFood(f game.Cell) {
	s.setColor(foodColor)
	o := s.CellOrigin(f.X, f.Y)
	t := s.cell / 3
	for _, arm := range [4]gfx.Point{{X: 0, Y: t}, {X: t, Y: 0}, {X: t, Y: 2 * t}, {X: 2 * t, Y: t}} {
		tl := gfx.Pt(o.X+arm.X, o.Y+arm.Y)
		s.c.Rect(tl, gfx.Pt(tl.X+t, tl.Y+t))
	}
}

func (s *Screen) drawSnake(p *game.Plane) {
	snake := p.Snake()
	for _, c := range snake[1:] {
		o := s.CellOrigin(c.X, c.Y)
		s.c.BlitSprite(o.X, o.Y, s.tiles.Body)
	}
	head := snake[0]
	o := s.CellOrigin(head.X, head.Y)
	s.c.BlitSprite(o.X, o.Y, s.tiles.HeadFor(head.Dir))
}

// drawCross strikes the arena through corner to corner.
func (s *Screen) drawCross() {
	s.setColor(gameOverColor)
	x, y, w, h := s.x, s.y, s.w, s.h
	s.c.Line(gfx.Pt(x, y), gfx.Pt(x+w-1, y+h-1))
	s.c.Line(gfx.Pt(x, y+h-1), gfx.Pt(x+w-1, y))
}

// FramebufferSize is the smallest framebuffer holding the arena of cfg and
// the status line under it.
func FramebufferSize(cfg Config) (w, h int) {
	return cfg.OriginX + cfg.Cols*cfg.CellSize,
		cfg.OriginY + cfg.Rows*cfg.CellSize + statusGap + gfx.TextHeight()
}
