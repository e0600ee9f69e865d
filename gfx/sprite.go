package gfx

// Sprite is a fixed-size pixel patch stored in frame byte order, one slice
// per row, so a blit is a copy per row.
type Sprite struct {
	w, h int
	rows [][]byte
}

// NewSprite returns a w x h sprite of black pixels.
func NewSprite(w, h int) *Sprite {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	pix := make([]byte, w*h*BytesPerPixel)
	rows := make([][]byte, h)
	for y := range rows {
		rows[y] = pix[y*w*BytesPerPixel : (y+1)*w*BytesPerPixel]
	}
	return &Sprite{w: w, h: h, rows: rows}
}

func (s *Sprite) Width() int  { return s.w }
func (s *Sprite) Height() int { return s.h }

// Row returns the bytes of row y.
func (s *Sprite) Row(y int) []byte { return s.rows[y] }

// Fill paints every pixel with c.
func (s *Sprite) Fill(c RGB) {
	s.FillRect(0, 0, s.w, s.h, c)
}

// Set paints one pixel; coordinates outside the sprite are ignored.
func (s *Sprite) Set(x, y int, c RGB) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	px := c.BGRX()
	copy(s.rows[y][x*BytesPerPixel:], px[:])
}

// FillRect paints [x, x+w) x [y, y+h), clipped to the sprite.
func (s *Sprite) FillRect(x, y, w, h int, c RGB) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			s.Set(px, py, c)
		}
	}
}

// At returns the color of one pixel.
func (s *Sprite) At(x, y int) RGB {
	p := s.rows[y][x*BytesPerPixel:]
	return RGB{R: p[2], G: p[1], B: p[0]}
}
