// Package game holds the snake simulation: a toroidal grid, the snake body and
// a single food cell. It has no knowledge of pixels or devices.
package game

import (
	"errors"
	"time"

	"golang.org/x/exp/rand"
)

// Direction is one of the four headings a cell can carry.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down

	NumDirections = 4
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "invalid"
	}
}

// Cell is one grid position. Dir only matters for the head; body cells carry
// whatever they inherited.
type Cell struct {
	X   int
	Y   int
	Dir Direction
}

// SamePos reports whether c and o share coordinates, ignoring direction.
func (c Cell) SamePos(o Cell) bool { return c.X == o.X && c.Y == o.Y }

const (
	startLen = 3

	// After this many rejected samples RandomizeFood picks among the free
	// cells directly so dense boards still terminate.
	foodSampleTries = 64
)

var ErrPlaneTooSmall = errors.New("game: plane too small")

// Plane is the game state. The zero value is not usable; call New.
type Plane struct {
	width  int
	height int

	snake []Cell
	food  Cell

	rng  *rand.Rand
	free []Cell

	full bool
}

// New builds a width x height plane with the three-cell start snake along the
// top row facing Right, and places the first food. A nil src seeds from the
// clock.
func New(width, height int, src rand.Source) (*Plane, error) {
	if width < startLen || height < 1 || width*height <= startLen {
		return nil, ErrPlaneTooSmall
	}
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	p := &Plane{
		width:  width,
		height: height,
		snake:  make([]Cell, 0, 16),
		rng:    rand.New(src),
	}
	p.Reset()
	return p, nil
}

// Reset restores the start snake and re-rolls the food.
func (p *Plane) Reset() {
	p.snake = append(p.snake[:0],
		Cell{X: 2, Y: 0, Dir: Right},
		Cell{X: 1, Y: 0, Dir: Right},
		Cell{X: 0, Y: 0, Dir: Right},
	)
	p.full = false
	p.RandomizeFood()
}

func (p *Plane) Width() int  { return p.width }
func (p *Plane) Height() int { return p.height }
func (p *Plane) Head() Cell  { return p.snake[0] }
func (p *Plane) Food() Cell  { return p.food }
func (p *Plane) Len() int    { return len(p.snake) }

// Score is the number of cells grown since the last reset.
func (p *Plane) Score() int { return len(p.snake) - startLen }

// Snake returns a copy of the body, head first.
func (p *Plane) Snake() []Cell {
	out := make([]Cell, len(p.snake))
	copy(out, p.snake)
	return out
}

// Occupied reports whether any snake cell sits at (x, y).
func (p *Plane) Occupied(x, y int) bool {
	for _, c := range p.snake {
		if c.X == x && c.Y == y {
			return true
		}
	}
	return false
}

// HeadHitsBody reports whether the head shares a position with another
// segment. MoveTo never acts on it; the driver decides what a bite means.
// Right after a meal the grown tail sits under the head, so callers skip
// the check on a tick where MoveTo returned true.
func (p *Plane) HeadHitsBody() bool {
	head := p.snake[0]
	for _, c := range p.snake[1:] {
		if c.SamePos(head) {
			return true
		}
	}
	return false
}

// MoveTo advances the snake one cell in d, wrapping at every edge, and eats
// the food if the head lands on it. Turning straight back into the neck is
// permitted. It reports whether food was eaten.
func (p *Plane) MoveTo(d Direction) bool {
	for i := len(p.snake) - 1; i > 0; i-- {
		p.snake[i] = p.snake[i-1]
	}

	head := &p.snake[0]
	switch d {
	case Left:
		head.X = wrapDec(head.X, p.width)
	case Right:
		head.X = wrapInc(head.X, p.width)
	case Up:
		head.Y = wrapDec(head.Y, p.height)
	case Down:
		head.Y = wrapInc(head.Y, p.height)
	}
	head.Dir = d

	if head.SamePos(p.food) {
		p.eatFood()
		return true
	}
	return false
}

func wrapDec(v, n int) int {
	if v == 0 {
		return n - 1
	}
	return v - 1
}

func wrapInc(v, n int) int {
	if v >= n-1 {
		return 0
	}
	return v + 1
}

// eatFood grows the tail by a copy of the food cell, then moves the food.
// The copy shares the head's position until the next move leaves it behind.
func (p *Plane) eatFood() {
	p.snake = append(p.snake, p.food)
	p.full = !p.RandomizeFood()
}

// Full reports whether the last meal left no free cell for new food.
func (p *Plane) Full() bool { return p.full }

// RandomizeFood moves the food to a uniformly chosen cell not covered by the
// snake. It returns false, leaving the food where it was, only when the snake
// covers the whole plane.
func (p *Plane) RandomizeFood() bool {
	for tries := 0; tries < foodSampleTries; tries++ {
		x := p.rng.Intn(p.width)
		y := p.rng.Intn(p.height)
		if !p.Occupied(x, y) {
			p.food = Cell{X: x, Y: y, Dir: p.food.Dir}
			return true
		}
	}

	p.free = p.free[:0]
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			if !p.Occupied(x, y) {
				p.free = append(p.free, Cell{X: x, Y: y, Dir: p.food.Dir})
			}
		}
	}
	if len(p.free) == 0 {
		return false
	}
	p.food = p.free[p.rng.Intn(len(p.free))]
	return true
}
