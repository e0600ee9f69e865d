package gfx

// Point is a pixel coordinate.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// SolveLinear returns m and b such that y = m*x + b passes through p1 and p2.
//
// The result is not finite when p1.X == p2.X; vertical segments go through
// Canvas.VLine instead.
func SolveLinear(p1, p2 Point) (m, b float64) {
	m = float64(p2.Y-p1.Y) / float64(p2.X-p1.X)
	b = float64(p1.Y) - m*float64(p1.X)
	return m, b
}
