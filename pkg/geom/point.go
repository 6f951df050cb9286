package geom

import "math"

// Point is a position in the plane. Solver formulas that need complex
// arithmetic use Mul and sqrt on points directly.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Mul returns the complex product of p and q.
func (p Point) Mul(q Point) Point {
	return Point{p.X*q.X - p.Y*q.Y, p.X*q.Y + p.Y*q.X}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool { return isFinite(p.X) && isFinite(p.Y) }

// sqrt returns the principal complex square root of p.
func (p Point) sqrt() Point {
	r := math.Hypot(p.X, p.Y)
	re := math.Sqrt((r + p.X) / 2)
	im := math.Sqrt(math.Max(r-p.X, 0) / 2)
	return Point{re, math.Copysign(im, p.Y)}
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
