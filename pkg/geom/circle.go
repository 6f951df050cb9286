package geom

import (
	"fmt"
	"math"
)

// Circle is a center and a signed radius. A negative radius denotes an
// enclosing circle. The zero radius is not a valid circle.
type Circle struct {
	Center Point
	Radius float64
}

// NewCircle returns a circle centered at (x, y).
func NewCircle(x, y, r float64) Circle {
	return Circle{Center: Point{x, y}, Radius: r}
}

// Curvature returns 1/Radius.
func (c Circle) Curvature() float64 { return 1 / c.Radius }

// Enclosing reports whether the circle's drawn interior is outside its disk.
func (c Circle) Enclosing() bool { return c.Radius < 0 }

// Size returns the absolute radius.
func (c Circle) Size() float64 { return math.Abs(c.Radius) }

// Valid reports whether the circle has a finite center and a finite,
// non-zero radius.
func (c Circle) Valid() bool {
	return c.Radius != 0 && isFinite(c.Radius) && c.Center.IsFinite()
}

// TangencyError returns how far a and b are from touching: the difference
// between the center distance and the sum of signed radii. It is zero (up to
// rounding) for externally tangent circles and for a circle inscribed in an
// enclosing one.
func TangencyError(a, b Circle) float64 {
	d := a.Center.Dist(b.Center)
	return math.Abs(d - math.Abs(a.Radius+b.Radius))
}

func (c Circle) String() string {
	return fmt.Sprintf("Circle x:%.3f y:%.3f r:%.3f [cur:%.3f]", c.Center.X, c.Center.Y, c.Radius, c.Curvature())
}
