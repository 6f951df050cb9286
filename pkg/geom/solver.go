package geom

import (
	"math"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
)

// collinearTolerance is the relative tolerance for the straight-line test in
// [Collinear].
const collinearTolerance = 1e-9

// PlaceInitialTriple places three mutually tangent circles with radii r1, r2,
// r3 and computes the fourth circle enclosing them.
//
// The circle of radius r1 sits at the origin, the r2 circle touches it on the
// positive x-axis and the r3 circle is placed above both. The returned array
// holds the enclosing circle first, followed by the three placed circles.
//
// If the three curvatures are too unequal, the "enclosing" solution is in fact
// a small circle inside the gap; it then has positive radius. Renderers must
// cope with that (see NO_ENCLOSING_CIRCLE).
func PlaceInitialTriple(r1, r2, r3 float64) ([4]Circle, error) {
	var out [4]Circle
	for _, r := range []float64{r1, r2, r3} {
		if r == 0 {
			return out, apperrors.New(apperrors.ErrCodeDegenerateConfiguration, "radius can't be 0")
		}
		if r < 0 || !isFinite(r) {
			return out, apperrors.New(apperrors.ErrCodeInvalidInput, "radius must be positive and finite, got %g", r)
		}
	}
	if Collinear(1/r1, 1/r2, 1/r3) {
		return out, apperrors.New(apperrors.ErrCodeDegenerateConfiguration,
			"no apollonian gasket possible for radii %g, %g, %g: the enclosing circle would be a line", r1, r2, r3)
	}

	a := NewCircle(0, 0, r1)
	b := NewCircle(r1+r2, 0, r2)
	x := (r1*r1 + r1*r3 + r1*r2 - r2*r3) / (r1 + r2)
	y := math.Sqrt((r1+r3)*(r1+r3) - x*x)
	c := NewCircle(x, y, r3)

	outer, err := OuterTangentCircle(a, b, c)
	if err != nil {
		return out, err
	}
	return [4]Circle{outer, a, b, c}, nil
}

// Collinear reports whether curvatures k1, k2, k3 satisfy
// x = 2·sqrt(y·z) + y + z for some cyclic permutation (x, y, z). For such
// triples the enclosing Descartes solution has curvature zero.
func Collinear(k1, k2, k3 float64) bool {
	for _, t := range [][3]float64{{k1, k2, k3}, {k2, k3, k1}, {k3, k1, k2}} {
		x, y, z := t[0], t[1], t[2]
		want := 2*math.Sqrt(y*z) + y + z
		if math.Abs(x-want) <= collinearTolerance*math.Max(math.Abs(x), math.Abs(want)) {
			return true
		}
	}
	return false
}

// OuterTangentCircle computes the circle tangent to three externally tangent
// circles that encloses them, using the minus branch of the Descartes Circle
// Theorem. The result has negative radius whenever a true enclosing circle
// exists.
func OuterTangentCircle(c1, c2, c3 Circle) (Circle, error) {
	k1, k2, k3 := c1.Curvature(), c2.Curvature(), c3.Curvature()
	k4 := k1 + k2 + k3 - 2*math.Sqrt(k1*k2+k2*k3+k1*k3)
	if k4 == 0 || !isFinite(k4) {
		return Circle{}, apperrors.New(apperrors.ErrCodeArithmeticDegenerate,
			"enclosing curvature is %g for curvatures %g, %g, %g", k4, k1, k2, k3)
	}

	w1, w2, w3 := c1.Center.Scale(k1), c2.Center.Scale(k2), c3.Center.Scale(k3)
	sum := w1.Add(w2).Add(w3)
	root := w1.Mul(w2).Add(w2.Mul(w3)).Add(w1.Mul(w3)).sqrt().Scale(2)

	// The complex square root has two branches; only one of them pairs with
	// the chosen curvature. Keep the center that actually touches all three.
	best := Circle{}
	bestErr := math.Inf(1)
	for _, m := range []Point{sum.Sub(root), sum.Add(root)} {
		cand := Circle{Center: m.Scale(1 / k4), Radius: 1 / k4}
		e := TangencyError(cand, c1) + TangencyError(cand, c2) + TangencyError(cand, c3)
		if e < bestErr {
			best, bestErr = cand, e
		}
	}
	if !best.Valid() {
		return Circle{}, apperrors.New(apperrors.ErrCodeArithmeticDegenerate, "enclosing circle is not finite")
	}
	return best, nil
}

// SecondSolution returns the other circle tangent to a, b and c, given that
// fixed is one of the two. Applying it twice returns fixed.
func SecondSolution(fixed, a, b, c Circle) (Circle, error) {
	kf, ka, kb, kc := fixed.Curvature(), a.Curvature(), b.Curvature(), c.Curvature()

	k := 2*(ka+kb+kc) - kf
	if k == 0 || !isFinite(k) {
		return Circle{}, apperrors.New(apperrors.ErrCodeArithmeticDegenerate,
			"second solution has curvature %g", k)
	}

	m := a.Center.Scale(ka).Add(b.Center.Scale(kb)).Add(c.Center.Scale(kc)).
		Scale(2).
		Sub(fixed.Center.Scale(kf)).
		Scale(1 / k)

	out := Circle{Center: m, Radius: 1 / k}
	if !out.Valid() {
		return Circle{}, apperrors.New(apperrors.ErrCodeArithmeticDegenerate, "second solution is not finite")
	}
	return out, nil
}
