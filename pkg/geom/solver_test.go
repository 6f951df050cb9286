package geom

import (
	"math"
	"testing"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
)

const tol = 1e-9

func assertTangent(t *testing.T, a, b Circle) {
	t.Helper()
	scale := math.Max(1, math.Max(a.Size(), b.Size()))
	if e := TangencyError(a, b); e > tol*scale {
		t.Errorf("circles not tangent (err %g):\n  %v\n  %v", e, a, b)
	}
}

func TestPlaceInitialTripleTangency(t *testing.T) {
	tests := []struct {
		name       string
		r1, r2, r3 float64
	}{
		{"unit", 1, 1, 1},
		{"mixed", 2, 3, 15},
		{"small", 0.5, 0.25, 0.1},
		{"wide spread", 1, 2, 3},
		{"large", 100, 150, 80},
		{"uneven", 0.1, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := PlaceInitialTriple(tt.r1, tt.r2, tt.r3)
			if err != nil {
				t.Fatalf("PlaceInitialTriple(%g, %g, %g) error: %v", tt.r1, tt.r2, tt.r3, err)
			}
			for i := 0; i < 4; i++ {
				for j := i + 1; j < 4; j++ {
					assertTangent(t, q[i], q[j])
				}
			}
			if q[1].Radius != tt.r1 || q[2].Radius != tt.r2 || q[3].Radius != tt.r3 {
				t.Errorf("placed radii = %g, %g, %g, want %g, %g, %g",
					q[1].Radius, q[2].Radius, q[3].Radius, tt.r1, tt.r2, tt.r3)
			}
		})
	}
}

func TestPlaceInitialTripleUnit(t *testing.T) {
	q, err := PlaceInitialTriple(1, 1, 1)
	if err != nil {
		t.Fatalf("PlaceInitialTriple error: %v", err)
	}
	outer := q[0]
	if !outer.Enclosing() {
		t.Fatalf("outer circle radius = %g, want negative", outer.Radius)
	}
	wantR := -(1 + 2/math.Sqrt(3))
	if math.Abs(outer.Radius-wantR) > tol {
		t.Errorf("outer radius = %g, want %g", outer.Radius, wantR)
	}
	// Center of three unit circles is their centroid.
	want := Point{1, 1 / math.Sqrt(3)}
	if outer.Center.Dist(want) > tol {
		t.Errorf("outer center = %v, want %v", outer.Center, want)
	}
}

func TestPlaceInitialTripleErrors(t *testing.T) {
	tests := []struct {
		name       string
		r1, r2, r3 float64
		code       apperrors.Code
	}{
		{"zero radius", 0, 1, 1, apperrors.ErrCodeDegenerateConfiguration},
		{"negative radius", 1, -1, 1, apperrors.ErrCodeInvalidInput},
		{"collinear", 1, 1, 0.25, apperrors.ErrCodeDegenerateConfiguration},
		{"collinear permuted", 0.25, 1, 1, apperrors.ErrCodeDegenerateConfiguration},
		{"collinear 9 4 1", 1.0 / 9, 1.0 / 4, 1, apperrors.ErrCodeDegenerateConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlaceInitialTriple(tt.r1, tt.r2, tt.r3)
			if !apperrors.Is(err, tt.code) {
				t.Errorf("PlaceInitialTriple(%g, %g, %g) error = %v, want code %s", tt.r1, tt.r2, tt.r3, err, tt.code)
			}
		})
	}
}

func TestCollinear(t *testing.T) {
	tests := []struct {
		k    [3]float64
		want bool
	}{
		{[3]float64{1, 1, 4}, true},
		{[3]float64{4, 1, 1}, true},
		{[3]float64{1, 4, 1}, true},
		{[3]float64{9, 4, 1}, true},
		{[3]float64{1, 1, 1}, false},
		{[3]float64{2, 3, 15}, false},
	}

	for _, tt := range tests {
		if got := Collinear(tt.k[0], tt.k[1], tt.k[2]); got != tt.want {
			t.Errorf("Collinear(%v) = %v, want %v", tt.k, got, tt.want)
		}
	}
}

func TestSecondSolutionInvolution(t *testing.T) {
	seeds := [][3]float64{{1, 1, 1}, {2, 3, 15}, {0.5, 0.25, 0.1}, {1, 2, 3}}

	for _, s := range seeds {
		q, err := PlaceInitialTriple(s[0], s[1], s[2])
		if err != nil {
			t.Fatalf("PlaceInitialTriple(%v) error: %v", s, err)
		}
		// Try every member of the quadruple as the fixed circle.
		for i := 0; i < 4; i++ {
			var rest []Circle
			for j := 0; j < 4; j++ {
				if j != i {
					rest = append(rest, q[j])
				}
			}
			other, err := SecondSolution(q[i], rest[0], rest[1], rest[2])
			if err != nil {
				t.Fatalf("SecondSolution error: %v", err)
			}
			for _, c := range rest {
				assertTangent(t, other, c)
			}
			back, err := SecondSolution(other, rest[0], rest[1], rest[2])
			if err != nil {
				t.Fatalf("SecondSolution (back) error: %v", err)
			}
			if math.Abs(back.Radius-q[i].Radius) > tol*math.Max(1, q[i].Size()) ||
				back.Center.Dist(q[i].Center) > tol*math.Max(1, q[i].Size()) {
				t.Errorf("seed %v fixed %d: round trip = %v, want %v", s, i, back, q[i])
			}
		}
	}
}

func TestSecondSolutionZeroCurvature(t *testing.T) {
	// Curvatures 1, 1, 0 with fixed curvature 4 give k = 2*(1+1+0)-4 = 0.
	a := NewCircle(0, 0, 1)
	b := NewCircle(2, 0, 1)
	line := Circle{Center: Point{}, Radius: math.Inf(1)}
	fixed := NewCircle(1, 0.75, 0.25)

	_, err := SecondSolution(fixed, a, b, line)
	if !apperrors.Is(err, apperrors.ErrCodeArithmeticDegenerate) {
		t.Errorf("SecondSolution error = %v, want ARITHMETIC_DEGENERATE", err)
	}
}

func TestPointMulAndSqrt(t *testing.T) {
	p := Point{2, 2 * math.Sqrt(3)}
	r := p.sqrt()
	if r.Dist(Point{math.Sqrt(3), 1}) > tol {
		t.Errorf("sqrt(%v) = %v, want (√3, 1)", p, r)
	}
	if sq := r.Mul(r); sq.Dist(p) > tol {
		t.Errorf("sqrt(p)² = %v, want %v", sq, p)
	}
	neg := Point{-4, 0}.sqrt()
	if neg.Dist(Point{0, 2}) > tol {
		t.Errorf("sqrt(-4) = %v, want (0, 2)", neg)
	}
}
