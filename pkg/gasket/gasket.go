package gasket

import (
	"math"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
	"github.com/matzehuels/apollon/pkg/geom"
)

// SeedParent marks circles that hang off the seed quadruple rather than off a
// generated circle.
const SeedParent = -1

// maxPrealloc caps the capacity reserved up front for deep generations.
const maxPrealloc = 1 << 20

// Quad is four mutually tangent circles. Quad[0] is the circle most recently
// introduced; the other three are the triple it was solved against.
type Quad [4]geom.Circle

// Generator owns the circle sequence of one gasket.
type Generator struct {
	seed     Quad
	circles  []geom.Circle
	parents  []int
	parallel bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithParallel expands the four depth-0 subtrees concurrently.
func WithParallel() Option { return func(g *Generator) { g.parallel = true } }

// New creates a generator from three seed curvatures.
// It fails with INVALID_INPUT for zero, negative or non-finite curvatures and
// with DEGENERATE_CONFIGURATION for triples whose enclosing circle would be a
// straight line.
func New(k1, k2, k3 float64, opts ...Option) (*Generator, error) {
	if err := apperrors.ValidateSeed(k1, k2, k3); err != nil {
		return nil, err
	}
	if geom.Collinear(k1, k2, k3) {
		return nil, apperrors.New(apperrors.ErrCodeDegenerateConfiguration,
			"no apollonian gasket possible for curvatures %g, %g, %g", k1, k2, k3)
	}
	seed, err := geom.PlaceInitialTriple(1/k1, 1/k2, 1/k3)
	if err != nil {
		return nil, err
	}

	g := &Generator{seed: Quad(seed)}
	for _, opt := range opts {
		opt(g)
	}
	g.reset(0)
	return g, nil
}

// NewFromRadii creates a generator from three seed radii.
func NewFromRadii(r1, r2, r3 float64, opts ...Option) (*Generator, error) {
	if err := apperrors.ValidateSeed(r1, r2, r3); err != nil {
		return nil, err
	}
	return New(1/r1, 1/r2, 1/r3, opts...)
}

// Seed returns the seed quadruple, enclosing circle first.
func (g *Generator) Seed() Quad { return g.seed }

// Circles returns a copy of the generated sequence.
func (g *Generator) Circles() []geom.Circle {
	out := make([]geom.Circle, len(g.circles))
	copy(out, g.circles)
	return out
}

// Parents returns, for each circle, the index of the circle whose quadruple
// produced it, or SeedParent.
func (g *Generator) Parents() []int {
	out := make([]int, len(g.parents))
	copy(out, g.parents)
	return out
}

// Len returns the number of circles generated so far.
func (g *Generator) Len() int { return len(g.circles) }

// Generate rebuilds the gasket up to maxDepth. Previously generated circles
// are discarded first, so repeated calls are not additive.
//
// A zero curvature anywhere in the recursion aborts the whole generation with
// ARITHMETIC_DEGENERATE and leaves only the seed.
func (g *Generator) Generate(maxDepth int) error {
	if maxDepth < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "depth must be non-negative, got %d", maxDepth)
	}
	g.reset(maxDepth)
	if maxDepth == 0 {
		return nil
	}

	s := g.seed
	special, err := geom.SecondSolution(s[0], s[1], s[2], s[3])
	if err != nil {
		return err
	}
	outer, err := Children(s)
	if err != nil {
		return err
	}
	roots := []Quad{{special, s[1], s[2], s[3]}, outer[0], outer[1], outer[2]}

	branches, err := g.expandRoots(roots, maxDepth)
	if err != nil {
		g.reset(0)
		return err
	}

	// seed, special, special's subtree, the three outer circles, their subtrees
	g.appendRoot(special)
	g.appendBranch(branches[0], len(g.circles)-1)
	first := len(g.circles)
	for _, q := range outer {
		g.appendRoot(q[0])
	}
	for i, b := range branches[1:] {
		g.appendBranch(b, first+i)
	}
	return nil
}

func (g *Generator) reset(maxDepth int) {
	n := min(Count(maxDepth), maxPrealloc)
	g.circles = make([]geom.Circle, 4, n)
	g.parents = make([]int, 4, n)
	copy(g.circles, g.seed[:])
	for i := range g.parents {
		g.parents[i] = SeedParent
	}
}

func (g *Generator) appendRoot(c geom.Circle) {
	g.circles = append(g.circles, c)
	g.parents = append(g.parents, SeedParent)
}

func (g *Generator) appendBranch(b Branch, root int) {
	offset := len(g.circles)
	g.circles = append(g.circles, b.Circles...)
	for _, p := range b.Parents {
		if p == SeedParent {
			g.parents = append(g.parents, root)
		} else {
			g.parents = append(g.parents, offset+p)
		}
	}
}

func (g *Generator) expandRoots(roots []Quad, maxDepth int) ([]Branch, error) {
	branches := make([]Branch, len(roots))
	if !g.parallel {
		for i, q := range roots {
			b, err := Expand(q, 1, maxDepth)
			if err != nil {
				return nil, err
			}
			branches[i] = b
		}
		return branches, nil
	}

	var eg errgroup.Group
	for i, q := range roots {
		eg.Go(func() error {
			b, err := Expand(q, 1, maxDepth)
			if err != nil {
				return err
			}
			branches[i] = b
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return branches, nil
}

// Count returns the number of circles Generate(depth) produces: 2·3^depth + 2.
// It saturates at math.MaxInt for depths whose count does not fit.
func Count(depth int) int {
	if depth <= 0 {
		return 4
	}
	p := 1
	for range depth {
		if p > (math.MaxInt-2)/6 {
			return math.MaxInt
		}
		p *= 3
	}
	return 2*p + 2
}
