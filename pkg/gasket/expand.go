package gasket

import "github.com/matzehuels/apollon/pkg/geom"

// Branch is the output of one subtree expansion. Parents index into Circles;
// SeedParent refers to the subtree's root circle, which is not part of the
// branch.
type Branch struct {
	Circles []geom.Circle
	Parents []int
}

type frame struct {
	quad  Quad
	depth int
	index int
}

// Expand grows the subtree below q, which sits at the given depth, down to
// maxDepth. Nodes at depth < maxDepth contribute their three Children; the
// order matches a depth-first, left-to-right recursion.
func Expand(q Quad, depth, maxDepth int) (Branch, error) {
	var b Branch
	stack := []frame{{quad: q, depth: depth, index: SeedParent}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth >= maxDepth {
			continue
		}

		kids, err := Children(f.quad)
		if err != nil {
			return Branch{}, err
		}
		base := len(b.Circles)
		for _, k := range kids {
			b.Circles = append(b.Circles, k[0])
			b.Parents = append(b.Parents, f.index)
		}
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{quad: kids[i], depth: f.depth + 1, index: base + i})
		}
	}
	return b, nil
}

// Children returns the three quadruples obtained by replacing q[1], q[2] and
// q[3] in turn with the other circle tangent to the remaining three. The new
// circle is element 0 of each result.
func Children(q Quad) ([3]Quad, error) {
	var out [3]Quad
	a, b, c, d := q[0], q[1], q[2], q[3]

	nb, err := geom.SecondSolution(b, a, c, d)
	if err != nil {
		return out, err
	}
	nc, err := geom.SecondSolution(c, a, b, d)
	if err != nil {
		return out, err
	}
	nd, err := geom.SecondSolution(d, a, b, c)
	if err != nil {
		return out, err
	}

	out[0] = Quad{nb, a, c, d}
	out[1] = Quad{nc, a, b, d}
	out[2] = Quad{nd, a, b, c}
	return out, nil
}
