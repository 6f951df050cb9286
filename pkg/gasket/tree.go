package gasket

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// DOT converts the generator's circles and parent links into a Graphviz
// digraph. The four seed circles hang off a single "seed" node; every other
// circle points back to the circle whose quadruple produced it.
func DOT(g *Generator) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10];\n")
	buf.WriteString("  seed [shape=box, label=\"seed\"];\n")
	buf.WriteString("\n")

	circles, parents := g.circles, g.parents
	for i, c := range circles {
		attrs := fmt.Sprintf("label=\"%d\\nr=%.3g\"", i, c.Radius)
		if c.Enclosing() {
			attrs += ", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  c%d [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	for i, p := range parents {
		if p == SeedParent {
			fmt.Fprintf(&buf, "  seed -> c%d;\n", i)
		} else {
			fmt.Fprintf(&buf, "  c%d -> c%d;\n", p, i)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderTreeSVG renders a DOT graph to SVG using Graphviz.
func RenderTreeSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
