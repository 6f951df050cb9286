// Package pkg provides the libraries behind apollon, a generator for
// Apollonian gaskets.
//
// # Overview
//
// Three mutually tangent circles, given by their curvatures, determine a
// fourth circle enclosing them and a fifth nestled between them. Repeating
// that construction in every curvilinear triangle fills the enclosing disk
// with ever smaller circles. The pkg directory is organized as:
//
//  1. [geom] - Circle geometry (Descartes' theorem, tangent circle solver)
//  2. [gasket] - Recursive generation of the circle sequence
//  3. [colormap] - Color schemes and size-to-color maps
//  4. [render] - SVG output and PDF/PNG conversion
//  5. [pipeline] - Orchestration (generate → color → render) with caching
//  6. [cache], [server], [observability], [errors], [buildinfo] - Infrastructure
//
// # Architecture
//
//	curvatures k1, k2, k3
//	         ↓
//	    [geom] (place the seed, solve for the outer circle)
//	         ↓
//	    [gasket] (expand every triple to a depth)
//	         ↓
//	    [colormap] + [render] (filter by size, color, draw)
//	         ↓
//	    SVG/PDF/PNG
//
// # Quick Start
//
//	g, err := gasket.New(2, 2, 3)
//	if err != nil {
//	    return err
//	}
//	if err := g.Generate(5); err != nil {
//	    return err
//	}
//
//	cat := colormap.Default()
//	colors, _ := cat.Colors("Blues", 8)
//	lo, hi := render.RadiusRange(g.Circles())
//	cm, _ := colormap.Linear(lo, hi, colors, 8)
//
//	d := render.RenderSVG(g.Circles(), render.WithColorMap(cm))
//	os.WriteFile("gasket.svg", d.SVG, 0644)
//
// Or let [pipeline.Runner] do it, with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Curvatures: [3]float64{2, 2, 3},
//	    Depth:      5,
//	    Scheme:     "Blues",
//	})
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/apollon/pkg/geom
// [gasket]: https://pkg.go.dev/github.com/matzehuels/apollon/pkg/gasket
// [colormap]: https://pkg.go.dev/github.com/matzehuels/apollon/pkg/colormap
// [render]: https://pkg.go.dev/github.com/matzehuels/apollon/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/apollon/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/apollon/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/apollon/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/apollon/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/apollon/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/apollon/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/apollon/pkg/buildinfo
package pkg
