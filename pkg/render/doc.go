// Package render turns a generated gasket into a drawing.
//
// # SVG
//
// [RenderSVG] takes the generator's circle sequence and writes a fixed
// 500x500 document whose viewBox is the bounding square of the enclosing
// circle:
//
//	gen, _ := gasket.New(1, 1, 1)
//	gen.Generate(5)
//	d := render.RenderSVG(gen.Circles(), render.WithColorMap(cm))
//	os.WriteFile("ag.svg", d.SVG, 0o644)
//
// The circle with the smallest signed radius is drawn first. Circles whose
// |radius| is not above threshold·|R| are dropped, which keeps file size
// bounded for deep recursions. The stroke width is scaled by the box size so
// lines look the same at every seed scale.
//
// If no circle has a negative radius the result is an empty but valid
// document and [Drawing.Diagnostic] carries a NO_ENCLOSING_CIRCLE error.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert an SVG using the external
// rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(ctx, d.SVG)
//	png, err := render.ToPNG(ctx, d.SVG, 2.0)
package render
