package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apollon/pkg/colormap"
	apperrors "github.com/matzehuels/apollon/pkg/errors"
	"github.com/matzehuels/apollon/pkg/geom"
)

const (
	// PixelWidth is the fixed width and height of every document.
	PixelWidth = 500
	// DefaultThreshold is the fraction of the enclosing radius below which
	// circles are dropped.
	DefaultThreshold = 0.005
	// StrokeColor is the outline color of every circle.
	StrokeColor = "black"
)

// Drawing is the result of rendering a gasket.
type Drawing struct {
	SVG       []byte
	Emitted   int
	Omitted   int
	Enclosing geom.Circle

	// Diagnostic is set when the drawing is empty because no circle has a
	// negative radius. It is informational; the SVG is still valid.
	Diagnostic error
}

// Empty reports whether the drawing has no circles.
func (d Drawing) Empty() bool { return d.Emitted == 0 }

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	colors    colormap.Mapper
	threshold float64
	logger    *log.Logger
}

// WithColorMap sets the mapper that turns |radius| into a fill color.
func WithColorMap(m colormap.Mapper) SVGOption { return func(r *svgRenderer) { r.colors = m } }

// WithThreshold sets the size threshold fraction. Values outside (0,1) are
// ignored.
func WithThreshold(t float64) SVGOption {
	return func(r *svgRenderer) {
		if t > 0 && t < 1 {
			r.threshold = t
		}
	}
}

func WithLogger(l *log.Logger) SVGOption { return func(r *svgRenderer) { r.logger = l } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{colors: colormap.None(), threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&r)
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// RenderSVG draws circles as an SVG document. The input slice is not
// modified; the circle with the smallest signed radius is drawn first and
// defines the viewBox.
func RenderSVG(circles []geom.Circle, opts ...SVGOption) Drawing {
	r := newSVGRenderer(opts...)

	ordered, ok := MoveEnclosingFirst(circles)
	if !ok {
		err := apperrors.New(apperrors.ErrCodeNoEnclosingCircle, "no circle with negative radius among %d", len(circles))
		r.logger.Warn("producing empty drawing", "reason", err.Message, "circles", len(circles))
		return Drawing{SVG: emptySVG(), Omitted: len(circles), Diagnostic: err}
	}

	big := ordered[0]
	R := big.Size()
	corner := big.Center.Sub(geom.Point{X: R, Y: R})
	box := 2 * R
	cutoff := r.threshold * R

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="%f %f %f %f">`+"\n",
		PixelWidth, PixelWidth, corner.X, corner.Y, box, box)
	fmt.Fprintf(&buf, `<g stroke-width="%f">`+"\n", box/PixelWidth)

	d := Drawing{Enclosing: big}
	for _, c := range ordered {
		size := c.Size()
		if !(size > cutoff) {
			d.Omitted++
			continue
		}
		fmt.Fprintf(&buf, `<circle cx="%f" cy="%f" r="%f" fill="%s" stroke="%s"/>`+"\n",
			c.Center.X, c.Center.Y, size, r.colors.ColorFor(size), StrokeColor)
		d.Emitted++
	}

	buf.WriteString("</g>\n</svg>\n")
	d.SVG = buf.Bytes()
	r.logger.Debug("rendered svg", "emitted", d.Emitted, "omitted", d.Omitted, "bytes", buf.Len())
	return d
}

// MoveEnclosingFirst returns a copy of circles with the first circle of
// minimal radius moved to the front. ok is false when that circle does not
// have a negative radius.
func MoveEnclosingFirst(circles []geom.Circle) (out []geom.Circle, ok bool) {
	if len(circles) == 0 {
		return nil, false
	}
	out = make([]geom.Circle, 0, len(circles))
	idx := 0
	for i, c := range circles {
		if c.Radius < circles[idx].Radius {
			idx = i
		}
	}
	out = append(out, circles[idx])
	out = append(out, circles[:idx]...)
	out = append(out, circles[idx+1:]...)
	return out, out[0].Radius < 0 && !math.IsInf(out[0].Radius, 0)
}

// RadiusRange returns the smallest and largest |radius| in circles, or
// (0, 0) for an empty slice.
func RadiusRange(circles []geom.Circle) (lo, hi float64) {
	if len(circles) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), 0
	for _, c := range circles {
		s := c.Size()
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	return lo, hi
}

// emptySVG has the same root and group structure as a full drawing, with no
// circles. Without a viewBox one user unit is one pixel.
func emptySVG() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", PixelWidth, PixelWidth)
	fmt.Fprintf(&buf, `<g stroke-width="%f">`+"\n", 1.0)
	buf.WriteString("</g>\n</svg>\n")
	return buf.Bytes()
}
