package render

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apollon/pkg/colormap"
	apperrors "github.com/matzehuels/apollon/pkg/errors"
	"github.com/matzehuels/apollon/pkg/gasket"
	"github.com/matzehuels/apollon/pkg/geom"
)

func quiet() SVGOption { return WithLogger(log.New(io.Discard)) }

func TestRenderSVGUnitSeed(t *testing.T) {
	g, err := gasket.New(1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Generate(0); err != nil {
		t.Fatal(err)
	}

	d := RenderSVG(g.Circles(), quiet())
	if d.Diagnostic != nil {
		t.Fatalf("unexpected diagnostic: %v", d.Diagnostic)
	}
	if !d.Enclosing.Enclosing() {
		t.Errorf("enclosing circle has radius %v, want negative", d.Enclosing.Radius)
	}
	if d.Emitted != 4 || d.Omitted != 0 {
		t.Errorf("emitted/omitted = %d/%d, want 4/0", d.Emitted, d.Omitted)
	}

	svg := string(d.SVG)
	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="500" height="500" viewBox="`) {
		t.Errorf("unexpected header: %q", firstLine(svg))
	}
	if got := strings.Count(svg, "<circle "); got != 4 {
		t.Errorf("got %d circle elements, want 4", got)
	}
	if !strings.Contains(svg, `<g stroke-width="`) || !strings.HasSuffix(svg, "</g>\n</svg>\n") {
		t.Error("missing group or closing tags")
	}
	// The enclosing circle is drawn first.
	R := 1 + 2/math.Sqrt(3)
	lines := strings.Split(svg, "\n")
	if !strings.Contains(lines[2], formatRadius(R)) {
		t.Errorf("first circle = %q, want r=%s", lines[2], formatRadius(R))
	}
}

func TestRenderSVGViewBox(t *testing.T) {
	circles := []geom.Circle{
		geom.NewCircle(1, 1, 0.5),
		geom.NewCircle(2, 3, -4),
	}
	d := RenderSVG(circles, quiet())
	want := `viewBox="-2.000000 -1.000000 8.000000 8.000000"`
	if !bytes.Contains(d.SVG, []byte(want)) {
		t.Errorf("header %q does not contain %s", firstLine(string(d.SVG)), want)
	}
	if !bytes.Contains(d.SVG, []byte(`<g stroke-width="0.016000">`)) {
		t.Errorf("unexpected stroke width in %s", d.SVG)
	}
	if circles[0].Radius != 0.5 {
		t.Error("input slice was modified")
	}
}

func TestRenderSVGThreshold(t *testing.T) {
	circles := []geom.Circle{
		geom.NewCircle(0, 0, 0.1),
		geom.NewCircle(0, 0, -10),
		geom.NewCircle(1, 1, 0.001),
	}
	d := RenderSVG(circles, quiet(), WithThreshold(0.005))
	if d.Emitted != 2 || d.Omitted != 1 {
		t.Fatalf("emitted/omitted = %d/%d, want 2/1", d.Emitted, d.Omitted)
	}
	svg := string(d.SVG)
	if !strings.Contains(svg, `r="0.100000"`) {
		t.Error("radius 0.1 should be emitted")
	}
	if strings.Contains(svg, `r="0.001000"`) {
		t.Error("radius 0.001 should be omitted")
	}
}

func TestRenderSVGColors(t *testing.T) {
	cm := colormap.New("none")
	cm.AddInterval(0, 1, "#ff0000")
	circles := []geom.Circle{
		geom.NewCircle(0, 0, -2),
		geom.NewCircle(1, 0, 1),
	}
	svg := string(RenderSVG(circles, quiet(), WithColorMap(cm)).SVG)
	if !strings.Contains(svg, `r="2.000000" fill="none" stroke="black"`) {
		t.Errorf("enclosing circle fill wrong:\n%s", svg)
	}
	if !strings.Contains(svg, `r="1.000000" fill="#ff0000" stroke="black"`) {
		t.Errorf("inner circle fill wrong:\n%s", svg)
	}
}

func TestRenderSVGNoEnclosingCircle(t *testing.T) {
	circles := []geom.Circle{
		geom.NewCircle(0, 0, 1),
		geom.NewCircle(2, 0, 1),
	}
	d := RenderSVG(circles, quiet())
	if !apperrors.Is(d.Diagnostic, apperrors.ErrCodeNoEnclosingCircle) {
		t.Fatalf("diagnostic = %v, want NO_ENCLOSING_CIRCLE", d.Diagnostic)
	}
	if !d.Empty() {
		t.Error("drawing should be empty")
	}
	want := "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"500\" height=\"500\">\n<g stroke-width=\"1.000000\">\n</g>\n</svg>\n"
	if string(d.SVG) != want {
		t.Errorf("got %q, want %q", d.SVG, want)
	}

	if d := RenderSVG(nil, quiet()); d.Diagnostic == nil {
		t.Error("empty input should produce a diagnostic")
	}
}

func TestMoveEnclosingFirst(t *testing.T) {
	in := []geom.Circle{
		geom.NewCircle(0, 0, 1),
		geom.NewCircle(0, 0, 2),
		geom.NewCircle(0, 0, -3),
		geom.NewCircle(0, 0, 0.5),
	}
	out, ok := MoveEnclosingFirst(in)
	if !ok {
		t.Fatal("expected enclosing circle")
	}
	want := []float64{-3, 1, 2, 0.5}
	for i, r := range want {
		if out[i].Radius != r {
			t.Errorf("out[%d].Radius = %v, want %v", i, out[i].Radius, r)
		}
	}
}

func TestRadiusRange(t *testing.T) {
	circles := []geom.Circle{
		geom.NewCircle(0, 0, -10),
		geom.NewCircle(0, 0, 3),
		geom.NewCircle(0, 0, 0.2),
		geom.NewCircle(0, 0, 0.01),
	}
	lo, hi := RadiusRange(circles)
	if lo != 0.01 || hi != 10 {
		t.Errorf("RadiusRange = %v, %v; want 0.01, 10", lo, hi)
	}
	if lo, hi := RadiusRange(nil); lo != 0 || hi != 0 {
		t.Errorf("RadiusRange(nil) = %v, %v", lo, hi)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"svg", "pdf", "png"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("gif"); !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(gif) = %v", err)
	}
	if FormatPNG.ContentType() != "image/png" {
		t.Error("wrong PNG content type")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func formatRadius(r float64) string {
	return fmt.Sprintf(`r="%f"`, r)
}
