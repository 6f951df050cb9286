package colormap

import (
	"math"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
)

// NoFill is the fill value used when a circle is not colored.
const NoFill = "none"

// Mapper maps a value to a color.
type Mapper interface {
	ColorFor(v float64) string
}

// Interval is a closed value range with a color.
type Interval struct {
	Lower, Upper float64
	Color        string
}

// ColorMap maps values to colors through an ordered list of intervals.
type ColorMap struct {
	intervals []Interval
	def       string
}

// New returns an empty map that answers def for every value.
func New(def string) *ColorMap {
	return &ColorMap{def: def}
}

// None returns a map that never fills.
func None() *ColorMap { return New(NoFill) }

// AddInterval appends [lower, upper] -> color. Earlier intervals take
// precedence on overlap.
func (m *ColorMap) AddInterval(lower, upper float64, color string) {
	m.intervals = append(m.intervals, Interval{Lower: lower, Upper: upper, Color: color})
}

// ColorFor returns the color of the first interval containing v, or the
// default color.
func (m *ColorMap) ColorFor(v float64) string {
	for _, iv := range m.intervals {
		if v >= iv.Lower && v <= iv.Upper {
			return iv.Color
		}
	}
	return m.def
}

// Intervals returns a copy of the map's intervals in lookup order.
func (m *ColorMap) Intervals() []Interval {
	return append([]Interval(nil), m.intervals...)
}

// Default returns the color used for values outside every interval.
func (m *ColorMap) Default() string { return m.def }

// Linear partitions [lo, hi] into resolution equal, contiguous intervals and
// assigns palette[i] to the i-th from the bottom. The palette must have
// exactly resolution colors.
func Linear(lo, hi float64, palette []string, resolution int) (*ColorMap, error) {
	if err := checkPalette(palette, resolution); err != nil {
		return nil, err
	}
	step := (hi - lo) / float64(resolution)
	m := New(NoFill)
	for i := range resolution {
		upper := lo + float64(i+1)*step
		if i == resolution-1 {
			upper = hi
		}
		m.AddInterval(lo+float64(i)*step, upper, palette[i])
	}
	return m, nil
}

// LogMap picks colors on a logarithmic scale over [lo, hi].
type LogMap struct {
	lo, hi  float64
	palette []string
	def     string
}

// Logarithmic returns a map whose palette index for v is
//
//	floor(|log(100·(v−lo)+1) / log(100·(hi−lo)+1)| · (resolution−1))
//
// clamped to resolution−1. Values outside [lo, hi] get NoFill.
func Logarithmic(lo, hi float64, palette []string, resolution int) (*LogMap, error) {
	if err := checkPalette(palette, resolution); err != nil {
		return nil, err
	}
	return &LogMap{lo: lo, hi: hi, palette: append([]string(nil), palette...), def: NoFill}, nil
}

// ColorFor returns the palette color for v.
func (m *LogMap) ColorFor(v float64) string {
	if v < m.lo || v > m.hi || math.IsNaN(v) {
		return m.def
	}
	return m.palette[m.Index(v)]
}

// Index returns the palette index for v without range checks.
func (m *LogMap) Index(v float64) int {
	n := len(m.palette)
	den := math.Log(100*(m.hi-m.lo) + 1)
	if den == 0 {
		return 0
	}
	idx := int(math.Floor(math.Abs(math.Log(100*(v-m.lo)+1)/den) * float64(n-1)))
	return max(0, min(idx, n-1))
}

func checkPalette(palette []string, resolution int) error {
	if resolution <= 0 {
		return apperrors.New(apperrors.ErrCodeResolutionMismatch, "resolution must be positive, got %d", resolution)
	}
	if len(palette) != resolution {
		return apperrors.New(apperrors.ErrCodeResolutionMismatch,
			"palette has %d colors, resolution is %d", len(palette), resolution)
	}
	return nil
}

var (
	_ Mapper = (*ColorMap)(nil)
	_ Mapper = (*LogMap)(nil)
)
