// Package pipeline runs the generate -> color -> render pipeline for Apollon.
//
// The CLI and the HTTP server both go through a [Runner] so that validation,
// caching and defaults behave the same everywhere.
//
// # Stages
//
//  1. Generate: place the seed and expand the gasket to the requested depth
//  2. Range: find the smallest and largest |radius| over every circle. This
//     needs the complete sequence, so coloring cannot start before
//     generation has finished.
//  3. Color: build a linear or logarithmic map over that range
//  4. Render: write the SVG, then convert to PDF or PNG if asked
//
// Generated circles and converted artifacts are cached. The SVG is always
// rendered from the circles, which is a single linear pass.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Curvatures: [3]float64{2, 3, 4},
//	    Depth:      5,
//	    Scheme:     "Blues",
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apollon/pkg/cache"
	"github.com/matzehuels/apollon/pkg/colormap"
	apperrors "github.com/matzehuels/apollon/pkg/errors"
	"github.com/matzehuels/apollon/pkg/geom"
	"github.com/matzehuels/apollon/pkg/render"
)

// Defaults shared by the CLI, the config file and the server.
const (
	DefaultDepth      = 3
	DefaultThreshold  = render.DefaultThreshold
	DefaultResolution = colormap.DefaultResolution

	// SchemeNone disables fill colors.
	SchemeNone = "none"

	ModeLinear = "linear"
	ModeLog    = "log"
)

// Options contains all configuration for one pipeline run.
// Depth has no default: zero is a valid depth.
type Options struct {
	// Curvatures are the three seed values. With Radii set they are radii.
	Curvatures [3]float64 `json:"c"`
	Radii      bool       `json:"radii,omitempty"`
	Depth      int        `json:"depth"`
	Force      bool       `json:"force,omitempty"`
	Parallel   bool       `json:"parallel,omitempty"`

	Threshold  float64  `json:"threshold,omitempty"`
	Scheme     string   `json:"color,omitempty"`
	Resolution int      `json:"resolution,omitempty"`
	Mode       string   `json:"mode,omitempty"`
	Formats    []string `json:"formats,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Catalog *colormap.Catalog `json:"-"`
	Logger  *log.Logger       `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Circles is the generated sequence in generation order.
	Circles []geom.Circle

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Diagnostic is set when the drawing is empty because no enclosing
	// circle was found. The run still succeeds.
	Diagnostic error

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Circles      int
	Emitted      int
	Omitted      int
	MinRadius    float64
	MaxRadius    float64
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	GenerateHit bool
	RenderHit   bool // every converted artifact came from cache
}

// ValidateFormats checks that all formats are known.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMode checks the coloring mode.
func ValidateMode(mode string) error {
	if mode != ModeLinear && mode != ModeLog {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid color mode %q (must be one of: linear, log)", mode)
	}
	return nil
}

// SeedCurvatures returns the seed as curvatures, converting radii by
// reciprocal.
func (o *Options) SeedCurvatures() [3]float64 {
	if !o.Radii {
		return o.Curvatures
	}
	var k [3]float64
	for i, r := range o.Curvatures {
		k[i] = 1 / r
	}
	return k
}

// ValidateAndSetDefaults checks every option and applies defaults. It is
// idempotent. Input errors are reported before anything is generated.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	c := o.Curvatures
	if err := apperrors.ValidateSeed(c[0], c[1], c[2]); err != nil {
		return err
	}
	k := o.SeedCurvatures()
	if geom.Collinear(k[0], k[1], k[2]) {
		return apperrors.New(apperrors.ErrCodeDegenerateConfiguration,
			"no apollonian gasket possible for curvatures %g, %g, %g", k[0], k[1], k[2])
	}
	if err := apperrors.ValidateDepth(o.Depth, o.Force); err != nil {
		return err
	}
	if err := apperrors.ValidateThreshold(o.Threshold); err != nil {
		return err
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scheme != SchemeNone {
		if err := apperrors.ValidateSchemeName(o.Scheme); err != nil {
			return err
		}
		if _, err := o.Catalog.Colors(o.Scheme, o.Resolution); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Scheme == "" {
		o.Scheme = SchemeNone
	}
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	if o.Mode == "" {
		o.Mode = ModeLinear
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{string(render.FormatSVG)}
	}
	if o.Catalog == nil {
		o.Catalog = colormap.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// GasketKeyOpts returns cache key options for generation.
func (o *Options) GasketKeyOpts() cache.GasketKeyOpts {
	return cache.GasketKeyOpts{Curvatures: o.SeedCurvatures(), Depth: o.Depth}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Threshold: o.Threshold, Scheme: o.Scheme}
	if o.Scheme != SchemeNone {
		opts.Resolution = o.Resolution
		opts.Mode = o.Mode
	}
	return opts
}

// DefaultOutputName returns ag_<k1>_<k2>_<k3>.<ext> for the seed
// curvatures.
func DefaultOutputName(curvatures [3]float64, format string) string {
	if format == "" {
		format = string(render.FormatSVG)
	}
	return fmt.Sprintf("ag_%.4f_%.4f_%.4f.%s", curvatures[0], curvatures[1], curvatures[2], format)
}

// ColorMap builds the mapper for a run from the radius range of the
// generated circles. Linear mode spans [minRadius, maxRadius]; log mode spans
// [threshold·|R|, |R|] where R is the enclosing radius.
func ColorMap(o *Options, minRadius, maxRadius, enclosing float64) (colormap.Mapper, error) {
	if o.Scheme == SchemeNone {
		return colormap.None(), nil
	}
	palette, err := o.Catalog.Colors(o.Scheme, o.Resolution)
	if err != nil {
		return nil, err
	}
	if o.Mode == ModeLog {
		R := math.Abs(enclosing)
		return colormap.Logarithmic(o.Threshold*R, R, palette, o.Resolution)
	}
	return colormap.Linear(minRadius, maxRadius, palette, o.Resolution)
}
