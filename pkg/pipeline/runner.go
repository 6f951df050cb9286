package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apollon/pkg/cache"
	"github.com/matzehuels/apollon/pkg/gasket"
	"github.com/matzehuels/apollon/pkg/geom"
	"github.com/matzehuels/apollon/pkg/observability"
	"github.com/matzehuels/apollon/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	genStart := time.Now()
	circles, hit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Circles = circles
	result.Stats.Circles = len(circles)
	result.Stats.GenerateTime = time.Since(genStart)
	result.CacheInfo.GenerateHit = hit

	r.Logger.Info("generated gasket",
		"circles", len(circles),
		"depth", opts.Depth,
		"cached", hit,
		"duration", result.Stats.GenerateTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	drawing, err := r.Draw(circles, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Diagnostic = drawing.Diagnostic
	result.Stats.Emitted = drawing.Emitted
	result.Stats.Omitted = drawing.Omitted
	result.Stats.MinRadius, result.Stats.MaxRadius = render.RadiusRange(circles)

	artifacts, hit, err := r.ConvertWithCacheInfo(ctx, drawing.SVG, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"emitted", drawing.Emitted,
		"omitted", drawing.Omitted,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo returns the circle sequence for opts and whether it
// came from cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) ([]geom.Circle, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.GasketKey(opts.GasketKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var circles []geom.Circle
			if err := json.Unmarshal(data, &circles); err == nil {
				observability.Cache().OnCacheHit(ctx, "gasket")
				return circles, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "gasket")
	}

	g, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	circles := g.Circles()

	if data, err := json.Marshal(circles); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.GasketTTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "gasket", len(data))
		}
	}
	return circles, false, nil
}

// Generate builds the gasket without consulting the cache. The generator
// keeps the parent links used by the tree view.
func (r *Runner) Generate(ctx context.Context, opts Options) (*gasket.Generator, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	k := opts.SeedCurvatures()

	start := time.Now()
	observability.Pipeline().OnGenerateStart(ctx, k, opts.Depth)

	var genOpts []gasket.Option
	if opts.Parallel {
		genOpts = append(genOpts, gasket.WithParallel())
	}
	g, err := gasket.New(k[0], k[1], k[2], genOpts...)
	if err == nil {
		err = g.Generate(opts.Depth)
	}

	n := 0
	if g != nil {
		n = g.Len()
	}
	observability.Pipeline().OnGenerateComplete(ctx, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Draw colors and renders circles to SVG. The radius range is taken over the
// whole sequence before any circle is colored.
func (r *Runner) Draw(circles []geom.Circle, opts Options) (render.Drawing, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return render.Drawing{}, err
	}

	lo, hi := render.RadiusRange(circles)
	enclosing := 0.0
	if ordered, ok := render.MoveEnclosingFirst(circles); ok {
		enclosing = ordered[0].Radius
	}
	cm, err := ColorMap(&opts, lo, hi, enclosing)
	if err != nil {
		return render.Drawing{}, err
	}

	d := render.RenderSVG(circles,
		render.WithColorMap(cm),
		render.WithThreshold(opts.Threshold),
		render.WithLogger(opts.Logger.With("seed", opts.SeedCurvatures())))
	return d, nil
}

// ConvertWithCacheInfo produces every requested format from svg. PDF and
// PNG are cached; hit reports whether all of them came from cache.
func (r *Runner) ConvertWithCacheInfo(ctx context.Context, svg []byte, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	svgHash := cache.Hash(svg)
	artifacts := make(map[string][]byte, len(opts.Formats))
	converted, cached := 0, 0
	var err error
	for _, f := range opts.Formats {
		format := render.Format(f)
		if format == render.FormatSVG {
			artifacts[f] = svg
			continue
		}

		converted++
		key := r.Keyer.ArtifactKey(svgHash, opts.ArtifactKeyOpts(f))
		if !opts.Refresh {
			if data, hit, cerr := r.Cache.Get(ctx, key); cerr == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[f] = data
				cached++
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		var data []byte
		data, err = render.Convert(ctx, svg, format)
		if err != nil {
			break
		}
		artifacts[f] = data
		if serr := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); serr != nil {
			r.Logger.Warn("cache write failed", "err", serr)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	return artifacts, converted > 0 && cached == converted, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
