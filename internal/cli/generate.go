package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
	"github.com/matzehuels/apollon/pkg/pipeline"
)

// spinnerDepth is the depth from which generation shows a spinner.
const spinnerDepth = 8

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output     string
	depth      int
	radii      bool
	color      string
	threshold  float64
	resolution int
	colorMode  string
	formats    string
	force      bool
	noCache    bool
	refresh    bool
	parallel   bool
}

func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		depth:      pipeline.DefaultDepth,
		color:      pipeline.SchemeNone,
		threshold:  pipeline.DefaultThreshold,
		resolution: pipeline.DefaultResolution,
		colorMode:  pipeline.ModeLinear,
	}

	cmd := &cobra.Command{
		Use:   "generate c1 c2 c3",
		Short: "Generate an Apollonian gasket",
		Long: `Generate an Apollonian gasket from three mutually tangent circles.

c1, c2 and c3 are the curvatures of the starting circles (or their radii with
--radii). The number of circles grows as 2*3^D+2 with the recursion depth D;
depths above 10 are capped unless --force is given.`,
		Example: `  apollon generate 1 1 1
  apollon generate 2 3 4 -d 6 --color Blues -o gasket.svg
  apollon generate 1 2 3 --radii --color Spectral --resolution 11 --color-mode log
  apollon generate 2 2 3 -d 8 -f svg,png`,
		Aliases: []string{"gen"},
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runGenerate(cmd.Context(), args, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.depth, "depth", "d", opts.depth, "recursion depth (circles grow as 2*3^D+2)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default ag_<c1>_<c2>_<c3>.<format>)")
	f.BoolVarP(&opts.radii, "radii", "r", false, "interpret c1, c2, c3 as radii instead of curvatures")
	f.StringVar(&opts.color, "color", opts.color, "color scheme, or none (see: apollon schemes)")
	f.Float64Var(&opts.threshold, "threshold", opts.threshold, "drop circles smaller than this fraction of the enclosing radius")
	f.IntVar(&opts.resolution, "resolution", opts.resolution, "number of colors taken from the scheme")
	f.StringVar(&opts.colorMode, "color-mode", opts.colorMode, "color scale: linear, log")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), pdf, png (comma-separated)")
	f.BoolVar(&opts.force, "force", false, "allow depths above 10")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	f.BoolVar(&opts.parallel, "parallel", false, "expand the four top-level branches concurrently")

	cmd.RegisterFlagCompletionFunc("color", c.completeSchemes)
	cmd.RegisterFlagCompletionFunc("color-mode", cobra.FixedCompletions(
		[]string{pipeline.ModeLinear, pipeline.ModeLog}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// applyConfig fills every flag the user did not set from the config file.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *generateOpts) {
	cfg := c.config
	changed := cmd.Flags().Changed
	if cfg.Depth != nil && !changed("depth") {
		opts.depth = *cfg.Depth
	}
	if cfg.Threshold != nil && !changed("threshold") {
		opts.threshold = *cfg.Threshold
	}
	if cfg.Color != "" && !changed("color") {
		opts.color = cfg.Color
	}
	if cfg.Resolution != 0 && !changed("resolution") {
		opts.resolution = cfg.Resolution
	}
	if cfg.ColorMode != "" && !changed("color-mode") {
		opts.colorMode = cfg.ColorMode
	}
}

func (c *CLI) runGenerate(ctx context.Context, args []string, opts generateOpts) error {
	logger := loggerFromContext(ctx)

	seed, err := parseSeed(args)
	if err != nil {
		return err
	}
	depth, clamped := clampDepth(opts.depth, opts.force)
	if clamped {
		printWarning("Number of circles grows as 2*3^D; depth %d capped at %d (use --force to go deeper)",
			opts.depth, apperrors.MaxSafeDepth)
	}

	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Curvatures: seed,
		Radii:      opts.radii,
		Depth:      depth,
		Force:      opts.force,
		Parallel:   opts.parallel,
		Threshold:  opts.threshold,
		Scheme:     opts.color,
		Resolution: opts.resolution,
		Mode:       opts.colorMode,
		Formats:    parseFormats(opts.formats),
		Refresh:    opts.refresh,
		Catalog:    catalog,
		Logger:     logger,
	}

	var spin *Spinner
	if depth >= spinnerDepth {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d levels...", depth))
		spin.Start()
	}
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d circles", result.Stats.Circles), "depth", depth, "drawn", result.Stats.Emitted)

	if result.Diagnostic != nil {
		printWarning("No enclosing circle found for this seed; the drawing is empty")
		printDetail("%s", apperrors.UserMessage(result.Diagnostic))
	}

	paths := outputPaths(opts.output, popts.SeedCurvatures(), popts.Formats)
	printSuccess("Gasket written")
	printStats(result.Stats.Circles, result.Stats.Emitted, result.CacheInfo.GenerateHit)
	for _, format := range popts.Formats {
		path := paths[format]
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// parseSeed parses the three positional numbers.
func parseSeed(args []string) ([3]float64, error) {
	var seed [3]float64
	if len(args) != 3 {
		return seed, apperrors.New(apperrors.ErrCodeInvalidInput, "expected 3 numbers, got %d", len(args))
	}
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return seed, apperrors.New(apperrors.ErrCodeInvalidInput, "c%d: %q is not a number", i+1, a)
		}
		seed[i] = v
	}
	return seed, nil
}

// clampDepth caps depth at MaxSafeDepth unless force is set.
func clampDepth(depth int, force bool) (int, bool) {
	if depth > apperrors.MaxSafeDepth && !force {
		return apperrors.MaxSafeDepth, true
	}
	return depth, false
}

// outputPaths picks a file per format. A single format uses output as is;
// several formats share output's base name with their own extensions.
func outputPaths(output string, curvatures [3]float64, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		switch {
		case output == "":
			paths[f] = pipeline.DefaultOutputName(curvatures, f)
		case len(formats) == 1:
			paths[f] = output
		default:
			paths[f] = strings.TrimSuffix(output, filepath.Ext(output)) + "." + f
		}
	}
	return paths
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
