package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
	"github.com/matzehuels/apollon/pkg/gasket"
	"github.com/matzehuels/apollon/pkg/pipeline"
)

// maxTreeDepth keeps the Graphviz layout readable.
const maxTreeDepth = 4

type treeOpts struct {
	output string
	depth  int
	radii  bool
	dot    bool
}

func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{depth: 2}

	cmd := &cobra.Command{
		Use:   "tree c1 c2 c3",
		Short: "Render the generation tree of a gasket",
		Long: `Render which circle produced which. Each circle links to the circle it
was generated from; the four seed circles hang off a common root.

Output is SVG rendered with Graphviz, or raw DOT with --dot.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default tree_<c1>_<c2>_<c3>.svg)")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", opts.depth, fmt.Sprintf("recursion depth (max %d)", maxTreeDepth))
	cmd.Flags().BoolVarP(&opts.radii, "radii", "r", false, "interpret c1, c2, c3 as radii instead of curvatures")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "write DOT instead of SVG")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, args []string, opts treeOpts) error {
	seed, err := parseSeed(args)
	if err != nil {
		return err
	}
	if opts.depth > maxTreeDepth {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "tree depth %d is too large (max %d)", opts.depth, maxTreeDepth)
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	popts := pipeline.Options{Curvatures: seed, Radii: opts.radii, Depth: opts.depth}
	g, err := runner.Generate(ctx, popts)
	if err != nil {
		return err
	}

	dot := gasket.DOT(g)
	data := []byte(dot)
	ext := "dot"
	if !opts.dot {
		if data, err = gasket.RenderTreeSVG(ctx, dot); err != nil {
			return err
		}
		ext = "svg"
	}

	path := opts.output
	if path == "" {
		k := popts.SeedCurvatures()
		path = fmt.Sprintf("tree_%.4f_%.4f_%.4f.%s", k[0], k[1], k[2], ext)
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	printSuccess("Generation tree written (%d circles)", g.Len())
	printFile(path)
	return nil
}
