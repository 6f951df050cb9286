package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apollon/pkg/pipeline"
)

func (c *CLI) schemesCommand() *cobra.Command {
	var showColors bool

	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List the available color schemes",
		Long: `List the available color schemes with their smallest and largest
resolution (number of colors). Use --schemes to add schemes from a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := c.catalog()
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Available color schemes (name: resmin -- resmax)"))
			for _, info := range catalog.Info() {
				fmt.Printf("%s: %d -- %d\n", StyleHighlight.Render(info.Name), info.Low, info.High)
				if showColors {
					colors, err := catalog.Colors(info.Name, info.High)
					if err != nil {
						return err
					}
					fmt.Println("  " + swatch(colors))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showColors, "show", false, "show a swatch of each scheme at its highest resolution")
	return cmd
}

// swatch renders one colored block per color.
func swatch(colors []string) string {
	var b strings.Builder
	for _, col := range colors {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(col)).Render("  "))
	}
	return b.String()
}

// completeSchemes offers scheme names for --color.
func (c *CLI) completeSchemes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	catalog, err := c.catalog()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return append([]string{pipeline.SchemeNone}, catalog.Names()...), cobra.ShellCompDirectiveNoFileComp
}
