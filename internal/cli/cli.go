// Package cli implements the apollon command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apollon/pkg/buildinfo"
	"github.com/matzehuels/apollon/pkg/cache"
	"github.com/matzehuels/apollon/pkg/colormap"
	"github.com/matzehuels/apollon/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "apollon"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile  string
	schemesFile string
	logFormat   string
	config      Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Apollon draws Apollonian gaskets as SVG",
		Long: `Apollon generates Apollonian gaskets from three mutually tangent circles,
given by their curvatures (or radii), and writes them as SVG, PDF or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setLogFormat(c.Logger, c.logFormat); err != nil {
				return err
			}
			cfg, err := loadConfig(c.configFile)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/apollon/config.toml)")
	root.PersistentFlags().StringVar(&c.schemesFile, "schemes", "", "extra color scheme file (.json or .toml)")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "text", "log format: text, json, logfmt")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.schemesCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.config.NoCache {
		return cache.NewNullCache(), nil
	}
	if c.config.CacheURL != "" {
		return cache.Open(c.config.CacheURL, "")
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// catalog returns the embedded schemes plus any extra scheme file from the
// --schemes flag or the config file.
func (c *CLI) catalog() (*colormap.Catalog, error) {
	path := c.schemesFile
	if path == "" {
		path = c.config.Schemes
	}
	if path == "" {
		return colormap.Default(), nil
	}
	extra, err := colormap.LoadFile(expandHome(path))
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded color schemes", "file", path, "schemes", len(extra.Names()))
	return colormap.Default().Merge(extra), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/apollon/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/apollon/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
