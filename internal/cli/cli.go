// Package cli implements the flowpack command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowpack/pkg/buildinfo"
	"github.com/matzehuels/flowpack/pkg/cache"
	"github.com/matzehuels/flowpack/pkg/pipeline"
	"github.com/matzehuels/flowpack/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "flowpack"

	// envRedisURL selects the Redis layout cache for "serve".
	envRedisURL = "FLOWPACK_REDIS_URL"

	// envMongoURI selects the MongoDB result store for "serve".
	envMongoURI = "FLOWPACK_MONGO_URI"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
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
		Short: "Flowpack packs boxes into wrapping lines",
		Long: `Flowpack lays out a flat list of boxes in a flow container: boxes are
packed into lines that wrap at the container's bound, lines are stacked,
and leftover space is shared by gravity and weight.

Scenes are TOML or JSON files describing the container and its items.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/flowpack/).
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

// basePath derives the base output path. Without an explicit output the
// input's extension is stripped; a known format extension on output is
// stripped too, so "-o out.svg -f svg,txt" writes out.svg and out.txt.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// =============================================================================
// Flag Helpers
// =============================================================================

// containerFlags binds the container override flags shared by the layout
// and preview commands.
type containerFlags struct {
	c             scene.Container
	defaultWeight float64
	noCanFit      bool
}

func (f *containerFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.c.Orientation, "orientation", "", "line direction: horizontal, vertical")
	fs.StringVar(&f.c.Gravity, "gravity", "", `container gravity, e.g. "center" or "top|fill_horizontal"`)
	fs.IntVar(&f.c.Width, "width", 0, "container width")
	fs.IntVar(&f.c.Height, "height", 0, "container height")
	fs.StringVar(&f.c.WidthMode, "width-mode", "", "width mode: exact, at_most, unspecified")
	fs.StringVar(&f.c.HeightMode, "height-mode", "", "height mode: exact, at_most, unspecified")
	fs.Float64Var(&f.defaultWeight, "default-weight", 0, "weight for items without one")
	fs.BoolVar(&f.noCanFit, "no-can-fit", false, "never wrap early; only explicit breaks start a line")
}

// overrides returns the container settings given on the command line.
// Pointer-valued settings are only set when their flag was used.
func (f *containerFlags) overrides(cmd *cobra.Command) scene.Container {
	c := f.c
	if cmd.Flags().Changed("default-weight") {
		w := f.defaultWeight
		c.DefaultWeight = &w
	}
	if f.noCanFit {
		canFit := false
		c.CheckCanFit = &canFit
	}
	return c
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return pipeline.DefaultFormats
	}
	return strings.Split(s, ",")
}
