package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowpack/pkg/buildinfo"
	"github.com/matzehuels/flowpack/pkg/pipeline"
	"github.com/matzehuels/flowpack/pkg/scene"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	container containerFlags
	output    string // output file, base path for several formats, or "-" for stdout
	formats   string // comma-separated output formats
	debug     bool   // draw line bands, margins and padding
	scale     float64
	noCache   bool
	refresh   bool
	lines     bool // print a per-line summary table
}

// layoutCommand creates the layout command: scene file in, rendered frame out.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "layout [scene.toml|scene.json]",
		Short: "Lay out a scene and render it",
		Long: `Lay out a scene and render it.

The scene file gives the container settings and its items. Container
flags override the values from the file, so one scene can be tried at
several widths without editing it:

  flowpack layout cards.toml --width 40 -f svg,txt

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts.container.overrides(cmd), opts)
		},
	}

	opts.container.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file or base path (default: <input> without extension; "-" for stdout)`)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, txt (comma-separated)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "draw line bands, margins and padding")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "SVG pixels per layout unit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&opts.lines, "lines", false, "print a summary of every line")
	completeFiles(cmd, "toml", "json")

	return cmd
}

// runLayout reads the scene, runs the pipeline and writes the outputs.
func (c *CLI) runLayout(ctx context.Context, input string, overrides scene.Container, opts layoutOpts) error {
	format, err := scene.FormatFromPath(input)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read scene %s: %w", input, err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		SceneFormat: format,
		Container:   overrides,
		Formats:     parseFormats(opts.formats),
		Debug:       opts.debug,
		Scale:       opts.scale,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
		Generator:   buildinfo.Generator(),
	}

	spinner := newSpinnerWithContext(ctx, "Laying out "+input+"...")
	spinner.Start()

	result, err := runner.Execute(ctx, data, pipeOpts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if opts.output == "-" {
		return writeStdout(result.Artifacts, pipeOpts.Formats)
	}

	prog := newProgress(c.Logger)
	paths, err := writeArtifacts(basePath(opts.output, input), result.Artifacts, pipeOpts.Formats)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(paths)))

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Frame, result.CacheInfo.LayoutHit)
	if opts.lines && len(result.Frame.Lines) > 0 {
		fmt.Println(linesTable(result.Frame))
	}
	printNewline()
	printNextStep("Preview", appName+" preview "+input)

	return nil
}
