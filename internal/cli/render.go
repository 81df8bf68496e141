package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowpack/pkg/buildinfo"
	"github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/pipeline"
	"github.com/matzehuels/flowpack/pkg/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string
	formats string
	debug   bool
	scale   float64
	color   bool
	noCache bool
}

// renderCommand creates the render command: a frame JSON document (from
// "layout -f json") in, other formats out, without laying out again.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [frame.json]",
		Short: "Render a laid-out frame to SVG or text",
		Long: `Render a laid-out frame to SVG or text.

The input is the JSON document written by "layout -f json". Rendering it
again does not repeat the layout, so the frame can be inspected and
re-rendered with different debug or scale settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file or base path ("-" for stdout)`)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), txt (comma-separated)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "draw line bands, margins and padding")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "SVG pixels per layout unit")
	cmd.Flags().BoolVar(&opts.color, "color", false, "color the text output (txt)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	completeFiles(cmd, "json")

	return cmd
}

// runRender loads a frame and renders it to the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read frame %s: %w", input, err)
	}
	frame, err := pipeline.UnmarshalFrame(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode frame %s", input)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Formats:   parseFormats(opts.formats),
		Debug:     opts.debug,
		Scale:     opts.scale,
		Color:     opts.color,
		Logger:    c.Logger,
		Generator: buildinfo.Generator(),
	}

	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, frame, pipeOpts)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		return writeStdout(artifacts, pipeOpts.Formats)
	}

	paths, err := writeArtifacts(basePath(opts.output, input), artifacts, pipeOpts.Formats)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	for _, p := range paths {
		printFile(p)
	}
	printStats(frame, cached)
	return nil
}

// writeArtifacts writes one file per format, named base plus the format's
// extension, and returns the paths in format order.
func writeArtifacts(base string, artifacts map[string][]byte, formats []string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + sink.Extension(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeStdout writes the artifacts to stdout in format order.
func writeStdout(artifacts map[string][]byte, formats []string) error {
	for _, format := range formats {
		if _, err := os.Stdout.Write(artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}
