package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/scene"
)

// convertCommand creates the convert command, which rewrites a scene file
// between TOML and JSON.
func (c *CLI) convertCommand() *cobra.Command {
	var output, to string

	cmd := &cobra.Command{
		Use:   "convert [scene]",
		Short: "Convert a scene between TOML and JSON",
		Long: `Convert a scene between TOML and JSON.

The target format is taken from --to, then from the output file's
extension, and otherwise is the other format. Without -o the converted
scene is written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(args[0], output, to)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&to, "to", "", "target format: toml, json")
	completeFiles(cmd, "toml", "json")

	return cmd
}

func (c *CLI) runConvert(input, output, to string) error {
	s, err := scene.Load(input)
	if err != nil {
		return err
	}
	from, _ := scene.FormatFromPath(input)

	target, err := convertTarget(from, output, to)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.Encode(&buf, target); err != nil {
		return err
	}

	if output == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	c.Logger.Debug("converted scene", "from", from, "to", target, "items", len(s.Items))
	printSuccess("Converted %s to %s", input, target)
	printFile(output)
	return nil
}

// convertTarget picks the output format: an explicit --to wins, then the
// output extension, then the format that is not the input's.
func convertTarget(from scene.Format, output, to string) (scene.Format, error) {
	if to != "" {
		switch f := scene.Format(strings.ToLower(to)); f {
		case scene.FormatTOML, scene.FormatJSON:
			return f, nil
		default:
			return "", errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q (want toml or json)", to)
		}
	}
	if output != "" {
		return scene.FormatFromPath(output)
	}
	if from == scene.FormatJSON {
		return scene.FormatTOML, nil
	}
	return scene.FormatJSON, nil
}
