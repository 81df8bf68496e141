package sink

import (
	"fmt"
	"slices"

	"github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/scene"
)

// Output format names.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatText = "txt"
)

// Formats lists every supported output format.
var Formats = []string{FormatJSON, FormatSVG, FormatText}

// MaxTextCells bounds the character grid of a text rendering.
const MaxTextCells = 4_000_000

// Options are the render settings shared by all formats. Each renderer
// reads only the fields it understands.
type Options struct {
	// Debug draws line bands, margins and padding (SVG and text).
	Debug bool
	// Scale is the SVG size of one layout unit in pixels.
	Scale float64
	// Color enables ANSI colors in the text preview.
	Color bool
	// Generator is recorded in the JSON document.
	Generator string
}

// IsValidFormat reports whether f names a supported format.
func IsValidFormat(f string) bool {
	return slices.Contains(Formats, f)
}

// Extension returns the file extension for a format, including the dot.
func Extension(format string) string {
	return "." + format
}

// Render renders f in the named format.
func Render(format string, f *scene.Frame, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return RenderJSON(f, WithJSONGenerator(opts.Generator))
	case FormatSVG:
		svgOpts := []SVGOption{WithScale(opts.Scale)}
		if opts.Debug {
			svgOpts = append(svgOpts, WithDebug())
		}
		return RenderSVG(f, svgOpts...), nil
	case FormatText:
		if cells := int64(max(f.Width, 0)) * int64(max(f.Height, 0)); cells > MaxTextCells {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"frame %dx%d is too large for text output (max %d cells)", f.Width, f.Height, MaxTextCells)
		}
		var textOpts []TextOption
		if opts.Debug {
			textOpts = append(textOpts, WithTextDebug())
		}
		if opts.Color {
			textOpts = append(textOpts, WithColor())
		}
		return []byte(RenderText(f, textOpts...)), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (want one of %v)", format, Formats)
	}
}

// palette is used for items without an explicit fill.
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
}

func fillFor(b scene.Box) string {
	if b.Fill != "" {
		return b.Fill
	}
	return palette[b.Index%len(palette)]
}

func labelFor(b scene.Box) string {
	switch {
	case b.Text != "":
		return b.Text
	case b.ID != "":
		return b.ID
	default:
		return fmt.Sprint(b.Index)
	}
}
