package pipeline

import (
	"fmt"

	"github.com/matzehuels/flowpack/pkg/scene"
	"github.com/matzehuels/flowpack/pkg/sink"
)

// RenderFromFrame renders every requested format.
func RenderFromFrame(f *scene.Frame, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	renderOpts := opts.RenderOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := sink.Render(format, f, renderOpts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
