package sink

import (
	"encoding/json"

	"github.com/matzehuels/flowpack/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonOutput)

// WithJSONGenerator records the producing tool and version.
func WithJSONGenerator(g string) JSONOption { return func(o *jsonOutput) { o.Generator = g } }

type jsonOutput struct {
	Generator string `json:"generator,omitempty"`
	*scene.Frame
}

// RenderJSON exports the frame as a pretty-printed JSON document. The
// document decodes back into a [scene.Frame].
func RenderJSON(f *scene.Frame, opts ...JSONOption) ([]byte, error) {
	out := jsonOutput{Frame: f}
	for _, opt := range opts {
		opt(&out)
	}
	return json.MarshalIndent(out, "", "  ")
}
