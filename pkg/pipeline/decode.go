package pipeline

import (
	"bytes"

	"github.com/matzehuels/flowpack/pkg/scene"
)

// Decode parses and validates a scene, then applies the container
// overrides from opts. The overridden scene is validated again so a bad
// flag value is reported like a bad file value.
func Decode(data []byte, opts Options) (*scene.Scene, error) {
	opts.SetDefaults()
	s, err := scene.Decode(bytes.NewReader(data), opts.SceneFormat)
	if err != nil {
		return nil, err
	}
	s.Container.Override(opts.Container)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
