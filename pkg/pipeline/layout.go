package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/flowpack/pkg/cache"
	"github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/scene"
)

// GenerateLayout runs one layout pass over s.
func GenerateLayout(s *scene.Scene) (*scene.Frame, error) {
	f, _, err := s.Layout()
	if err != nil {
		return nil, err
	}
	return f, nil
}

// HashScene returns the content hash of a scene, used as the layout cache
// key input. Two scenes with the same settings and items hash equal
// regardless of their source encoding.
func HashScene(s *scene.Scene) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash scene")
	}
	return cache.Hash(data), nil
}

// MarshalFrame serializes a frame for caching.
func MarshalFrame(f *scene.Frame) ([]byte, error) {
	return json.Marshal(f)
}

// UnmarshalFrame restores a frame produced by MarshalFrame.
func UnmarshalFrame(data []byte) (*scene.Frame, error) {
	var f scene.Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
