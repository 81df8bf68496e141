// Package pipeline runs the decode → layout → render pipeline for flowpack.
//
// The CLI, the HTTP API and the preview TUI all go through this package so
// that scene handling, caching and rendering behave the same everywhere.
//
// # Stages
//
//  1. Decode: parse a TOML or JSON scene and apply container overrides
//  2. Layout: run one flow layout pass and build a [scene.Frame]
//  3. Render: turn the frame into one artifact per output format
//
// Layout and render results are cached through [cache.Cache], keyed by the
// content hash of their input.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    SceneFormat: "toml",
//	    Formats:     []string{"svg", "json"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowpack/pkg/cache"
	"github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/scene"
	"github.com/matzehuels/flowpack/pkg/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSceneFormat is assumed when no scene format is given.
	DefaultSceneFormat = scene.FormatTOML

	// DefaultScale is the SVG pixel size of one layout unit.
	DefaultScale = 10.0
)

// DefaultFormats are rendered when no output format is requested.
var DefaultFormats = []string{sink.FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It is also the request body of the
// HTTP API, minus the scene itself.
type Options struct {
	// Decode options
	SceneFormat scene.Format    `json:"scene_format,omitempty"`
	Container   scene.Container `json:"container,omitzero"` // overrides on top of the scene's container

	// Render options
	Formats []string `json:"formats,omitempty"`
	Debug   bool     `json:"debug,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Color   bool     `json:"-"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger    *log.Logger `json:"-"`
	Generator string      `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the decoded scene with overrides applied.
	Scene *scene.Scene

	// SceneHash is the content hash of Scene.
	SceneHash string

	// Frame is the laid-out scene.
	Frame *scene.Frame

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	LineCount  int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the frame came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an output format is supported.
func ValidateFormat(format string) error {
	if !sink.IsValidFormat(format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %v)", format, sink.Formats)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSceneFormat checks that a scene encoding is supported.
func ValidateSceneFormat(f scene.Format) error {
	switch f {
	case scene.FormatTOML, scene.FormatJSON:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid scene format: %q (must be one of: toml, json)", f)
	}
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset options with their defaults.
func (o *Options) SetDefaults() {
	if o.SceneFormat == "" {
		o.SceneFormat = DefaultSceneFormat
	}
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every option.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := ValidateSceneFormat(o.SceneFormat); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// RenderOptions returns the sink options for these pipeline options.
func (o *Options) RenderOptions() sink.Options {
	return sink.Options{
		Debug:     o.Debug,
		Scale:     o.Scale,
		Color:     o.Color,
		Generator: o.Generator,
	}
}

// LayoutKeyOpts returns cache key options for a layout of s.
func LayoutKeyOpts(s *scene.Scene) cache.LayoutKeyOpts {
	c := s.Container
	opts := cache.LayoutKeyOpts{
		Orientation: c.Orientation,
		Gravity:     c.Gravity,
		Width:       c.Width,
		Height:      c.Height,
		WidthMode:   c.WidthMode,
		HeightMode:  c.HeightMode,
		CheckCanFit: c.CheckCanFit == nil || *c.CheckCanFit,
	}
	if c.DefaultWeight != nil {
		opts.DefaultWeight = *c.DefaultWeight
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Debug: o.Debug}
	switch format {
	case sink.FormatSVG:
		opts.Scale = o.Scale
	case sink.FormatText:
		opts.Color = o.Color
	}
	return opts
}
