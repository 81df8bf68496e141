// Package scene describes a flow container and its children as data.
//
// A scene file holds the container settings and an ordered list of items,
// in TOML or JSON:
//
//	[container]
//	orientation = "horizontal"
//	width = 80
//	width_mode = "exact"
//	gravity = "center_vertical|fill_horizontal"
//	padding = { all = 1 }
//
//	[[items]]
//	id = "title"
//	text = "Hello"
//	weight = 1
//
//	[[items]]
//	width = 12
//	height = 3
//	new_line = true
//
// A Scene plays the host's part in a layout pass: it measures its items
// (text labels are measured in terminal cells), supplies per-item layout
// parameters, and applies container padding around the pass. See
// [Scene.Layout].
package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowpack/pkg/errors"
)

// Format identifies a scene encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown scene extension %q (want .toml or .json)", filepath.Ext(path))
	}
}

// Scene is a container and its items.
type Scene struct {
	Container Container `toml:"container" json:"container"`
	Items     []Item    `toml:"items" json:"items"`
}

// Container holds the settings of the flow container. String-valued
// settings are parsed when the scene is laid out; see [ParseGravity],
// [ParseOrientation] and [ParseSizeMode].
type Container struct {
	Orientation string `toml:"orientation" json:"orientation,omitempty"`
	Gravity     string `toml:"gravity" json:"gravity,omitempty"`

	Width      int    `toml:"width" json:"width,omitempty"`
	Height     int    `toml:"height" json:"height,omitempty"`
	WidthMode  string `toml:"width_mode" json:"width_mode,omitempty"`
	HeightMode string `toml:"height_mode" json:"height_mode,omitempty"`

	// DefaultWeight applies to items whose weight is unset. Nil means
	// items without a weight never stretch.
	DefaultWeight *float64 `toml:"default_weight" json:"default_weight,omitempty"`

	// CheckCanFit wraps before an item that would not fit. Nil means true.
	CheckCanFit *bool `toml:"check_can_fit" json:"check_can_fit,omitempty"`

	Padding Spacing `toml:"padding" json:"padding,omitzero"`
}

// Item is one child of the container.
type Item struct {
	ID   string `toml:"id" json:"id,omitempty"`
	Text string `toml:"text" json:"text,omitempty"`
	Fill string `toml:"fill" json:"fill,omitempty"`

	// Width and Height are the natural size. When Text is set a zero
	// component is measured from the text instead.
	Width  int `toml:"width" json:"width,omitempty"`
	Height int `toml:"height" json:"height,omitempty"`

	Margin  Spacing  `toml:"margin" json:"margin,omitzero"`
	NewLine bool     `toml:"new_line" json:"new_line,omitempty"`
	Weight  *float64 `toml:"weight" json:"weight,omitempty"`
	Gravity string   `toml:"gravity" json:"gravity,omitempty"`
}

// Spacing is a per-side amount. All applies to every side that is not
// given explicitly.
type Spacing struct {
	All    int  `toml:"all" json:"all,omitempty"`
	Top    *int `toml:"top" json:"top,omitempty"`
	Right  *int `toml:"right" json:"right,omitempty"`
	Bottom *int `toml:"bottom" json:"bottom,omitempty"`
	Left   *int `toml:"left" json:"left,omitempty"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes and validates a scene.
func Parse(data []byte, format Format) (*Scene, error) {
	s, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Decode decodes a scene without validating it. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
	}
	return &s, nil
}

// Encode writes the scene in the given format.
func (s *Scene) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
	}
}

// Override copies every non-zero setting of o onto c. The CLI and the API
// use it to apply flags on top of a scene file.
func (c *Container) Override(o Container) {
	if o.Orientation != "" {
		c.Orientation = o.Orientation
	}
	if o.Gravity != "" {
		c.Gravity = o.Gravity
	}
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if o.WidthMode != "" {
		c.WidthMode = o.WidthMode
	}
	if o.HeightMode != "" {
		c.HeightMode = o.HeightMode
	}
	if o.DefaultWeight != nil {
		c.DefaultWeight = o.DefaultWeight
	}
	if o.CheckCanFit != nil {
		c.CheckCanFit = o.CheckCanFit
	}
	if o.Padding != (Spacing{}) {
		c.Padding = o.Padding
	}
}
