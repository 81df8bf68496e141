// Package cache provides the caching layer for flowpack layout passes.
//
// A layout pass is a pure function of its scene and container properties,
// so both the pass result and every rendered artifact can be reused across
// invocations. The pipeline keys entries with a [Keyer] and stores them in
// any [Cache] backend:
//
//   - [FileCache]: JSON entry files under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (API deployments)
//   - [NullCache]: disables caching
//
// Keys are content addressed: scene bytes are hashed with [Hash] and the
// options that change the output are folded into the key, so a stale entry
// is never served for different input.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLLayout is the lifetime of a cached layout result.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of a cached rendered artifact.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache stores opaque byte values by key.
//
// Get reports a miss with ok=false and a nil error; errors are reserved for
// backend failures. A zero ttl stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey returns the key of a layout pass over the scene with the
	// given content hash.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from the layout
	// with the given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the container settings that change a layout pass.
type LayoutKeyOpts struct {
	Orientation   string  `json:"orientation,omitempty"`
	Gravity       string  `json:"gravity,omitempty"`
	Width         int     `json:"width,omitempty"`
	Height        int     `json:"height,omitempty"`
	WidthMode     string  `json:"width_mode,omitempty"`
	HeightMode    string  `json:"height_mode,omitempty"`
	DefaultWeight float64 `json:"default_weight,omitempty"`
	CheckCanFit   bool    `json:"check_can_fit,omitempty"`
}

// ArtifactKeyOpts holds the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Debug  bool    `json:"debug,omitempty"`
	Color  bool    `json:"color,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
