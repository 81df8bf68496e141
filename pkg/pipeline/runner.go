package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowpack/pkg/cache"
	"github.com/matzehuels/flowpack/pkg/observability"
	"github.com/matzehuels/flowpack/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Decode
	decodeStart := time.Now()
	s, err := r.Decode(ctx, data, opts)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Scene = s
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.ItemCount = len(s.Items)

	// Stage 2: Layout
	layoutStart := time.Now()
	frame, hash, layoutHit, err := r.layout(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Frame = frame
	result.SceneHash = hash
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.LineCount = len(frame.Lines)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"items", result.Stats.ItemCount,
		"lines", result.Stats.LineCount,
		"size", fmt.Sprintf("%dx%d", frame.Width, frame.Height),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, frame, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Decode parses a scene and applies overrides, reporting to the pipeline
// hooks.
func (r *Runner) Decode(ctx context.Context, data []byte, opts Options) (*scene.Scene, error) {
	opts.SetDefaults()
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, string(opts.SceneFormat))
	start := time.Now()

	s, err := Decode(data, opts)
	items := 0
	if s != nil {
		items = len(s.Items)
	}
	hooks.OnDecodeComplete(ctx, string(opts.SceneFormat), items, time.Since(start), err)
	return s, err
}

// GenerateLayoutWithCacheInfo lays out s with caching and returns cache
// hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, s *scene.Scene, opts Options) (*scene.Frame, bool, error) {
	f, _, hit, err := r.layout(ctx, s, opts)
	return f, hit, err
}

// GenerateLayout is a convenience wrapper that calls
// GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, s *scene.Scene, opts Options) (*scene.Frame, error) {
	f, _, err := r.GenerateLayoutWithCacheInfo(ctx, s, opts)
	return f, err
}

func (r *Runner) layout(ctx context.Context, s *scene.Scene, opts Options) (*scene.Frame, string, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()

	hash, err := HashScene(s)
	if err != nil {
		return nil, "", false, err
	}
	key := r.Keyer.LayoutKey(hash, LayoutKeyOpts(s))

	if !opts.Refresh {
		if f, ok := r.cachedFrame(ctx, key, opts.Logger); ok {
			return f, hash, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(s.Items))
	start := time.Now()
	f, err := GenerateLayout(s)
	lines := 0
	if f != nil {
		lines = len(f.Lines)
	}
	hooks.OnLayoutComplete(ctx, lines, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	if data, err := MarshalFrame(f); err == nil {
		r.store(ctx, key, "layout", data, cache.TTLLayout, opts.Logger)
	}
	return f, hash, false, nil
}

func (r *Runner) cachedFrame(ctx context.Context, key string, logger *log.Logger) (*scene.Frame, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "type", "layout", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	f, err := UnmarshalFrame(data)
	if err != nil {
		// Unreadable entry: recompute and overwrite.
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return f, true
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. The hit is reported only when every format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f *scene.Frame, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	frameData, err := MarshalFrame(f)
	if err != nil {
		return nil, false, fmt.Errorf("serialize frame for cache key: %w", err)
	}
	frameHash := cache.Hash(frameData)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format)))
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderFromFrame(f, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.store(ctx, r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format)), "artifact", data, cache.TTLArtifact, opts.Logger)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, f *scene.Frame, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, f, opts)
	return artifacts, err
}

// store writes a cache entry. Failures are logged, never returned: a
// broken cache must not fail a layout.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
