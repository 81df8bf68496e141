// Package pkg provides the libraries behind flowpack, a flow-layout engine
// that packs a flat list of boxes into wrapping lines.
//
// # Overview
//
// A flow container places its items one after another along a primary axis
// and starts a new line when the next item would not fit. Lines are stacked
// along the secondary axis. Leftover space is shared out by gravity (how
// items and lines align) and weight (how items stretch). The pkg directory
// is organized as:
//
//  1. [flow] - The layout engine: pack, position and distribute
//  2. [scene] - Scene files (TOML/JSON) and the frames they lay out to
//  3. [sink] - Output formats (JSON, SVG, text)
//  4. [pipeline] - Orchestration (decode → layout → render) with caching
//  5. [cache], [store] - Layout cache and result store backends
//  6. [api] - HTTP service over the pipeline
//
// # Architecture
//
// The typical data flow through flowpack:
//
//	scene.toml / scene.json
//	         ↓
//	    [scene] package (decode, validate, measure items)
//	         ↓
//	    [flow] package (one layout pass)
//	         ↓
//	    [scene.Frame] (boxes and line bands in container coordinates)
//	         ↓
//	    [sink] package → SVG/TXT/JSON output
//
// # Quick Start
//
// Lay out a scene and render it:
//
//	s, _ := scene.Load("cards.toml")
//	frame, _, _ := s.Layout()
//	svg, _ := sink.RenderSVG(frame, sink.WithDebug())
//
// Use the engine directly with your own measurer and placer:
//
//	props := flow.DefaultProperties()
//	props.WidthMode, props.MaxWidth = flow.AtMost, 80
//	res := flow.Run(params, props, measurer, placer)
//
// # Main Packages
//
// [flow] - Pure layout computation. Items are grouped into lines (packing),
// lines get offsets (positioning), the container size is resolved from its
// size modes, and free space is distributed to items by weight and gravity.
// The engine never fails: every input yields a layout.
//
// [scene] - The host side of the engine. Scenes describe the container and
// its items; text items are measured in terminal cells. [scene.Scene.Layout]
// applies padding around the pass.
//
// [sink] - Renders frames. The SVG and text sinks can draw a debug overlay of
// line bands, margins and padding.
//
// [pipeline] - The decode → layout → render pipeline shared by the CLI and
// the HTTP API, with per-stage caching through [cache].
//
// [cache] - Cache interface with file, Redis and no-op backends, and
// content-addressed keys.
//
// [store] - Persistent layout results for the API, in memory or MongoDB.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Error codes shared by all packages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/flow/...               # Specific package
//	go test -run Example                 # Examples only
//
// Redis and MongoDB tests run when FLOWPACK_REDIS_URL and FLOWPACK_MONGO_URI
// are set.
//
// [flow]: https://pkg.go.dev/github.com/matzehuels/flowpack/pkg/flow
// [scene]: https://pkg.go.dev/github.com/matzehuels/flowpack/pkg/scene
// [scene.Frame]: https://pkg.go.dev/github.com/matzehuels/flowpack/pkg/scene#Frame
// [scene.Scene.Layout]: https://pkg.go.dev/github.com/matzehuels/flowpack/pkg/scene#Scene.Layout
// [sink]: https://pkg.go.dev/github.com/matzehuels/flowpack/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowpack/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowpack/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/flowpack/pkg/store
// [api]: https://pkg.go.dev/github.com/matzehuels/flowpack/pkg/api
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowpack/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowpack/pkg/errors
package pkg
