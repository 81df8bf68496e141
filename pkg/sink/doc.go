// Package sink renders a laid-out [scene.Frame] into output formats.
//
//   - JSON: the frame with item and line rectangles, for other tools
//   - SVG: one rectangle per item, with an optional debug overlay of line
//     bands, margins and padding
//   - Text: a character-grid preview for terminals, colored with lipgloss
//
// [Render] dispatches by format name and is what the pipeline calls:
//
//	data, err := sink.Render(sink.FormatSVG, frame, sink.Options{Debug: true})
//
// Renderers never modify the frame and are safe for concurrent use.
package sink
