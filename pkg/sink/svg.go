package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/flowpack/pkg/flow"
	"github.com/matzehuels/flowpack/pkg/scene"
)

const defaultScale = 10.0

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale float64
	debug bool
}

// WithScale sets the pixel size of one layout unit. Non-positive values
// keep the default.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithDebug draws the padding box, each line band and each item's margin
// box on top of the items.
func WithDebug() SVGOption { return func(r *svgRenderer) { r.debug = true } }

// RenderSVG draws the frame as an SVG document.
func RenderSVG(f *scene.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{scale: defaultScale}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := float64(f.Width)*r.scale, float64(f.Height)*r.scale
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <rect class="container" x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff" stroke="#333333"/>`+"\n", w, h)

	for _, b := range f.Boxes {
		r.renderBox(&buf, b)
	}
	if r.debug {
		r.renderDebug(&buf, f)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderBox(buf *bytes.Buffer, b scene.Box) {
	x, y, w, h := r.rect(b.Rect)
	id := ""
	if b.ID != "" {
		id = fmt.Sprintf(` id="item-%s"`, escapeXML(b.ID))
	}
	fmt.Fprintf(buf, `  <rect class="item"%s x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#222222"/>`+"\n",
		id, x, y, w, h, escapeXML(fillFor(b)))
	if w > 0 && h > 0 {
		fontSize := min(h*0.6, 14)
		fmt.Fprintf(buf, `  <text class="label" x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			x+w/2, y+h/2, fontSize, escapeXML(labelFor(b)))
	}
}

func (r *svgRenderer) renderDebug(buf *bytes.Buffer, f *scene.Frame) {
	buf.WriteString(`  <g class="debug" fill="none" stroke-width="1">` + "\n")

	inner := flow.Rect{
		X:      f.Padding.Left,
		Y:      f.Padding.Top,
		Width:  f.Width - f.Padding.Horizontal(),
		Height: f.Height - f.Padding.Vertical(),
	}
	x, y, w, h := r.rect(inner)
	fmt.Fprintf(buf, `    <rect class="padding" x="%.1f" y="%.1f" width="%.1f" height="%.1f" stroke="#999999" stroke-dasharray="2 2"/>`+"\n", x, y, w, h)

	for i, l := range f.Lines {
		x, y, w, h := r.rect(l.Rect)
		fmt.Fprintf(buf, `    <rect class="line" data-line="%d" x="%.1f" y="%.1f" width="%.1f" height="%.1f" stroke="#0066ff" stroke-dasharray="6 3"/>`+"\n", i, x, y, w, h)
	}
	for _, b := range f.Boxes {
		if b.Margins == (flow.Edges{}) {
			continue
		}
		x, y, w, h := r.rect(b.Rect.Outset(b.Margins))
		fmt.Fprintf(buf, `    <rect class="margin" data-item="%d" x="%.1f" y="%.1f" width="%.1f" height="%.1f" stroke="#ff00aa" stroke-dasharray="1 2"/>`+"\n", b.Index, x, y, w, h)
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) rect(rc flow.Rect) (x, y, w, h float64) {
	return float64(rc.X) * r.scale, float64(rc.Y) * r.scale,
		float64(rc.Width) * r.scale, float64(rc.Height) * r.scale
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
