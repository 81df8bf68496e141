package scene

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/flowpack/pkg/flow"
)

// Frame is a laid-out scene in outer container coordinates, padding
// included. It is what sinks render and what the pipeline caches.
type Frame struct {
	Orientation string     `json:"orientation"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Padding     flow.Edges `json:"padding,omitzero"`
	Boxes       []Box      `json:"boxes"`
	Lines       []Band     `json:"lines"`
}

// Box is the placement of one item, in input order.
type Box struct {
	Index   int        `json:"index"`
	ID      string     `json:"id,omitempty"`
	Text    string     `json:"text,omitempty"`
	Fill    string     `json:"fill,omitempty"`
	Line    int        `json:"line"`
	Rect    flow.Rect  `json:"rect"`
	Margins flow.Edges `json:"margins,omitzero"`
}

// Band is the area of one line.
type Band struct {
	Rect  flow.Rect `json:"rect"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

// Properties converts the container settings into pass properties. The
// bounds exclude padding.
func (s *Scene) Properties() (flow.Properties, error) {
	c := &s.Container
	p := flow.DefaultProperties()

	var err error
	if p.Orientation, err = ParseOrientation(c.Orientation); err != nil {
		return p, err
	}
	if p.Gravity, err = ParseGravity(c.Gravity); err != nil {
		return p, err
	}
	if p.WidthMode, err = ParseSizeMode(c.WidthMode, c.Width); err != nil {
		return p, err
	}
	if p.HeightMode, err = ParseSizeMode(c.HeightMode, c.Height); err != nil {
		return p, err
	}

	pad := c.Padding.Edges()
	p.MaxWidth = max(c.Width-pad.Horizontal(), 0)
	p.MaxHeight = max(c.Height-pad.Vertical(), 0)
	if c.DefaultWeight != nil {
		p.DefaultWeight = *c.DefaultWeight
	}
	if c.CheckCanFit != nil {
		p.CheckCanFit = *c.CheckCanFit
	}
	return p, nil
}

// Params returns the layout parameters of every item, in order.
func (s *Scene) Params() ([]flow.Params, error) {
	params := make([]flow.Params, len(s.Items))
	for i, it := range s.Items {
		g, err := ParseGravity(it.Gravity)
		if err != nil {
			return nil, err
		}
		params[i] = flow.Params{
			Margins: it.Margin.Edges(),
			NewLine: it.NewLine,
			Weight:  flow.NoWeight,
			Gravity: g,
		}
		if it.Weight != nil {
			params[i].Weight = *it.Weight
		}
	}
	return params, nil
}

// Measure returns the natural size of item i. Text is measured in
// terminal cells; an explicit width or height wins over the measurement.
func (s *Scene) Measure(i int) (width, height int) {
	it := &s.Items[i]
	width, height = it.Width, it.Height
	if it.Text != "" {
		if width == 0 {
			width = lipgloss.Width(it.Text)
		}
		if height == 0 {
			height = lipgloss.Height(it.Text)
		}
	}
	return width, height
}

// Layout runs one layout pass over the scene and returns the frame.
func (s *Scene) Layout() (*Frame, *flow.Result, error) {
	props, err := s.Properties()
	if err != nil {
		return nil, nil, err
	}
	params, err := s.Params()
	if err != nil {
		return nil, nil, err
	}

	res := flow.Run(params, props, s, nil)
	return s.frame(res), res, nil
}

func (s *Scene) frame(res *flow.Result) *Frame {
	pad := s.Container.Padding.Edges()
	f := &Frame{
		Orientation: res.Orientation.String(),
		Width:       res.Width + pad.Horizontal(),
		Height:      res.Height + pad.Vertical(),
		Padding:     pad,
		Boxes:       make([]Box, len(res.Items)),
		Lines:       make([]Band, len(res.Lines)),
	}
	for i, r := range res.LineBounds() {
		l := res.Lines[i]
		f.Lines[i] = Band{Rect: r.Translate(pad.Left, pad.Top), Start: l.Start, End: l.End}
		for j := l.Start; j < l.End; j++ {
			it := &res.Items[j]
			src := &s.Items[it.Index]
			f.Boxes[j] = Box{
				Index:   it.Index,
				ID:      src.ID,
				Text:    src.Text,
				Fill:    src.Fill,
				Line:    i,
				Rect:    it.Bounds.Translate(pad.Left, pad.Top),
				Margins: it.Params.Margins,
			}
		}
	}
	return f
}

var _ flow.Measurer = (*Scene)(nil)
