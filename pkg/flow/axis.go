package flow

// Orientation selects which physical axis items are packed along.
type Orientation int

const (
	// Horizontal packs items left to right and stacks lines top to bottom.
	Horizontal Orientation = iota
	// Vertical packs items top to bottom and stacks lines left to right.
	Vertical
)

// String returns "horizontal" or "vertical".
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// axis projects physical (width, height) quantities onto the
// (length, thickness) frame of an orientation. The packing and
// distribution code is written once against it.
type axis interface {
	length(width, height int) int
	thickness(width, height int) int
	size(length, thickness int) (width, height int)
	rect(length, thickness, lengthSize, thicknessSize int) Rect
	margins(e Edges) (start, end, before, after int)
	lengthAlign(g Gravity) Align
	thicknessAlign(g Gravity) Align
}

type horizontalAxis struct{}

func (horizontalAxis) length(w, _ int) int      { return w }
func (horizontalAxis) thickness(_, h int) int   { return h }
func (horizontalAxis) size(l, t int) (int, int) { return l, t }
func (horizontalAxis) rect(l, t, ls, ts int) Rect {
	return Rect{X: l, Y: t, Width: ls, Height: ts}
}
func (horizontalAxis) margins(e Edges) (int, int, int, int) {
	return e.Left, e.Right, e.Top, e.Bottom
}
func (horizontalAxis) lengthAlign(g Gravity) Align    { return g.Horizontal }
func (horizontalAxis) thicknessAlign(g Gravity) Align { return g.Vertical }

type verticalAxis struct{}

func (verticalAxis) length(_, h int) int      { return h }
func (verticalAxis) thickness(w, _ int) int   { return w }
func (verticalAxis) size(l, t int) (int, int) { return t, l }
func (verticalAxis) rect(l, t, ls, ts int) Rect {
	return Rect{X: t, Y: l, Width: ts, Height: ls}
}
func (verticalAxis) margins(e Edges) (int, int, int, int) {
	return e.Top, e.Bottom, e.Left, e.Right
}
func (verticalAxis) lengthAlign(g Gravity) Align    { return g.Vertical }
func (verticalAxis) thicknessAlign(g Gravity) Align { return g.Horizontal }

func axisFor(o Orientation) axis {
	if o == Vertical {
		return verticalAxis{}
	}
	return horizontalAxis{}
}
