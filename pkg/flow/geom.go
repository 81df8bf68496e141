package flow

// Rect is an axis-aligned rectangle in container coordinates.
// X and Y are the top-left corner.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.Y + r.Height }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Outset returns r grown outward by e.
func (r Rect) Outset(e Edges) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// Edges holds a value for each side of a box.
type Edges struct {
	Top    int `json:"top,omitempty"`
	Right  int `json:"right,omitempty"`
	Bottom int `json:"bottom,omitempty"`
	Left   int `json:"left,omitempty"`
}

// EdgeAll returns Edges with n on every side.
func EdgeAll(n int) Edges {
	return Edges{Top: n, Right: n, Bottom: n, Left: n}
}

// Horizontal returns Left + Right.
func (e Edges) Horizontal() int { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e Edges) Vertical() int { return e.Top + e.Bottom }
