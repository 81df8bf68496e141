package flow

import "slices"

// Properties is the read-only configuration of one layout pass.
type Properties struct {
	Orientation Orientation
	// Gravity places the stack of lines in the container and lines without
	// weighted items inside their length. Unset components mean start.
	Gravity Gravity
	// DefaultWeight replaces NoWeight on items that do not set one.
	DefaultWeight float64

	MaxWidth, MaxHeight   int
	WidthMode, HeightMode SizeMode

	// CheckCanFit wraps items that do not fit the remaining length. It only
	// takes effect when the length axis is bounded (mode not Unspecified).
	CheckCanFit bool
}

// DefaultProperties returns horizontal, start-aligned properties with no
// default stretch and can-fit checking enabled.
func DefaultProperties() Properties {
	return Properties{
		Orientation:   Horizontal,
		DefaultWeight: NoWeight,
		CheckCanFit:   true,
	}
}

// MaxLength returns the bound along the length axis.
func (p Properties) MaxLength() int {
	if p.Orientation == Vertical {
		return p.MaxHeight
	}
	return p.MaxWidth
}

// MaxThickness returns the bound along the thickness axis.
func (p Properties) MaxThickness() int {
	if p.Orientation == Vertical {
		return p.MaxWidth
	}
	return p.MaxHeight
}

// LengthMode returns the size mode of the length axis.
func (p Properties) LengthMode() SizeMode {
	if p.Orientation == Vertical {
		return p.HeightMode
	}
	return p.WidthMode
}

// ThicknessMode returns the size mode of the thickness axis.
func (p Properties) ThicknessMode() SizeMode {
	if p.Orientation == Vertical {
		return p.WidthMode
	}
	return p.HeightMode
}

// Measurer reports the natural size of the item at index.
type Measurer interface {
	Measure(index int) (width, height int)
}

// MeasurerFunc adapts a function to [Measurer].
type MeasurerFunc func(index int) (width, height int)

// Measure calls f(index).
func (f MeasurerFunc) Measure(index int) (int, int) { return f(index) }

// Placer receives the final container-relative rectangle of an item.
// Right and bottom are exclusive.
type Placer interface {
	Place(index int, left, top, right, bottom int)
}

// PlacerFunc adapts a function to [Placer].
type PlacerFunc func(index int, left, top, right, bottom int)

// Place calls f.
func (f PlacerFunc) Place(index int, left, top, right, bottom int) {
	f(index, left, top, right, bottom)
}

// Result is the outcome of one pass.
type Result struct {
	Orientation Orientation
	// Items are in input order; Items[i].Index == i.
	Items []Item
	Lines []Line

	// Width and Height are the resolved container size.
	Width, Height int
	// ContentWidth and ContentHeight are the measured extent before
	// size resolution.
	ContentWidth, ContentHeight int
}

// Rects returns every item's final rectangle in input order.
func (r *Result) Rects() []Rect {
	rects := make([]Rect, len(r.Items))
	for i := range r.Items {
		rects[i] = r.Items[i].Bounds
	}
	return rects
}

// LineBounds returns the physical rectangle of each line band, in line
// order. Item margins lie inside the band.
func (r *Result) LineBounds() []Rect {
	ax := axisFor(r.Orientation)
	rects := make([]Rect, len(r.Lines))
	for i, l := range r.Lines {
		rects[i] = ax.rect(l.StartLength, l.StartThickness, l.Length, l.Thickness)
	}
	return rects
}

// Place hands every item's rectangle to p, once per item, in input order.
func (r *Result) Place(p Placer) {
	for i := range r.Items {
		b := r.Items[i].Bounds
		p.Place(r.Items[i].Index, b.X, b.Y, b.Right(), b.Bottom())
	}
}

// Measure builds the item records for params, asking m for each natural
// size. Negative sizes reported by m are clamped to zero.
func Measure(params []Params, m Measurer) []Item {
	items := make([]Item, len(params))
	for i, p := range params {
		w, h := m.Measure(i)
		items[i] = Item{
			Index:  i,
			Params: p,
			Width:  max(w, 0),
			Height: max(h, 0),
		}
	}
	return items
}

// Layout runs a complete pass over items and returns the result. items is
// copied; the caller's slice is never modified.
func Layout(items []Item, props Properties) *Result {
	work := slices.Clone(items)
	for i := range work {
		work[i].Index = i
	}
	Project(work, props.Orientation)

	canFit := props.CheckCanFit && props.LengthMode() != Unspecified
	lines := Pack(work, props.MaxLength(), props.DefaultWeight, canFit)
	Position(work, lines)

	contentLength, contentThickness := ContentExtent(lines)
	length := Resolve(props.LengthMode(), props.MaxLength(), contentLength)
	thickness := Resolve(props.ThicknessMode(), props.MaxThickness(), contentThickness)

	Distribute(work, lines, length, thickness, props.Gravity, props.Orientation)

	ax := axisFor(props.Orientation)
	for _, l := range lines {
		for j := l.Start; j < l.End; j++ {
			it := &work[j]
			it.Bounds = ax.rect(
				l.StartLength+it.OffsetInLine,
				l.StartThickness+it.OffsetInThickness,
				it.Length, it.Thickness,
			)
		}
	}

	res := &Result{
		Orientation: props.Orientation,
		Items:       work,
		Lines:       lines,
	}
	res.Width, res.Height = ax.size(length, thickness)
	res.ContentWidth, res.ContentHeight = ax.size(contentLength, contentThickness)
	return res
}

// Run measures, lays out, and places items in one pass.
func Run(params []Params, props Properties, m Measurer, p Placer) *Result {
	res := Layout(Measure(params, m), props)
	if p != nil {
		res.Place(p)
	}
	return res
}
