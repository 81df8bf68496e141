package flow

import "math"

// NoWeight is the weight sentinel meaning "not set". During packing it is
// replaced by the pass's default weight; any other negative weight is
// treated as "no stretch".
const NoWeight = -1.0

// Params are the per-item layout parameters supplied by the host.
//
// The zero value is a weighted item: a Weight of 0 takes part in
// stretching. Start from [DefaultParams] for an item that keeps its
// natural length unless the pass's default weight says otherwise.
type Params struct {
	Margins Edges
	// NewLine forces the item to start a new line. It has no effect on the
	// first item.
	NewLine bool
	// Weight is the item's share of leftover length in its line. Zero is a
	// weight (an even share when every weight in the line is zero); use
	// NoWeight for "unset". Weights below zero never stretch.
	Weight float64
	// Gravity overrides the container gravity for this item. An unset
	// thickness component inherits the container's; an explicit length
	// component other than Fill keeps the item at its natural length inside
	// its stretched slot.
	Gravity Gravity
}

// DefaultParams returns Params with no margins, no forced break, and an
// unset weight.
func DefaultParams() Params {
	return Params{Weight: NoWeight}
}

// Item is the per-pass record of one input item. The host-facing fields
// (Index, Params, Width, Height) are filled before the pass; the rest are
// resolved by it.
type Item struct {
	// Index is the item's position in the input sequence.
	Index  int
	Params Params

	// Natural size reported by the measurer.
	Width, Height int

	// Weight is Params.Weight after default substitution and clamping.
	Weight float64

	// Length and Thickness are the item's content extent along each axis,
	// margins excluded. Stretching and fill alignment grow them.
	Length, Thickness int

	// Margins projected onto the axes of the pass orientation.
	MarginStart, MarginEnd    int
	MarginBefore, MarginAfter int

	// OffsetInLine is the distance from the line's start to the item's
	// content along the length, leading margin included.
	OffsetInLine int
	// OffsetInThickness is the distance from the line's top edge to the
	// item's content along the thickness, leading margin included.
	OffsetInThickness int

	// Bounds is the final content rectangle relative to the container.
	Bounds Rect
}

// OuterLength returns the item's length including its margins.
func (it *Item) OuterLength() int {
	return it.Length + it.MarginStart + it.MarginEnd
}

// OuterThickness returns the item's thickness including its margins.
func (it *Item) OuterThickness() int {
	return it.Thickness + it.MarginBefore + it.MarginAfter
}

// ResolveWeight substitutes def for the NoWeight sentinel and clamps every
// other negative or non-finite value to NoWeight.
func ResolveWeight(w, def float64) float64 {
	if w == NoWeight {
		w = def
	}
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return NoWeight
	}
	return w
}

// Project maps every item's natural size and margins onto the length and
// thickness axes of o, resetting any values left by an earlier pass.
func Project(items []Item, o Orientation) {
	ax := axisFor(o)
	for i := range items {
		it := &items[i]
		it.Length = ax.length(it.Width, it.Height)
		it.Thickness = ax.thickness(it.Width, it.Height)
		it.MarginStart, it.MarginEnd, it.MarginBefore, it.MarginAfter = ax.margins(it.Params.Margins)
		it.OffsetInLine, it.OffsetInThickness = 0, 0
		it.Bounds = Rect{}
	}
}
