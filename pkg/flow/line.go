package flow

// Line is one wrapped line of a pass. It refers to its items by index
// range into the pass's item slice, so a line never owns or shares items.
type Line struct {
	// Start and End delimit the line's items: items[Start:End].
	Start, End int

	// Length is the sum of the items' outer lengths; after distribution it
	// includes any stretch handed out.
	Length int
	// Thickness is the largest outer thickness among the items; cross-line
	// fill may grow it further.
	Thickness int

	// StartLength and StartThickness are the line's offset from the
	// container origin along each axis.
	StartLength    int
	StartThickness int
}

// Len returns the number of items on the line.
func (l Line) Len() int { return l.End - l.Start }

// Items returns the line's items as a sub-slice of items.
func (l Line) Items(items []Item) []Item { return items[l.Start:l.End] }
