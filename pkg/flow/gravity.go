package flow

// Align is the alignment intent along one axis.
type Align int

const (
	// AlignUnset defers to the enclosing default: Start for the container,
	// the container's own alignment for an item's thickness component.
	AlignUnset Align = iota
	AlignStart
	AlignCenter
	AlignEnd
	// AlignFill stretches to the available extent.
	AlignFill
)

var alignNames = [...]string{"unset", "start", "center", "end", "fill"}

// String returns the lower-case name of a.
func (a Align) String() string {
	if a < 0 || int(a) >= len(alignNames) {
		return "unset"
	}
	return alignNames[a]
}

// Gravity is an alignment intent on both physical axes. The orientation
// decides which component applies to the length and which to the thickness.
type Gravity struct {
	Horizontal Align
	Vertical   Align
}

// IsZero reports whether neither component is set.
func (g Gravity) IsZero() bool {
	return g.Horizontal == AlignUnset && g.Vertical == AlignUnset
}

// inherit returns a, or fallback when a is unset.
func inherit(a, fallback Align) Align {
	if a == AlignUnset {
		return fallback
	}
	return a
}

// offset returns the leading shift a applies to an extent with free units
// of slack. Start and Fill do not shift.
func (a Align) offset(free int) int {
	switch a {
	case AlignCenter:
		return free / 2
	case AlignEnd:
		return free
	default:
		return 0
	}
}
