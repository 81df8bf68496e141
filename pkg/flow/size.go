package flow

// SizeMode is how the host constrains the container along one axis.
type SizeMode int

const (
	// Unspecified resolves to the content extent.
	Unspecified SizeMode = iota
	// Exact resolves to the bound regardless of content.
	Exact
	// AtMost resolves to the smaller of content and bound.
	AtMost
)

var sizeModeNames = [...]string{"unspecified", "exact", "at_most"}

// String returns the lower-case name of m.
func (m SizeMode) String() string {
	if m < 0 || int(m) >= len(sizeModeNames) {
		return "unspecified"
	}
	return sizeModeNames[m]
}

// Resolve returns the final container extent along one axis.
//
// The bound is never validated: Exact hands back zero or negative bounds
// unchanged and content larger than the bound simply overflows.
func Resolve(mode SizeMode, bound, content int) int {
	switch mode {
	case Exact:
		return bound
	case AtMost:
		return min(bound, content)
	default:
		return content
	}
}

// ContentExtent returns the measured extent of packed and positioned lines:
// the longest line's length and the total stacked thickness. With no lines
// both are zero.
func ContentExtent(lines []Line) (length, thickness int) {
	if len(lines) == 0 {
		return 0, 0
	}
	for _, l := range lines {
		length = max(length, l.Length)
	}
	last := lines[len(lines)-1]
	return length, last.StartThickness + last.Thickness
}
