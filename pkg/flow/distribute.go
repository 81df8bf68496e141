package flow

import "math"

// Distribute hands leftover space out according to gravity and weight.
// lines must come from [Pack] and [Position] over the same items.
//
// Across lines, slack along the thickness (resolvedThickness minus the
// stacked thickness) follows the container gravity's thickness component:
// Start leaves the stack in place, Center and End shift every line, and
// Fill grows each line's thickness by an even share and restacks them.
//
// Inside each line, slack along the length goes to the items with a
// non-negative weight, proportionally to weight. When no item of a line is
// weighted, the line as a whole moves by the container gravity's length
// component instead (Fill behaves as Start there).
//
// Integer shares are floored and the remainder goes to the last recipient,
// so the handed-out total always equals the slack exactly. Finally each
// item is aligned inside its line's thickness band by its own thickness
// gravity, inheriting the container's when unset.
func Distribute(items []Item, lines []Line, resolvedLength, resolvedThickness int, gravity Gravity, o Orientation) {
	if len(lines) == 0 {
		return
	}
	ax := axisFor(o)
	lengthAlign := inherit(ax.lengthAlign(gravity), AlignStart)
	thicknessAlign := inherit(ax.thicknessAlign(gravity), AlignStart)

	distributeLines(lines, resolvedThickness, thicknessAlign)
	for i := range lines {
		l := &lines[i]
		if free := resolvedLength - l.Length; free > 0 {
			stretchLine(items, l, free, lengthAlign, ax)
		}
		alignInBand(items, l, thicknessAlign, ax)
	}
}

// distributeLines spreads thickness slack across the stack of lines.
func distributeLines(lines []Line, resolvedThickness int, align Align) {
	total := 0
	for _, l := range lines {
		total += l.Thickness
	}
	free := resolvedThickness - total
	if free <= 0 {
		return
	}

	if align != AlignFill {
		shift := align.offset(free)
		for i := range lines {
			lines[i].StartThickness += shift
		}
		return
	}

	share := free / len(lines)
	start := 0
	for i := range lines {
		l := &lines[i]
		extra := share
		if i == len(lines)-1 {
			extra = free - share*(len(lines)-1)
		}
		l.Thickness += extra
		l.StartThickness = start
		start += l.Thickness
	}
}

// stretchLine distributes free length units inside one line.
func stretchLine(items []Item, l *Line, free int, lineAlign Align, ax axis) {
	var maxWeight float64
	weighted, last := 0, -1
	for j := l.Start; j < l.End; j++ {
		if w := items[j].Weight; w >= 0 {
			maxWeight = max(maxWeight, w)
			weighted++
			last = j
		}
	}

	if weighted == 0 {
		l.StartLength += lineAlign.offset(free)
		return
	}

	// Weights are scaled by the largest one so the total stays finite
	// however large the inputs are.
	var totalWeight float64
	if maxWeight > 0 {
		for j := l.Start; j < l.End; j++ {
			if w := items[j].Weight; w >= 0 {
				totalWeight += w / maxWeight
			}
		}
	}

	shift, given := 0, 0
	for j := l.Start; j < l.End; j++ {
		it := &items[j]
		it.OffsetInLine += shift
		if it.Weight < 0 {
			continue
		}

		var extra int
		switch {
		case j == last:
			extra = free - given
		case totalWeight > 0:
			share := math.Floor(float64(free) * (it.Weight / maxWeight / totalWeight))
			if share > 0 && !math.IsNaN(share) {
				extra = min(int(share), free-given)
			}
		default:
			// every weight is zero: equal shares
			extra = free / weighted
		}
		given += extra
		shift += extra

		switch a := ax.lengthAlign(it.Params.Gravity); a {
		case AlignStart, AlignCenter, AlignEnd:
			it.OffsetInLine += a.offset(extra)
		default:
			it.Length += extra
		}
	}
	l.Length += free
}

// alignInBand positions each item of l across the line's thickness.
func alignInBand(items []Item, l *Line, containerAlign Align, ax axis) {
	for j := l.Start; j < l.End; j++ {
		it := &items[j]
		free := l.Thickness - it.OuterThickness()
		if free <= 0 {
			continue
		}
		a := inherit(ax.thicknessAlign(it.Params.Gravity), containerAlign)
		if a == AlignFill {
			it.Thickness += free
			continue
		}
		it.OffsetInThickness += a.offset(free)
	}
}
