package flow

// Pack groups items into lines along the length axis. Items must already be
// projected (see [Project]).
//
// An empty line accepts any item, even one wider than maxLength, so packing
// always makes progress. A forced new line always breaks. Otherwise, when
// canFit is set, an item that would push the line past maxLength starts a
// new line. Each item's Weight is resolved against defaultWeight on the way
// through; weight plays no part in the grouping itself.
//
// An empty input yields no lines.
func Pack(items []Item, maxLength int, defaultWeight float64, canFit bool) []Line {
	var lines []Line
	for i := range items {
		it := &items[i]
		it.Weight = ResolveWeight(it.Params.Weight, defaultWeight)

		outer := it.OuterLength()
		n := len(lines)
		if n == 0 || it.Params.NewLine || (canFit && lines[n-1].Length+outer > maxLength) {
			lines = append(lines, Line{Start: i, End: i})
			n++
		}

		l := &lines[n-1]
		l.End = i + 1
		l.Length += outer
		l.Thickness = max(l.Thickness, it.OuterThickness())
	}
	return lines
}
