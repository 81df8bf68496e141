package flow

// Position computes the natural, unstretched placement: lines stack along
// the thickness with no gaps, and items within a line follow each other
// start to end, each offset by its own leading margins.
func Position(items []Item, lines []Line) {
	thickness := 0
	for i := range lines {
		l := &lines[i]
		l.StartLength = 0
		l.StartThickness = thickness
		thickness += l.Thickness

		offset := 0
		for j := l.Start; j < l.End; j++ {
			it := &items[j]
			it.OffsetInLine = offset + it.MarginStart
			it.OffsetInThickness = it.MarginBefore
			offset += it.OuterLength()
		}
	}
}
