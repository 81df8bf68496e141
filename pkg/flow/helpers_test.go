package flow

// box returns an unweighted item of the given natural size.
func box(width, height int) Item {
	return Item{Width: width, Height: height, Params: DefaultParams()}
}

// row returns unweighted items of the given widths, all 10 high.
func row(widths ...int) []Item {
	items := make([]Item, len(widths))
	for i, w := range widths {
		items[i] = box(w, 10)
		items[i].Index = i
	}
	return items
}

// weighted sets the weight of each item in order.
func weighted(items []Item, weights ...float64) []Item {
	for i, w := range weights {
		items[i].Params.Weight = w
	}
	return items
}

// groups returns the outer lengths of the items on each line.
func groups(items []Item, lines []Line) [][]int {
	out := make([][]int, len(lines))
	for i, l := range lines {
		out[i] = []int{}
		for _, it := range l.Items(items) {
			out[i] = append(out[i], it.OuterLength())
		}
	}
	return out
}

// packed projects and packs items horizontally.
func packed(items []Item, maxLength int, canFit bool) []Line {
	Project(items, Horizontal)
	return Pack(items, maxLength, NoWeight, canFit)
}

func exactWidth(width int) Properties {
	p := DefaultProperties()
	p.MaxWidth, p.WidthMode = width, Exact
	return p
}
