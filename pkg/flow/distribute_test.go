package flow

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLayoutWeightedStretch(t *testing.T) {
	items := weighted(row(40, 40), 1, 1)
	res := Layout(items, exactWidth(100))

	want := []Rect{
		{X: 0, Y: 0, Width: 50, Height: 10},
		{X: 50, Y: 0, Width: 50, Height: 10},
	}
	if diff := cmp.Diff(want, res.Rects()); diff != "" {
		t.Errorf("Rects() mismatch (-want +got):\n%s", diff)
	}
	if res.Lines[0].Length != 100 {
		t.Errorf("Lines[0].Length = %d, want 100", res.Lines[0].Length)
	}
}

func TestLayoutStretchRemainderGoesToLastWeighted(t *testing.T) {
	tests := []struct {
		name    string
		widths  []int
		weights []float64
		want    []int
	}{
		{"thirds", []int{10, 10, 10}, []float64{1, 1, 1}, []int{33, 33, 34}},
		{"proportional", []int{10, 10}, []float64{1, 3}, []int{30, 70}},
		{"unweighted item keeps its length", []int{40, 40}, []float64{NoWeight, 1}, []int{40, 60}},
		{"last item unweighted", []int{10, 10, 10}, []float64{1, 1, NoWeight}, []int{45, 45, 10}},
		{"all zero weights split evenly", []int{40, 39}, []float64{0, 0}, []int{50, 50}},
		{"clamped negative weight", []int{40, 40}, []float64{-7, 1}, []int{40, 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := weighted(row(tt.widths...), tt.weights...)
			res := Layout(items, exactWidth(100))

			var got []int
			x := 0
			for _, r := range res.Rects() {
				got = append(got, r.Width)
				if r.X != x {
					t.Errorf("X = %d, want %d", r.X, x)
				}
				x = r.Right()
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("widths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutHugeWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		want    []int
	}{
		{"equal near max float", []float64{1e308, 1e308}, []int{50, 50}},
		{"mixed with max float", []float64{math.MaxFloat64, 1, math.MaxFloat64}, []int{45, 10, 45}},
		{"tiny beside huge", []float64{5e-324, 1e308}, []int{10, 90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			widths := make([]int, len(tt.weights))
			for i := range widths {
				widths[i] = 10
			}
			res := Layout(weighted(row(widths...), tt.weights...), exactWidth(100))

			var got []int
			x := 0
			for _, r := range res.Rects() {
				got = append(got, r.Width)
				if r.X != x {
					t.Errorf("X = %d, want %d", r.X, x)
				}
				x = r.Right()
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("widths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutDefaultWeightStretches(t *testing.T) {
	props := exactWidth(100)
	props.DefaultWeight = 1

	res := Layout(row(30, 30), props)
	if got := res.Items[1].Bounds; got.X != 50 || got.Width != 50 {
		t.Errorf("Items[1].Bounds = %+v, want X=50 Width=50", got)
	}
}

func TestLayoutZeroParamsStretch(t *testing.T) {
	items := []Item{{Width: 30, Height: 10}, {Width: 30, Height: 10, Params: DefaultParams()}}
	res := Layout(items, exactWidth(100))

	want := []Rect{
		{X: 0, Y: 0, Width: 70, Height: 10},
		{X: 70, Y: 0, Width: 30, Height: 10},
	}
	if diff := cmp.Diff(want, res.Rects()); diff != "" {
		t.Errorf("Rects() mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutLineGravityWithoutWeights(t *testing.T) {
	tests := []struct {
		align Align
		want  []int
	}{
		{AlignUnset, []int{0, 40}},
		{AlignStart, []int{0, 40}},
		{AlignCenter, []int{10, 50}},
		{AlignEnd, []int{20, 60}},
		{AlignFill, []int{0, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			props := exactWidth(100)
			props.Gravity.Horizontal = tt.align

			res := Layout(row(40, 40), props)
			for i, want := range tt.want {
				if got := res.Items[i].Bounds.X; got != want {
					t.Errorf("Items[%d].Bounds.X = %d, want %d", i, got, want)
				}
				if got := res.Items[i].Bounds.Width; got != 40 {
					t.Errorf("Items[%d].Bounds.Width = %d, want 40", i, got)
				}
			}
		})
	}
}

func TestLayoutItemLengthGravityInsideSlot(t *testing.T) {
	items := weighted(row(40, 40), 1, 1)
	items[0].Params.Gravity.Horizontal = AlignCenter

	res := Layout(items, exactWidth(100))
	want := []Rect{
		{X: 5, Y: 0, Width: 40, Height: 10},
		{X: 50, Y: 0, Width: 50, Height: 10},
	}
	if diff := cmp.Diff(want, res.Rects()); diff != "" {
		t.Errorf("Rects() mismatch (-want +got):\n%s", diff)
	}
}

// stackProps returns props for three 50-wide items wrapping into two
// lines of thickness 10 inside a 120x50 container.
func stackProps(vertical Align) Properties {
	p := exactWidth(120)
	p.MaxHeight, p.HeightMode = 50, Exact
	p.Gravity.Vertical = vertical
	return p
}

func TestLayoutCrossLineGravity(t *testing.T) {
	tests := []struct {
		align   Align
		wantY   []int
		wantH   []int
		wantTop []int
	}{
		{AlignStart, []int{0, 0, 10}, []int{10, 10, 10}, []int{0, 10}},
		{AlignCenter, []int{15, 15, 25}, []int{10, 10, 10}, []int{15, 25}},
		{AlignEnd, []int{30, 30, 40}, []int{10, 10, 10}, []int{30, 40}},
		{AlignFill, []int{0, 0, 25}, []int{25, 25, 25}, []int{0, 25}},
	}

	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			res := Layout(row(50, 50, 50), stackProps(tt.align))
			if len(res.Lines) != 2 {
				t.Fatalf("len(Lines) = %d, want 2", len(res.Lines))
			}
			for i, l := range res.Lines {
				if l.StartThickness != tt.wantTop[i] {
					t.Errorf("Lines[%d].StartThickness = %d, want %d", i, l.StartThickness, tt.wantTop[i])
				}
			}
			for i, it := range res.Items {
				if it.Bounds.Y != tt.wantY[i] {
					t.Errorf("Items[%d].Bounds.Y = %d, want %d", i, it.Bounds.Y, tt.wantY[i])
				}
				if it.Bounds.Height != tt.wantH[i] {
					t.Errorf("Items[%d].Bounds.Height = %d, want %d", i, it.Bounds.Height, tt.wantH[i])
				}
			}
		})
	}
}

func TestLayoutFillRemainderGoesToLastLine(t *testing.T) {
	items := row(50, 50, 50)
	items[1].Params.NewLine = true
	items[2].Params.NewLine = true

	p := stackProps(AlignFill)
	p.MaxHeight = 40

	res := Layout(items, p)
	want := []int{13, 13, 14}
	total := 0
	for i, l := range res.Lines {
		if l.Thickness != want[i] {
			t.Errorf("Lines[%d].Thickness = %d, want %d", i, l.Thickness, want[i])
		}
		if l.StartThickness != total {
			t.Errorf("Lines[%d].StartThickness = %d, want %d", i, l.StartThickness, total)
		}
		total += l.Thickness
	}
	if total != 40 {
		t.Errorf("stacked thickness = %d, want 40", total)
	}
}

func TestLayoutItemThicknessGravityOverridesContainer(t *testing.T) {
	items := row(50, 50, 50)
	items[2].Params.Gravity.Vertical = AlignCenter

	res := Layout(items, stackProps(AlignFill))
	got := res.Items[2].Bounds
	if got.Y != 32 || got.Height != 10 {
		t.Errorf("Items[2].Bounds = %+v, want Y=32 Height=10", got)
	}
}

func TestLayoutItemsAlignInsideThickerLine(t *testing.T) {
	items := []Item{box(20, 30), box(20, 10), box(20, 10)}
	items[1].Params.Gravity.Vertical = AlignEnd
	items[2].Params.Gravity.Vertical = AlignFill

	res := Layout(items, exactWidth(100))
	want := []Rect{
		{X: 0, Y: 0, Width: 20, Height: 30},
		{X: 20, Y: 20, Width: 20, Height: 10},
		{X: 40, Y: 0, Width: 20, Height: 30},
	}
	if diff := cmp.Diff(want, res.Rects()); diff != "" {
		t.Errorf("Rects() mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutOverflowIsNotDistributed(t *testing.T) {
	items := weighted(row(80, 80), 1, 1)
	p := exactWidth(100)
	p.CheckCanFit = false

	res := Layout(items, p)
	want := []Rect{
		{X: 0, Y: 0, Width: 80, Height: 10},
		{X: 80, Y: 0, Width: 80, Height: 10},
	}
	if diff := cmp.Diff(want, res.Rects()); diff != "" {
		t.Errorf("Rects() mismatch (-want +got):\n%s", diff)
	}
}

func TestDistributeZeroLeftoverKeepsNaturalPlacement(t *testing.T) {
	items := weighted(row(40, 25, 35), 1, 2, 3)
	items[1].Params.Margins = Edges{Left: 3, Right: 2}
	Project(items, Horizontal)
	lines := Pack(items, 1000, NoWeight, true)
	Position(items, lines)
	length, thickness := ContentExtent(lines)

	before := make([]Item, len(items))
	copy(before, items)

	Distribute(items, lines, length, thickness, Gravity{Horizontal: AlignCenter, Vertical: AlignEnd}, Horizontal)
	if diff := cmp.Diff(before, items); diff != "" {
		t.Errorf("Distribute() changed items with nothing to distribute (-want +got):\n%s", diff)
	}
}

func TestDistributeConservesLeftover(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 300; round++ {
		n := 1 + r.IntN(8)
		items := make([]Item, n)
		for i := range items {
			items[i] = box(r.IntN(30), 10)
			items[i].Params.Margins = Edges{Left: r.IntN(3), Right: r.IntN(3)}
			if r.IntN(3) > 0 {
				items[i].Params.Weight = r.Float64() * 5
			}
		}
		Project(items, Horizontal)
		lines := Pack(items, 0, NoWeight, false)
		Position(items, lines)

		natural := make([]int, n)
		for i := range items {
			natural[i] = items[i].Length
		}
		free := r.IntN(500)
		Distribute(items, lines, lines[0].Length+free, 10, Gravity{}, Horizontal)

		added := 0
		for i := range items {
			d := items[i].Length - natural[i]
			if d < 0 {
				t.Fatalf("round %d: item %d shrank by %d", round, i, -d)
			}
			if items[i].Weight < 0 && d != 0 {
				t.Fatalf("round %d: unweighted item %d grew by %d", round, i, d)
			}
			added += d
		}

		hasWeight := false
		for i := range items {
			hasWeight = hasWeight || items[i].Weight >= 0
		}
		if hasWeight && added != free {
			t.Errorf("round %d: added %d, want %d", round, added, free)
		}
	}
}
