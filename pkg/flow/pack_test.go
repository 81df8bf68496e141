package flow

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPack(t *testing.T) {
	tests := []struct {
		name      string
		items     []Item
		maxLength int
		canFit    bool
		want      [][]int
	}{
		{
			name:      "wraps when the next item does not fit",
			items:     row(50, 50, 50),
			maxLength: 120,
			canFit:    true,
			want:      [][]int{{50, 50}, {50}},
		},
		{
			name:      "oversized item accepted alone",
			items:     row(200),
			maxLength: 100,
			canFit:    true,
			want:      [][]int{{200}},
		},
		{
			name:      "oversized item after others gets its own line",
			items:     row(30, 200, 30),
			maxLength: 100,
			canFit:    true,
			want:      [][]int{{30}, {200}, {30}},
		},
		{
			name:      "exact fit stays on the line",
			items:     row(60, 40, 1),
			maxLength: 100,
			canFit:    true,
			want:      [][]int{{60, 40}, {1}},
		},
		{
			name:      "can-fit disabled keeps one line",
			items:     row(50, 50, 50),
			maxLength: 120,
			canFit:    false,
			want:      [][]int{{50, 50, 50}},
		},
		{
			name:      "empty input",
			items:     nil,
			maxLength: 100,
			canFit:    true,
			want:      [][]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := packed(tt.items, tt.maxLength, tt.canFit)
			if diff := cmp.Diff(tt.want, groups(tt.items, lines)); diff != "" {
				t.Errorf("Pack() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPackForcedNewLine(t *testing.T) {
	items := row(30, 30)
	items[1].Params.NewLine = true

	lines := packed(items, 1000, true)
	if diff := cmp.Diff([][]int{{30}, {30}}, groups(items, lines)); diff != "" {
		t.Errorf("Pack() mismatch (-want +got):\n%s", diff)
	}
}

func TestPackForcedNewLineOnFirstItem(t *testing.T) {
	items := row(30, 30)
	items[0].Params.NewLine = true

	lines := packed(items, 1000, true)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if lines[0].Len() != 2 {
		t.Errorf("lines[0].Len() = %d, want 2", lines[0].Len())
	}
}

func TestPackMarginsCountTowardLength(t *testing.T) {
	items := row(40, 40, 40)
	for i := range items {
		items[i].Params.Margins = Edges{Left: 5, Right: 5, Top: 2, Bottom: 3}
	}

	lines := packed(items, 100, true)
	if diff := cmp.Diff([][]int{{50, 50}, {50}}, groups(items, lines)); diff != "" {
		t.Errorf("Pack() mismatch (-want +got):\n%s", diff)
	}
	if lines[0].Length != 100 {
		t.Errorf("lines[0].Length = %d, want 100", lines[0].Length)
	}
	if lines[0].Thickness != 15 {
		t.Errorf("lines[0].Thickness = %d, want 15", lines[0].Thickness)
	}
}

func TestPackLineThicknessIsThickestItem(t *testing.T) {
	items := []Item{box(10, 10), box(10, 30), box(10, 20)}
	lines := packed(items, 100, true)

	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if lines[0].Thickness != 30 {
		t.Errorf("Thickness = %d, want 30", lines[0].Thickness)
	}
	if lines[0].Length != 30 {
		t.Errorf("Length = %d, want 30", lines[0].Length)
	}
}

func TestPackResolvesWeights(t *testing.T) {
	items := weighted(row(10, 10, 10, 10), NoWeight, -3, 0, 2.5)
	Project(items, Horizontal)
	Pack(items, 100, 2, true)

	want := []float64{2, NoWeight, 0, 2.5}
	for i, w := range want {
		if items[i].Weight != w {
			t.Errorf("items[%d].Weight = %v, want %v", i, items[i].Weight, w)
		}
	}
}

// randomItems returns n items with random sizes, margins, and breaks.
func randomItems(r *rand.Rand, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = box(r.IntN(80), r.IntN(40))
		items[i].Index = i
		items[i].Params.Margins = Edges{Left: r.IntN(4), Right: r.IntN(4), Top: r.IntN(3), Bottom: r.IntN(3)}
		items[i].Params.NewLine = r.IntN(7) == 0
		if r.IntN(2) == 0 {
			items[i].Params.Weight = float64(r.IntN(4))
		}
	}
	return items
}

func TestPackProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 200; round++ {
		items := randomItems(r, r.IntN(30))
		maxLength := 20 + r.IntN(200)

		first := packed(slices.Clone(items), maxLength, true)
		second := packed(slices.Clone(items), maxLength, true)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("round %d: Pack() not deterministic (-first +second):\n%s", round, diff)
		}

		// coverage: contiguous ranges over every item, in order, no empty line
		next := 0
		for i, l := range first {
			if l.Start != next {
				t.Fatalf("round %d: line %d starts at %d, want %d", round, i, l.Start, next)
			}
			if l.Len() == 0 {
				t.Fatalf("round %d: line %d is empty", round, i)
			}
			next = l.End
		}
		if next != len(items) {
			t.Fatalf("round %d: lines cover %d items, want %d", round, next, len(items))
		}

		// forced breaks always open a line
		starts := make(map[int]bool, len(first))
		for _, l := range first {
			starts[l.Start] = true
		}
		for i, it := range items {
			if i > 0 && it.Params.NewLine && !starts[i] {
				t.Errorf("round %d: forced item %d does not start a line", round, i)
			}
		}
	}
}
