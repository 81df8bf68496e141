package sink

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/flowpack/pkg/scene"
)

// TextOption configures text rendering via [RenderText].
type TextOption func(*textRenderer)

// WithColor colors each item with its fill using lipgloss.
func WithColor() TextOption { return func(r *textRenderer) { r.color = true } }

// WithTextDebug marks line band cells not covered by an item with a dot.
func WithTextDebug() TextOption { return func(r *textRenderer) { r.debug = true } }

const (
	ownerNone  = -1
	ownerDebug = -2

	// wideTail marks the second cell of a double-width rune.
	wideTail = rune(0)
)

type cell struct {
	r     rune
	owner int
}

type textRenderer struct {
	color bool
	debug bool
	grid  [][]cell
	boxes []scene.Box
}

// RenderText draws the frame as a character grid, one cell per layout
// unit. Items of two or more cells in each direction get a border with the
// label inside; thinner items are shaded with the label overlaid.
func RenderText(f *scene.Frame, opts ...TextOption) string {
	r := textRenderer{boxes: f.Boxes}
	for _, opt := range opts {
		opt(&r)
	}

	r.grid = make([][]cell, max(f.Height, 0))
	for y := range r.grid {
		r.grid[y] = make([]cell, max(f.Width, 0))
		for x := range r.grid[y] {
			r.grid[y][x] = cell{r: ' ', owner: ownerNone}
		}
	}

	if r.debug {
		for _, l := range f.Lines {
			r.fill(l.Rect.X, l.Rect.Y, l.Rect.Width, l.Rect.Height, '·', ownerDebug)
		}
	}
	for i, b := range f.Boxes {
		r.drawBox(i, b)
	}
	return r.String()
}

func (r *textRenderer) drawBox(i int, b scene.Box) {
	x, y, w, h := b.Rect.X, b.Rect.Y, b.Rect.Width, b.Rect.Height
	if w <= 0 || h <= 0 {
		return
	}
	label := strings.Split(labelFor(b), "\n")

	if w < 2 || h < 2 {
		r.fill(x, y, w, h, '░', i)
		r.text(x, y, w, label[0], i)
		return
	}

	r.fill(x, y, w, h, ' ', i)
	for dx := 1; dx < w-1; dx++ {
		r.set(x+dx, y, '─', i)
		r.set(x+dx, y+h-1, '─', i)
	}
	for dy := 1; dy < h-1; dy++ {
		r.set(x, y+dy, '│', i)
		r.set(x+w-1, y+dy, '│', i)
	}
	r.set(x, y, '┌', i)
	r.set(x+w-1, y, '┐', i)
	r.set(x, y+h-1, '└', i)
	r.set(x+w-1, y+h-1, '┘', i)

	for row, line := range label {
		if row >= h-2 {
			break
		}
		r.text(x+1, y+1+row, w-2, line, i)
	}
}

func (r *textRenderer) fill(x, y, w, h int, ch rune, owner int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			r.set(x+dx, y+dy, ch, owner)
		}
	}
}

// text writes s from (x, y), clipped to width cells.
func (r *textRenderer) text(x, y, width int, s string, owner int) {
	col := 0
	for _, ch := range s {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		if col+cw > width {
			return
		}
		r.set(x+col, y, ch, owner)
		if cw == 2 {
			r.set(x+col+1, y, wideTail, owner)
		}
		col += cw
	}
}

func (r *textRenderer) set(x, y int, ch rune, owner int) {
	if y < 0 || y >= len(r.grid) || x < 0 || x >= len(r.grid[y]) {
		return
	}
	r.grid[y][x] = cell{r: ch, owner: owner}
}

// String joins the grid rows, styling runs of cells that share an owner.
func (r *textRenderer) String() string {
	var sb strings.Builder
	for _, row := range r.grid {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].owner == row[start].owner {
				continue
			}
			sb.WriteString(r.run(row[start:x]))
			start = x
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *textRenderer) run(cells []cell) string {
	var sb strings.Builder
	for _, c := range cells {
		if c.r != wideTail {
			sb.WriteRune(c.r)
		}
	}
	s := sb.String()
	if !r.color || len(cells) == 0 {
		return s
	}
	switch owner := cells[0].owner; {
	case owner == ownerDebug:
		return lipgloss.NewStyle().Faint(true).Render(s)
	case owner >= 0:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(fillFor(r.boxes[owner]))).Render(s)
	default:
		return s
	}
}
