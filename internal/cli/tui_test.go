package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/flowpack/pkg/scene"
)

func previewScene() *scene.Scene {
	return &scene.Scene{
		Items: []scene.Item{
			{ID: "a", Width: 4, Height: 2},
			{ID: "b", Width: 4, Height: 3},
			{ID: "c", Width: 4, Height: 1},
		},
	}
}

func press(t *testing.T, m previewModel, keys ...string) previewModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(previewModel)
	}
	return m
}

func TestPreviewModelStartsAtMeasuredSize(t *testing.T) {
	m := newPreviewModel("scene.toml", previewScene())
	if m.err != nil {
		t.Fatalf("newPreviewModel() error: %v", m.err)
	}
	if c := m.scene.Container; c.Width != 12 || c.Height != 3 {
		t.Errorf("container = %dx%d, want 12x3", c.Width, c.Height)
	}
	if len(m.frame.Lines) != 1 {
		t.Errorf("len(Lines) = %d, want 1", len(m.frame.Lines))
	}
}

func TestPreviewModelResizeWraps(t *testing.T) {
	m := newPreviewModel("scene.toml", previewScene())

	m = press(t, m, "left")
	if m.scene.Container.Width != 11 {
		t.Fatalf("width after left = %d, want 11", m.scene.Container.Width)
	}
	if len(m.frame.Lines) != 2 {
		t.Errorf("len(Lines) at width 11 = %d, want 2", len(m.frame.Lines))
	}

	m = press(t, m, "right")
	if len(m.frame.Lines) != 1 {
		t.Errorf("len(Lines) back at width 12 = %d, want 1", len(m.frame.Lines))
	}
}

func TestPreviewModelOrientationAndReset(t *testing.T) {
	m := newPreviewModel("scene.toml", previewScene())

	m = press(t, m, "o")
	if m.scene.Container.Orientation != "vertical" {
		t.Fatalf("orientation after o = %q, want vertical", m.scene.Container.Orientation)
	}
	if m.frame.Orientation != "vertical" {
		t.Errorf("frame orientation = %q, want vertical", m.frame.Orientation)
	}

	m = press(t, m, "o")
	if m.scene.Container.Orientation != "horizontal" {
		t.Errorf("orientation after second o = %q, want horizontal", m.scene.Container.Orientation)
	}

	m = press(t, m, "left", "left", "r")
	if c := m.scene.Container; c.Width != 12 || c.Orientation != "" {
		t.Errorf("container after reset = %+v, want width 12 and no orientation", c)
	}
}

func TestPreviewModelWidthFloor(t *testing.T) {
	s := previewScene()
	s.Container.Width = 1
	m := newPreviewModel("scene.toml", s)

	m = press(t, m, "left", "left", "left")
	if m.scene.Container.Width != 0 {
		t.Errorf("width = %d, want 0", m.scene.Container.Width)
	}
}

func TestPreviewModelQuit(t *testing.T) {
	m := newPreviewModel("scene.toml", previewScene())
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Errorf("Update(%q) returned no command, want quit", k.String())
		}
	}
}

func TestPreviewModelView(t *testing.T) {
	m := newPreviewModel("cards.toml", previewScene())
	m = press(t, m, "d")
	if !m.debug {
		t.Fatal("debug not toggled")
	}

	view := m.View()
	for _, want := range []string{"cards.toml", "width 12", "1 lines", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModeLabel(t *testing.T) {
	tests := []struct {
		mode  string
		bound int
		want  string
	}{
		{"", 10, "(at_most)"},
		{"", 0, "(unspecified)"},
		{"exact", 10, "(exact)"},
		{"huge", 10, "(huge)"},
	}
	for _, tt := range tests {
		if got := modeLabel(tt.mode, tt.bound); got != tt.want {
			t.Errorf("modeLabel(%q, %d) = %q, want %q", tt.mode, tt.bound, got, tt.want)
		}
	}
}
