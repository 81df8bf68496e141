package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/flow"
	"github.com/matzehuels/flowpack/pkg/scene"
)

func testFrame() *scene.Frame {
	return &scene.Frame{
		Orientation: "horizontal",
		Width:       8,
		Height:      4,
		Boxes: []scene.Box{
			{Index: 0, Text: "hi", Rect: flow.Rect{X: 0, Y: 0, Width: 5, Height: 3}},
			{Index: 1, ID: "b", Rect: flow.Rect{X: 5, Y: 0, Width: 3, Height: 1}, Margins: flow.Edges{Bottom: 1}},
		},
		Lines: []scene.Band{
			{Rect: flow.Rect{X: 0, Y: 0, Width: 8, Height: 3}, Start: 0, End: 2},
		},
	}
}

func TestRenderJSON(t *testing.T) {
	f := testFrame()
	data, err := RenderJSON(f, WithJSONGenerator("flowpack test"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var got scene.Frame
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(*f, got); diff != "" {
		t.Errorf("decoded frame mismatch (-want +got):\n%s", diff)
	}

	var meta struct {
		Generator string `json:"generator"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatal(err)
	}
	if meta.Generator != "flowpack test" {
		t.Errorf("generator = %q, want %q", meta.Generator, "flowpack test")
	}
}

func TestRenderSVG(t *testing.T) {
	f := testFrame()
	f.Boxes[0].Text = "<a&b>"

	svg := string(RenderSVG(f, WithScale(2)))
	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16.0 8.0"`) {
		t.Errorf("unexpected svg header: %.80s", svg)
	}
	if n := strings.Count(svg, `class="item"`); n != 2 {
		t.Errorf("item rects = %d, want 2", n)
	}
	if !strings.Contains(svg, "&lt;a&amp;b&gt;") {
		t.Error("label is not escaped")
	}
	if !strings.Contains(svg, `id="item-b"`) {
		t.Error("item id missing")
	}
	if strings.Contains(svg, `class="debug"`) {
		t.Error("debug overlay drawn without WithDebug")
	}
}

func TestRenderSVGDebug(t *testing.T) {
	svg := string(RenderSVG(testFrame(), WithDebug()))
	for _, want := range []string{`class="debug"`, `class="padding"`, `class="line" data-line="0"`, `class="margin" data-item="1"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("debug svg missing %s", want)
		}
	}
	if strings.Contains(svg, `data-item="0"`) {
		t.Error("margin box drawn for an item without margins")
	}
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name string
		opts []TextOption
		want string
	}{
		{
			name: "plain",
			want: "┌───┐b░░\n" +
				"│hi │   \n" +
				"└───┘   \n" +
				"        \n",
		},
		{
			name: "debug",
			opts: []TextOption{WithTextDebug()},
			want: "┌───┐b░░\n" +
				"│hi │···\n" +
				"└───┘···\n" +
				"        \n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderText(testFrame(), tt.opts...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderText mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderTextClipsWideRunes(t *testing.T) {
	f := &scene.Frame{
		Width:  4,
		Height: 1,
		Boxes:  []scene.Box{{Text: "日本語", Rect: flow.Rect{Width: 3, Height: 1}}},
	}
	if got, want := RenderText(f), "日░ \n"; got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	f := testFrame()
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			data, err := Render(format, f, Options{Debug: true})
			if err != nil {
				t.Fatalf("Render(%s) error: %v", format, err)
			}
			if len(data) == 0 {
				t.Errorf("Render(%s) returned no data", format)
			}
		})
	}

	if _, err := Render("pdf", f, Options{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(pdf) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestRenderTextTooLarge(t *testing.T) {
	f := &scene.Frame{Width: 4000, Height: 1001}
	if _, err := Render(FormatText, f, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render(txt, 4000x1001) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	f.Height = 1000
	if _, err := Render(FormatText, f, Options{}); err != nil {
		t.Errorf("Render(txt, 4000x1000) error = %v", err)
	}
	if _, err := Render(FormatSVG, &scene.Frame{Width: 1 << 16, Height: 1 << 16}, Options{}); err != nil {
		t.Errorf("Render(svg, large) error = %v", err)
	}
}

func TestIsValidFormat(t *testing.T) {
	if !IsValidFormat("svg") || IsValidFormat("png") {
		t.Error("IsValidFormat mismatch")
	}
	if Extension(FormatText) != ".txt" {
		t.Errorf("Extension(txt) = %s", Extension(FormatText))
	}
}
