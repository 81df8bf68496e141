package scene

import (
	"path/filepath"
	"testing"
)

// TestExampleScenes lays out every scene shipped in examples/.
func TestExampleScenes(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example scenes")
	}

	for _, path := range paths {
		if _, err := FormatFromPath(path); err != nil {
			continue
		}
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			if err != nil {
				t.Fatalf("Load(%s): %v", path, err)
			}
			f, _, err := s.Layout()
			if err != nil {
				t.Fatalf("Layout(): %v", err)
			}
			if len(f.Boxes) != len(s.Items) {
				t.Errorf("len(Boxes) = %d, want %d", len(f.Boxes), len(s.Items))
			}
			if len(s.Items) > 0 && len(f.Lines) == 0 {
				t.Error("no lines for a non-empty scene")
			}
			for _, b := range f.Boxes {
				if b.Line < 0 || b.Line >= len(f.Lines) {
					t.Errorf("box %d on line %d of %d", b.Index, b.Line, len(f.Lines))
				}
			}
		})
	}
}
