package bookmark

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	fractal "github.com/marben/fractal_frontier"
	"github.com/marben/fractal_frontier/view"
)

func TestStoreMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "bookmarks.json"))
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() = %d bookmarks, want 0", len(got))
	}
}

func TestStoreAddLoadDelete(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "bookmarks.json"))

	first := Bookmark{Name: "Test Bookmark 1", Xmin: -1.5, Xmax: 0.5, Ymin: -1, Ymax: 1, MaxIterations: 200, Theme: "Blue", FractalType: fractal.Mandelbrot}
	second := Bookmark{Name: "Test Bookmark 2", Xmin: -1.8, Xmax: 0.8, Ymin: -1.2, Ymax: 1.2, MaxIterations: 300, Theme: "Fire", FractalType: fractal.Julia, C: &fractal.JuliaConstant{Re: 0.285, Im: 0.01}}

	if err := s.Add(first); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Add(second); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Load() = %d bookmarks, want 2", len(got))
	}
	if got[0].Name != first.Name || got[0].Xmin != -1.5 || got[0].MaxIterations != 200 || got[0].Theme != "Blue" {
		t.Errorf("bookmark 0 = %+v, want %+v", got[0], first)
	}
	if got[1].FractalType != fractal.Julia || got[1].C == nil || *got[1].C != *second.C {
		t.Errorf("bookmark 1 = %+v, want %+v", got[1], second)
	}

	found, err := s.Find("Test Bookmark 2")
	if err != nil || found.Theme != "Fire" {
		t.Errorf("Find() = %+v, %v; want theme Fire", found, err)
	}

	if err := s.Delete(0); err != nil {
		t.Fatalf("Delete(0) error = %v", err)
	}
	got, _ = s.Load()
	if len(got) != 1 || got[0].Name != second.Name {
		t.Errorf("after Delete(0) = %+v, want only %q", got, second.Name)
	}

	if err := s.Delete(5); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(5) error = %v, want %v", err, ErrNotFound)
	}
	if _, err := s.Find("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(missing) error = %v, want %v", err, ErrNotFound)
	}
}

func TestStoreReadsExistingFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	data := `[
  {"name": "Fatou Set", "x_min": -2.0, "x_max": 1.0, "y_min": -1.5, "y_max": 1.5,
   "max_iterations": 150, "color_theme": "Grayscale", "fractal_type": "Fatou"}
]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0].FractalType != fractal.Fatou || got[0].MaxIterations != 150 || got[0].Theme != "Grayscale" {
		t.Errorf("Load() = %+v, want one Grayscale Fatou bookmark with 150 iterations", got)
	}
}

func TestApplyViewerBookmark(t *testing.T) {
	// written by the desktop viewer: no name, kind or constant
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	data := `[
  {"x_min": -0.8, "x_max": -0.7, "y_min": 0.05, "y_max": 0.15, "iteration_offset": 20,
   "color_theme": "Fire", "auto_adjust": false, "timestamp": "2024-03-01 12:00:00",
   "zoom_level": 30.0, "max_iterations": 160, "auto_iterations": 140}
]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Load() returned %d bookmarks, want 1", len(got))
	}

	s := view.New(fractal.Resolution{Width: 80, Height: 60})
	if err := got[0].Apply(s); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if s.Theme != fractal.Fire {
		t.Errorf("Theme = %v, want Fire", s.Theme)
	}
	if s.Kind != fractal.Mandelbrot {
		t.Errorf("Kind = %v, want Mandelbrot", s.Kind)
	}
	if s.Viewport != fractal.SeahorseValley {
		t.Errorf("Viewport = %v, want %v", s.Viewport, fractal.SeahorseValley)
	}
	if got := s.MaxIterations(); got != 160 {
		t.Errorf("MaxIterations() = %d, want 160", got)
	}
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)
	if _, err := s.Load(); err == nil {
		t.Error("Load() on corrupt file returned no error")
	}
	if err := s.Add(Bookmark{Name: "x"}); err == nil {
		t.Error("Add() on corrupt file returned no error")
	}
}

func TestStateRoundTrip(t *testing.T) {
	s := view.New(fractal.Resolution{Width: 160, Height: 120})
	s.Kind = fractal.Julia
	s.C = fractal.JuliaConstant{Re: -0.8, Im: 0.156}
	s.Theme = fractal.Rainbow3
	s.IterationOffset = 40
	s.Zoom(0.25, &view.Pixel{X: 40, Y: 30})

	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	b := FromState("deep", s, now)
	if b.Timestamp != "2024-05-01 12:30:00" {
		t.Errorf("Timestamp = %q, want 2024-05-01 12:30:00", b.Timestamp)
	}
	if b.ZoomLevel != s.ZoomLevel() || b.Theme != "Rainbow3" {
		t.Errorf("bookmark = %+v, want zoom %v and theme Rainbow3", b, s.ZoomLevel())
	}

	restored := view.New(fractal.Resolution{Width: 320, Height: 240})
	if err := b.Apply(restored); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if restored.Viewport != s.Viewport || restored.Kind != s.Kind || restored.C != s.C || restored.Theme != s.Theme {
		t.Errorf("restored = %+v, want %+v", restored, s)
	}
	if restored.MaxIterations() != s.MaxIterations() {
		t.Errorf("restored MaxIterations() = %d, want %d", restored.MaxIterations(), s.MaxIterations())
	}
	if restored.Resolution.Width != 320 {
		t.Errorf("Apply() changed the resolution to %+v", restored.Resolution)
	}

	bad := b
	bad.Xmin, bad.Xmax = 1, 0
	if err := bad.Apply(restored); !errors.Is(err, fractal.ErrInvalidInput) {
		t.Errorf("Apply(inverted viewport) error = %v, want %v", err, fractal.ErrInvalidInput)
	}
}
