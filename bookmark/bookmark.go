// Package bookmark persists named view states to a JSON file.
package bookmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	fractal "github.com/marben/fractal_frontier"
	"github.com/marben/fractal_frontier/view"
)

// DefaultPath is the bookmark file used when none is configured.
const DefaultPath = "bookmarks.json"

// ErrNotFound is returned when a bookmark does not exist.
var ErrNotFound = errors.New("bookmark not found")

// Bookmark is a saved view.
type Bookmark struct {
	Name            string                 `json:"name"`
	Xmin            float64                `json:"x_min"`
	Xmax            float64                `json:"x_max"`
	Ymin            float64                `json:"y_min"`
	Ymax            float64                `json:"y_max"`
	MaxIterations   int                    `json:"max_iterations"`
	IterationOffset int                    `json:"iteration_offset"`
	AutoIterations  int                    `json:"auto_iterations"`
	AutoAdjust      bool                   `json:"auto_adjust"`
	Theme           string                 `json:"color_theme"`
	FractalType     fractal.Kind           `json:"fractal_type"`
	C               *fractal.JuliaConstant `json:"c,omitempty"`
	ZoomLevel       float64                `json:"zoom_level"`
	Timestamp       string                 `json:"timestamp"`
}

// Viewport returns the saved viewport.
func (b Bookmark) Viewport() fractal.Viewport {
	return fractal.Viewport{Xmin: b.Xmin, Xmax: b.Xmax, Ymin: b.Ymin, Ymax: b.Ymax}
}

// FromState captures the current view under name.
func FromState(name string, s *view.State, now time.Time) Bookmark {
	b := Bookmark{
		Name:            name,
		Xmin:            s.Viewport.Xmin,
		Xmax:            s.Viewport.Xmax,
		Ymin:            s.Viewport.Ymin,
		Ymax:            s.Viewport.Ymax,
		MaxIterations:   s.MaxIterations(),
		IterationOffset: s.IterationOffset,
		AutoIterations:  s.BaseIterations,
		AutoAdjust:      s.AutoAdjust,
		Theme:           s.Theme.String(),
		FractalType:     s.Kind,
		ZoomLevel:       s.ZoomLevel(),
		Timestamp:       now.Format(time.DateTime),
	}
	if s.Kind == fractal.Julia {
		c := s.C
		b.C = &c
	}
	return b
}

// Apply restores the bookmark into s. The resolution of s is kept.
func (b Bookmark) Apply(s *view.State) error {
	v := b.Viewport()
	if err := v.Validate(); err != nil {
		return fmt.Errorf("bookmark %q: %w", b.Name, err)
	}
	s.Viewport = v
	s.IterationOffset = b.IterationOffset
	s.AutoAdjust = b.AutoAdjust
	s.BaseIterations = b.AutoIterations
	if !b.AutoAdjust && b.AutoIterations == 0 {
		s.BaseIterations = b.MaxIterations
	}
	s.Theme = fractal.ParseTheme(b.Theme)
	s.Kind = b.FractalType
	if b.C != nil {
		s.C = *b.C
	}
	return nil
}

// Store reads and writes bookmarks in a single JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns all bookmarks. A missing file holds no bookmarks.
func (s *Store) Load() ([]Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]Bookmark, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	var bookmarks []Bookmark
	if err := json.Unmarshal(data, &bookmarks); err != nil {
		return nil, fmt.Errorf("decode bookmarks %q: %w", s.path, err)
	}
	return bookmarks, nil
}

// save writes the file through a temporary file so a failed write never
// leaves a truncated bookmark file behind.
func (s *Store) save(bookmarks []Bookmark) error {
	data, err := json.MarshalIndent(bookmarks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".bookmarks-*.json")
	if err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save bookmarks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}

// Add appends b to the file.
func (s *Store) Add(b Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookmarks, err := s.load()
	if err != nil {
		return err
	}
	return s.save(append(bookmarks, b))
}

// Delete removes the bookmark at index.
func (s *Store) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookmarks, err := s.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(bookmarks) {
		return fmt.Errorf("%w: index %d of %d", ErrNotFound, index, len(bookmarks))
	}
	return s.save(append(bookmarks[:index], bookmarks[index+1:]...))
}

// Find returns the first bookmark called name.
func (s *Store) Find(name string) (Bookmark, error) {
	bookmarks, err := s.Load()
	if err != nil {
		return Bookmark{}, err
	}
	for _, b := range bookmarks {
		if b.Name == name {
			return b, nil
		}
	}
	return Bookmark{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}
