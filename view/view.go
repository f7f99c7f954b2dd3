// Package view holds the navigation state of an interactive explorer and
// turns zoom, pan and theme gestures into new render requests.
package view

import (
	"math"

	fractal "github.com/marben/fractal_frontier"
)

// BaseRange is the horizontal span of the reset view, used as zoom level 1.
const BaseRange = 3.0

// minZoomOutLevel stops zooming out once the view is about four times the base range.
const minZoomOutLevel = 0.26

// State is the view an explorer is currently showing.
type State struct {
	Viewport        fractal.Viewport
	Resolution      fractal.Resolution
	Kind            fractal.Kind
	C               fractal.JuliaConstant
	Theme           fractal.Theme
	IterationOffset int
	AutoAdjust      bool
	BaseIterations  int
}

// Pixel is a position on the displayed image.
type Pixel struct {
	X, Y int
}

// Direction is a pan direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// New returns the reset view at the given resolution.
func New(res fractal.Resolution) *State {
	s := &State{Resolution: res}
	s.Reset()
	return s
}

// Reset restores the default viewport, theme and iteration settings.
// Kind, C and Resolution are kept.
func (s *State) Reset() {
	s.Viewport = fractal.DefaultViewport
	s.Theme = fractal.Default
	s.IterationOffset = 0
	s.AutoAdjust = true
	s.BaseIterations = 100
	if s.C == (fractal.JuliaConstant{}) {
		s.C = fractal.DefaultJuliaConstant
	}
}

// ZoomLevel is the magnification relative to BaseRange.
func (s *State) ZoomLevel() float64 {
	return BaseRange / s.Viewport.Width()
}

// AutoIterations grows the iteration budget slowly with the zoom level.
func (s *State) AutoIterations() int {
	return int(100 * math.Pow(s.ZoomLevel(), 0.11))
}

// MaxIterations is the iteration bound for the next render: the automatic
// or fixed base plus the user offset, never below 1.
func (s *State) MaxIterations() int {
	base := s.BaseIterations
	if s.AutoAdjust {
		base = s.AutoIterations()
		s.BaseIterations = base
	}
	return max(base+s.IterationOffset, 1)
}

// zoomTarget computes the viewport after zooming by factor around at,
// or around the viewport center when at is nil.
func (s *State) zoomTarget(factor float64, at *Pixel) (fractal.Viewport, bool) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return s.Viewport, false
	}
	if s.ZoomLevel() <= minZoomOutLevel && factor >= 2 {
		return s.Viewport, false
	}

	v := s.Viewport
	cx, cy := v.Center()
	if at != nil {
		cx = v.Xmin + float64(at.X)/float64(s.Resolution.Width)*v.Width()
		cy = v.Ymin + float64(at.Y)/float64(s.Resolution.Height)*v.Height()
	}
	w := v.Width() * factor
	h := v.Height() * factor
	return fractal.Viewport{
		Xmin: cx - w/2,
		Xmax: cx + w/2,
		Ymin: cy - h/2,
		Ymax: cy + h/2,
	}, true
}

// Zoom scales the viewport by factor (below 1 zooms in) centered on at.
// It reports false and leaves the view unchanged when the zoom is refused.
func (s *State) Zoom(factor float64, at *Pixel) bool {
	target, ok := s.zoomTarget(factor, at)
	if ok {
		s.Viewport = target
	}
	return ok
}

// ZoomFrames returns the intermediate viewports of an animated zoom, the
// last of which is the zoom target. The view itself is moved to the target.
func (s *State) ZoomFrames(factor float64, at *Pixel, frames int) []fractal.Viewport {
	target, ok := s.zoomTarget(factor, at)
	if !ok || frames < 1 {
		return nil
	}

	from := s.Viewport
	out := make([]fractal.Viewport, frames)
	for f := 1; f <= frames; f++ {
		t := float64(f) / float64(frames)
		out[f-1] = fractal.Viewport{
			Xmin: lerp(from.Xmin, target.Xmin, t),
			Xmax: lerp(from.Xmax, target.Xmax, t),
			Ymin: lerp(from.Ymin, target.Ymin, t),
			Ymax: lerp(from.Ymax, target.Ymax, t),
		}
	}
	out[frames-1] = target
	s.Viewport = target
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Pan moves the view by a tenth of its span. The far edge is moved by a
// tenth of the already shifted span, so repeated pans drift slightly.
func (s *State) Pan(d Direction) {
	v := &s.Viewport
	switch d {
	case Up:
		v.Ymin -= 0.1 * (v.Ymax - v.Ymin)
		v.Ymax -= 0.1 * (v.Ymax - v.Ymin)
	case Down:
		v.Ymin += 0.1 * (v.Ymax - v.Ymin)
		v.Ymax += 0.1 * (v.Ymax - v.Ymin)
	case Left:
		v.Xmin -= 0.1 * (v.Xmax - v.Xmin)
		v.Xmax -= 0.1 * (v.Xmax - v.Xmin)
	case Right:
		v.Xmin += 0.1 * (v.Xmax - v.Xmin)
		v.Xmax += 0.1 * (v.Xmax - v.Xmin)
	}
}

// NextTheme advances to the next theme of the catalogue.
func (s *State) NextTheme() fractal.Theme {
	s.Theme = s.Theme.Next()
	return s.Theme
}

// Request builds the render request for the current view.
func (s *State) Request() fractal.Request {
	req := fractal.Request{
		Viewport:      s.Viewport,
		Resolution:    s.Resolution,
		MaxIterations: s.MaxIterations(),
		Kind:          s.Kind,
		Theme:         s.Theme,
	}
	if s.Kind == fractal.Julia {
		c := s.C
		req.C = &c
	}
	return req
}
