package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	fractal "github.com/marben/fractal_frontier"
	"github.com/marben/fractal_frontier/bookmark"
	"github.com/marben/fractal_frontier/view"
)

// viewFlags are the flags describing which view to render.
type viewFlags struct {
	landmark string
	bookmark string

	xmin, xmax, ymin, ymax float64
	zoom                   float64
	frames                 int

	width, height int
	iterations    int
	offset        int

	kind     string
	theme    string
	cre, cim float64
}

func (f *viewFlags) register(cmd *cobra.Command) {
	names := make([]string, 0, len(fractal.Landmarks))
	for name := range fractal.Landmarks {
		names = append(names, name)
	}
	sort.Strings(names)

	flags := cmd.Flags()
	flags.StringVar(&f.landmark, "landmark", "default", "start from a landmark: "+strings.Join(names, ", "))
	flags.StringVar(&f.bookmark, "bookmark", "", "start from the named bookmark")
	flags.Float64Var(&f.xmin, "xmin", 0, "left edge of the viewport")
	flags.Float64Var(&f.xmax, "xmax", 0, "right edge of the viewport")
	flags.Float64Var(&f.ymin, "ymin", 0, "top edge of the viewport")
	flags.Float64Var(&f.ymax, "ymax", 0, "bottom edge of the viewport")
	flags.Float64Var(&f.zoom, "zoom", 1, "zoom factor around the viewport center (below 1 zooms in)")
	flags.IntVar(&f.width, "width", 800, "image width")
	flags.IntVar(&f.height, "height", 600, "image height")
	flags.IntVar(&f.iterations, "iter", 0, "max iterations (0 = grow with the zoom level)")
	flags.IntVar(&f.offset, "iter-offset", 0, "added to the automatic iteration count")
	flags.StringVar(&f.kind, "kind", fractal.Mandelbrot.String(), "fractal kind: Mandelbrot, Julia, Fatou")
	flags.StringVar(&f.theme, "theme", fractal.Default.String(), fmt.Sprintf("color theme, or %q for a theme per section", fractal.CPUCoresTheme))
	flags.Float64Var(&f.cre, "cre", fractal.DefaultJuliaConstant.Re, "real part of the Julia constant")
	flags.Float64Var(&f.cim, "cim", fractal.DefaultJuliaConstant.Im, "imaginary part of the Julia constant")
}

// state resolves the flags into a view. Explicit flags win over the
// landmark or bookmark the view starts from. When --zoom is set the view is
// the zoom target and frames holds the viewports of the animated zoom
// leading to it.
func (f *viewFlags) state(cmd *cobra.Command, store *bookmark.Store) (s *view.State, frames []fractal.Viewport, err error) {
	flags := cmd.Flags()

	s = view.New(fractal.Resolution{Width: f.width, Height: f.height})
	v, ok := fractal.Landmarks[f.landmark]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown landmark %q", fractal.ErrInvalidInput, f.landmark)
	}
	s.Viewport = v

	if f.bookmark != "" {
		var b bookmark.Bookmark
		b, err = store.Find(f.bookmark)
		if err != nil {
			return nil, nil, err
		}
		if err := b.Apply(s); err != nil {
			return nil, nil, err
		}
	}

	for name, dst := range map[string]*float64{
		"xmin": &s.Viewport.Xmin,
		"xmax": &s.Viewport.Xmax,
		"ymin": &s.Viewport.Ymin,
		"ymax": &s.Viewport.Ymax,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetFloat64(name)
		}
	}

	if f.bookmark == "" || flags.Changed("kind") {
		k, err := fractal.ParseKind(f.kind)
		if err != nil {
			return nil, nil, err
		}
		s.Kind = k
	}
	if f.bookmark == "" || flags.Changed("theme") {
		s.Theme = fractal.ParseTheme(f.theme)
	}
	if f.bookmark == "" || flags.Changed("cre") || flags.Changed("cim") {
		s.C = fractal.JuliaConstant{Re: f.cre, Im: f.cim}
	}

	if f.iterations > 0 {
		s.AutoAdjust = false
		s.BaseIterations = f.iterations
	}
	if flags.Changed("iter-offset") {
		s.IterationOffset = f.offset
	}

	if f.zoom != 1 {
		level := s.ZoomLevel()
		frames = s.ZoomFrames(f.zoom, nil, max(f.frames, 1))
		if frames == nil {
			return nil, nil, fmt.Errorf("%w: zoom factor %g refused at zoom level %.2f", fractal.ErrInvalidInput, f.zoom, level)
		}
	}
	if err := s.Viewport.Validate(); err != nil {
		return nil, nil, err
	}
	return s, frames, nil
}

// command builds the render command for the resolved view, and the
// zoom frames of state.
func (f *viewFlags) command(cmd *cobra.Command, store *bookmark.Store) (fractal.RenderCommand, []fractal.Viewport, error) {
	s, frames, err := f.state(cmd, store)
	if err != nil {
		return fractal.RenderCommand{}, nil, err
	}
	return fractal.RenderCommand{
		Request:  s.Request(),
		CPUCores: f.theme == fractal.CPUCoresTheme,
	}, frames, nil
}
