package render

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	fractal "github.com/marben/fractal_frontier"
	"github.com/marben/fractal_frontier/internal/parallel"
)

// Renderer evaluates render requests section by section on a worker pool.
//
// A Renderer holds no per-render state; Render may be called concurrently.
type Renderer struct {
	parallelism int
	pool        *parallel.WorkerPool
	ownsPool    bool
}

var _ fractal.Renderer = (*Renderer)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithParallelism sets the parallelism degree the section count is derived from.
// Values below 1 mean GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(r *Renderer) {
		r.parallelism = n
	}
}

// WithPool makes the renderer run its sections on an existing pool.
// The pool is not closed by Renderer.Close.
func WithPool(p *parallel.WorkerPool) Option {
	return func(r *Renderer) {
		r.pool = p
	}
}

// NewRenderer creates a renderer. Without WithPool it starts its own pool
// sized to the parallelism degree.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.parallelism < 1 {
		r.parallelism = runtime.GOMAXPROCS(0)
	}
	if r.pool == nil {
		r.pool = parallel.NewWorkerPool(r.parallelism)
		r.ownsPool = true
	}
	return r
}

// Parallelism returns the configured parallelism degree.
func (r *Renderer) Parallelism() int {
	return r.parallelism
}

// SectionCount returns the number of sections a width-wide render is split into.
func (r *Renderer) SectionCount(width int) int {
	return SectionCount(r.parallelism, width)
}

// Close releases the renderer's own worker pool.
func (r *Renderer) Close() {
	if r.ownsPool {
		r.pool.Close()
	}
}

// Render produces the image described by req.
//
// Invalid requests fail with fractal.ErrInvalidInput before any work starts.
// If any section fails the whole render fails with fractal.ErrSectionFailed.
func (r *Renderer) Render(ctx context.Context, req fractal.Request) (*fractal.Image, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	n := r.SectionCount(req.Resolution.Width)
	themes := make([]fractal.Theme, n)
	for i := range themes {
		themes[i] = req.Theme
	}
	return r.render(ctx, req, themes)
}

// RenderThemes renders req with themes[i] applied to section i instead of req.Theme.
// The number of themes must match SectionCount(req.Resolution.Width).
func (r *Renderer) RenderThemes(ctx context.Context, req fractal.Request, themes []fractal.Theme) (*fractal.Image, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if n := r.SectionCount(req.Resolution.Width); len(themes) != n {
		return nil, fmt.Errorf("%w: got %d section themes for %d sections", fractal.ErrInvalidInput, len(themes), n)
	}
	return r.render(ctx, req, themes)
}

func (r *Renderer) render(ctx context.Context, req fractal.Request, themes []fractal.Theme) (*fractal.Image, error) {
	start := time.Now()
	sections := Sections(req.Resolution.Width, len(themes))
	parts := make([]*fractal.Image, len(sections))

	tasks := make([]parallel.Task, len(sections))
	for i, s := range sections {
		tasks[i] = func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			grid := EvaluateSection(req, s)
			parts[i] = NewColorizer(themes[i]).Colorize(grid, req.MaxIterations)
			return nil
		}
	}

	if err := r.pool.Run(tasks); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		Logger().Warn("render failed", slog.String("kind", req.Kind.String()), slog.Any("err", err))
		return nil, fmt.Errorf("%w: %w", fractal.ErrSectionFailed, err)
	}

	img := concat(req.Resolution.Width, req.Resolution.Height, sections, parts)

	Logger().Debug("rendered",
		slog.String("kind", req.Kind.String()),
		slog.Int("width", req.Resolution.Width),
		slog.Int("height", req.Resolution.Height),
		slog.Int("sections", len(sections)),
		slog.Duration("elapsed", time.Since(start)))

	return img, nil
}

// concat joins the section images left to right.
func concat(width, height int, sections []Section, parts []*fractal.Image) *fractal.Image {
	img := fractal.NewImage(width, height)
	for i, s := range sections {
		part := parts[i]
		for y := 0; y < height; y++ {
			dst := img.PixOffset(s.Offset, y)
			src := part.PixOffset(0, y)
			copy(img.Pix[dst:dst+s.Width*3], part.Pix[src:src+s.Width*3])
		}
	}
	return img
}
