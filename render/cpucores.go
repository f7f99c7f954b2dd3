package render

import (
	"context"
	"math/rand/v2"

	fractal "github.com/marben/fractal_frontier"
)

// RandomSectionThemes picks a random catalogue theme for each of n sections.
// This backs the "CPU Cores" meta-theme, which makes the section layout visible.
func RandomSectionThemes(rng *rand.Rand, n int) []fractal.Theme {
	themes := fractal.Themes()
	picked := make([]fractal.Theme, n)
	for i := range picked {
		picked[i] = themes[rng.IntN(len(themes))]
	}
	return picked
}

// RenderCPUCores renders req with a random theme per section, drawn from rng.
func (r *Renderer) RenderCPUCores(ctx context.Context, req fractal.Request, rng *rand.Rand) (*fractal.Image, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	themes := RandomSectionThemes(rng, r.SectionCount(req.Resolution.Width))
	return r.RenderThemes(ctx, req, themes)
}
