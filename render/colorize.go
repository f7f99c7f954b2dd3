package render

import (
	"math"

	fractal "github.com/marben/fractal_frontier"
)

var black = [3]byte{}

// normalize maps count in [0, maxIter] to [0, 255].
func normalize(count, maxIter int) int {
	return int(math.Round(float64(count) * 255 / float64(maxIter)))
}

func clamp(v int) byte {
	return byte(min(max(v, 0), 255))
}

// Colorizer maps iteration counts to colors for one theme.
// A zero Colorizer uses the Default theme.
type Colorizer struct {
	theme   fractal.Theme
	palette Palette
}

// NewColorizer prepares a colorizer, fetching the palette of palette themes once.
// Themes outside the catalogue fall back to Default.
func NewColorizer(theme fractal.Theme) Colorizer {
	if !theme.Valid() {
		theme = fractal.Default
	}
	return Colorizer{theme: theme, palette: PaletteFor(theme)}
}

func (c Colorizer) Theme() fractal.Theme {
	return c.theme
}

// Color returns the color of a single count. Counts equal to maxIter
// never escaped and are always black.
func (c Colorizer) Color(count, maxIter int) [3]byte {
	if count == maxIter {
		return black
	}
	if c.palette != nil {
		return c.palette[count%len(c.palette)]
	}

	n := normalize(count, maxIter)
	switch c.theme {
	case fractal.Grayscale:
		return [3]byte{byte(n), byte(n), byte(n)}
	case fractal.Blue:
		return [3]byte{byte(255 - n), byte(255 - n), byte(n)}
	case fractal.Fire:
		return [3]byte{clamp(n * 2), clamp(n + 50), clamp(n - 100)}
	default:
		return [3]byte{byte(n), byte(255 - n), 100}
	}
}

// Colorize maps a whole iteration grid to an RGB image of the same size.
func (c Colorizer) Colorize(grid *fractal.IterationGrid, maxIter int) *fractal.Image {
	img := fractal.NewImage(grid.Width, grid.Height)
	for i, count := range grid.Counts {
		col := c.Color(count, maxIter)
		copy(img.Pix[i*3:i*3+3], col[:])
	}
	return img
}

// Colorize maps grid to an image using theme.
func Colorize(grid *fractal.IterationGrid, maxIter int, theme fractal.Theme) *fractal.Image {
	return NewColorizer(theme).Colorize(grid, maxIter)
}
