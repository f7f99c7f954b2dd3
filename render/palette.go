package render

import (
	"math"
	"sync"

	fractal "github.com/marben/fractal_frontier"
)

// Palette is a precomputed table of colors indexed by count modulo its length.
type Palette [][3]byte

type paletteSpec struct {
	size  int
	scale float64
}

var paletteSpecs = map[fractal.Theme]paletteSpec{
	fractal.Rainbow:  {size: 256, scale: 255},
	fractal.Rainbow2: {size: 256, scale: 1024},
	fractal.Rainbow3: {size: 1024, scale: 1024},
	fractal.Rainbow4: {size: 8192, scale: 8192},
}

// palettes are built on first use and shared by all renders.
var palettes = map[fractal.Theme]func() Palette{}

func init() {
	for theme, spec := range paletteSpecs {
		palettes[theme] = sync.OnceValue(func() Palette {
			return hueSweep(spec.size, spec.scale)
		})
	}
}

// PaletteFor returns the cached palette of a palette theme, or nil for
// themes that compute colors directly.
func PaletteFor(theme fractal.Theme) Palette {
	build, ok := palettes[theme]
	if !ok {
		return nil
	}
	return build()
}

// hueSweep sweeps the hue over [0, 1) at full saturation and value.
// Channels are multiplied by scale and clamped to [0, 255].
func hueSweep(size int, scale float64) Palette {
	p := make(Palette, size)
	for i := range p {
		r, g, b := hsv(float64(i)/float64(size), 1, 1)
		p[i] = [3]byte{scaleChannel(r, scale), scaleChannel(g, scale), scaleChannel(b, scale)}
	}
	return p
}

func scaleChannel(v, scale float64) byte {
	return byte(math.Min(math.Max(v*scale, 0), 255))
}

// hsv converts a hue, saturation, value triple in [0, 1] to RGB in [0, 1].
func hsv(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return r, g, b
}
