package render

import (
	"testing"

	fractal "github.com/marben/fractal_frontier"
)

// =============================================================================
// Per-theme rules
// =============================================================================

func TestColorizerColor(t *testing.T) {
	tests := []struct {
		name    string
		theme   fractal.Theme
		count   int
		maxIter int
		want    [3]byte
	}{
		{"default zero", fractal.Default, 0, 50, [3]byte{0, 255, 100}},
		{"default rounds half up", fractal.Default, 25, 50, [3]byte{128, 127, 100}},
		{"grayscale", fractal.Grayscale, 10, 50, [3]byte{51, 51, 51}},
		{"blue", fractal.Blue, 10, 50, [3]byte{204, 204, 51}},
		{"fire low", fractal.Fire, 0, 50, [3]byte{0, 50, 0}},
		{"fire clamps", fractal.Fire, 40, 50, [3]byte{255, 254, 104}},
		{"rainbow first entry", fractal.Rainbow, 0, 1000, [3]byte{255, 0, 0}},
		{"rainbow half hue", fractal.Rainbow, 128, 1000, [3]byte{0, 255, 255}},
		{"rainbow2 first entry", fractal.Rainbow2, 0, 1000, [3]byte{255, 0, 0}},
		{"unknown theme falls back to default", fractal.Theme(99), 0, 50, [3]byte{0, 255, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewColorizer(tt.theme).Color(tt.count, tt.maxIter)
			if got != tt.want {
				t.Errorf("Color(%d, %d) = %v, want %v", tt.count, tt.maxIter, got, tt.want)
			}
		})
	}
}

func TestInteriorIsBlackForEveryTheme(t *testing.T) {
	for _, maxIter := range []int{1, 50, 256, 1024, 8192} {
		for _, theme := range fractal.Themes() {
			got := NewColorizer(theme).Color(maxIter, maxIter)
			if got != black {
				t.Errorf("%v: Color(%d, %d) = %v, want black", theme, maxIter, maxIter, got)
			}
		}
	}
}

func TestColorizeGrid(t *testing.T) {
	grid := fractal.NewIterationGrid(3, 2)
	copy(grid.Counts, []int{0, 10, 50, 50, 25, 0})

	img := Colorize(grid, 50, fractal.Grayscale)
	if img.Width != 3 || img.Height != 2 || len(img.Pix) != 3*2*3 {
		t.Fatalf("Colorize() = %dx%d with %d bytes, want 3x2 with 18 bytes", img.Width, img.Height, len(img.Pix))
	}
	if got := img.RGBAt(2, 0); got != black {
		t.Errorf("RGBAt(2, 0) = %v, want black", got)
	}
	if got := img.RGBAt(1, 0); got != [3]byte{51, 51, 51} {
		t.Errorf("RGBAt(1, 0) = %v, want [51 51 51]", got)
	}
}

// =============================================================================
// Palettes
// =============================================================================

func TestPaletteSizes(t *testing.T) {
	tests := []struct {
		theme fractal.Theme
		size  int
	}{
		{fractal.Rainbow, 256},
		{fractal.Rainbow2, 256},
		{fractal.Rainbow3, 1024},
		{fractal.Rainbow4, 8192},
	}
	for _, tt := range tests {
		if got := len(PaletteFor(tt.theme)); got != tt.size {
			t.Errorf("len(PaletteFor(%v)) = %d, want %d", tt.theme, got, tt.size)
		}
	}

	for _, theme := range []fractal.Theme{fractal.Default, fractal.Grayscale, fractal.Blue, fractal.Fire} {
		if p := PaletteFor(theme); p != nil {
			t.Errorf("PaletteFor(%v) has %d entries, want nil", theme, len(p))
		}
	}
}

func TestPaletteIsCached(t *testing.T) {
	a := PaletteFor(fractal.Rainbow4)
	b := PaletteFor(fractal.Rainbow4)
	if &a[0] != &b[0] {
		t.Error("PaletteFor(Rainbow4) rebuilt the palette, want a shared table")
	}
}

func TestPaletteWraparound(t *testing.T) {
	for _, theme := range []fractal.Theme{fractal.Rainbow, fractal.Rainbow2, fractal.Rainbow3, fractal.Rainbow4} {
		size := len(PaletteFor(theme))
		c := NewColorizer(theme)
		maxIter := size * 3

		if got, want := c.Color(size, maxIter), c.Color(0, maxIter); got != want {
			t.Errorf("%v: Color(%d) = %v, want Color(0) = %v", theme, size, got, want)
		}
		if got, want := c.Color(size+7, maxIter), c.Color(7, maxIter); got != want {
			t.Errorf("%v: Color(%d) = %v, want Color(7) = %v", theme, size+7, got, want)
		}

		// The interior rule wins over wraparound.
		if got := c.Color(size, size); got != black {
			t.Errorf("%v: Color(%d, %d) = %v, want black", theme, size, size, got)
		}
	}
}

func TestHighResolutionPalettesSaturate(t *testing.T) {
	// With a pre-scale of 1024 or more every channel above 1/4 clips to 255.
	for _, theme := range []fractal.Theme{fractal.Rainbow2, fractal.Rainbow3, fractal.Rainbow4} {
		p := PaletteFor(theme)
		half := p[len(p)/2]
		if half != [3]byte{0, 255, 255} {
			t.Errorf("%v: palette[%d] = %v, want [0 255 255]", theme, len(p)/2, half)
		}
	}
}

func TestHSV(t *testing.T) {
	tests := []struct {
		h       float64
		r, g, b float64
	}{
		{0, 1, 0, 0},
		{1.0 / 3, 0, 1, 0},
		{2.0 / 3, 0, 0, 1},
		{0.5, 0, 1, 1},
	}
	for _, tt := range tests {
		r, g, b := hsv(tt.h, 1, 1)
		if !near(r, tt.r) || !near(g, tt.g) || !near(b, tt.b) {
			t.Errorf("hsv(%v, 1, 1) = (%v, %v, %v), want (%v, %v, %v)", tt.h, r, g, b, tt.r, tt.g, tt.b)
		}
	}

	if r, g, b := hsv(0.3, 0, 0.5); r != 0.5 || g != 0.5 || b != 0.5 {
		t.Errorf("hsv(0.3, 0, 0.5) = (%v, %v, %v), want gray 0.5", r, g, b)
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
