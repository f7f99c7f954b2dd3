package fractal

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestParseTheme(t *testing.T) {
	tests := []struct {
		name string
		want Theme
	}{
		{"Default", Default},
		{"Grayscale", Grayscale},
		{"Rainbow4", Rainbow4},
		{"rainbow4", Default},
		{"CPU Cores", Default},
		{"", Default},
	}
	for _, tt := range tests {
		if got := ParseTheme(tt.name); got != tt.want {
			t.Errorf("ParseTheme(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestThemeNextWraps(t *testing.T) {
	themes := Themes()
	if len(themes) != 8 {
		t.Fatalf("len(Themes()) = %d, want 8", len(themes))
	}
	if got := Rainbow4.Next(); got != Default {
		t.Errorf("Rainbow4.Next() = %v, want Default", got)
	}
	if got := Default.Next(); got != Grayscale {
		t.Errorf("Default.Next() = %v, want Grayscale", got)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), got, err, k)
		}
	}
	if _, err := ParseKind("Burning Ship"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseKind(unknown) error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestRequestJSON(t *testing.T) {
	c := JuliaConstant{Re: -0.7, Im: 0.27015}
	req := Request{
		Viewport:      DefaultViewport,
		Resolution:    Resolution{Width: 160, Height: 120},
		MaxIterations: 100,
		Kind:          Julia,
		C:             &c,
		Theme:         Fire,
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var got Request
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got.Kind != Julia || got.Theme != Fire || got.C == nil || *got.C != c || got.Viewport != req.Viewport {
		t.Errorf("round trip = %+v, want %+v", got, req)
	}

	var unknownTheme Request
	if err := json.Unmarshal([]byte(`{"kind":"Fatou","theme":"Sepia"}`), &unknownTheme); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if unknownTheme.Theme != Default || unknownTheme.Kind != Fatou {
		t.Errorf("decoded kind/theme = %v/%v, want Fatou/Default", unknownTheme.Kind, unknownTheme.Theme)
	}
}

func TestRequestValidate(t *testing.T) {
	valid := Request{
		Viewport:      DefaultViewport,
		Resolution:    Resolution{Width: 8, Height: 8},
		MaxIterations: 50,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	// C is ignored for kinds other than Julia.
	withC := valid
	withC.Kind = Fatou
	withC.C = &DefaultJuliaConstant
	if err := withC.Validate(); err != nil {
		t.Errorf("Validate(Fatou with c) error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero width", func(r *Request) { r.Resolution.Width = 0 }},
		{"zero height", func(r *Request) { r.Resolution.Height = 0 }},
		{"negative iterations", func(r *Request) { r.MaxIterations = -5 }},
		{"julia without c", func(r *Request) { r.Kind = Julia }},
		{"unknown kind", func(r *Request) { r.Kind = Kind(7) }},
		{"flat viewport", func(r *Request) { r.Viewport.Ymax = r.Viewport.Ymin }},
		{"nan bound", func(r *Request) { r.Viewport.Xmin = math.NaN() }},
		{"infinite bound", func(r *Request) { r.Viewport.Xmax = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want %v", err, ErrInvalidInput)
			}
		})
	}
}

func TestImage(t *testing.T) {
	img := NewImage(3, 2)
	img.SetRGB(2, 1, [3]byte{10, 20, 30})

	if got := img.RGBAt(2, 1); got != [3]byte{10, 20, 30} {
		t.Errorf("RGBAt(2, 1) = %v, want [10 20 30]", got)
	}
	if got := img.At(2, 1); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("At(2, 1) = %v, want opaque (10, 20, 30)", got)
	}
	if got := img.At(5, 5); got != (color.RGBA{}) {
		t.Errorf("At(out of bounds) = %v, want zero color", got)
	}
}

func TestViewportGeometry(t *testing.T) {
	v := DefaultViewport
	if v.Width() != 3 || v.Height() != 3 {
		t.Errorf("Width(), Height() = %v, %v; want 3, 3", v.Width(), v.Height())
	}
	if x, y := v.Center(); x != -0.5 || y != 0 {
		t.Errorf("Center() = (%v, %v), want (-0.5, 0)", x, y)
	}
	for name, lm := range Landmarks {
		if err := lm.Validate(); err != nil {
			t.Errorf("landmark %q: %v", name, err)
		}
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 5, 5))
	src.SetRGBA(3, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	img := FromImage(src)
	if img.Width != 3 || img.Height != 2 {
		t.Fatalf("size = %dx%d, want 3x2", img.Width, img.Height)
	}
	if got := img.RGBAt(1, 1); got != [3]byte{10, 20, 30} {
		t.Errorf("RGBAt(1, 1) = %v, want [10 20 30]", got)
	}
	if FromImage(img) != img {
		t.Error("FromImage(*Image) should return its argument")
	}
}
