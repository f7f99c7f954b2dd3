package fractal

// Theme selects the color mapping applied to iteration counts.
type Theme int

const (
	Default Theme = iota
	Grayscale
	Blue
	Fire
	Rainbow
	Rainbow2
	Rainbow3
	Rainbow4
)

// CPUCoresTheme names the meta-theme that picks a random theme per section.
// It is resolved by the caller before rendering and is not a Theme value.
const CPUCoresTheme = "CPU Cores"

var themeNames = [...]string{
	Default:   "Default",
	Grayscale: "Grayscale",
	Blue:      "Blue",
	Fire:      "Fire",
	Rainbow:   "Rainbow",
	Rainbow2:  "Rainbow2",
	Rainbow3:  "Rainbow3",
	Rainbow4:  "Rainbow4",
}

// Themes returns the theme catalogue in display order.
func Themes() []Theme {
	themes := make([]Theme, len(themeNames))
	for i := range themeNames {
		themes[i] = Theme(i)
	}
	return themes
}

func (t Theme) String() string {
	if !t.Valid() {
		return themeNames[Default]
	}
	return themeNames[t]
}

// Valid reports whether t is part of the catalogue.
func (t Theme) Valid() bool {
	return t >= 0 && int(t) < len(themeNames)
}

// ParseTheme resolves a theme by exact, case-sensitive name.
// Unknown names fall back to Default.
func ParseTheme(name string) Theme {
	for t, n := range themeNames {
		if n == name {
			return Theme(t)
		}
	}
	return Default
}

// Next returns the theme following t, wrapping around the catalogue.
func (t Theme) Next() Theme {
	if !t.Valid() {
		return Default
	}
	return Theme((int(t) + 1) % len(themeNames))
}

func (t Theme) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Theme) UnmarshalText(b []byte) error {
	*t = ParseTheme(string(b))
	return nil
}
