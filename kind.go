package fractal

import "fmt"

// Kind selects the recurrence evaluated per pixel.
type Kind int

const (
	Mandelbrot Kind = iota
	Julia
	Fatou
)

var kindNames = [...]string{
	Mandelbrot: "Mandelbrot",
	Julia:      "Julia",
	Fatou:      "Fatou",
}

// Kinds returns all fractal kinds.
func Kinds() []Kind {
	return []Kind{Mandelbrot, Julia, Fatou}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// ParseKind resolves a kind by its exact name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown fractal kind %q", ErrInvalidInput, name)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: unknown fractal kind %d", ErrInvalidInput, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// JuliaConstant is the fixed parameter c of a Julia set.
type JuliaConstant struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// DefaultJuliaConstant is a well known connected Julia set.
var DefaultJuliaConstant = JuliaConstant{Re: -0.7, Im: 0.27015}

func (c JuliaConstant) Complex() complex128 {
	return complex(c.Re, c.Im)
}

func (c JuliaConstant) String() string {
	return fmt.Sprintf("(%g%+gi)", c.Re, c.Im)
}
