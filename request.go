package fractal

import "fmt"

// Request describes a single render call.
// C is required for Julia and ignored for the other kinds.
type Request struct {
	Viewport      Viewport       `json:"viewport"`
	Resolution    Resolution     `json:"resolution"`
	MaxIterations int            `json:"max_iterations"`
	Kind          Kind           `json:"kind"`
	C             *JuliaConstant `json:"c,omitempty"`
	Theme         Theme          `json:"theme"`
}

// Validate rejects requests that cannot be rendered. All errors wrap ErrInvalidInput.
func (r Request) Validate() error {
	if r.Resolution.Width <= 0 || r.Resolution.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d must be positive", ErrInvalidInput, r.Resolution.Width, r.Resolution.Height)
	}
	if r.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations %d must be positive", ErrInvalidInput, r.MaxIterations)
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: unknown fractal kind %d", ErrInvalidInput, int(r.Kind))
	}
	if r.Kind == Julia && r.C == nil {
		return fmt.Errorf("%w: julia set requires a constant c", ErrInvalidInput)
	}
	return r.Viewport.Validate()
}

// JuliaC returns the Julia constant, or zero when none is set.
func (r Request) JuliaC() complex128 {
	if r.C == nil {
		return 0
	}
	return r.C.Complex()
}
