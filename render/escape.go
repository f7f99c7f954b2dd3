package render

import (
	fractal "github.com/marben/fractal_frontier"
)

// escaped reports whether z left the radius-2 disk.
func escaped(z complex128) bool {
	return real(z)*real(z)+imag(z)*imag(z) >= 4
}

// MandelbrotEscape iterates z = z² + c from z = 0.
func MandelbrotEscape(c complex128, maxIter int) int {
	z := complex(0, 0)
	count := 0
	for count < maxIter && !escaped(z) {
		z = z*z + c
		count++
	}
	return count
}

// JuliaEscape iterates z = z² + c from z0 with a fixed c.
func JuliaEscape(z0, c complex128, maxIter int) int {
	z := z0
	count := 0
	for count < maxIter && !escaped(z) {
		z = z*z + c
		count++
	}
	return count
}

// FatouEscape iterates the Newton step for p(z) = z³ - 1 from z0,
// using the same radius-2 escape test as the other kinds.
//
// The step is undefined at z = 0; the orbit is then treated as escaped
// and the current count is returned.
func FatouEscape(z0 complex128, maxIter int) int {
	z := z0
	count := 0
	for count < maxIter && !escaped(z) {
		if z == 0 {
			return count
		}
		z = z - (z*z*z-1)/(3*z*z)
		count++
	}
	return count
}

// Escape evaluates the recurrence of kind for the plane point p.
// c is the Julia constant and is ignored by the other kinds.
func Escape(kind fractal.Kind, p, c complex128, maxIter int) int {
	switch kind {
	case fractal.Julia:
		return JuliaEscape(p, c, maxIter)
	case fractal.Fatou:
		return FatouEscape(p, maxIter)
	default:
		return MandelbrotEscape(p, maxIter)
	}
}

// EvaluateSection computes the iteration grid of the section s of the
// image described by req. Columns are mapped with their global offset.
func EvaluateSection(req fractal.Request, s Section) *fractal.IterationGrid {
	w, h := req.Resolution.Width, req.Resolution.Height
	c := req.JuliaC()
	grid := fractal.NewIterationGrid(s.Width, h)
	for i := 0; i < h; i++ {
		for j := 0; j < s.Width; j++ {
			p := MapPoint(req.Viewport, s.Offset+j, i, w, h)
			grid.Set(j, i, Escape(req.Kind, p, c, req.MaxIterations))
		}
	}
	return grid
}
