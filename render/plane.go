package render

import fractal "github.com/marben/fractal_frontier"

// MapPoint converts pixel column j and row i of a width x height image
// into a point of the complex plane covered by v.
func MapPoint(v fractal.Viewport, j, i, width, height int) complex128 {
	x := v.Xmin + float64(j)*(v.Xmax-v.Xmin)/float64(width)
	y := v.Ymin + float64(i)*(v.Ymax-v.Ymin)/float64(height)
	return complex(x, y)
}
