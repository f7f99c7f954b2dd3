package fractal

import (
	"fmt"
	"math"
)

// Viewport is the region of the complex plane mapped onto the pixel grid.
type Viewport struct {
	Xmin float64 `json:"x_min"`
	Xmax float64 `json:"x_max"`
	Ymin float64 `json:"y_min"`
	Ymax float64 `json:"y_max"`
}

// DefaultViewport shows the whole Mandelbrot set.
var DefaultViewport = Viewport{
	Xmin: -2.0,
	Xmax: 1.0,
	Ymin: -1.5,
	Ymax: 1.5,
}

// Landmark viewports of the Mandelbrot set.
var (
	// SeahorseValley has dense filaments curling into seahorse tails.
	SeahorseValley = Viewport{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// ElephantValley shows trunk-like tendrils off the left of the main cardioid.
	ElephantValley = Viewport{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// SpiralMinibrot frames a small copy of the set with tight spiral arms.
	SpiralMinibrot = Viewport{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// ValleyOfTheDragon is a deep zoom into spiral filaments.
	ValleyOfTheDragon = Viewport{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}
)

// Landmarks maps landmark names to their viewports.
var Landmarks = map[string]Viewport{
	"default":         DefaultViewport,
	"seahorse":        SeahorseValley,
	"elephant":        ElephantValley,
	"spiral-minibrot": SpiralMinibrot,
	"dragon":          ValleyOfTheDragon,
}

// Width returns the horizontal span of the viewport.
func (v Viewport) Width() float64 { return v.Xmax - v.Xmin }

// Height returns the vertical span of the viewport.
func (v Viewport) Height() float64 { return v.Ymax - v.Ymin }

// Center returns the midpoint of the viewport.
func (v Viewport) Center() (x, y float64) {
	return (v.Xmin + v.Xmax) / 2, (v.Ymin + v.Ymax) / 2
}

// Validate reports ErrInvalidInput unless all bounds are finite and ordered.
func (v Viewport) Validate() error {
	for _, f := range []float64{v.Xmin, v.Xmax, v.Ymin, v.Ymax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: viewport bound %v is not finite", ErrInvalidInput, f)
		}
	}
	if v.Xmin >= v.Xmax {
		return fmt.Errorf("%w: x_min %v must be less than x_max %v", ErrInvalidInput, v.Xmin, v.Xmax)
	}
	if v.Ymin >= v.Ymax {
		return fmt.Errorf("%w: y_min %v must be less than y_max %v", ErrInvalidInput, v.Ymin, v.Ymax)
	}
	return nil
}

func (v Viewport) String() string {
	return fmt.Sprintf("X_min: %.16g, X_max: %.16g | Y_min: %.16g, Y_max: %.16g", v.Xmin, v.Xmax, v.Ymin, v.Ymax)
}

// Resolution is the pixel size of the output image.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
