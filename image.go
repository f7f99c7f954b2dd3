package fractal

import (
	"image"
	"image/color"
)

// IterationGrid holds per-pixel escape counts in row-major order.
type IterationGrid struct {
	Width  int
	Height int
	Counts []int
}

func NewIterationGrid(w, h int) *IterationGrid {
	return &IterationGrid{Width: w, Height: h, Counts: make([]int, w*h)}
}

func (g *IterationGrid) At(x, y int) int {
	return g.Counts[y*g.Width+x]
}

func (g *IterationGrid) Set(x, y, count int) {
	g.Counts[y*g.Width+x] = count
}

// Image is a row-major RGB byte buffer of Height*Width*3 bytes.
//
// It implements image.Image so it can be handed to the standard encoders.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

func NewImage(w, h int) *Image {
	return &Image{Width: w, Height: h, Pix: make([]byte, w*h*3)}
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (img *Image) PixOffset(x, y int) int {
	return (y*img.Width + x) * 3
}

// RGBAt returns the color triple at (x, y).
func (img *Image) RGBAt(x, y int) [3]byte {
	i := img.PixOffset(x, y)
	return [3]byte{img.Pix[i], img.Pix[i+1], img.Pix[i+2]}
}

// SetRGB stores the color triple at (x, y).
func (img *Image) SetRGB(x, y int, c [3]byte) {
	i := img.PixOffset(x, y)
	img.Pix[i], img.Pix[i+1], img.Pix[i+2] = c[0], c[1], c[2]
}

func (img *Image) ColorModel() color.Model { return color.RGBAModel }

func (img *Image) Bounds() image.Rectangle { return image.Rect(0, 0, img.Width, img.Height) }

func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.RGBA{}
	}
	c := img.RGBAt(x, y)
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// FromImage copies any image into an Image, dropping alpha.
func FromImage(src image.Image) *Image {
	if img, ok := src.(*Image); ok {
		return img
	}
	b := src.Bounds()
	img := NewImage(b.Dx(), b.Dy())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := color.RGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			img.SetRGB(x, y, [3]byte{c.R, c.G, c.B})
		}
	}
	return img
}
