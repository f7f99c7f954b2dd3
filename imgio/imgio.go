// Package imgio writes rendered fractals to image files.
package imgio

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

// Format is an output file format.
type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
	BMP  Format = "bmp"
)

// FormatFromPath picks the format from the file extension, defaulting to PNG.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return TIFF
	case ".bmp":
		return BMP
	default:
		return PNG
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG, "":
		err = png.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case BMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("imgio: unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("imgio: encode %s: %w", f, err)
	}
	return nil
}

// StatusBarHeight is the height in pixels of the strip added by Annotate.
const StatusBarHeight = 18

// Annotate returns a copy of img with a status line drawn in a strip below it.
// Text wider than the image is clipped.
func Annotate(img image.Image, text string) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()+StatusBarHeight))
	draw.Draw(out, image.Rect(0, 0, b.Dx(), b.Dy()), img, b.Min, draw.Src)

	bar := image.Rect(0, b.Dy(), b.Dx(), b.Dy()+StatusBarHeight)
	draw.Draw(out, bar, image.NewUniform(color.RGBA{R: 32, G: 32, B: 32, A: 255}), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  out,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(4, b.Dy()+StatusBarHeight-(StatusBarHeight-face.Ascent)/2),
	}
	d.DrawString(text)
	return out
}
