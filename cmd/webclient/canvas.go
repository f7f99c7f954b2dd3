//go:build js && wasm

package main

import (
	"image"
	"image/draw"
	"syscall/js"
	"time"
)

func canvas() js.Value {
	return js.Global().Get("document").Call("getElementById", "myCanvas")
}

// initCanvas sizes the canvas and fills it with color.
func initCanvas(width, height int, color string) {
	c := canvas()
	c.Set("width", width)
	c.Set("height", height)

	ctx := c.Call("getContext", "2d")
	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
}

// displayImage puts img on the canvas.
func displayImage(img image.Image) {
	start := time.Now()

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	}

	// ImageData wants a Uint8ClampedArray of width*height*4 bytes
	jsData := js.Global().Get("Uint8ClampedArray").New(len(rgba.Pix))
	js.CopyBytesToJS(jsData, rgba.Pix)

	imageData := js.Global().Get("ImageData").New(jsData, rgba.Rect.Dx(), rgba.Rect.Dy())
	canvas().Call("getContext", "2d").Call("putImageData", imageData, 0, 0)

	logScreenf("draw took %s", time.Since(start))
}

// hudSet writes value into the element with the given id.
func hudSet(id string, value any) {
	elem := js.Global().Get("document").Call("getElementById", id)
	if elem.IsNull() {
		return
	}
	elem.Set("textContent", value)
}
