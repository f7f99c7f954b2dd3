//go:build js && wasm

// webclient.go is a WASM web client for the fractal server.
// It sends the current view over a websocket and draws the returned image on a canvas.
// Arrow keys pan, +/- zoom, t cycles themes, r resets and a click zooms in at the pointer.
// Zooms are animated frame by frame.

package main

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log"
	"sync"
	"syscall/js"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	fractal "github.com/marben/fractal_frontier"
	"github.com/marben/fractal_frontier/view"
)

const (
	canvasWidth  = 800
	canvasHeight = 600
	zoomFactor   = 0.5

	// a zoom is animated over zoomFrames renders, each given up to frameTimeout
	zoomFrames   = 10
	frameTimeout = time.Second
)

// explorer keeps the view state and the connection it renders through.
type explorer struct {
	conn *websocket.Conn

	m       sync.Mutex
	state   *view.State
	nextID  int
	zooming bool

	// drawn receives the id of every reply, drawn or failed
	drawn chan int
}

func main() {
	logScreenf("Starting WASM web client...")

	loc := js.Global().Get("window").Get("location")
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketURL := proto + "://" + loc.Get("host").String() + "/ws"

	ctx := context.Background()
	logScreenf("Connecting to fractal server at %s...", websocketURL)
	conn, _, err := websocket.Dial(ctx, websocketURL, nil)
	if err != nil {
		logFatalf("Failed to connect: %v", err)
	}
	conn.SetReadLimit(-1)
	logScreenf("WebSocket connected.")

	e := &explorer{
		conn:  conn,
		state: view.New(fractal.Resolution{Width: canvasWidth, Height: canvasHeight}),
		drawn: make(chan int, 1),
	}
	initCanvas(canvasWidth, canvasHeight, "#3a3a6e")
	e.bindEvents()

	go e.request(ctx)
	if err := e.receiveLoop(ctx); err != nil {
		logFatalf("receiveLoop: %v", err)
	}
}

// request sends the current view. A request still rendering on the server is superseded.
func (e *explorer) request(ctx context.Context) {
	e.send(ctx, nil)
}

// send sends the current view, or the view moved to frame when frame is set,
// and returns the command id.
func (e *explorer) send(ctx context.Context, frame *fractal.Viewport) int {
	e.m.Lock()
	e.nextID++
	cmd := fractal.RenderCommand{ID: e.nextID, Request: e.state.Request()}
	if frame != nil {
		cmd.Viewport = *frame
	}
	hudSet("zoom", fmt.Sprintf("%.2fx", view.BaseRange/cmd.Viewport.Width()))
	hudSet("theme", cmd.Theme.String())
	hudSet("iterations", cmd.MaxIterations)
	e.m.Unlock()

	if err := wsjson.Write(ctx, e.conn, cmd); err != nil {
		logScreenf("send request %d: %v", cmd.ID, err)
	}
	return cmd.ID
}

// zoom animates a zoom by factor around at, rendering the frames in turn.
// Input arriving during the animation is ignored.
func (e *explorer) zoom(ctx context.Context, factor float64, at *view.Pixel) {
	e.m.Lock()
	if e.zooming {
		e.m.Unlock()
		return
	}
	frames := e.state.ZoomFrames(factor, at, zoomFrames)
	e.zooming = len(frames) > 0
	e.m.Unlock()
	if len(frames) == 0 {
		return
	}

	defer func() {
		e.m.Lock()
		e.zooming = false
		e.m.Unlock()
	}()

	for i := range frames {
		id := e.send(ctx, &frames[i])
		e.waitDrawn(id)
	}
}

// waitDrawn waits until the reply to id arrived or frameTimeout passed.
func (e *explorer) waitDrawn(id int) {
	timeout := time.After(frameTimeout)
	for {
		select {
		case got := <-e.drawn:
			if got >= id {
				return
			}
		case <-timeout:
			return
		}
	}
}

// notifyDrawn reports a finished reply without blocking the receive loop.
func (e *explorer) notifyDrawn(id int) {
	select {
	case <-e.drawn:
	default:
	}
	select {
	case e.drawn <- id:
	default:
	}
}

// receiveLoop draws every image the server sends.
func (e *explorer) receiveLoop(ctx context.Context) error {
	for {
		var reply fractal.RenderReply
		if err := wsjson.Read(ctx, e.conn, &reply); err != nil {
			return fmt.Errorf("read reply: %w", err)
		}
		if reply.Error != "" {
			logScreenf("render %d failed: %s", reply.ID, reply.Error)
			e.notifyDrawn(reply.ID)
			continue
		}

		_, data, err := e.conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			logScreenf("decode image %d: %v", reply.ID, err)
			e.notifyDrawn(reply.ID)
			continue
		}
		displayImage(img)
		e.notifyDrawn(reply.ID)
		hudSet("sections", reply.Sections)
		logScreenf("render %d: %dx%d in %d sections took %dms", reply.ID, reply.Width, reply.Height, reply.Sections, reply.ElapsedMS)
	}
}

// bindEvents maps keyboard and mouse input to view changes.
func (e *explorer) bindEvents() {
	doc := js.Global().Get("document")

	doc.Call("addEventListener", "keydown", js.FuncOf(func(_ js.Value, args []js.Value) any {
		key := args[0].Get("key").String()
		switch key {
		case "+", "=":
			go e.zoom(context.Background(), zoomFactor, nil)
		case "-":
			go e.zoom(context.Background(), 1/zoomFactor, nil)
		default:
			if !e.onKey(key) {
				return nil
			}
			go e.request(context.Background())
		}
		args[0].Call("preventDefault")
		return nil
	}))

	canvas().Call("addEventListener", "click", js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := args[0]
		at := view.Pixel{X: ev.Get("offsetX").Int(), Y: ev.Get("offsetY").Int()}
		go e.zoom(context.Background(), zoomFactor, &at)
		return nil
	}))
}

// onKey applies a key press to the view and reports whether it changed.
func (e *explorer) onKey(key string) bool {
	e.m.Lock()
	defer e.m.Unlock()
	if e.zooming {
		return false
	}

	s := e.state
	switch key {
	case "ArrowUp":
		s.Pan(view.Up)
	case "ArrowDown":
		s.Pan(view.Down)
	case "ArrowLeft":
		s.Pan(view.Left)
	case "ArrowRight":
		s.Pan(view.Right)
	case "t":
		s.NextTheme()
	case "j":
		s.Kind = (s.Kind + 1) % fractal.Kind(len(fractal.Kinds()))
	case "r":
		s.Reset()
	case "]":
		s.IterationOffset += 50
	case "[":
		s.IterationOffset -= 50
	default:
		return false
	}
	return true
}

// logScreenf appends a formatted message to the log element in the DOM.
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	logElem := js.Global().Get("document").Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}
