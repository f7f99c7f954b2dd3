package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"

	fractal "github.com/marben/fractal_frontier"
	"github.com/marben/fractal_frontier/bookmark"
	"github.com/marben/fractal_frontier/imgio"
	"github.com/marben/fractal_frontier/render"
)

// maxPixels bounds a single render so one request cannot exhaust the server.
const maxPixels = 4096 * 4096

// service serves renders to http and websocket clients.
type service struct {
	renderer  *render.Renderer
	bookmarks *bookmark.Store

	m        sync.Mutex
	sessions int
	rng      *rand.Rand
}

func newService(r *render.Renderer, b *bookmark.Store) *service {
	return &service{
		renderer:  r,
		bookmarks: b,
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// mux creates handler serving files in the static folder alongside
// the render, websocket and bookmark endpoints.
func (s *service) mux(static string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /render", s.renderHandler)
	mux.HandleFunc("/ws", s.websocketHandler)
	mux.HandleFunc("GET /bookmarks", s.bookmarksHandler)
	mux.HandleFunc("GET /themes", themesHandler)
	mux.Handle("/", http.FileServer(http.Dir(static)))
	return mux
}

// execute renders cmd and encodes the result as PNG.
func (s *service) execute(ctx context.Context, cmd fractal.RenderCommand) ([]byte, fractal.RenderReply, error) {
	reply := fractal.RenderReply{ID: cmd.ID}
	if err := cmd.Validate(); err != nil {
		return nil, reply, err
	}
	// Validate has made both dimensions positive; dividing keeps the product from overflowing.
	if w, h := cmd.Resolution.Width, cmd.Resolution.Height; w > maxPixels || h > maxPixels/w {
		return nil, reply, fmt.Errorf("%w: %dx%d exceeds %d pixels", fractal.ErrInvalidInput, cmd.Resolution.Width, cmd.Resolution.Height, maxPixels)
	}

	start := time.Now()
	var (
		img *fractal.Image
		err error
	)
	if cmd.CPUCores {
		img, err = s.renderer.RenderCPUCores(ctx, cmd.Request, s.randSource())
	} else {
		img, err = s.renderer.Render(ctx, cmd.Request)
	}
	if err != nil {
		return nil, reply, err
	}

	var buf bytes.Buffer
	if err := imgio.Encode(&buf, img, imgio.PNG); err != nil {
		return nil, reply, err
	}

	reply.Width = img.Width
	reply.Height = img.Height
	reply.Sections = s.renderer.SectionCount(img.Width)
	reply.ElapsedMS = time.Since(start).Milliseconds()
	return buf.Bytes(), reply, nil
}

// randSource hands out a per-render generator seeded from the shared one.
func (s *service) randSource() *rand.Rand {
	s.m.Lock()
	defer s.m.Unlock()
	return rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()))
}

// renderHandler renders the view described by the query string and answers with a PNG.
func (s *service) renderHandler(w http.ResponseWriter, r *http.Request) {
	cmd, err := parseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, reply, err := s.execute(r.Context(), cmd)
	switch {
	case errors.Is(err, fractal.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("render %s: %v", r.URL.RawQuery, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Sections", strconv.Itoa(reply.Sections))
	w.Header().Set("X-Elapsed-Ms", strconv.FormatInt(reply.ElapsedMS, 10))
	if _, err := w.Write(data); err != nil {
		log.Printf("write render: %v", err)
	}
}

func (s *service) bookmarksHandler(w http.ResponseWriter, _ *http.Request) {
	bookmarks, err := s.bookmarks.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if bookmarks == nil {
		bookmarks = []bookmark.Bookmark{}
	}
	writeJSON(w, bookmarks)
}

func themesHandler(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(fractal.Themes())+1)
	for _, t := range fractal.Themes() {
		names = append(names, t.String())
	}
	writeJSON(w, append(names, fractal.CPUCoresTheme))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

// websocketHandler upgrades the connection and serves render commands on it
// until the client goes away.
func (s *service) websocketHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // TODO: restrict to the deployed host once there is a config for it
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	s.incSessions()
	defer s.decSessions()

	sess := newSession(s, c)
	err = sess.serve(r.Context())
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
		return
	}
	if err != nil {
		log.Printf("session %s: %v", r.RemoteAddr, err)
	}
}

func (s *service) incSessions() {
	s.m.Lock()
	s.sessions++
	n := s.sessions
	s.m.Unlock()

	log.Printf("sessions: %d", n)
}

func (s *service) decSessions() {
	s.m.Lock()
	s.sessions--
	n := s.sessions
	s.m.Unlock()

	log.Printf("sessions: %d", n)
}

// parseQuery builds a render command from query parameters.
// Missing parameters take the values of the reset view.
func parseQuery(q url.Values) (fractal.RenderCommand, error) {
	cmd := fractal.RenderCommand{
		Request: fractal.Request{
			Viewport:      fractal.DefaultViewport,
			Resolution:    fractal.Resolution{Width: 160, Height: 120},
			MaxIterations: 100,
			Kind:          fractal.Mandelbrot,
			Theme:         fractal.Default,
		},
	}

	floats := map[string]*float64{
		"xmin": &cmd.Viewport.Xmin,
		"xmax": &cmd.Viewport.Xmax,
		"ymin": &cmd.Viewport.Ymin,
		"ymax": &cmd.Viewport.Ymax,
	}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return cmd, fmt.Errorf("%w: %s: %w", fractal.ErrInvalidInput, name, err)
			}
			*dst = f
		}
	}

	ints := map[string]*int{
		"w":    &cmd.Resolution.Width,
		"h":    &cmd.Resolution.Height,
		"iter": &cmd.MaxIterations,
	}
	for name, dst := range ints {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return cmd, fmt.Errorf("%w: %s: %w", fractal.ErrInvalidInput, name, err)
			}
			*dst = n
		}
	}

	if v := q.Get("kind"); v != "" {
		k, err := fractal.ParseKind(v)
		if err != nil {
			return cmd, err
		}
		cmd.Kind = k
	}

	theme := q.Get("theme")
	cmd.CPUCores = theme == fractal.CPUCoresTheme
	cmd.Theme = fractal.ParseTheme(theme)

	if cmd.Kind == fractal.Julia {
		c := fractal.DefaultJuliaConstant
		for name, dst := range map[string]*float64{"cre": &c.Re, "cim": &c.Im} {
			if v := q.Get(name); v != "" {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return cmd, fmt.Errorf("%w: %s: %w", fractal.ErrInvalidInput, name, err)
				}
				*dst = f
			}
		}
		cmd.C = &c
	}
	return cmd, nil
}
