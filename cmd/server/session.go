package main

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	fractal "github.com/marben/fractal_frontier"
)

// session serves render commands of one websocket client.
//
// A new command supersedes the one still rendering: the stale render is
// canceled and its result is never sent.
type session struct {
	svc  *service
	conn *websocket.Conn

	m       sync.Mutex // serializes reply + image pairs
	cancel  context.CancelFunc
	latest  int
	renders sync.WaitGroup
}

func newSession(svc *service, conn *websocket.Conn) *session {
	conn.SetReadLimit(1 << 16)
	return &session{svc: svc, conn: conn}
}

// serve reads commands until the connection fails or ctx is done.
func (s *session) serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		s.renders.Wait()
	}()

	for {
		var cmd fractal.RenderCommand
		if err := wsjson.Read(ctx, s.conn, &cmd); err != nil {
			return err
		}
		s.start(ctx, cmd)
	}
}

// start cancels the previous render and begins rendering cmd.
func (s *session) start(ctx context.Context, cmd fractal.RenderCommand) {
	renderCtx, cancel := context.WithCancel(ctx)

	s.m.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.latest = cmd.ID
	s.m.Unlock()

	s.renders.Add(1)
	go func() {
		defer s.renders.Done()
		defer cancel()

		data, reply, err := s.svc.execute(renderCtx, cmd)
		if errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			reply.Error = err.Error()
		}
		if err := s.send(renderCtx, cmd.ID, reply, data); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("send render %d: %v", cmd.ID, err)
		}
	}()
}

// send writes the reply and, on success, the image. Results of superseded
// commands are dropped.
func (s *session) send(ctx context.Context, id int, reply fractal.RenderReply, data []byte) error {
	s.m.Lock()
	defer s.m.Unlock()

	if id != s.latest {
		return nil
	}
	if err := wsjson.Write(ctx, s.conn, reply); err != nil {
		return err
	}
	if reply.Error != "" {
		return nil
	}
	return s.conn.Write(ctx, websocket.MessageBinary, data)
}
