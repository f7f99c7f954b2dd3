package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/spf13/cobra"

	fractal "github.com/marben/fractal_frontier"
	"github.com/marben/fractal_frontier/bookmark"
)

// errRemote is returned when the server rejects a render command.
var errRemote = errors.New("server error")

func fetchCmd(store func() *bookmark.Store) *cobra.Command {
	var (
		vf      viewFlags
		of      outputFlags
		server  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Render a fractal on a fractal server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true

			rc, _, err := vf.command(cmd, store())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			log.Printf("connecting to %s", server)
			remote := &remoteImage{url: server, cmd: rc}
			img, err := remote.GetImage(ctx)
			if err != nil {
				return err
			}
			reply := remote.reply
			log.Printf("server rendered %dx%d in %d sections in %dms", reply.Width, reply.Height, reply.Sections, reply.ElapsedMS)

			return of.write(img, statusLine(reply.Sections, rc.Viewport))
		},
	}
	vf.register(cmd)
	of.register(cmd)
	cmd.Flags().StringVar(&server, "server", "ws://localhost:8080/ws", "websocket url of the fractal server")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "give up after this long")
	return cmd
}

// remoteImage renders a command on a fractal server. The reply of the last
// GetImage call is kept in reply.
type remoteImage struct {
	url   string
	cmd   fractal.RenderCommand
	reply fractal.RenderReply
}

var _ fractal.ImgProvider = (*remoteImage)(nil)

func (r *remoteImage) GetImage(ctx context.Context) (*fractal.Image, error) {
	img, reply, err := fetch(ctx, r.url, r.cmd)
	r.reply = reply
	if err != nil {
		return nil, err
	}
	return fractal.FromImage(img), nil
}

// fetch sends rc over a fresh websocket connection and waits for the image.
func fetch(ctx context.Context, url string, rc fractal.RenderCommand) (image.Image, fractal.RenderReply, error) {
	var reply fractal.RenderReply

	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, reply, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer c.CloseNow()
	c.SetReadLimit(-1)

	if err := wsjson.Write(ctx, c, rc); err != nil {
		return nil, reply, fmt.Errorf("send command: %w", err)
	}
	if err := wsjson.Read(ctx, c, &reply); err != nil {
		return nil, reply, fmt.Errorf("read reply: %w", err)
	}
	if reply.Error != "" {
		return nil, reply, fmt.Errorf("%w: %s", errRemote, reply.Error)
	}

	typ, data, err := c.Read(ctx)
	if err != nil {
		return nil, reply, fmt.Errorf("read image: %w", err)
	}
	if typ != websocket.MessageBinary {
		return nil, reply, fmt.Errorf("read image: unexpected message type %v", typ)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, reply, fmt.Errorf("decode image: %w", err)
	}

	c.Close(websocket.StatusNormalClosure, "")
	return img, reply, nil
}
