package fractal

import (
	"context"
)

// ImgProvider hands out a fully rendered image.
type ImgProvider interface {
	GetImage(ctx context.Context) (*Image, error)
}

// Renderer turns a render request into an RGB image.
type Renderer interface {
	Render(ctx context.Context, req Request) (*Image, error)
}

// RenderCommand is the message a client sends to the render service.
// CPUCores selects the meta-theme that colors every section with a random theme.
type RenderCommand struct {
	ID int `json:"id"`
	Request
	CPUCores bool `json:"cpu_cores,omitempty"`
}

// RenderReply answers a RenderCommand. When Error is empty it is followed by
// a binary message holding the PNG encoded image.
type RenderReply struct {
	ID        int    `json:"id"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Sections  int    `json:"sections,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}
