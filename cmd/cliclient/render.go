package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	fractal "github.com/marben/fractal_frontier"
	"github.com/marben/fractal_frontier/bookmark"
	"github.com/marben/fractal_frontier/imgio"
	"github.com/marben/fractal_frontier/render"
)

type outputFlags struct {
	path     string
	annotate bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.path, "output", "o", "fractal.png", "output file; the extension picks png, tiff or bmp")
	flags.BoolVar(&f.annotate, "annotate", false, "add a status line with the section count and viewport")
}

func renderCmd(store func() *bookmark.Store) *cobra.Command {
	var (
		vf          viewFlags
		of          outputFlags
		parallelism int
		seed        uint64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a fractal on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true

			rc, frames, err := vf.command(cmd, store())
			if err != nil {
				return err
			}

			r := render.NewRenderer(render.WithParallelism(parallelism))
			defer r.Close()

			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			rng := rand.New(rand.NewPCG(seed, 0))
			if vf.frames > 1 && len(frames) > 1 {
				return renderFrames(cmd.Context(), r, rc, frames, rng, of)
			}
			provider := localImage{renderer: r, cmd: rc, rng: rng}

			start := time.Now()
			img, err := provider.GetImage(cmd.Context())
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			sections := r.SectionCount(rc.Resolution.Width)
			log.Printf("rendered %dx%d in %d sections in %s", img.Width, img.Height, sections, time.Since(start))

			return of.write(img, statusLine(sections, rc.Viewport))
		},
	}
	vf.register(cmd)
	of.register(cmd)
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "parallelism degree the section count is derived from (0 = all CPUs)")
	cmd.Flags().IntVar(&vf.frames, "frames", 1, "with --zoom, write this many images animating the zoom, numbered after the output name")
	cmd.Flags().Uint64Var(&seed, "seed", 0, fmt.Sprintf("random seed for the %q theme", fractal.CPUCoresTheme))
	return cmd
}

// localImage renders a command on this machine.
type localImage struct {
	renderer *render.Renderer
	cmd      fractal.RenderCommand
	rng      *rand.Rand
}

var _ fractal.ImgProvider = localImage{}

func (l localImage) GetImage(ctx context.Context) (*fractal.Image, error) {
	if l.cmd.CPUCores {
		return l.renderer.RenderCPUCores(ctx, l.cmd.Request, l.rng)
	}
	return l.renderer.Render(ctx, l.cmd.Request)
}

// renderFrames renders one image per zoom frame. Every frame uses the
// iteration count of the zoom target.
func renderFrames(ctx context.Context, r *render.Renderer, rc fractal.RenderCommand, frames []fractal.Viewport, rng *rand.Rand, of outputFlags) error {
	for i, v := range frames {
		frame := rc
		frame.Viewport = v
		img, err := localImage{renderer: r, cmd: frame, rng: rng}.GetImage(ctx)
		if err != nil {
			return fmt.Errorf("render frame %d: %w", i+1, err)
		}

		out := of
		out.path = framePath(of.path, i+1, len(frames))
		if err := out.write(img, statusLine(r.SectionCount(img.Width), v)); err != nil {
			return err
		}
	}
	return nil
}

// framePath numbers path for frame i of n: out.png becomes out-03.png.
func framePath(path string, i, n int) string {
	ext := filepath.Ext(path)
	digits := len(strconv.Itoa(n))
	return fmt.Sprintf("%s-%0*d%s", strings.TrimSuffix(path, ext), digits, i, ext)
}

// statusLine is the annotation text for a render.
func statusLine(sections int, v fractal.Viewport) string {
	return fmt.Sprintf("Cores: %d | %s", sections, v)
}

// write saves img to the output path, annotated with status when requested.
func (f *outputFlags) write(img image.Image, status string) error {
	if f.annotate {
		img = imgio.Annotate(img, status)
	}

	out, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := imgio.Encode(out, img, imgio.FormatFromPath(f.path)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", f.path, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	log.Printf("image saved to %q", f.path)
	return nil
}
