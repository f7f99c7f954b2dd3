package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/marben/fractal_frontier/bookmark"
	"github.com/marben/fractal_frontier/render"
)

// main is the entry point for the fractal render server.
// Rendering happens here; clients only send views and display the returned images.
func main() {
	if err := mainCmd().Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

type config struct {
	port        int
	parallelism int
	bookmarks   string
	static      string
	logLevel    string
}

func mainCmd() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve fractal renders over HTTP and websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.port, "port", 8080, "http port")
	flags.IntVar(&cfg.parallelism, "parallelism", 0, "parallelism degree the section count is derived from (0 = all CPUs)")
	flags.StringVar(&cfg.bookmarks, "bookmarks", bookmark.DefaultPath, "bookmark file served on /bookmarks")
	flags.StringVar(&cfg.static, "static", "./static", "directory with index.html and main.wasm")
	flags.StringVar(&cfg.logLevel, "log-level", "info", "renderer log level: debug, info, warn, error")

	return cmd
}

func run(ctx context.Context, cfg config) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// one renderer, and so one worker pool, is shared by every client
	renderer := render.NewRenderer(render.WithParallelism(cfg.parallelism))
	defer renderer.Close()

	svc := newService(renderer, bookmark.NewStore(cfg.bookmarks))
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.port),
		Handler:           svc.mux(cfg.static),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
	}()

	log.Printf("listening on http://localhost:%d (parallelism: %d)", cfg.port, renderer.Parallelism())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("httpServer: %w", err)
	}
	return nil
}
