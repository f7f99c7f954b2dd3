package render

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/marben/fractal_frontier/internal/parallel"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestLoggerDefaultSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled, want it silent")
	}
}

func TestRenderLogsDebugRecord(t *testing.T) {
	buf := captureLog(t)

	r := NewRenderer(WithParallelism(2))
	defer r.Close()
	if _, err := r.Render(context.Background(), mandelbrotRequest(16, 8)); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Errorf("log = %q, want exactly one record per render", out)
	}
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "msg=rendered") || !strings.Contains(out, "sections=2") {
		t.Errorf("log = %q, want a debug record with sections=2", out)
	}
}

func TestRenderFailureLogsWarn(t *testing.T) {
	buf := captureLog(t)

	pool := parallel.NewWorkerPool(2)
	pool.Close()
	r := NewRenderer(WithParallelism(2), WithPool(pool))
	if _, err := r.Render(context.Background(), mandelbrotRequest(16, 8)); err == nil {
		t.Fatal("Render() on a closed pool succeeded")
	}
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("log = %q, want a warn record", buf.String())
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	captureLog(t)
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("logger still enabled after SetLogger(nil)")
	}
}
