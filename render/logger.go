package render

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	SetLogger(nil)
}

// SetLogger sets where renders are logged: one Debug record per finished
// render and a Warn record when a render fails. Nil silences the package,
// which is the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}
