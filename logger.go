package vrshell

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record and reports every level as disabled.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var (
	silent  = slog.New(discardHandler{})
	current atomic.Pointer[slog.Logger]
)

func init() { current.Store(silent) }

// SetLogger routes the package's log output, and every sub-package's, to l.
// A nil l silences it again, which is also the initial state. Lifecycle
// events go out at Info, suppressed and stale layers at Warn, per-frame
// detail at Debug.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger. It may be called from any
// goroutine.
func Logger() *slog.Logger { return current.Load() }

// ParseLogLevel converts a configuration name (debug, info, warn, error) to a
// slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("vrshell: unknown log level %q", s)
	}
	return l, nil
}
