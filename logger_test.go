package vrshell

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscardHandler(t *testing.T) {
	var h slog.Handler = discardHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, h.Enabled(context.Background(), level), "level %v", level)
	}
	assert.IsType(t, discardHandler{}, h.WithAttrs([]slog.Attr{slog.Int("frame", 1)}))
	assert.IsType(t, discardHandler{}, h.WithGroup("layer"))
	assert.NoError(t, h.Handle(context.Background(), slog.Record{}))
}

func TestLoggerStartsSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)
	assert.Same(t, custom, Logger())

	Logger().Info("frame submitted", "layers", 3)
	assert.Contains(t, buf.String(), "frame submitted")
	assert.Contains(t, buf.String(), "layers=3")

	SetLogger(nil)
	assert.Same(t, silent, Logger())
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("tracking sample")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseLogLevel(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseLogLevel(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
