package debug

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func TestStartLogsSpan(t *testing.T) {
	buf := withTestLogger(t)
	_, done := Start(context.Background(), "Lint", slog.String("file", "top.v"))
	done()
	out := buf.String()
	assert.Contains(t, out, "Lint Starting...")
	assert.Contains(t, out, "Lint Done")
	assert.Contains(t, out, "top.v")
}

func TestWithCarriesLoggerThroughContext(t *testing.T) {
	buf := withTestLogger(t)
	ctx, _ := With(context.Background(), slog.String("uri", "file:///a.v"))
	Debug.Log(ctx, "analyzing")
	assert.Contains(t, buf.String(), "analyzing")
	assert.Contains(t, buf.String(), "file:///a.v")
}

func TestLogError(t *testing.T) {
	buf := withTestLogger(t)
	LogError(context.Background(), "publish failed", errors.New("pipe closed"))
	assert.Contains(t, buf.String(), "publish failed")
	assert.Contains(t, buf.String(), "pipe closed")
}
