package logger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/verilsp/verilsp/lsp"
	"github.com/verilsp/verilsp/xcontext"
)

var ProgramLevel = new(slog.LevelVar)

var (
	startLogSenderOnce sync.Once
	logQueue           = make(chan func(), 100) // big enough for a large transient burst
)

// Log forwards a message to the editor as a window/logMessage
// notification. Sending happens on a dedicated goroutine so a slow client
// cannot stall the caller.
func Log(ctx context.Context, msg string, mt lsp.MessageType) {
	client := lsp.GetClient(ctx)
	if client == nil {
		return
	}
	logMsg := &lsp.LogMessageParams{
		Message:     msg,
		MessageType: mt,
	}

	startLogSenderOnce.Do(func() {
		go func() {
			for fn := range logQueue {
				fn()
			}
		}()
	})

	ctx2 := xcontext.Detach(ctx)
	logQueue <- func() { client.LogMessage(ctx2, logMsg) }
}

// ClientHandler is a slog.Handler that mirrors every record to the editor
// via Log before delegating to the wrapped handler.
type ClientHandler struct {
	inner slog.Handler
}

func NewClientHandler(inner slog.Handler) *ClientHandler {
	return &ClientHandler{inner: inner}
}

func (h *ClientHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ClientHandler) Handle(ctx context.Context, rec slog.Record) error {
	Log(ctx, rec.Message, convertLevel(rec.Level))
	return h.inner.Handle(ctx, rec)
}

func (h *ClientHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ClientHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *ClientHandler) WithGroup(name string) slog.Handler {
	return &ClientHandler{inner: h.inner.WithGroup(name)}
}

func convertLevel(level slog.Level) lsp.MessageType {
	switch level {
	case slog.LevelDebug:
		return lsp.MessageType(5)
	case slog.LevelInfo:
		return lsp.MessageType(3)
	case slog.LevelWarn:
		return lsp.MessageType(2)
	case slog.LevelError:
		return lsp.MessageType(1)
	default:
		return lsp.MessageType(4)
	}
}
