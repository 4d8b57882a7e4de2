package logger

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verilsp/verilsp/lsp"
)

type recordingClient struct {
	mu   sync.Mutex
	msgs []lsp.LogMessageParams
}

func (c *recordingClient) LogMessage(_ context.Context, p *lsp.LogMessageParams) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, *p)
	return nil
}

func (c *recordingClient) PublishDiagnostics(context.Context, *lsp.PublishDiagnosticsParams) error {
	return nil
}
func (c *recordingClient) WorkDoneProgressCreate(context.Context, *lsp.WorkDoneProgressCreateParams) error {
	return nil
}
func (c *recordingClient) ProgressBegin(context.Context, *lsp.WorkDoneProgressBeginParams) error {
	return nil
}
func (c *recordingClient) ProgressEnd(context.Context, *lsp.WorkDoneProgressEndParams) error {
	return nil
}
func (c *recordingClient) ShowMessage(context.Context, *lsp.ShowMessageParams) error { return nil }

func (c *recordingClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func TestLogForwardsToClient(t *testing.T) {
	client := &recordingClient{}
	ctx := lsp.WithClient(context.Background(), client)

	Log(ctx, "hello from the server", lsp.MessageType(3))
	require.Eventually(t, func() bool { return client.count() == 1 },
		time.Second, 5*time.Millisecond)

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.Equal(t, "hello from the server", client.msgs[0].Message)
	assert.Equal(t, lsp.MessageType(3), client.msgs[0].MessageType)
}

func TestLogWithoutClientIsNoop(t *testing.T) {
	// must not panic or block
	Log(context.Background(), "dropped", lsp.MessageType(3))
}

func TestClientHandlerMirrorsRecords(t *testing.T) {
	client := &recordingClient{}
	ctx := lsp.WithClient(context.Background(), client)

	h := NewClientHandler(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: ProgramLevel}))
	log := slog.New(h)
	log.Log(ctx, slog.LevelWarn, "low disk space")

	require.Eventually(t, func() bool { return client.count() >= 1 },
		time.Second, 5*time.Millisecond)
	client.mu.Lock()
	defer client.mu.Unlock()
	assert.Equal(t, "low disk space", client.msgs[0].Message)
	assert.Equal(t, lsp.MessageType(2), client.msgs[0].MessageType)
}
