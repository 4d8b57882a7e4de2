package server

import (
	"context"
	"log"
	"strconv"
	"sync"

	"github.com/verilsp/verilsp/lsp"
	"github.com/verilsp/verilsp/xcontext"
	"golang.org/x/exp/rand"
)

// A Tracker reports the progress of a long-running operation to an LSP client.
type Tracker struct {
	client                   lsp.Client
	supportsWorkDoneProgress bool
	logger                   *log.Logger

	mu         sync.Mutex
	inProgress map[lsp.ProgressToken]*WorkDone
}

// NewTracker returns a new Tracker that reports progress to the
// specified client.
func NewTracker(client lsp.Client, logger *log.Logger) *Tracker {
	return &Tracker{
		client:     client,
		logger:     logger,
		inProgress: make(map[lsp.ProgressToken]*WorkDone),
	}
}

// SetSupportsWorkDoneProgress sets whether the client supports "work done"
// progress reporting. It must be set before using the tracker.
func (t *Tracker) SetSupportsWorkDoneProgress(b bool) {
	t.supportsWorkDoneProgress = b
}

// WorkDone represents a unit of work that is reported to the client via the
// progress API.
type WorkDone struct {
	client lsp.Client
	// If token is nil, this workDone object uses the ShowMessage API, rather
	// than $/progress.
	token lsp.ProgressToken
	// err is set if progress reporting is broken for some reason (for example,
	// if there was an initial error creating a token).
	err error

	logger *log.Logger

	cleanup func()
}

// Start begins tracking a unit of work and notifies the client. Clients
// without work-done support get a log message instead.
func (t *Tracker) Start(ctx context.Context, title, message string, token lsp.ProgressToken) *WorkDone {
	ctx = xcontext.Detach(ctx)
	wd := &WorkDone{
		client: t.client,
		token:  token,
		logger: t.logger,
	}
	if !t.supportsWorkDoneProgress {
		if err := wd.client.ShowMessage(ctx, &lsp.ShowMessageParams{
			Type:    4, // log
			Message: message,
		}); err != nil {
			t.logger.Printf("error showing message: %v", err)
		}
		return wd
	}

	if wd.token == nil {
		token = strconv.FormatInt(rand.Int63(), 10)
		err := wd.client.WorkDoneProgressCreate(ctx, &lsp.WorkDoneProgressCreateParams{
			Token: token,
		})
		if err != nil {
			t.logger.Printf("error creating progress token: %v", err)
			wd.err = err
			return wd
		}
		wd.token = token
	}
	t.mu.Lock()
	t.inProgress[wd.token] = wd
	t.mu.Unlock()
	wd.cleanup = func() {
		t.mu.Lock()
		delete(t.inProgress, token)
		t.mu.Unlock()
	}
	err := wd.client.ProgressBegin(ctx, &lsp.WorkDoneProgressBeginParams{
		Token: wd.token,
		Value: &lsp.WorkDoneProgressBeginValue{
			Kind:    "begin",
			Title:   title,
			Message: message,
		},
	})
	if err != nil {
		t.logger.Printf("error starting progress: %v", err)
	}
	return wd
}

// End reports a workdone completion back to the client.
func (wd *WorkDone) End(ctx context.Context, message string) {
	ctx = xcontext.Detach(ctx) // progress messages should not be cancelled
	if wd == nil {
		return
	}
	var err error
	switch {
	case wd.err != nil:
		// There is a prior error.
	case wd.token == nil:
		// We're falling back to message-based reporting.
		err = wd.client.ShowMessage(ctx, &lsp.ShowMessageParams{
			Type:    3, // Info
			Message: message,
		})
	default:
		err = wd.client.ProgressEnd(ctx, &lsp.WorkDoneProgressEndParams{
			Token: wd.token,
			Value: &lsp.WorkDoneProgressEndValue{
				Kind:    "end",
				Message: message,
			},
		})
	}
	if err != nil {
		wd.logger.Printf("error ending progress: %v", err)
	}
	if wd.cleanup != nil {
		wd.cleanup()
	}
}
