package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/verilsp/verilsp/ls"
	"github.com/verilsp/verilsp/lsp"
)

// Version is reported to clients in the initialize response.
const Version = "0.1.0"

// defaultMessageLimit caps the diagnostics published per document unless
// the client overrides it through initialization options.
const defaultMessageLimit = 100

// New creates an LSP server bound to the supplied client.
func New(logger *log.Logger, client lsp.Client) lsp.Server {
	const concurrentPublishes = 1
	// If this assignment fails to compile after a protocol
	// change, one or more new methods need handlers on server.
	return &server{
		logger:          logger,
		client:          client,
		trackers:        ls.NewTrackerContainer(),
		messageLimit:    defaultMessageLimit,
		diagnostics:     make(map[lsp.DocumentURI]*fileDiagnostics),
		diagnosticsSema: make(chan unit, concurrentPublishes),
		progress:        NewTracker(client, logger),
	}
}

type serverState int

const (
	serverCreated      = serverState(iota)
	serverInitializing // set once the server has received "initialize" request
	serverInitialized  // set once the server has received "initialized" request
	serverShutDown
)

func (s serverState) String() string {
	switch s {
	case serverCreated:
		return "created"
	case serverInitializing:
		return "initializing"
	case serverInitialized:
		return "initialized"
	case serverShutDown:
		return "shutDown"
	}
	return fmt.Sprintf("(unknown state: %d)", int(s))
}

type unit struct{}

type server struct {
	logger  *log.Logger
	client  lsp.Client
	stateMu sync.Mutex
	state   serverState
	rootURI lsp.DocumentURI

	// trackers holds the analysis state of every open buffer.
	trackers *ls.TrackerContainer

	// messageLimit caps published diagnostics per document.
	// Negative means unlimited.
	messageLimit int

	// progress is the progress tracker used to report progress
	// to the client.
	progress *Tracker

	diagnosticsMu sync.Mutex // guards map and its values
	diagnostics   map[lsp.DocumentURI]*fileDiagnostics
	// diagnosticsSema serializes publish runs so a flurry of edits
	// cannot interleave stale results.
	diagnosticsSema chan unit
}

func (s *server) Logger() *log.Logger {
	return s.logger
}

// Shutdown implements the 'shutdown' LSP handler. Further document
// notifications are still accepted; the client follows up with 'exit'.
func (s *server) Shutdown(ctx context.Context) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.state = serverShutDown
	return nil
}

func (s *server) Exit(ctx context.Context) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.state != serverShutDown {
		os.Exit(1)
	}
	return nil
}
