package server

import (
	"context"

	"github.com/verilsp/verilsp/ls"
	"github.com/verilsp/verilsp/lsp"
)

// fileDiagnostics holds the current state of published diagnostics for a
// file, so unchanged results are not resent on every notification.
type fileDiagnostics struct {
	mustPublish bool // if set, publish even if the diagnostics haven't changed
	version     int32
	published   []lsp.Diagnostic
}

func (s *server) markMustPublish(uri lsp.DocumentURI) {
	s.diagnosticsMu.Lock()
	defer s.diagnosticsMu.Unlock()
	if s.diagnostics[uri] == nil {
		s.diagnostics[uri] = new(fileDiagnostics)
	}
	s.diagnostics[uri].mustPublish = true
}

// publishDiagnostics pushes the current diagnostics of each URI to the
// client. Runs are serialized through diagnosticsSema so overlapping
// notifications cannot publish out of order.
func (s *server) publishDiagnostics(ctx context.Context, uris []lsp.DocumentURI) {
	select {
	case <-ctx.Done():
		return
	case s.diagnosticsSema <- unit{}:
	}
	defer func() {
		<-s.diagnosticsSema
	}()
	for _, uri := range uris {
		s.publishFileDiagnostics(ctx, uri)
	}
}

func (s *server) publishFileDiagnostics(ctx context.Context, uri lsp.DocumentURI) {
	tracker := s.trackers.Get(uri)
	diags := []lsp.Diagnostic{}
	var version int32
	if tracker != nil {
		if items := ls.CreateDiagnostics(tracker, s.messageLimit); items != nil {
			diags = items
		}
		if current := tracker.Current(); current != nil {
			version = current.Version
		}
	}

	s.diagnosticsMu.Lock()
	f := s.diagnostics[uri]
	if f == nil {
		f = new(fileDiagnostics)
		s.diagnostics[uri] = f
	}
	if !f.mustPublish && f.version == version && diagnosticsEqual(f.published, diags) {
		s.diagnosticsMu.Unlock()
		return
	}
	f.mustPublish = false
	f.version = version
	f.published = diags
	if tracker == nil {
		// closed buffer: forget it after the final empty publish
		delete(s.diagnostics, uri)
	}
	s.diagnosticsMu.Unlock()

	if err := s.client.PublishDiagnostics(ctx, &lsp.PublishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: diags,
	}); err != nil {
		s.logger.Printf("error publishing diagnostics for %s: %v", uri, err)
	}
}

func diagnosticsEqual(a, b []lsp.Diagnostic) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Range != b[i].Range || a[i].Severity != b[i].Severity ||
			a[i].Source != b[i].Source || a[i].Message != b[i].Message {
			return false
		}
	}
	return true
}
