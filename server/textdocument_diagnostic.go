package server

import (
	"context"

	"github.com/verilsp/verilsp/debug"
	"github.com/verilsp/verilsp/ls"
	"github.com/verilsp/verilsp/lsp"
)

// Diagnostic serves pull-model diagnostics. Unlike published diagnostics
// the report is never truncated by the message limit.
func (s *server) Diagnostic(ctx context.Context, params *lsp.DocumentDiagnosticParams) (*lsp.FullDocumentDiagnosticReport, error) {
	debug.Debug.Log(ctx, "serving pull diagnostics", "uri", string(params.TextDocument.URI))
	report := ls.GenerateDiagnosticReport(s.trackers.Get(params.TextDocument.URI))
	return &report, nil
}
