package server

import (
	"context"

	"github.com/verilsp/verilsp/debug"
	"github.com/verilsp/verilsp/ls"
	"github.com/verilsp/verilsp/lsp"
)

func (s *server) CodeAction(ctx context.Context, params *lsp.CodeActionParams) ([]lsp.CodeAction, error) {
	_, done := debug.Start(ctx, "CodeAction")
	defer done()
	tracker := s.trackers.Get(params.TextDocument.URI)
	if tracker == nil {
		return nil, nil
	}
	return ls.GenerateCodeActions(tracker, *params), nil
}
