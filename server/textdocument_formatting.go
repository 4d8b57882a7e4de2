package server

import (
	"context"

	"github.com/verilsp/verilsp/debug"
	"github.com/verilsp/verilsp/ls"
	"github.com/verilsp/verilsp/lsp"
)

func (s *server) Formatting(ctx context.Context, params *lsp.DocumentFormattingParams) ([]lsp.TextEdit, error) {
	_, done := debug.Start(ctx, "Formatting")
	defer done()
	return ls.FormatDocument(s.trackers.Get(params.TextDocument.URI)), nil
}

func (s *server) RangeFormatting(ctx context.Context, params *lsp.DocumentRangeFormattingParams) ([]lsp.TextEdit, error) {
	return ls.FormatRange(s.trackers.Get(params.TextDocument.URI), params.Range), nil
}
