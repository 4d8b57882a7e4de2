package server

import (
	"context"

	"github.com/verilsp/verilsp/ls"
	"github.com/verilsp/verilsp/lsp"
)

func (s *server) DocumentSymbol(ctx context.Context, params *lsp.DocumentSymbolParams) ([]lsp.DocumentSymbol, error) {
	return ls.CreateDocumentSymbols(s.trackers.Get(params.TextDocument.URI)), nil
}

func (s *server) DocumentHighlight(ctx context.Context, params *lsp.DocumentHighlightParams) ([]lsp.DocumentHighlight, error) {
	tracker := s.trackers.Get(params.TextDocument.URI)
	if tracker == nil {
		return nil, nil
	}
	return ls.CreateHighlightRanges(tracker, *params), nil
}
