package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/verilsp/verilsp/debug"
	"github.com/verilsp/verilsp/file"
	"github.com/verilsp/verilsp/lsp"
	"github.com/verilsp/verilsp/rpc"
	"github.com/verilsp/verilsp/xcontext"
)

func (s *server) DidOpen(ctx context.Context, params *lsp.DidOpenTextDocumentParams) error {
	if file.KindForLang(params.TextDocument.LanguageID) == file.UnknownKind {
		s.logger.Printf("didOpen %s: unrecognized language %q, analyzing anyway",
			params.TextDocument.URI, params.TextDocument.LanguageID)
	}
	return s.didModifyFiles(ctx, []file.Modification{{
		URI:        params.TextDocument.URI,
		Action:     file.Open,
		Version:    params.TextDocument.Version,
		Text:       []byte(params.TextDocument.Text),
		LanguageID: params.TextDocument.LanguageID,
	}})
}

func (s *server) DidChange(ctx context.Context, params *lsp.DidChangeTextDocumentParams) error {
	changes := params.ContentChanges
	if len(changes) == 0 {
		return fmt.Errorf("%w: no content changes provided", rpc.ErrInvalidParams)
	}
	// full document sync: the last change event carries the whole buffer
	return s.didModifyFiles(ctx, []file.Modification{{
		URI:     params.TextDocument.URI,
		Action:  file.Change,
		Version: params.TextDocument.Version,
		Text:    []byte(changes[len(changes)-1].Text),
	}})
}

func (s *server) DidSave(ctx context.Context, params *lsp.DidSaveTextDocumentParams) error {
	ctx, done := debug.Start(ctx, "DidSave", slog.String("uri", string(params.TextDocument.URI)))
	defer done()
	c := file.Modification{
		URI:    params.TextDocument.URI,
		Action: file.Save,
	}
	if params.Text != nil {
		c.Text = []byte(*params.Text)
	}
	return s.didModifyFiles(ctx, []file.Modification{c})
}

func (s *server) DidClose(ctx context.Context, params *lsp.DidCloseTextDocumentParams) error {
	return s.didModifyFiles(ctx, []file.Modification{{
		URI:     params.TextDocument.URI,
		Action:  file.Close,
		Version: -1,
	}})
}

// didModifyFiles applies buffer modifications to the tracker state and
// kicks off an asynchronous diagnostics publish for the touched URIs.
func (s *server) didModifyFiles(ctx context.Context, modifications []file.Modification) error {
	uris := make([]lsp.DocumentURI, 0, len(modifications))
	isSave := false
	for _, mod := range modifications {
		uris = append(uris, mod.URI)
		switch mod.Action {
		case file.Open, file.Change:
			s.trackers.Update(mod.URI, string(mod.Text), mod.Version)
		case file.Save:
			isSave = true
			// the buffer is usually already tracked; a save mostly
			// forces a republish of what analysis already found
			if mod.Text != nil && s.trackers.Get(mod.URI) == nil {
				s.trackers.Update(mod.URI, string(mod.Text), 0)
			}
		case file.Close:
			s.trackers.Remove(mod.URI)
		}
		s.markMustPublish(mod.URI)
	}

	// don't block the notification on diagnostics
	pubCtx := xcontext.Detach(ctx)
	if isSave {
		work := s.progress.Start(pubCtx, "Verilog", "Analyzing saved buffer...", nil)
		go func() {
			s.publishDiagnostics(pubCtx, uris)
			work.End(pubCtx, "Done.")
		}()
		return nil
	}
	go s.publishDiagnostics(pubCtx, uris)
	return nil
}
