package server

import (
	"context"
	"fmt"

	"github.com/verilsp/verilsp/lsp"
	"github.com/verilsp/verilsp/rpc"
)

func (s *server) Initialize(ctx context.Context, params *lsp.InitializeRequestParams) (*lsp.InitializeResult, error) {
	s.stateMu.Lock()
	if s.state >= serverInitializing {
		defer s.stateMu.Unlock()
		return nil, fmt.Errorf("%w: initialize called while server in %v state", rpc.ErrInvalidRequest, s.state)
	}
	s.progress.SetSupportsWorkDoneProgress(params.Capabilities.Window.WorkDoneProgress)
	s.state = serverInitializing
	s.stateMu.Unlock()
	s.rootURI = params.RootURI
	if opts := params.InitializationOptions; opts != nil {
		if opts.MessageLimit != nil {
			s.messageLimit = *opts.MessageLimit
		}
		if len(opts.TopModules) > 0 {
			s.trackers.SetTopModules(opts.TopModules)
		}
	}
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			// 1 is full document sync; incremental edits are not applied
			TextDocumentSync: 1,
			CodeActionProvider: lsp.CodeActionProviderOptions{
				CodeActionKinds: []lsp.CodeActionKind{
					lsp.CodeActionKindQuickFix,
				},
			},
			DocumentSymbolProvider:     true,
			DocumentHighlightProvider:  true,
			DocumentFormattingProvider: true,
			DocumentRangeFormatting:    true,
			DiagnosticProvider: lsp.DiagnosticOptions{
				InterFileDependencies: false,
				WorkspaceDiagnostics:  false,
			},
		},
		ServerInfo: lsp.ServerInfo{
			Name:    "verilsp",
			Version: Version,
		},
	}, nil
}

func (s *server) Initialized(ctx context.Context, params *lsp.InitializedParams) error {
	s.stateMu.Lock()
	if s.state >= serverInitialized {
		defer s.stateMu.Unlock()
		return fmt.Errorf("%w: initialized called while server in %v state", rpc.ErrInvalidRequest, s.state)
	}
	s.state = serverInitialized
	s.stateMu.Unlock()
	s.logger.Printf("initialized for workspace %q", s.rootURI)
	return nil
}
