package lsp

type InitializeRequestParams struct {
	WorkDoneProgressCreateParams
	ClientInfo            *ClientInfo        `json:"clientInfo"`
	RootURI               DocumentURI        `json:"rootUri"`
	Capabilities          ClientCapabilities `json:"capabilities"`
	InitializationOptions *InitOptions       `json:"initializationOptions,omitempty"`
	// ... there's tons more that goes here
}

// InitOptions are the server-specific options a client may pass on
// initialize.
type InitOptions struct {
	// MessageLimit caps the number of diagnostics published per document.
	// Negative means unlimited.
	MessageLimit *int `json:"messageLimit,omitempty"`
	// TopModules names the design roots, enabling lint rules that only
	// apply to top-level modules.
	TopModules []string `json:"topModules,omitempty"`
}

type ClientCapabilities struct {
	Window ClientWindowCapabilities `json:"window"`
}

type ClientWindowCapabilities struct {
	WorkDoneProgress bool `json:"workDoneProgress"`
}

type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type InitializedParams struct{}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   ServerInfo         `json:"serverInfo"`
}

type WorkDoneProgressOptions struct {
	WorkDoneProgress bool `json:"workDoneProgress"`
}

type DiagnosticOptions struct {
	WorkDoneProgressOptions
	Identifier            *string `json:"identifier,omitempty"`
	InterFileDependencies bool    `json:"interFileDependencies"`
	WorkspaceDiagnostics  bool    `json:"workspaceDiagnostics"`
}

type CodeActionProviderOptions struct {
	CodeActionKinds []CodeActionKind `json:"codeActionKinds"`
	ResolveProvider bool             `json:"resolveProvider"`
}

type ServerCapabilities struct {
	TextDocumentSync           int                       `json:"textDocumentSync"`
	CodeActionProvider         CodeActionProviderOptions `json:"codeActionProvider"`
	DocumentSymbolProvider     bool                      `json:"documentSymbolProvider"`
	DocumentHighlightProvider  bool                      `json:"documentHighlightProvider"`
	DocumentFormattingProvider bool                      `json:"documentFormattingProvider"`
	DocumentRangeFormatting    bool                      `json:"documentRangeFormattingProvider"`
	DiagnosticProvider         DiagnosticOptions         `json:"diagnosticProvider"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
