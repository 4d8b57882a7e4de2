package lsp

type DocumentSymbolParams struct {
	WorkDoneProgressOptions
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// A symbol kind.
type SymbolKind uint32

const (
	SymbolKindFile        SymbolKind = 1
	SymbolKindModule      SymbolKind = 2
	SymbolKindNamespace   SymbolKind = 3
	SymbolKindPackage     SymbolKind = 4
	SymbolKindClass       SymbolKind = 5
	SymbolKindMethod      SymbolKind = 6
	SymbolKindProperty    SymbolKind = 7
	SymbolKindField       SymbolKind = 8
	SymbolKindConstructor SymbolKind = 9
	SymbolKindEnum        SymbolKind = 10
	SymbolKindInterface   SymbolKind = 11
	SymbolKindFunction    SymbolKind = 12
	SymbolKindVariable    SymbolKind = 13
	SymbolKindConstant    SymbolKind = 14
	SymbolKindKey         SymbolKind = 20
	SymbolKindOperator    SymbolKind = 25
)

type DocumentSymbol struct {
	Name   string     `json:"name"`
	Detail string     `json:"detail,omitempty"`
	Kind   SymbolKind `json:"kind"`
	// The range enclosing this symbol, including leading/trailing
	// whitespace-adjacent constructs like comments.
	Range Range `json:"range"`
	// The range that should be selected when this symbol is picked,
	// e.g. the name of a module. Must be contained by Range.
	SelectionRange Range            `json:"selectionRange"`
	Children       []DocumentSymbol `json:"children,omitempty"`
}

type DocumentHighlightParams struct {
	TextDocumentPositionParams
}

// A document highlight kind.
type DocumentHighlightKind uint32

const (
	HighlightKindText  DocumentHighlightKind = 1
	HighlightKindRead  DocumentHighlightKind = 2
	HighlightKindWrite DocumentHighlightKind = 3
)

type DocumentHighlight struct {
	Range Range                 `json:"range"`
	Kind  DocumentHighlightKind `json:"kind,omitempty"`
}
