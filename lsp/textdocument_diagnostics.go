package lsp

import "encoding/json"

// The diagnostic's severity.
type DiagnosticSeverity uint32

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

type PublishDiagnosticsParams struct {
	URI         DocumentURI  `json:"uri"`
	Version     int32        `json:"version"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
	Data     *json.RawMessage   `json:"data,omitempty"`
}

type DocumentDiagnosticParams struct {
	WorkDoneProgressOptions
	TextDocument     TextDocumentIdentifier `json:"textDocument"`
	Identifier       *string                `json:"identifier,omitempty"`
	PreviousResultID *string                `json:"previousResultId,omitempty"`
}

type DocumentDiagnosticReportKind string

const (
	DocumentDiagnosticReportKind_Unchanged DocumentDiagnosticReportKind = "unchanged"
	DocumentDiagnosticReportKind_Full      DocumentDiagnosticReportKind = "full"
)

type FullDocumentDiagnosticReport struct {
	Kind DocumentDiagnosticReportKind `json:"kind"`
	// An optional result ID. If provided it will be sent on the next
	// diagnostic request for the same document.
	ResultID *string      `json:"resultId,omitempty"`
	Items    []Diagnostic `json:"items"`
}
