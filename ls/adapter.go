package ls

import (
	"fmt"

	"github.com/verilsp/verilsp/analysis"
	"github.com/verilsp/verilsp/format"
	"github.com/verilsp/verilsp/lsp"
	"github.com/verilsp/verilsp/syntax"
	"github.com/verilsp/verilsp/text"
	"github.com/verilsp/verilsp/token"
)

// violationToDiagnostic renders one lint finding. The message carries the
// rule's documentation URL and name, and advertises when a quick fix is
// attached.
func violationToDiagnostic(v analysis.Violation, st *text.Structure) lsp.Diagnostic {
	fixMsg := ""
	if len(v.Fixes) > 0 {
		fixMsg = " (fix available)"
	}
	severity := lsp.SeverityError
	if v.Severity == analysis.SeverityWarning {
		severity = lsp.SeverityWarning
	}
	return lsp.Diagnostic{
		Range:    st.RangeForSpan(v.Start, v.End),
		Severity: severity,
		Message:  fmt.Sprintf("%s %s[%s]%s", v.Message, analysis.RuleURL(v.Rule), v.Rule, fixMsg),
	}
}

func rejectedToDiagnostic(r syntax.RejectedToken, st *text.Structure) lsp.Diagnostic {
	message := r.Phase + " " + r.Severity
	if r.Token.IsEOF() {
		message += " (unexpected EOF)"
	} else {
		message += fmt.Sprintf(" at %q", r.Token.Text)
	}
	if r.Message != "" {
		message += " " + r.Message
	}
	severity := lsp.SeverityError
	if r.Severity == syntax.SeverityWarning {
		severity = lsp.SeverityWarning
	}
	return lsp.Diagnostic{
		Range:    st.RangeForToken(r.Token),
		Severity: severity,
		Message:  message,
	}
}

// CreateDiagnostics renders the diagnostics of the latest snapshot:
// syntax errors first, then the sorted lint findings. A non-negative
// messageLimit caps the total so a pathological buffer cannot flood the
// client; a negative limit means unlimited.
func CreateDiagnostics(tracker *BufferTracker, messageLimit int) []lsp.Diagnostic {
	current := tracker.Current()
	if current == nil {
		return nil
	}
	rejected := current.Tree.Rejected
	violations := current.Violations

	remaining := len(rejected) + len(violations)
	if messageLimit >= 0 && remaining > messageLimit {
		remaining = messageLimit
	}
	result := make([]lsp.Diagnostic, 0, remaining)
	for _, r := range rejected {
		if remaining <= 0 {
			break
		}
		remaining--
		result = append(result, rejectedToDiagnostic(r, current.Structure))
	}
	for _, v := range violations {
		if remaining <= 0 {
			break
		}
		remaining--
		result = append(result, violationToDiagnostic(v, current.Structure))
	}
	return result
}

// GenerateDiagnosticReport answers a pull-diagnostics request. Pull
// responses are never truncated; the client asked for them explicitly.
func GenerateDiagnosticReport(tracker *BufferTracker) lsp.FullDocumentDiagnosticReport {
	report := lsp.FullDocumentDiagnosticReport{
		Kind:  lsp.DocumentDiagnosticReportKind_Full,
		Items: []lsp.Diagnostic{},
	}
	if items := CreateDiagnostics(tracker, -1); items != nil {
		report.Items = items
	}
	return report
}

// fixToTextEdits converts an autofix's byte-span edits to protocol edits.
// All spans are relative to the same original contents.
func fixToTextEdits(fix analysis.AutoFix, st *text.Structure) []lsp.TextEdit {
	edits := make([]lsp.TextEdit, 0, len(fix.Edits))
	for _, e := range fix.Edits {
		edits = append(edits, lsp.TextEdit{
			Range:   st.RangeForSpan(e.Offset, e.Offset+e.Length),
			NewText: e.Text,
		})
	}
	return edits
}

// GenerateCodeActions returns quick fixes for the fixable violations
// whose range overlaps the requested range. Each violation's first fix is
// marked preferred; alternatives follow unpreferred.
func GenerateCodeActions(tracker *BufferTracker, p lsp.CodeActionParams) []lsp.CodeAction {
	current := tracker.Current()
	if current == nil {
		return nil
	}
	var result []lsp.CodeAction
	for _, v := range current.Violations {
		if len(v.Fixes) == 0 {
			continue
		}
		diagnostic := violationToDiagnostic(v, current.Structure)
		// the editor cursor is on a line or word; only offer edits
		// that are relevant there
		if !diagnostic.Range.Overlaps(p.Range) {
			continue
		}
		preferred := true
		for _, fix := range v.Fixes {
			result = append(result, lsp.CodeAction{
				Title:       fix.Description,
				Kind:        lsp.CodeActionKindQuickFix,
				Diagnostics: []lsp.Diagnostic{diagnostic},
				IsPreferred: preferred,
				Edit: &lsp.WorkspaceEdit{
					Changes: map[lsp.DocumentURI][]lsp.TextEdit{
						p.TextDocument.URI: fixToTextEdits(fix, current.Structure),
					},
				},
			})
			preferred = false
		}
	}
	return result
}

// CreateHighlightRanges highlights every occurrence of the identifier
// under the cursor. The match is purely textual; scoping would need a
// symbol table.
func CreateHighlightRanges(tracker *BufferTracker, p lsp.DocumentHighlightParams) []lsp.DocumentHighlight {
	current := tracker.Current()
	if current == nil {
		return nil
	}
	st := current.Structure
	cursor, ok := st.TokenAt(p.Position)
	if !ok || !cursor.IsIdentifier() {
		return nil
	}
	var result []lsp.DocumentHighlight
	for _, tok := range st.Tokens() {
		if tok.Kind != cursor.Kind || tok.Text != cursor.Text {
			continue
		}
		result = append(result, lsp.DocumentHighlight{
			Range: st.RangeForToken(tok),
			Kind:  lsp.HighlightKindText,
		})
	}
	return result
}

// FormatDocument reformats the whole buffer as a single edit replacing
// the full document. Formatting refuses to run on a buffer whose latest
// contents did not parse; rewriting text the parser does not understand
// risks destroying it.
func FormatDocument(tracker *BufferTracker) []lsp.TextEdit {
	current := tracker.Current()
	if current == nil || !current.ParsedSuccessfully() {
		return nil
	}
	st := current.Structure
	full := st.FullRange()
	return []lsp.TextEdit{{
		Range:   lsp.Range{Start: lsp.Position{}, End: full.End},
		NewText: format.Document(st),
	}}
}

// FormatRange reformats the lines touched by the requested range. A range
// ending at character 0 of a line excludes that line, so selecting up to
// a line start does not reformat the line under the cursor.
func FormatRange(tracker *BufferTracker, r lsp.Range) []lsp.TextEdit {
	current := tracker.Current()
	if current == nil || !current.ParsedSuccessfully() {
		return nil
	}
	lastLineInclude := 0
	if r.End.Character > 0 {
		lastLineInclude = 1
	}
	// 1-based half-open line interval
	first := int(r.Start.Line) + 1
	last := int(r.End.Line) + 1 + lastLineInclude
	if first >= last {
		return nil
	}
	return []lsp.TextEdit{{
		Range: lsp.Range{
			Start: lsp.Position{Line: int32(first - 1)},
			End:   lsp.Position{Line: int32(last - 1)},
		},
		NewText: format.Lines(current.Structure, first-1, last-1),
	}}
}

// CreateDocumentSymbols builds the outline from the last good snapshot.
// The synthetic file-level node is cut away; clients get the modules
// directly.
func CreateDocumentSymbols(tracker *BufferTracker) []lsp.DocumentSymbol {
	lastGood := tracker.LastGood()
	if lastGood == nil {
		return nil
	}
	st := lastGood.Structure
	var result []lsp.DocumentSymbol
	for _, mod := range syntax.Modules(lastGood.Tree.Root) {
		name := syntax.ModuleName(mod)
		if name == nil {
			continue
		}
		start, end, ok := syntax.Span(mod)
		if !ok {
			continue
		}
		sym := lsp.DocumentSymbol{
			Name:           name.Tok.Text,
			Detail:         "module",
			Kind:           lsp.SymbolKindModule,
			Range:          st.RangeForSpan(start, end),
			SelectionRange: st.RangeForToken(name.Tok),
			Children:       moduleChildSymbols(mod, st),
		}
		result = append(result, sym)
	}
	return result
}

func moduleChildSymbols(mod *syntax.Node, st *text.Structure) []lsp.DocumentSymbol {
	var children []lsp.DocumentSymbol
	for _, param := range syntax.ParamDeclarations(mod) {
		name := syntax.ParamDeclarationName(param)
		if name == nil {
			continue
		}
		children = append(children, lsp.DocumentSymbol{
			Name:           name.Tok.Text,
			Detail:         syntax.ParamDeclarationKeyword(param),
			Kind:           lsp.SymbolKindConstant,
			Range:          st.RangeForToken(name.Tok),
			SelectionRange: st.RangeForToken(name.Tok),
		})
	}
	items := syntax.ModuleItemList(mod)
	if items == nil {
		return children
	}
	for _, fn := range syntax.FindAll(items, syntax.KindFunctionDeclaration) {
		if tok, ok := syntax.RoutineName(fn); ok {
			children = append(children, routineSymbol(fn, tok, "function", lsp.SymbolKindFunction, st))
		}
	}
	for _, task := range syntax.FindAll(items, syntax.KindTaskDeclaration) {
		if tok, ok := syntax.RoutineName(task); ok {
			children = append(children, routineSymbol(task, tok, "task", lsp.SymbolKindMethod, st))
		}
	}
	for _, decl := range syntax.DataDeclarations(items) {
		typeName, ok := syntax.DataDeclarationTypeName(decl)
		if !ok || builtinTypes[typeName] {
			continue
		}
		for _, inst := range syntax.GateInstances(decl) {
			tok, ok := syntax.GateInstanceName(inst)
			if !ok {
				continue
			}
			children = append(children, lsp.DocumentSymbol{
				Name:           tok.Text,
				Detail:         typeName,
				Kind:           lsp.SymbolKindVariable,
				Range:          st.RangeForToken(tok),
				SelectionRange: st.RangeForToken(tok),
			})
		}
	}
	return children
}

func routineSymbol(n *syntax.Node, nameTok token.Token, detail string, kind lsp.SymbolKind, st *text.Structure) lsp.DocumentSymbol {
	rng := st.RangeForToken(nameTok)
	if start, end, ok := syntax.Span(n); ok {
		rng = st.RangeForSpan(start, end)
	}
	return lsp.DocumentSymbol{
		Name:           nameTok.Text,
		Detail:         detail,
		Kind:           kind,
		Range:          rng,
		SelectionRange: st.RangeForToken(nameTok),
	}
}
