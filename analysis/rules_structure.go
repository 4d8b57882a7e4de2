package analysis

import (
	"fmt"
	"strings"

	"github.com/verilsp/verilsp/syntax"
	"github.com/verilsp/verilsp/token"
)

// forbidDefparamRule flags defparam statements, which override parameters
// at a distance instead of at the instantiation site.
type forbidDefparamRule struct{}

func (*forbidDefparamRule) Name() string { return "forbid-defparam" }

func (r *forbidDefparamRule) Check(in *Input) []Violation {
	var out []Violation
	for _, tok := range in.Structure.Tokens() {
		if tok.Kind != token.Keyword || tok.Text != "defparam" {
			continue
		}
		out = append(out, Violation{
			Rule:     r.Name(),
			Message:  "Do not use defparam; configure instances with parameter ports",
			Severity: SeverityError,
			Start:    tok.Offset,
			End:      tok.End(),
		})
	}
	return out
}

// caseMissingDefaultRule flags case statements without a default item.
type caseMissingDefaultRule struct{}

func (*caseMissingDefaultRule) Name() string { return "case-missing-default" }

func isCaseKeyword(t token.Token) bool {
	if t.Kind != token.Keyword {
		return false
	}
	return t.Text == "case" || t.Text == "casex" || t.Text == "casez"
}

func (r *caseMissingDefaultRule) Check(in *Input) []Violation {
	toks := in.Structure.Tokens()
	var out []Violation
	for i, tok := range toks {
		if !isCaseKeyword(tok) {
			continue
		}
		depth := 1
		hasDefault := false
		endcase := token.Token{}
		for j := i + 1; j < len(toks); j++ {
			t := toks[j]
			if t.Kind != token.Keyword {
				continue
			}
			switch {
			case isCaseKeyword(t):
				depth++
			case t.Text == "endcase":
				depth--
			case t.Text == "default" && depth == 1:
				hasDefault = true
			}
			if depth == 0 {
				endcase = t
				break
			}
		}
		if hasDefault || depth != 0 {
			// unterminated case statements are the parser's problem
			continue
		}
		out = append(out, Violation{
			Rule:     r.Name(),
			Message:  "Explicitly define a default case for every case statement",
			Severity: SeverityWarning,
			Start:    tok.Offset,
			End:      tok.End(),
			Fixes: []AutoFix{
				{
					Description: "Insert 'default: ;' case",
					Edits:       []ReplacementEdit{defaultCaseInsertion(in, endcase, "default: ;")},
				},
				{
					Description: "Insert 'default: begin end' case",
					Edits:       []ReplacementEdit{defaultCaseInsertion(in, endcase, "default: begin end")},
				},
			},
		})
	}
	return out
}

// floatingInputPortRule flags input ports of top-level modules that are
// never referenced in the module body. It only runs when the set of top
// modules has been provided, since a floating input on a non-top module
// is a legitimate interface choice.
type floatingInputPortRule struct{}

func (*floatingInputPortRule) Name() string { return "floating-input-port" }

func (r *floatingInputPortRule) Check(in *Input) []Violation {
	if len(in.TopModules) == 0 {
		return nil
	}
	var out []Violation
	for _, mod := range syntax.Modules(in.Tree.Root) {
		name := syntax.ModuleName(mod)
		if name == nil || !in.TopModules[name.Tok.Text] {
			continue
		}
		list := syntax.ModulePortDeclarationList(mod)
		if list == nil {
			continue
		}
		modStart, modEnd, ok := syntax.Span(mod)
		if !ok {
			continue
		}
		for _, decl := range syntax.PortDeclarations(list) {
			dir := syntax.PortDeclarationDirection(decl)
			if dir != nil && dir.Tok.Text != "input" {
				continue
			}
			id := syntax.PortDeclarationIdentifier(decl)
			if id == nil {
				continue
			}
			if identifierUsedElsewhere(in, id.Tok, modStart, modEnd) {
				continue
			}
			out = append(out, Violation{
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Top-level input port %q is never used", id.Tok.Text),
				Severity: SeverityWarning,
				Start:    id.Tok.Offset,
				End:      id.Tok.End(),
			})
		}
	}
	return out
}

// identifierUsedElsewhere reports whether the identifier occurs in the
// byte span beyond its declaring token.
func identifierUsedElsewhere(in *Input, decl token.Token, start, end int) bool {
	for _, t := range in.Structure.Tokens() {
		if t.Offset < start || t.End() > end {
			continue
		}
		if t.Kind == token.Identifier && t.Text == decl.Text && t.Offset != decl.Offset {
			return true
		}
	}
	return false
}

// defaultCaseInsertion builds an edit that inserts stmt on its own line
// directly above the endcase keyword, reusing endcase's indentation.
func defaultCaseInsertion(in *Input, endcase token.Token, stmt string) ReplacementEdit {
	contents := in.Structure.Contents()
	lineStart := strings.LastIndexByte(contents[:endcase.Offset], '\n') + 1
	indent := contents[lineStart:endcase.Offset]
	if strings.TrimLeft(indent, " \t") != "" {
		indent = ""
	}
	return ReplacementEdit{
		Offset: endcase.Offset,
		Text:   stmt + "\n" + indent,
	}
}
