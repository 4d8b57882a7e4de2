package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/verilsp/verilsp/syntax"
)

// namingConventionRule checks that module names use lower_snake_case.
type namingConventionRule struct{}

var lowerSnakeCase = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func (*namingConventionRule) Name() string { return "naming-convention" }

func (r *namingConventionRule) Check(in *Input) []Violation {
	var out []Violation
	for _, mod := range syntax.Modules(in.Tree.Root) {
		name := syntax.ModuleName(mod)
		if name == nil {
			continue
		}
		text := name.Tok.Text
		if strings.HasPrefix(text, `\`) {
			// escaped identifiers are exempt
			continue
		}
		if lowerSnakeCase.MatchString(text) {
			continue
		}
		out = append(out, Violation{
			Rule:     r.Name(),
			Message:  fmt.Sprintf("Module name %q does not match lower_snake_case", text),
			Severity: SeverityWarning,
			Start:    name.Tok.Offset,
			End:      name.Tok.End(),
		})
	}
	return out
}

// noTabsRule flags tab characters used anywhere in the source.
type noTabsRule struct{}

func (*noTabsRule) Name() string { return "no-tabs" }

func (r *noTabsRule) Check(in *Input) []Violation {
	var out []Violation
	contents := in.Structure.Contents()
	for i := 0; i < len(contents); {
		if contents[i] != '\t' {
			i++
			continue
		}
		j := i
		for j < len(contents) && contents[j] == '\t' {
			j++
		}
		out = append(out, Violation{
			Rule:     r.Name(),
			Message:  "Use spaces, not tabs",
			Severity: SeverityWarning,
			Start:    i,
			End:      j,
			Fixes: []AutoFix{{
				Description: "Replace tabs with spaces",
				Edits: []ReplacementEdit{{
					Offset: i,
					Length: j - i,
					Text:   strings.Repeat("  ", j-i),
				}},
			}},
		})
		i = j
	}
	return out
}

// noTrailingSpacesRule flags whitespace before a line break.
type noTrailingSpacesRule struct{}

func (*noTrailingSpacesRule) Name() string { return "no-trailing-spaces" }

func (r *noTrailingSpacesRule) Check(in *Input) []Violation {
	var out []Violation
	contents := in.Structure.Contents()
	for line := 0; line < in.Structure.LineCount(); line++ {
		start, end := in.Structure.LineSpan(line, line+1)
		text := strings.TrimSuffix(contents[start:end], "\n")
		trimmed := strings.TrimRight(text, " \t")
		if len(trimmed) == len(text) {
			continue
		}
		out = append(out, Violation{
			Rule:     r.Name(),
			Message:  "Remove trailing spaces",
			Severity: SeverityWarning,
			Start:    start + len(trimmed),
			End:      start + len(text),
			Fixes: []AutoFix{{
				Description: "Remove trailing spaces",
				Edits: []ReplacementEdit{{
					Offset: start + len(trimmed),
					Length: len(text) - len(trimmed),
				}},
			}},
		})
	}
	return out
}

// lineLengthRule flags lines longer than the configured limit, counted in
// characters rather than bytes.
type lineLengthRule struct {
	limit int
}

func (*lineLengthRule) Name() string { return "line-length" }

func (r *lineLengthRule) Check(in *Input) []Violation {
	limit := r.limit
	if limit <= 0 {
		limit = defaultLineLimit
	}
	var out []Violation
	contents := in.Structure.Contents()
	for line := 0; line < in.Structure.LineCount(); line++ {
		start, end := in.Structure.LineSpan(line, line+1)
		text := strings.TrimSuffix(contents[start:end], "\n")
		count := utf8.RuneCountInString(text)
		if count <= limit {
			continue
		}
		// span only the excess part of the line
		excess := start
		for n, i := 0, 0; i < len(text); n++ {
			if n == limit {
				excess = start + i
				break
			}
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
		}
		out = append(out, Violation{
			Rule:     r.Name(),
			Message:  fmt.Sprintf("Line length %d exceeds the limit of %d", count, limit),
			Severity: SeverityWarning,
			Start:    excess,
			End:      start + len(text),
		})
	}
	return out
}
