// Package analysis runs the lint rules over one analyzed buffer and
// produces the snapshot the language server serves requests from.
package analysis

import "sort"

// ReplacementEdit is one splice of an autofix: replace the byte span
// [Offset, Offset+Length) of the analyzed contents with Text. All edits of
// a fix are expressed against the same original contents.
type ReplacementEdit struct {
	Offset int
	Length int
	Text   string
}

// AutoFix is one self-contained way to resolve a violation.
type AutoFix struct {
	Description string
	Edits       []ReplacementEdit
}

// Violation is one lint finding. Start and End delimit the offending byte
// span in the analyzed contents.
type Violation struct {
	Rule     string
	Message  string
	Severity Severity
	Start    int
	End      int
	Fixes    []AutoFix
}

// Severity of a violation, mapped onto protocol severities by the server.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// RuleURL returns the documentation URL appended to rendered violation
// messages.
func RuleURL(rule string) string {
	return "https://verilsp.dev/rules/" + rule
}

// SortViolations orders violations by their position in the buffer, with
// the rule name as tie break so output is deterministic.
func SortViolations(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].Start != violations[j].Start {
			return violations[i].Start < violations[j].Start
		}
		return violations[i].Rule < violations[j].Rule
	})
}
