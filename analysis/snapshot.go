package analysis

import (
	"github.com/verilsp/verilsp/syntax"
	"github.com/verilsp/verilsp/text"
	"github.com/verilsp/verilsp/token"
)

// Snapshot is the complete analysis result for one version of a buffer:
// lexed, parsed and linted. Snapshots are immutable once built, so request
// handlers can read them without coordination.
type Snapshot struct {
	Version    int32
	Structure  *text.Structure
	Tree       *syntax.Tree
	Violations []Violation
}

// Analyze lexes, parses and lints contents. It always produces a
// snapshot; broken input shows up as rejected tokens on the tree rather
// than as an error.
func Analyze(contents string, version int32, linter *Linter) *Snapshot {
	toks := token.Lex(contents)
	structure := text.NewStructure(contents, toks)
	tree := syntax.Parse(toks)
	return &Snapshot{
		Version:    version,
		Structure:  structure,
		Tree:       tree,
		Violations: linter.Lint(&Input{Structure: structure, Tree: tree}),
	}
}

// ParsedSuccessfully reports whether the snapshot's tree was built
// without rejecting any token.
func (s *Snapshot) ParsedSuccessfully() bool {
	return s.Tree.ParseOK()
}
