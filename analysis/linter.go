package analysis

import (
	"github.com/verilsp/verilsp/syntax"
	"github.com/verilsp/verilsp/text"
)

// Input is what rules inspect: the positional view of the contents and
// the (possibly partially recovered) syntax tree.
type Input struct {
	Structure *text.Structure
	Tree      *syntax.Tree
	// TopModules names the modules considered design roots. Rules that
	// only apply to top-level modules stay silent when it is empty.
	TopModules map[string]bool
}

// Rule is one lint check.
type Rule interface {
	// Name is the stable rule identifier used in configuration and in
	// rendered messages.
	Name() string
	// Check returns the rule's findings for the input. Rules must
	// tolerate trees recovered from broken input.
	Check(in *Input) []Violation
}

// Linter runs the enabled rules over a buffer.
type Linter struct {
	rules      []Rule
	topModules map[string]bool
}

// NewLinter builds a linter from the configuration: all known rules minus
// the disabled ones.
func NewLinter(cfg Config) *Linter {
	disabled := make(map[string]bool, len(cfg.Disable))
	for _, name := range cfg.Disable {
		disabled[name] = true
	}
	all := []Rule{
		&namingConventionRule{},
		&noTabsRule{},
		&noTrailingSpacesRule{},
		&lineLengthRule{limit: cfg.LineLimit},
		&forbidDefparamRule{},
		&caseMissingDefaultRule{},
		&floatingInputPortRule{},
	}
	l := &Linter{}
	if len(cfg.TopModules) > 0 {
		l.topModules = make(map[string]bool, len(cfg.TopModules))
		for _, name := range cfg.TopModules {
			l.topModules[name] = true
		}
	}
	for _, r := range all {
		if !disabled[r.Name()] {
			l.rules = append(l.rules, r)
		}
	}
	return l
}

// Rules returns the enabled rules.
func (l *Linter) Rules() []Rule { return l.rules }

// Lint runs every enabled rule and returns the findings sorted by
// position.
func (l *Linter) Lint(in *Input) []Violation {
	if in.TopModules == nil {
		in.TopModules = l.topModules
	}
	var out []Violation
	for _, r := range l.rules {
		out = append(out, r.Check(in)...)
	}
	SortViolations(out)
	return out
}
