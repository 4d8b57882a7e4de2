package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/verilsp/verilsp/analysis"
	"github.com/verilsp/verilsp/file"
	"github.com/verilsp/verilsp/syntax"
)

var (
	pathStyle = color.New(color.Bold)
	errStyle  = color.New(color.FgRed)
	warnStyle = color.New(color.FgYellow)
	ruleStyle = color.New(color.FgCyan)
)

func newLintCmd() *cobra.Command {
	var topModules []string
	cmd := &cobra.Command{
		Use:   "lint <file>...",
		Short: "Check Verilog sources against the lint rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total := 0
			for _, path := range args {
				if file.KindForPath(path) == file.UnknownKind {
					return fmt.Errorf("%s: not a Verilog source file", path)
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				cfg := analysis.FindConfig(filepath.Dir(path))
				cfg.TopModules = append(cfg.TopModules, topModules...)
				snap := analysis.Analyze(string(data), 0, analysis.NewLinter(cfg))
				total += renderFindings(cmd.OutOrStdout(), path, snap)
			}
			if total > 0 {
				return fmt.Errorf("found %d problems", total)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&topModules, "top-module", nil,
		"treat the named module as a design root (repeatable)")
	return cmd
}

// renderFindings prints the syntax errors and lint violations of one file
// in file:line:col order and returns how many were printed.
func renderFindings(w io.Writer, path string, snap *analysis.Snapshot) int {
	st := snap.Structure
	count := 0
	for _, r := range snap.Tree.Rejected {
		pos := st.LineColAt(r.Token.Offset)
		what := r.Phase + " " + r.Severity
		if r.Token.IsEOF() {
			what += " (unexpected EOF)"
		} else {
			what += fmt.Sprintf(" at %q", r.Token.Text)
		}
		if r.Message != "" {
			what += " " + r.Message
		}
		style := errStyle
		if r.Severity == syntax.SeverityWarning {
			style = warnStyle
		}
		fmt.Fprintf(w, "%s %s\n",
			pathStyle.Sprintf("%s:%d:%d:", path, pos.Line+1, pos.Character+1),
			style.Sprint(what))
		count++
	}
	for _, v := range snap.Violations {
		pos := st.LineColAt(v.Start)
		style := errStyle
		if v.Severity == analysis.SeverityWarning {
			style = warnStyle
		}
		fmt.Fprintf(w, "%s %s %s\n",
			pathStyle.Sprintf("%s:%d:%d:", path, pos.Line+1, pos.Character+1),
			style.Sprint(v.Message),
			ruleStyle.Sprintf("[%s]", v.Rule))
		count++
	}
	return count
}
