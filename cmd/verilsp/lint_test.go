package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verilsp/verilsp/analysis"
)

func plainColors(t *testing.T) {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeSource(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestRenderFindings(t *testing.T) {
	plainColors(t)
	src := "module Bad;\n\tdefparam u.p = 1;\nendmodule\n"
	snap := analysis.Analyze(src, 0, analysis.NewLinter(analysis.DefaultConfig()))

	var buf bytes.Buffer
	n := renderFindings(&buf, "bad.v", snap)
	assert.Equal(t, 3, n)
	autogold.Expect(`bad.v:1:8: Module name "Bad" does not match lower_snake_case [naming-convention]
bad.v:2:1: Use spaces, not tabs [no-tabs]
bad.v:2:2: Do not use defparam; configure instances with parameter ports [forbid-defparam]
`).Equal(t, buf.String())
}

func TestRenderFindingsSyntaxError(t *testing.T) {
	plainColors(t)
	src := "module m;\n`\nendmodule\n"
	snap := analysis.Analyze(src, 0, analysis.NewLinter(analysis.DefaultConfig()))

	var buf bytes.Buffer
	n := renderFindings(&buf, "top.v", snap)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "top.v:2:1:")
	assert.Contains(t, buf.String(), "lex error")
}

func TestLintCommandReportsProblems(t *testing.T) {
	plainColors(t)
	path := writeSource(t, "bad.v", "module m;\n  defparam u.p = 1;\nendmodule\n")

	out, err := runCmd(t, "lint", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 1 problems")
	assert.Contains(t, out, "[forbid-defparam]")
}

func TestLintCommandCleanFile(t *testing.T) {
	plainColors(t)
	path := writeSource(t, "ok.v", "module counter;\nendmodule\n")

	out, err := runCmd(t, "lint", path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLintCommandTopModuleFlag(t *testing.T) {
	plainColors(t)
	path := writeSource(t, "top.v", "module top(input clk);\nendmodule\n")

	out, err := runCmd(t, "lint", "--top-module", "top", path)
	require.Error(t, err)
	assert.Contains(t, out, "never used")
	assert.Contains(t, out, "[floating-input-port]")
}
