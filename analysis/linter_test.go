package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeString(t *testing.T, src string, cfg Config) *Snapshot {
	t.Helper()
	return Analyze(src, 1, NewLinter(cfg))
}

func violationsFor(snap *Snapshot, rule string) []Violation {
	var out []Violation
	for _, v := range snap.Violations {
		if v.Rule == rule {
			out = append(out, v)
		}
	}
	return out
}

func TestNamingConvention(t *testing.T) {
	src := "module BadName;\nendmodule\nmodule good_name;\nendmodule\n"
	snap := analyzeString(t, src, DefaultConfig())

	vs := violationsFor(snap, "naming-convention")
	require.Len(t, vs, 1)
	assert.Equal(t, "BadName", src[vs[0].Start:vs[0].End])
	assert.Contains(t, vs[0].Message, "lower_snake_case")
	assert.Empty(t, vs[0].Fixes)
}

func TestNoTabs(t *testing.T) {
	src := "module m;\n\t\twire x;\nendmodule\n"
	snap := analyzeString(t, src, DefaultConfig())

	vs := violationsFor(snap, "no-tabs")
	require.Len(t, vs, 1)
	assert.Equal(t, "\t\t", src[vs[0].Start:vs[0].End])

	require.Len(t, vs[0].Fixes, 1)
	fix := vs[0].Fixes[0]
	require.Len(t, fix.Edits, 1)
	assert.Equal(t, vs[0].Start, fix.Edits[0].Offset)
	assert.Equal(t, 2, fix.Edits[0].Length)
	assert.Equal(t, "    ", fix.Edits[0].Text)
}

func TestNoTrailingSpaces(t *testing.T) {
	src := "module m;   \nendmodule\n"
	snap := analyzeString(t, src, DefaultConfig())

	vs := violationsFor(snap, "no-trailing-spaces")
	require.Len(t, vs, 1)
	assert.Equal(t, "   ", src[vs[0].Start:vs[0].End])

	require.Len(t, vs[0].Fixes, 1)
	edit := vs[0].Fixes[0].Edits[0]
	assert.Equal(t, 3, edit.Length)
	assert.Empty(t, edit.Text)
}

func TestLineLength(t *testing.T) {
	long := "// "
	for len(long) < 30 {
		long += "x"
	}
	src := "module m;\n" + long + "\nendmodule\n"
	snap := analyzeString(t, src, Config{LineLimit: 20})

	vs := violationsFor(snap, "line-length")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "exceeds the limit of 20")
	// the span covers only the excess tail of the line
	assert.Equal(t, long[20:], src[vs[0].Start:vs[0].End])
}

func TestForbidDefparam(t *testing.T) {
	src := "module m;\n  defparam u1.WIDTH = 8;\nendmodule\n"
	snap := analyzeString(t, src, DefaultConfig())

	vs := violationsFor(snap, "forbid-defparam")
	require.Len(t, vs, 1)
	assert.Equal(t, "defparam", src[vs[0].Start:vs[0].End])
	assert.Equal(t, SeverityError, vs[0].Severity)
}

func TestCaseMissingDefault(t *testing.T) {
	src := `module m;
  always @(x)
    case (x)
      1'b0: y = 0;
    endcase
endmodule
`
	snap := analyzeString(t, src, DefaultConfig())

	vs := violationsFor(snap, "case-missing-default")
	require.Len(t, vs, 1)
	assert.Equal(t, "case", src[vs[0].Start:vs[0].End])
	require.Len(t, vs[0].Fixes, 2)

	// applying the first fix yields a case with an empty default
	edit := vs[0].Fixes[0].Edits[0]
	fixed := src[:edit.Offset] + edit.Text + src[edit.Offset+edit.Length:]
	assert.Contains(t, fixed, "default: ;\n    endcase")

	refixed := analyzeString(t, fixed, DefaultConfig())
	assert.Empty(t, violationsFor(refixed, "case-missing-default"))
}

func TestCaseWithDefaultIsClean(t *testing.T) {
	src := `module m;
  always @(x)
    case (x)
      1'b0: y = 0;
      default: y = 1;
    endcase
endmodule
`
	snap := analyzeString(t, src, DefaultConfig())
	assert.Empty(t, violationsFor(snap, "case-missing-default"))
}

func TestNestedCaseFlagsInnerOnly(t *testing.T) {
	src := `module m;
  always @(x)
    case (x)
      1'b0:
        case (z)
          1'b1: y = 1;
        endcase
      default: y = 0;
    endcase
endmodule
`
	snap := analyzeString(t, src, DefaultConfig())

	vs := violationsFor(snap, "case-missing-default")
	require.Len(t, vs, 1)
	// the inner case at the deeper offset is the one flagged
	assert.Greater(t, vs[0].Start, len("module m;"))
}

func TestFloatingInputPort(t *testing.T) {
	src := `module top(input clk, input unused_in, output reg q);
  always @(posedge clk) q <= 1;
endmodule
`
	cfg := DefaultConfig()
	cfg.TopModules = []string{"top"}
	snap := analyzeString(t, src, cfg)

	vs := violationsFor(snap, "floating-input-port")
	require.Len(t, vs, 1)
	assert.Equal(t, "unused_in", src[vs[0].Start:vs[0].End])
}

func TestFloatingInputPortOffWithoutTopModules(t *testing.T) {
	src := "module top(input unused_in);\nendmodule\n"
	snap := analyzeString(t, src, DefaultConfig())
	assert.Empty(t, violationsFor(snap, "floating-input-port"))
}

func TestViolationsSorted(t *testing.T) {
	src := "module Bad;\n\twire x;  \nendmodule\n"
	snap := analyzeString(t, src, DefaultConfig())
	require.GreaterOrEqual(t, len(snap.Violations), 3)
	for i := 1; i < len(snap.Violations); i++ {
		assert.LessOrEqual(t, snap.Violations[i-1].Start, snap.Violations[i].Start)
	}
}

func TestDisabledRules(t *testing.T) {
	src := "module m;\n\twire x;\nendmodule\n"
	snap := analyzeString(t, src, Config{Disable: []string{"no-tabs"}, LineLimit: 100})
	assert.Empty(t, violationsFor(snap, "no-tabs"))
}

func TestLintTolerateBrokenInput(t *testing.T) {
	snap := analyzeString(t, "module (;\n\twire\n", DefaultConfig())
	assert.False(t, snap.ParsedSuccessfully())
	// style rules still report on the broken buffer
	assert.NotEmpty(t, violationsFor(snap, "no-tabs"))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("disable = [\"no-tabs\"]\nline_limit = 80\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"no-tabs"}, cfg.Disable)
	assert.Equal(t, 80, cfg.LineLimit)
}

func TestFindConfigWalksUp(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "rtl", "core")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("line_limit = 120\n"), 0o644))

	cfg := FindConfig(sub)
	assert.Equal(t, 120, cfg.LineLimit)
}

func TestFindConfigDefaults(t *testing.T) {
	cfg := FindConfig(t.TempDir())
	assert.Equal(t, defaultLineLimit, cfg.LineLimit)
	assert.Empty(t, cfg.Disable)
}
