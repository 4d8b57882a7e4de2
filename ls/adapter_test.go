package ls

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verilsp/verilsp/lsp"
)

func testURI(t *testing.T) lsp.DocumentURI {
	t.Helper()
	return lsp.DocumentURI("file://" + filepath.Join(t.TempDir(), "test.v"))
}

func openBuffer(t *testing.T, src string) (*TrackerContainer, lsp.DocumentURI) {
	t.Helper()
	c := NewTrackerContainer()
	uri := testURI(t)
	c.Update(uri, src, 1)
	return c, uri
}

func TestCreateDiagnosticsNilTracker(t *testing.T) {
	assert.Empty(t, CreateDiagnostics(nil, 100))
}

func TestCreateDiagnosticsSyntaxFirst(t *testing.T) {
	// a buffer with both a syntax error and lint findings
	src := "module BadName;\n\twire w\nendmodule\n"
	c, uri := openBuffer(t, src)

	diags := CreateDiagnostics(c.Get(uri), 100)
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "parse error")

	var lintSeen bool
	for i, d := range diags {
		if strings.Contains(d.Message, "[no-tabs]") {
			lintSeen = true
			// all syntax diagnostics precede lint diagnostics
			for _, earlier := range diags[:i] {
				if strings.Contains(earlier.Message, "verilsp.dev") {
					continue
				}
				assert.Contains(t, earlier.Message, "error")
			}
		}
	}
	assert.True(t, lintSeen)
}

func TestDiagnosticMessageCarriesRuleAndURL(t *testing.T) {
	c, uri := openBuffer(t, "module m;\n\twire x;\nendmodule\n")

	diags := CreateDiagnostics(c.Get(uri), 100)
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if strings.Contains(d.Message, "[no-tabs]") {
			found = true
			assert.Contains(t, d.Message, "https://verilsp.dev/rules/no-tabs[no-tabs]")
			assert.Contains(t, d.Message, "(fix available)")
			assert.Equal(t, lsp.SeverityWarning, d.Severity)
		}
	}
	assert.True(t, found)
}

func TestUnexpectedEOFDiagnostic(t *testing.T) {
	c, uri := openBuffer(t, "module m(input a);\n")

	diags := CreateDiagnostics(c.Get(uri), 100)
	require.NotEmpty(t, diags)
	var eofSeen bool
	for _, d := range diags {
		if strings.Contains(d.Message, "(unexpected EOF)") {
			eofSeen = true
			assert.Contains(t, d.Message, "parse error")
		}
	}
	assert.True(t, eofSeen)
}

func TestMessageLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("module m;\n")
	for i := 0; i < 50; i++ {
		sb.WriteString("\twire w" + string(rune('a'+i%26)) + ";  \n")
	}
	sb.WriteString("endmodule\n")
	c, uri := openBuffer(t, sb.String())

	assert.Len(t, CreateDiagnostics(c.Get(uri), 10), 10)
	assert.Len(t, CreateDiagnostics(c.Get(uri), 0), 0)
	// negative means unlimited
	assert.Greater(t, len(CreateDiagnostics(c.Get(uri), -1)), 50)
}

func TestGenerateDiagnosticReportUnlimited(t *testing.T) {
	c, uri := openBuffer(t, "module m;\n\twire a;\n\twire b;\nendmodule\n")

	report := GenerateDiagnosticReport(c.Get(uri))
	assert.Equal(t, lsp.DocumentDiagnosticReportKind_Full, report.Kind)
	assert.Len(t, report.Items, 2)
}

func TestCodeActionsFilterByRange(t *testing.T) {
	src := "module m;\n\twire x;\nendmodule\n"
	c, uri := openBuffer(t, src)

	cursorOnTab := lsp.Range{
		Start: lsp.Position{Line: 1, Character: 0},
		End:   lsp.Position{Line: 1, Character: 0},
	}
	actions := GenerateCodeActions(c.Get(uri), lsp.CodeActionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
		Range:        cursorOnTab,
	})
	require.Len(t, actions, 1)
	action := actions[0]
	assert.Equal(t, "Replace tabs with spaces", action.Title)
	assert.Equal(t, lsp.CodeActionKindQuickFix, action.Kind)
	assert.True(t, action.IsPreferred)
	require.NotNil(t, action.Edit)
	edits := action.Edit.Changes[uri]
	require.Len(t, edits, 1)
	assert.Equal(t, "  ", edits[0].NewText)

	// a cursor elsewhere gets nothing
	elsewhere := lsp.Range{
		Start: lsp.Position{Line: 2, Character: 0},
		End:   lsp.Position{Line: 2, Character: 0},
	}
	assert.Empty(t, GenerateCodeActions(c.Get(uri), lsp.CodeActionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
		Range:        elsewhere,
	}))
}

func TestCodeActionsOnlyFirstFixPreferred(t *testing.T) {
	src := `module m;
  always @(x)
    case (x)
      1'b0: y = 0;
    endcase
endmodule
`
	c, uri := openBuffer(t, src)

	wholeDoc := lsp.Range{End: lsp.Position{Line: 10}}
	actions := GenerateCodeActions(c.Get(uri), lsp.CodeActionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
		Range:        wholeDoc,
	})
	require.Len(t, actions, 2)
	assert.True(t, actions[0].IsPreferred)
	assert.False(t, actions[1].IsPreferred)
}

func TestHighlightsMatchTokenText(t *testing.T) {
	src := "module m(input clk);\nalways @(posedge clk) q <= clk;\nendmodule\n"
	c, uri := openBuffer(t, src)

	hs := CreateHighlightRanges(c.Get(uri), lsp.DocumentHighlightParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			Position: lsp.Position{Line: 0, Character: 15},
		},
	})
	assert.Len(t, hs, 3)
}

func TestHighlightsEmptyOffIdentifier(t *testing.T) {
	src := "module m;\nendmodule\n"
	c, uri := openBuffer(t, src)

	// cursor on the module keyword
	hs := CreateHighlightRanges(c.Get(uri), lsp.DocumentHighlightParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			Position: lsp.Position{Line: 0, Character: 2},
		},
	})
	assert.Empty(t, hs)
}

func TestFormatRefusesBrokenBuffer(t *testing.T) {
	c, uri := openBuffer(t, "module m(\n")
	assert.Empty(t, FormatDocument(c.Get(uri)))
	assert.Empty(t, FormatRange(c.Get(uri), lsp.Range{End: lsp.Position{Line: 1}}))
}

func TestFormatDocumentSingleEdit(t *testing.T) {
	src := "module m;\nwire x;\nendmodule\n"
	c, uri := openBuffer(t, src)

	edits := FormatDocument(c.Get(uri))
	require.Len(t, edits, 1)
	assert.Equal(t, lsp.Position{}, edits[0].Range.Start)
	assert.Equal(t, "module m;\n  wire x;\nendmodule\n", edits[0].NewText)
}

func TestFormatRangeLineRules(t *testing.T) {
	src := "module m;\nwire a;\nwire b;\nendmodule\n"
	c, uri := openBuffer(t, src)

	// selection ending at character 0 of line 2 excludes line 2
	edits := FormatRange(c.Get(uri), lsp.Range{
		Start: lsp.Position{Line: 1, Character: 0},
		End:   lsp.Position{Line: 2, Character: 0},
	})
	require.Len(t, edits, 1)
	assert.Equal(t, int32(1), edits[0].Range.Start.Line)
	assert.Equal(t, int32(2), edits[0].Range.End.Line)
	assert.Equal(t, "  wire a;\n", edits[0].NewText)

	// a selection reaching into line 2 includes it
	edits = FormatRange(c.Get(uri), lsp.Range{
		Start: lsp.Position{Line: 1, Character: 0},
		End:   lsp.Position{Line: 2, Character: 3},
	})
	require.Len(t, edits, 1)
	assert.Equal(t, "  wire a;\n  wire b;\n", edits[0].NewText)
}

func TestDocumentSymbolsFromLastGood(t *testing.T) {
	good := `module top;
  parameter WIDTH = 8;
  sub_mod u1 ();
  function f; f = 1; endfunction
endmodule
`
	c := NewTrackerContainer()
	uri := testURI(t)
	c.Update(uri, good, 1)

	syms := CreateDocumentSymbols(c.Get(uri))
	require.Len(t, syms, 1)
	assert.Equal(t, "top", syms[0].Name)
	assert.Equal(t, lsp.SymbolKindModule, syms[0].Kind)

	names := make(map[string]lsp.SymbolKind)
	for _, child := range syms[0].Children {
		names[child.Name] = child.Kind
	}
	assert.Equal(t, lsp.SymbolKindConstant, names["WIDTH"])
	assert.Equal(t, lsp.SymbolKindVariable, names["u1"])
	assert.Equal(t, lsp.SymbolKindFunction, names["f"])

	// breaking the buffer keeps serving the old outline
	c.Update(uri, "module top(\n", 2)
	stale := CreateDocumentSymbols(c.Get(uri))
	require.Len(t, stale, 1)
	assert.Equal(t, "top", stale[0].Name)
}

func TestDocumentSymbolsNilWithoutGoodParse(t *testing.T) {
	c, uri := openBuffer(t, "module (\n")
	assert.Empty(t, CreateDocumentSymbols(c.Get(uri)))
}

func TestGetModulePortsANSI(t *testing.T) {
	src := "module adder(input [3:0] a, input [3:0] b, output [4:0] sum);\nendmodule\n"
	c, uri := openBuffer(t, src)

	mods := GetModulePorts(c.Get(uri))
	require.Len(t, mods, 1)
	assert.Equal(t, "adder", mods[0].Name)
	assert.Equal(t, []lsp.PortDescriptor{
		{Name: "a", Direction: "input", Width: "[3:0]"},
		{Name: "b", Direction: "input", Width: "[3:0]"},
		{Name: "sum", Direction: "output", Width: "[4:0]"},
	}, mods[0].Ports)
}

func TestGetModulePortsSymbolicWidth(t *testing.T) {
	src := "module m #(parameter WIDTH = 8) (input [WIDTH-1:0] d);\nendmodule\n"
	c, uri := openBuffer(t, src)

	mods := GetModulePorts(c.Get(uri))
	require.Len(t, mods, 1)
	require.Len(t, mods[0].Ports, 1)
	assert.Equal(t, "[WIDTH-1:0]", mods[0].Ports[0].Width)
}

func TestGetModulePortsNonANSIFallback(t *testing.T) {
	src := "module top(clk, rst);\n  input clk;\n  input rst;\nendmodule\n"
	c, uri := openBuffer(t, src)

	mods := GetModulePorts(c.Get(uri))
	require.Len(t, mods, 1)
	assert.Equal(t, []lsp.PortDescriptor{
		{Name: "clk", Direction: "unknown", Width: "1"},
		{Name: "rst", Direction: "unknown", Width: "1"},
	}, mods[0].Ports)
}

func TestGetModulePortsDefaultsDirection(t *testing.T) {
	src := "module m(wire [1:0] sel);\nendmodule\n"
	c, uri := openBuffer(t, src)

	mods := GetModulePorts(c.Get(uri))
	require.Len(t, mods, 1)
	require.Len(t, mods[0].Ports, 1)
	assert.Equal(t, "input", mods[0].Ports[0].Direction)
	assert.Equal(t, "[1:0]", mods[0].Ports[0].Width)
}

func TestGetModuleInfo(t *testing.T) {
	src := `module top;
  parameter WIDTH = 8;
  localparam HALF = WIDTH / 2;
  wire [7:0] bus;
  sub_mod u1 (.d(bus));
endmodule
`
	c, uri := openBuffer(t, src)

	mods := GetModuleInfo(c.Get(uri))
	require.Len(t, mods, 1)
	info := mods[0]
	assert.Equal(t, "top", info.Name)

	require.NotNil(t, info.Range)
	assert.Equal(t, lsp.Position{Line: 0, Character: 7}, info.Range.Start)
	assert.Equal(t, lsp.Position{Line: 5, Character: 9}, info.Range.End)

	require.Len(t, info.Parameters, 2)
	assert.Equal(t, lsp.ParameterDescriptor{Type: "parameter", Name: "WIDTH", Value: "8", Line: 1}, info.Parameters[0])
	assert.Equal(t, lsp.ParameterDescriptor{Type: "localparam", Name: "HALF", Value: "WIDTH / 2", Line: 2}, info.Parameters[1])

	// the wire declaration is not an instantiation
	require.Len(t, info.Instantiations, 1)
	assert.Equal(t, lsp.InstantiationDescriptor{ModuleName: "sub_mod", InstanceName: "u1", Line: 4}, info.Instantiations[0])
}

func TestGetModuleInfoServedFromLastGood(t *testing.T) {
	c := NewTrackerContainer()
	uri := testURI(t)
	c.Update(uri, "module top;\nendmodule\n", 1)
	c.Update(uri, "module top(\n", 2)

	mods := GetModuleInfo(c.Get(uri))
	require.Len(t, mods, 1)
	assert.Equal(t, "top", mods[0].Name)
}

func TestGetAllModuleInfoSkipsEmpty(t *testing.T) {
	c := NewTrackerContainer()
	withMod := lsp.DocumentURI("file://" + filepath.Join(t.TempDir(), "a.v"))
	empty := lsp.DocumentURI("file://" + filepath.Join(t.TempDir(), "b.v"))
	c.Update(withMod, "module m;\nendmodule\n", 1)
	c.Update(empty, "// nothing here\n", 1)

	all := GetAllModuleInfo(c)
	require.Len(t, all, 1)
	require.Contains(t, all, withMod)
	assert.Equal(t, "m", all[withMod][0].Name)
}

func TestTopModulesLifecycle(t *testing.T) {
	src := "module top(input unused_in);\nendmodule\n"
	c := NewTrackerContainer()
	uri := testURI(t)

	c.SetTopModules([]string{"top"})
	c.Update(uri, src, 1)
	diags := CreateDiagnostics(c.Get(uri), -1)
	var flagged bool
	for _, d := range diags {
		if strings.Contains(d.Message, "[floating-input-port]") {
			flagged = true
		}
	}
	assert.True(t, flagged)

	c.ClearTopModules()
	c.Update(uri, src, 2)
	for _, d := range CreateDiagnostics(c.Get(uri), -1) {
		assert.NotContains(t, d.Message, "[floating-input-port]")
	}
}

func TestRemoveDropsTracker(t *testing.T) {
	c, uri := openBuffer(t, "module m;\nendmodule\n")
	require.NotNil(t, c.Get(uri))
	c.Remove(uri)
	assert.Nil(t, c.Get(uri))
}
