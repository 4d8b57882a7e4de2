package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verilsp/verilsp/token"
)

func parseString(t *testing.T, src string) *Tree {
	t.Helper()
	return Parse(token.Lex(src))
}

func TestParseANSIPorts(t *testing.T) {
	src := `module adder(input [3:0] a, input [3:0] b, output [4:0] sum);
  assign sum = a + b;
endmodule
`
	tree := parseString(t, src)
	require.True(t, tree.ParseOK(), "rejected: %+v", tree.Rejected)

	mods := Modules(tree.Root)
	require.Len(t, mods, 1)
	name := ModuleName(mods[0])
	require.NotNil(t, name)
	assert.Equal(t, "adder", name.Tok.Text)

	list := ModulePortDeclarationList(mods[0])
	require.NotNil(t, list)
	decls := PortDeclarations(list)
	require.Len(t, decls, 3)

	wantNames := []string{"a", "b", "sum"}
	wantDirs := []string{"input", "input", "output"}
	wantBounds := [][2]string{{"3", "0"}, {"3", "0"}, {"4", "0"}}
	for i, decl := range decls {
		id := PortDeclarationIdentifier(decl)
		require.NotNil(t, id)
		assert.Equal(t, wantNames[i], id.Tok.Text)

		dir := PortDeclarationDirection(decl)
		require.NotNil(t, dir)
		assert.Equal(t, wantDirs[i], dir.Tok.Text)

		r := PortDeclarationDimensionRange(decl)
		require.NotNil(t, r)
		left, right := DimensionRangeBounds(r)
		require.NotNil(t, left)
		require.NotNil(t, right)
		assert.Equal(t, wantBounds[i][0], LiteralText(left))
		assert.Equal(t, wantBounds[i][1], LiteralText(right))
	}
}

func TestParseInheritedDirection(t *testing.T) {
	tree := parseString(t, "module m(input a, b, output c);\nendmodule\n")
	require.True(t, tree.ParseOK())

	decls := PortDeclarations(ModulePortDeclarationList(Modules(tree.Root)[0]))
	require.Len(t, decls, 3)

	dirs := make([]string, len(decls))
	for i, d := range decls {
		dirs[i] = PortDeclarationDirection(d).Tok.Text
	}
	assert.Equal(t, []string{"input", "input", "output"}, dirs)
}

func TestParseScalarDimensionHasNoRange(t *testing.T) {
	tree := parseString(t, "module m(input wire x);\nendmodule\n")
	require.True(t, tree.ParseOK())

	decls := PortDeclarations(ModulePortDeclarationList(Modules(tree.Root)[0]))
	require.Len(t, decls, 1)
	assert.Nil(t, PortDeclarationDimensionRange(decls[0]))
}

func TestParseNonANSIPorts(t *testing.T) {
	src := `module top(clk, rst, out);
  input clk;
  input rst;
  output out;
endmodule
`
	tree := parseString(t, src)
	require.True(t, tree.ParseOK(), "rejected: %+v", tree.Rejected)

	mod := Modules(tree.Root)[0]
	assert.Nil(t, ModulePortDeclarationList(mod))

	group := ModulePortParenGroup(mod)
	require.NotNil(t, group)
	ports := Ports(group)
	require.Len(t, ports, 3)

	names := make([]string, len(ports))
	for i, p := range ports {
		ref := PortReferenceIdentifier(p)
		require.NotNil(t, ref)
		names[i] = ref.Tok.Text
	}
	assert.Equal(t, []string{"clk", "rst", "out"}, names)
}

func TestParseParameters(t *testing.T) {
	src := `module m #(parameter WIDTH = 8, DEPTH = 4);
  localparam HALF = WIDTH / 2;
endmodule
`
	tree := parseString(t, src)
	require.True(t, tree.ParseOK(), "rejected: %+v", tree.Rejected)

	params := ParamDeclarations(Modules(tree.Root)[0])
	require.Len(t, params, 3)

	assert.Equal(t, "parameter", ParamDeclarationKeyword(params[0]))
	assert.Equal(t, "WIDTH", ParamDeclarationName(params[0]).Tok.Text)

	// the keyword distributes over the comma-separated names
	assert.Equal(t, "parameter", ParamDeclarationKeyword(params[1]))
	assert.Equal(t, "DEPTH", ParamDeclarationName(params[1]).Tok.Text)

	assert.Equal(t, "localparam", ParamDeclarationKeyword(params[2]))
	assert.Equal(t, "HALF", ParamDeclarationName(params[2]).Tok.Text)

	value := ParamDeclarationValue(params[2])
	require.NotNil(t, value)
	start, end, ok := Span(value)
	require.True(t, ok)
	assert.Equal(t, "WIDTH / 2", src[start:end])
}

func TestParseInstantiations(t *testing.T) {
	src := `module top;
  wire [7:0] bus;
  sub_mod u1 (.clk(clk), .d(bus));
  sub_mod u2 (), u3 ();
  reg state;
endmodule
`
	tree := parseString(t, src)
	require.True(t, tree.ParseOK(), "rejected: %+v", tree.Rejected)

	decls := DataDeclarations(ModuleItemList(Modules(tree.Root)[0]))
	require.Len(t, decls, 4)

	typeName, ok := DataDeclarationTypeName(decls[0])
	require.True(t, ok)
	assert.Equal(t, "wire", typeName)
	assert.Empty(t, GateInstances(decls[0]))

	typeName, ok = DataDeclarationTypeName(decls[1])
	require.True(t, ok)
	assert.Equal(t, "sub_mod", typeName)
	insts := GateInstances(decls[1])
	require.Len(t, insts, 1)
	instName, ok := GateInstanceName(insts[0])
	require.True(t, ok)
	assert.Equal(t, "u1", instName.Text)

	insts = GateInstances(decls[2])
	require.Len(t, insts, 2)
	names := make([]string, len(insts))
	for i, inst := range insts {
		tok, ok := GateInstanceName(inst)
		require.True(t, ok)
		names[i] = tok.Text
	}
	assert.Equal(t, []string{"u2", "u3"}, names)
}

func TestParseRoutines(t *testing.T) {
	src := `module alu;
  function [3:0] add_sat(input [3:0] x, y);
    add_sat = x + y;
  endfunction
  task reset_state;
    ;
  endtask
endmodule
`
	tree := parseString(t, src)
	require.True(t, tree.ParseOK(), "rejected: %+v", tree.Rejected)

	mod := Modules(tree.Root)[0]
	funcs := FindAll(mod, KindFunctionDeclaration)
	require.Len(t, funcs, 1)
	name, ok := RoutineName(funcs[0])
	require.True(t, ok)
	assert.Equal(t, "add_sat", name.Text)

	tasks := FindAll(mod, KindTaskDeclaration)
	require.Len(t, tasks, 1)
	name, ok = RoutineName(tasks[0])
	require.True(t, ok)
	assert.Equal(t, "reset_state", name.Text)
}

func TestParseRejectsUnexpectedEOF(t *testing.T) {
	tree := parseString(t, "module m(input a);\n")
	require.False(t, tree.ParseOK())
	require.NotEmpty(t, tree.Rejected)

	last := tree.Rejected[len(tree.Rejected)-1]
	assert.Equal(t, PhaseParse, last.Phase)
	assert.True(t, last.Token.IsEOF())

	// the recovered module is still usable
	mods := Modules(tree.Root)
	require.Len(t, mods, 1)
	assert.Equal(t, "m", ModuleName(mods[0]).Tok.Text)
}

func TestParseCarriesLexErrors(t *testing.T) {
	tree := parseString(t, "module m;\n` \nendmodule\n")
	require.False(t, tree.ParseOK())

	var lexErrs []RejectedToken
	for _, r := range tree.Rejected {
		if r.Phase == PhaseLex {
			lexErrs = append(lexErrs, r)
		}
	}
	require.Len(t, lexErrs, 1)
	assert.Equal(t, "`", lexErrs[0].Token.Text)
	assert.Equal(t, SeverityError, lexErrs[0].Severity)
}

func TestParseRecoversBetweenModules(t *testing.T) {
	src := `module first;
endmodule
garbage tokens here
module second;
endmodule
`
	tree := parseString(t, src)
	require.False(t, tree.ParseOK())

	mods := Modules(tree.Root)
	require.Len(t, mods, 2)
	assert.Equal(t, "first", ModuleName(mods[0]).Tok.Text)
	assert.Equal(t, "second", ModuleName(mods[1]).Tok.Text)
}

func TestParseSkipsDirectives(t *testing.T) {
	src := "`timescale 1ns / 1ps\n`include \"defs.vh\"\nmodule m;\nendmodule\n"
	tree := parseString(t, src)
	require.True(t, tree.ParseOK(), "rejected: %+v", tree.Rejected)
	require.Len(t, Modules(tree.Root), 1)
}

func TestSpanCoversModule(t *testing.T) {
	src := "module m;\nendmodule\n"
	tree := parseString(t, src)
	require.True(t, tree.ParseOK())

	start, end, ok := Span(Modules(tree.Root)[0])
	require.True(t, ok)
	assert.Equal(t, "module m;\nendmodule", src[start:end])
}
