// Package format reformats Verilog source. The style is a conservative
// normalization: leading indentation follows block nesting, trailing
// whitespace is stripped and the document ends with exactly one newline.
// Line interiors are left alone.
package format

import (
	"strings"

	"github.com/verilsp/verilsp/text"
	"github.com/verilsp/verilsp/token"
)

const indentUnit = "  "

var blockOpener = map[string]bool{
	"module": true, "macromodule": true,
	"begin": true, "fork": true,
	"case": true, "casex": true, "casez": true,
	"function": true, "task": true,
	"generate": true, "specify": true,
}

var blockCloser = map[string]bool{
	"endmodule": true,
	"end":       true, "join": true,
	"endcase":     true,
	"endfunction": true, "endtask": true,
	"endgenerate": true, "endspecify": true,
}

// lineShape is what the token stream says about one source line.
type lineShape struct {
	opens   int
	closes  int
	leading int // closers at the start of the line, which dedent it
	// continuation lines start inside a multi-line token (block
	// comment, string) and must not be touched
	continuation bool
}

func shapesOf(st *text.Structure) []lineShape {
	shapes := make([]lineShape, st.LineCount())
	// once a line has any token that is not a block closer, later
	// closers on it no longer dedent the line itself
	interrupted := make([]bool, len(shapes))
	for _, tok := range st.Tokens() {
		if tok.IsEOF() {
			continue
		}
		first := int(st.LineColAt(tok.Offset).Line)
		last := first
		if tok.End() > tok.Offset {
			last = int(st.LineColAt(tok.End() - 1).Line)
		}
		for line := first + 1; line <= last; line++ {
			shapes[line].continuation = true
		}
		if tok.Kind == token.Keyword && blockCloser[tok.Text] {
			shapes[first].closes++
			if !interrupted[first] {
				shapes[first].leading++
			}
			continue
		}
		interrupted[first] = true
		if tok.Kind == token.Keyword && blockOpener[tok.Text] {
			shapes[first].opens++
		}
	}
	return shapes
}

// Document reformats the whole buffer.
func Document(st *text.Structure) string {
	shapes := shapesOf(st)
	out := renderLines(st, shapes, 0, len(shapes), 0)
	return strings.TrimRight(out, "\n") + "\n"
}

// Lines reformats the zero-based half-open line interval
// [startLine, endLine), computing the surrounding nesting from the whole
// buffer. The result covers exactly the requested lines, each terminated
// with a newline.
func Lines(st *text.Structure, startLine, endLine int) string {
	shapes := shapesOf(st)
	if startLine < 0 {
		startLine = 0
	}
	if endLine > len(shapes) {
		endLine = len(shapes)
	}
	if startLine >= endLine {
		return ""
	}
	depth := 0
	for i := 0; i < startLine; i++ {
		depth += shapes[i].opens - shapes[i].closes
		if depth < 0 {
			depth = 0
		}
	}
	return renderLines(st, shapes, startLine, endLine, depth)
}

func renderLines(st *text.Structure, shapes []lineShape, from, to, depth int) string {
	var sb strings.Builder
	for line := from; line < to; line++ {
		shape := shapes[line]
		raw := st.LineText(line)
		switch {
		case shape.continuation:
			sb.WriteString(raw)
		default:
			body := strings.TrimRight(strings.TrimLeft(raw, " \t"), " \t")
			if body != "" {
				eff := depth - shape.leading
				if eff < 0 {
					eff = 0
				}
				sb.WriteString(strings.Repeat(indentUnit, eff))
				sb.WriteString(body)
			}
		}
		sb.WriteByte('\n')
		depth += shape.opens - shape.closes
		if depth < 0 {
			depth = 0
		}
	}
	return sb.String()
}
