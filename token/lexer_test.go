package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexBasics(t *testing.T) {
	toks := Lex("module m;\nendmodule\n")
	require.Len(t, toks, 5)

	assert.Equal(t, []Kind{Keyword, Identifier, Symbol, Keyword, EOF}, kinds(toks))
	assert.Equal(t, "module", toks[0].Text)
	assert.Equal(t, 0, toks[0].Offset)
	assert.Equal(t, "m", toks[1].Text)
	assert.Equal(t, 7, toks[1].Offset)
	assert.Equal(t, "endmodule", toks[3].Text)
	assert.Equal(t, 10, toks[3].Offset)
}

func TestLexEndsWithEOF(t *testing.T) {
	for _, src := range []string{"", "   ", "wire x;"} {
		toks := Lex(src)
		require.NotEmpty(t, toks)
		last := toks[len(toks)-1]
		assert.True(t, last.IsEOF())
		assert.Equal(t, len(src), last.Offset)
	}
}

func TestLexNumbers(t *testing.T) {
	toks := Lex("4'b1010 8'hFF 16 3.14")
	require.Len(t, toks, 5)
	for _, tok := range toks[:4] {
		assert.Equal(t, Number, tok.Kind, tok.Text)
	}
	assert.Equal(t, "4'b1010", toks[0].Text)
	assert.Equal(t, "8'hFF", toks[1].Text)
}

func TestLexCommentsKept(t *testing.T) {
	toks := Lex("wire x; // net\n/* block\ncomment */ reg y;")
	var comments []string
	for _, tok := range toks {
		if tok.Kind == Comment {
			comments = append(comments, tok.Text)
		}
	}
	assert.Equal(t, []string{"// net", "/* block\ncomment */"}, comments)
}

func TestLexSystemTFAndMacro(t *testing.T) {
	toks := Lex("$display(`WIDTH)")
	require.Len(t, toks, 5)
	assert.Equal(t, SystemTF, toks[0].Kind)
	assert.Equal(t, "$display", toks[0].Text)
	assert.Equal(t, MacroCall, toks[2].Kind)
	assert.Equal(t, "`WIDTH", toks[2].Text)
}

func TestLexErrorRecovery(t *testing.T) {
	toks := Lex("wire ` x;")
	require.Len(t, toks, 5)

	assert.Equal(t, []Kind{Keyword, Error, Identifier, Symbol, EOF}, kinds(toks))
	assert.Equal(t, "`", toks[1].Text)
	assert.Equal(t, 5, toks[1].Offset)
	// lexing resumes after the bad byte
	assert.Equal(t, "x", toks[2].Text)
}

func TestLexKeywordPromotion(t *testing.T) {
	toks := Lex("input inputs")
	require.Len(t, toks, 3)
	assert.Equal(t, Keyword, toks[0].Kind)
	assert.Equal(t, Identifier, toks[1].Kind)
}

func TestLexEscapedIdentifier(t *testing.T) {
	toks := Lex(`wire \bus-2 ;`)
	require.Len(t, toks, 4)
	assert.Equal(t, Identifier, toks[1].Kind)
	assert.Equal(t, `\bus-2`, toks[1].Text)
}

func TestTokenClassifiers(t *testing.T) {
	assert.True(t, Token{Kind: Keyword, Text: "input"}.IsDirection())
	assert.False(t, Token{Kind: Identifier, Text: "input"}.IsDirection())
	assert.True(t, Token{Kind: Keyword, Text: "wire"}.IsNetOrVarType())
	assert.False(t, Token{Kind: Keyword, Text: "assign"}.IsNetOrVarType())
}
