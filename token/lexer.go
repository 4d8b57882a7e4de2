package token

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// def is the Verilog lexer. Rules are tried in order, so comments come
// before operators and based literals before plain numbers.
var def = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "BlockComment", Pattern: `/\*([^*]|\*+[^*/])*\*+/`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "BasedNumber", Pattern: `[0-9_]*'[sS]?[bBoOdDhH][0-9a-fA-FxXzZ_?]+`},
	{Name: "Number", Pattern: `[0-9][0-9_]*(\.[0-9_]+)?([eE][+-]?[0-9_]+)?`},
	{Name: "SystemTF", Pattern: `\$[a-zA-Z_][a-zA-Z0-9_$]*`},
	{Name: "MacroCall", Pattern: "`[a-zA-Z_][a-zA-Z0-9_$]*"},
	{Name: "EscapedIdent", Pattern: `\\[^ \t\r\n]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_$]*`},
	{Name: "Operator", Pattern: `<<<|>>>|<<|>>|<=|>=|===|!==|==|!=|&&|\|\||\*\*|\+:|-:|->|[-+*/%<>!~&|^=]`},
	{Name: "Symbol", Pattern: `[()\[\]{};:,.#@?']`},
})

// kindFor maps participle token types to our kinds. Whitespace is absent on
// purpose: lookups for it fail and the token is dropped from the stream.
var kindFor = func() map[lexer.TokenType]Kind {
	byName := map[string]Kind{
		"BlockComment": Comment,
		"LineComment":  Comment,
		"String":       String,
		"BasedNumber":  Number,
		"Number":       Number,
		"SystemTF":     SystemTF,
		"MacroCall":    MacroCall,
		"EscapedIdent": Identifier,
		"Ident":        Identifier,
		"Operator":     Operator,
		"Symbol":       Symbol,
	}
	m := make(map[lexer.TokenType]Kind, len(byName))
	for name, typ := range def.Symbols() {
		if kind, ok := byName[name]; ok {
			m[typ] = kind
		}
	}
	return m
}()

// Lex tokenizes contents into a stream with byte offsets. Whitespace is
// dropped; comments are kept. Bytes no rule matches become single-byte
// Error tokens and lexing resumes after them, so a stream is produced for
// any input. The stream always ends with an EOF token at len(contents).
func Lex(contents string) []Token {
	toks := make([]Token, 0, 64)
	base := 0
	for base <= len(contents) {
		lx, err := def.LexString("", contents[base:])
		if err != nil {
			break
		}
		resume := -1
		for {
			t, err := lx.Next()
			if err != nil {
				off := base
				var perr participle.Error
				if errors.As(err, &perr) {
					off = base + perr.Position().Offset
				}
				if off >= len(contents) {
					break
				}
				toks = append(toks, Token{Kind: Error, Text: contents[off : off+1], Offset: off})
				resume = off + 1
				break
			}
			if t.EOF() {
				break
			}
			kind, ok := kindFor[t.Type]
			if !ok {
				continue
			}
			if kind == Identifier && IsKeyword(t.Value) {
				kind = Keyword
			}
			toks = append(toks, Token{Kind: kind, Text: t.Value, Offset: base + t.Pos.Offset})
		}
		if resume < 0 {
			break
		}
		base = resume
	}
	toks = append(toks, Token{Kind: EOF, Offset: len(contents)})
	return toks
}
