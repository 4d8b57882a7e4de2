// Package token defines the Verilog token stream: the lexer (built on the
// participle lexer) and the token classification helpers the rest of the
// analysis pipeline keys on.
package token

// Token is a single lexed source token. Offset is the byte position of the
// token's first character in the source it was lexed from; the span is
// [Offset, End()).
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

func (t Token) End() int { return t.Offset + len(t.Text) }

// IsEOF reports whether the token is the synthetic end-of-input token.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// IsIdentifier reports whether the token names something (escaped
// identifiers included, keywords excluded).
func (t Token) IsIdentifier() bool { return t.Kind == Identifier }

// IsDirection reports whether the token is a port direction keyword.
func (t Token) IsDirection() bool {
	if t.Kind != Keyword {
		return false
	}
	switch t.Text {
	case "input", "output", "inout":
		return true
	default:
		return false
	}
}

// IsNetOrVarType reports whether the token is a built-in net or variable
// type keyword usable in a declaration.
func (t Token) IsNetOrVarType() bool {
	if t.Kind != Keyword {
		return false
	}
	switch t.Text {
	case "wire", "reg", "logic", "integer", "real", "time", "realtime",
		"genvar", "tri", "tri0", "tri1", "wand", "wor", "trireg",
		"supply0", "supply1":
		return true
	default:
		return false
	}
}
