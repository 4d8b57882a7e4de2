package syntax

import (
	"github.com/verilsp/verilsp/token"
)

// Analysis phases and severities attached to rejected tokens.
const (
	PhaseLex   = "lex"
	PhaseParse = "parse"

	SeverityError   = "error"
	SeverityWarning = "warning"
)

// RejectedToken records one token the lexer or parser could not accept.
type RejectedToken struct {
	Token    token.Token
	Phase    string
	Severity string
	// Message carries optional extra detail appended to the rendered
	// diagnostic.
	Message string
}

// Tree is the result of one parse attempt. Root is always non-nil; on a
// failed parse it holds whatever structure was recovered before and after
// the rejected tokens.
type Tree struct {
	Root     *Node
	Rejected []RejectedToken
}

// ParseOK reports whether the parse completed without error-severity
// rejections. Warnings do not count against it.
func (t *Tree) ParseOK() bool {
	for _, r := range t.Rejected {
		if r.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Parse builds a syntax tree from a lexed token stream. It never fails:
// unacceptable tokens are recorded as rejected and parsing resynchronizes
// at the next recognizable construct.
func Parse(tokens []token.Token) *Tree {
	p := &parser{}
	for _, t := range tokens {
		switch t.Kind {
		case token.Comment:
			// not significant to structure
		case token.Error:
			p.rejected = append(p.rejected, RejectedToken{
				Token:    t,
				Phase:    PhaseLex,
				Severity: SeverityError,
			})
		default:
			p.toks = append(p.toks, t)
		}
	}
	root := &Node{Kind: KindSourceText}
	for !p.atEOF() {
		t := p.cur()
		switch {
		case p.curKw("module") || p.curKw("macromodule"):
			root.add(p.parseModule())
		case t.Kind == token.MacroCall:
			p.skipDirective()
		case p.curKw("package"):
			p.skipThroughKeyword("endpackage")
		case p.curKw("interface"):
			p.skipThroughKeyword("endinterface")
		case p.curKw("primitive"):
			p.skipThroughKeyword("endprimitive")
		default:
			p.reject(t, "expected module declaration")
			p.next()
		}
	}
	return &Tree{Root: root, Rejected: p.rejected}
}

type parser struct {
	toks     []token.Token // significant tokens, terminated by EOF
	pos      int
	rejected []RejectedToken
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) atEOF() bool { return p.cur().IsEOF() }

func (p *parser) next() token.Token {
	t := p.cur()
	if !t.IsEOF() {
		p.pos++
	}
	return t
}

// leafNext consumes the current token into a leaf.
func (p *parser) leafNext() *Leaf { return &Leaf{Tok: p.next()} }

// curText matches punctuation by literal text.
func (p *parser) curText(text string) bool {
	t := p.cur()
	return (t.Kind == token.Symbol || t.Kind == token.Operator) && t.Text == text
}

func (p *parser) curKw(text string) bool {
	t := p.cur()
	return t.Kind == token.Keyword && t.Text == text
}

func (p *parser) reject(t token.Token, msg string) {
	p.rejected = append(p.rejected, RejectedToken{
		Token:    t,
		Phase:    PhaseParse,
		Severity: SeverityError,
		Message:  msg,
	})
}

// skipToText advances to (without consuming) the next top-level occurrence
// of one of the stop texts, honoring paren, bracket and brace nesting.
// endmodule always stops the scan so a malformed item cannot swallow the
// rest of the module.
func (p *parser) skipToText(stops ...string) {
	depth := 0
	for !p.atEOF() {
		t := p.cur()
		if t.Kind == token.Keyword && t.Text == "endmodule" {
			return
		}
		if t.Kind == token.Symbol || t.Kind == token.Operator {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					for _, s := range stops {
						if t.Text == s {
							return
						}
					}
				} else {
					depth--
				}
			}
		}
		if depth == 0 {
			for _, s := range stops {
				if t.Text == s {
					return
				}
			}
		}
		p.next()
	}
}

// skipThroughKeyword consumes everything up to and including the keyword.
func (p *parser) skipThroughKeyword(kw string) {
	for !p.atEOF() {
		if p.curKw(kw) {
			p.next()
			return
		}
		p.next()
	}
}

// skipBalancedParen consumes a '(' ... ')' group, tracking nesting.
func (p *parser) skipBalancedParen() {
	if !p.curText("(") {
		return
	}
	depth := 0
	for !p.atEOF() {
		switch {
		case p.curText("("):
			depth++
		case p.curText(")"):
			depth--
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

// skipDirective consumes a preprocessor use. Conditional directives take
// one condition name, include takes a file string, and anything else is
// treated as a macro call with an optional argument list.
func (p *parser) skipDirective() {
	d := p.next()
	switch d.Text {
	case "`ifdef", "`ifndef", "`elsif", "`undef":
		if p.cur().IsIdentifier() {
			p.next()
		}
	case "`else", "`endif", "`resetall", "`nounconnected_drive", "`unconnected_drive":
		// bare directives
	case "`include":
		if p.cur().Kind == token.String {
			p.next()
		}
	case "`define", "`timescale", "`default_nettype":
		// these consume free-form text to end of line, which the token
		// stream no longer delimits. Skip ahead to the next construct
		// boundary instead.
		for !p.atEOF() {
			t := p.cur()
			if t.Kind == token.MacroCall || t.Kind == token.Keyword || p.curText(";") {
				return
			}
			p.next()
		}
	default:
		p.skipBalancedParen()
	}
}

func (p *parser) parseModule() *Node {
	mod := &Node{Kind: KindModuleDeclaration}
	header := &Node{Kind: KindModuleHeader}
	header.add(p.leafNext()) // module keyword
	if !p.cur().IsIdentifier() {
		p.reject(p.cur(), "expected module name")
		mod.add(header)
		p.skipThroughKeyword("endmodule")
		return mod
	}
	header.add(p.leafNext()) // module name
	if p.curText("#") {
		header.add(p.parseParamPortList())
	}
	if p.curText("(") {
		header.add(p.parsePortParenGroup())
	}
	if p.curText(";") {
		header.add(p.leafNext())
	} else {
		p.reject(p.cur(), "expected ';' after module header")
		p.skipToText(";")
		if p.curText(";") {
			p.next()
		}
	}
	mod.add(header)
	mod.add(p.parseModuleItems())
	if p.curKw("endmodule") {
		mod.add(p.leafNext())
	} else {
		p.reject(p.cur(), "expected 'endmodule'")
	}
	return mod
}

// parseParamPortList parses '#( parameter ... , ... )'.
func (p *parser) parseParamPortList() *Node {
	list := &Node{Kind: KindParamDeclarationList}
	list.add(p.leafNext()) // '#'
	if !p.curText("(") {
		p.reject(p.cur(), "expected '(' after '#'")
		return list
	}
	list.add(p.leafNext()) // '('
	for !p.atEOF() && !p.curText(")") && !p.curKw("endmodule") {
		if p.curText(",") {
			list.add(p.leafNext())
			continue
		}
		before := p.pos
		list.add(p.parseParamDeclaration(",", ")"))
		if p.pos == before {
			p.reject(p.cur(), "expected parameter declaration")
			p.next()
		}
	}
	if p.curText(")") {
		list.add(p.leafNext())
	} else {
		p.reject(p.cur(), "unterminated parameter port list")
	}
	return list
}

// parseParamDeclaration parses one 'parameter [type] name = expr' item up
// to (not including) one of the stop texts. The keyword is optional in a
// parameter port list.
func (p *parser) parseParamDeclaration(stops ...string) *Node {
	d := &Node{Kind: KindParamDeclaration}
	if p.curKw("parameter") || p.curKw("localparam") {
		d.add(p.leafNext())
	}
	if p.cur().IsNetOrVarType() {
		d.add(p.leafNext())
	}
	if p.curKw("signed") || p.curKw("unsigned") {
		d.add(p.leafNext())
	}
	if p.curText("[") {
		d.add(p.parsePackedDimensions())
	}
	if !p.cur().IsIdentifier() {
		p.reject(p.cur(), "expected parameter name")
		p.skipToText(stops...)
		return d
	}
	d.add(p.leafNext()) // name
	if p.curText("=") {
		d.add(p.leafNext())
		d.add(p.parseExpression(stops...))
	}
	return d
}

// parsePortParenGroup parses the '( ... )' of a module header. When any
// item carries a direction or type keyword the group holds an ANSI port
// declaration list; otherwise it holds plain port references.
func (p *parser) parsePortParenGroup() *Node {
	group := &Node{Kind: KindPortParenGroup}
	group.add(p.leafNext()) // '('
	if p.ansiPortsAhead() {
		group.add(p.parsePortDeclarationList())
	} else {
		p.parsePortReferences(group)
	}
	if p.curText(")") {
		group.add(p.leafNext())
	} else {
		p.reject(p.cur(), "unterminated port list")
	}
	return group
}

// ansiPortsAhead looks ahead to the matching ')' for a direction or
// net/variable type keyword at the top nesting level.
func (p *parser) ansiPortsAhead() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.Kind == token.Symbol {
			switch t.Text {
			case "(", "[", "{":
				depth++
				continue
			case ")", "]", "}":
				if depth == 0 {
					return false
				}
				depth--
				continue
			}
		}
		if depth == 0 && (t.IsDirection() || t.IsNetOrVarType()) {
			return true
		}
		if t.Kind == token.Keyword && t.Text == "endmodule" {
			return false
		}
	}
	return false
}

// parsePortDeclarationList parses ANSI items 'dir [type] [signed] [dims]
// name [, ...]'. An item that is a bare identifier inherits the direction
// and type of the previous item, so each name still gets a full
// declaration node.
func (p *parser) parsePortDeclarationList() *Node {
	list := &Node{Kind: KindPortDeclarationList}
	var lastDir *Leaf
	var lastType *Node
	for !p.atEOF() && !p.curText(")") && !p.curKw("endmodule") {
		if p.curText(",") {
			list.add(p.leafNext())
			continue
		}
		decl := &Node{Kind: KindPortDeclaration}
		explicit := false
		if p.cur().IsDirection() {
			lastDir = p.leafNext()
			lastType = nil
			explicit = true
		}
		if p.cur().IsNetOrVarType() || p.curKw("signed") || p.curKw("unsigned") || p.curText("[") {
			lastType = p.parseDataType()
			explicit = true
		}
		if lastDir != nil {
			decl.add(&Leaf{Tok: lastDir.Tok})
		}
		if lastType != nil {
			if explicit {
				decl.add(lastType)
			} else {
				decl.add(&Node{Kind: lastType.Kind, Children: lastType.Children})
			}
		}
		if !p.cur().IsIdentifier() {
			p.reject(p.cur(), "expected port name")
			p.skipToText(",", ")")
			continue
		}
		decl.add(p.leafNext()) // port name
		// unpacked dimensions after the name are kept but not part of
		// the data type
		for p.curText("[") {
			decl.add(p.parsePackedDimensions())
		}
		list.add(decl)
	}
	return list
}

// parseDataType parses '[wire|reg|...] [signed] [dims]'.
func (p *parser) parseDataType() *Node {
	dt := &Node{Kind: KindDataType}
	if p.cur().IsNetOrVarType() {
		dt.add(p.leafNext())
	}
	if p.curKw("signed") || p.curKw("unsigned") {
		dt.add(p.leafNext())
	}
	for p.curText("[") {
		dt.add(p.parsePackedDimensions())
	}
	return dt
}

// parsePortReferences parses the non-ANSI form '(a, b, c)'. Port
// expressions other than plain names (concatenations, slices) keep their
// first identifier as the reference.
func (p *parser) parsePortReferences(group *Node) {
	for !p.atEOF() && !p.curText(")") && !p.curKw("endmodule") {
		if p.curText(",") {
			group.add(p.leafNext())
			continue
		}
		port := &Node{Kind: KindPort}
		ref := &Node{Kind: KindPortReference}
		named := false
		depth := 0
		for !p.atEOF() && !p.curKw("endmodule") {
			if depth == 0 && (p.curText(",") || p.curText(")")) {
				break
			}
			switch {
			case p.curText("(") || p.curText("[") || p.curText("{"):
				depth++
			case p.curText(")") || p.curText("]") || p.curText("}"):
				depth--
			}
			t := p.next()
			if !named && t.IsIdentifier() {
				ref.add(&Leaf{Tok: t})
				named = true
			}
		}
		if named {
			port.add(ref)
			group.add(port)
		}
	}
}

// parsePackedDimensions parses one or more '[ ... ]' groups starting at
// the current '['. A group with a top-level ':' becomes a dimension range
// with left and right bound expressions.
func (p *parser) parsePackedDimensions() *Node {
	dims := &Node{Kind: KindPackedDimensions}
	for p.curText("[") {
		open := p.leafNext()
		left := p.parseExpression(":", "]")
		if p.curText(":") {
			r := &Node{Kind: KindDimensionRange}
			r.add(open, left, p.leafNext())
			r.add(p.parseExpression("]"))
			if p.curText("]") {
				r.add(p.leafNext())
			} else {
				p.reject(p.cur(), "unterminated dimension range")
			}
			dims.add(r)
			continue
		}
		// scalar dimension, no range
		dims.add(open, left)
		if p.curText("]") {
			dims.add(p.leafNext())
		} else {
			p.reject(p.cur(), "unterminated dimension")
		}
	}
	return dims
}

// parseExpression collects tokens up to (not including) the next
// top-level stop text.
func (p *parser) parseExpression(stops ...string) *Node {
	expr := &Node{Kind: KindExpression}
	depth := 0
	for !p.atEOF() {
		t := p.cur()
		if t.Kind == token.Keyword && t.Text == "endmodule" {
			return expr
		}
		if t.Kind == token.Symbol || t.Kind == token.Operator {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					return expr
				}
				depth--
			}
		}
		if depth == 0 {
			for _, s := range stops {
				if t.Text == s {
					return expr
				}
			}
			if t.Text == ";" {
				return expr
			}
		}
		expr.add(p.leafNext())
	}
	return expr
}

func (p *parser) parseModuleItems() *Node {
	items := &Node{Kind: KindModuleItemList}
	for !p.atEOF() && !p.curKw("endmodule") {
		t := p.cur()
		switch {
		case p.curKw("parameter") || p.curKw("localparam"):
			p.parseParamItem(items)
		case p.curKw("function"):
			items.add(p.parseRoutine("function", "endfunction", KindFunctionDeclaration))
		case p.curKw("task"):
			items.add(p.parseRoutine("task", "endtask", KindTaskDeclaration))
		case t.IsDirection():
			p.parseNonANSIPortDeclaration(items)
		case t.IsNetOrVarType():
			items.add(p.parseNetDeclaration())
		case t.IsIdentifier():
			p.parseIdentifierItem(items)
		case p.curKw("assign") || p.curKw("defparam"):
			p.next()
			p.skipToText(";")
			p.consumeSemi()
		case p.curKw("always") || p.curKw("always_comb") || p.curKw("always_ff") ||
			p.curKw("always_latch") || p.curKw("initial") || p.curKw("final"):
			p.next()
			p.skipStatement()
		case p.curKw("generate"):
			p.skipThroughKeyword("endgenerate")
		case p.curKw("specify"):
			p.skipThroughKeyword("endspecify")
		case t.Kind == token.MacroCall:
			p.skipDirective()
		case p.curText(";"):
			p.next()
		case t.Kind == token.Keyword && isGatePrimitive(t.Text):
			p.next()
			p.skipToText(";")
			p.consumeSemi()
		default:
			p.reject(t, "unexpected token in module body")
			p.next()
			p.skipToText(";")
			p.consumeSemi()
		}
	}
	return items
}

func isGatePrimitive(text string) bool {
	switch text {
	case "and", "or", "not", "nand", "nor", "xor", "xnor", "buf":
		return true
	default:
		return false
	}
}

func (p *parser) consumeSemi() {
	if p.curText(";") {
		p.next()
	}
}

// parseParamItem parses 'parameter a = 1, b = 2;' into one declaration
// node per name, each repeating the keyword leaf.
func (p *parser) parseParamItem(items *Node) {
	kw := p.cur()
	p.next()
	for !p.atEOF() {
		d := &Node{Kind: KindParamDeclaration}
		d.add(&Leaf{Tok: kw})
		if p.cur().IsNetOrVarType() {
			d.add(p.leafNext())
		}
		if p.curKw("signed") || p.curKw("unsigned") {
			d.add(p.leafNext())
		}
		if p.curText("[") {
			d.add(p.parsePackedDimensions())
		}
		if !p.cur().IsIdentifier() {
			p.reject(p.cur(), "expected parameter name")
			p.skipToText(";")
			break
		}
		d.add(p.leafNext()) // name
		if p.curText("=") {
			d.add(p.leafNext())
			d.add(p.parseExpression(",", ";"))
		}
		items.add(d)
		if p.curText(",") {
			p.next()
			continue
		}
		break
	}
	p.consumeSemi()
}

// parseRoutine captures the name of a function or task declaration and
// skips its body through the matching end keyword.
func (p *parser) parseRoutine(kw, endKw string, kind NodeKind) *Node {
	n := &Node{Kind: kind}
	n.add(p.leafNext()) // function/task keyword
	// scan the header for the declared name: the last identifier before
	// '(' or ';'
	var name *Leaf
	for !p.atEOF() && !p.curText("(") && !p.curText(";") && !p.curKw(endKw) && !p.curKw("endmodule") {
		t := p.next()
		if t.IsIdentifier() {
			name = &Leaf{Tok: t}
		}
	}
	if name != nil {
		n.add(name)
	} else {
		p.reject(p.cur(), "expected "+kw+" name")
	}
	for !p.atEOF() && !p.curKw("endmodule") {
		if p.curKw(endKw) {
			n.add(p.leafNext())
			return n
		}
		p.next()
	}
	p.reject(p.cur(), "expected '"+endKw+"'")
	return n
}

// parseNonANSIPortDeclaration handles body declarations like
// 'input [3:0] a, b;'. The names feed the same port declaration shape the
// header form uses so downstream lookups need not care which style the
// module used.
func (p *parser) parseNonANSIPortDeclaration(items *Node) {
	dir := p.leafNext()
	var dt *Node
	if p.cur().IsNetOrVarType() || p.curKw("signed") || p.curKw("unsigned") || p.curText("[") {
		dt = p.parseDataType()
	}
	for !p.atEOF() {
		if !p.cur().IsIdentifier() {
			p.reject(p.cur(), "expected port name")
			p.skipToText(";")
			break
		}
		decl := &Node{Kind: KindPortDeclaration}
		decl.add(&Leaf{Tok: dir.Tok})
		if dt != nil {
			decl.add(&Node{Kind: dt.Kind, Children: dt.Children})
		}
		decl.add(p.leafNext())
		items.add(decl)
		if p.curText(",") {
			p.next()
			continue
		}
		break
	}
	p.consumeSemi()
}

// parseNetDeclaration handles 'wire [3:0] x, y;'. It produces the same
// data declaration shape as an instantiation, with the builtin keyword as
// the type, so one downstream scan sees both.
func (p *parser) parseNetDeclaration() *Node {
	decl := &Node{Kind: KindDataDeclaration}
	it := &Node{Kind: KindInstantiationType}
	it.add(p.leafNext()) // type keyword
	if p.curKw("signed") || p.curKw("unsigned") {
		it.add(p.leafNext())
	}
	if p.curText("[") {
		it.add(p.parsePackedDimensions())
	}
	decl.add(it)
	p.skipToText(";")
	if p.curText(";") {
		p.next()
	} else {
		p.reject(p.cur(), "expected ';' in declaration")
	}
	return decl
}

// parseIdentifierItem disambiguates a leading identifier: a module
// instantiation when followed by '#' or another identifier, otherwise a
// statement to skip.
func (p *parser) parseIdentifierItem(items *Node) {
	if p.pos+1 < len(p.toks) {
		nxt := p.toks[p.pos+1]
		if nxt.IsIdentifier() || (nxt.Kind == token.Symbol && nxt.Text == "#") {
			items.add(p.parseInstantiation())
			return
		}
	}
	p.next()
	p.skipToText(";")
	p.consumeSemi()
}

// parseInstantiation parses 'type [#(...)] name (...) [, name (...)] ;'.
func (p *parser) parseInstantiation() *Node {
	decl := &Node{Kind: KindDataDeclaration}
	it := &Node{Kind: KindInstantiationType}
	it.add(p.leafNext()) // module type name
	if p.curText("#") {
		it.add(p.leafNext())
		start := p.pos
		p.skipBalancedParen()
		for i := start; i < p.pos; i++ {
			it.add(&Leaf{Tok: p.toks[i]})
		}
	}
	decl.add(it)
	list := &Node{Kind: KindGateInstanceList}
	for !p.atEOF() {
		inst := &Node{Kind: KindGateInstance}
		if p.cur().IsIdentifier() {
			inst.add(p.leafNext()) // instance name
		}
		if p.curText("(") {
			start := p.pos
			p.skipBalancedParen()
			for i := start; i < p.pos; i++ {
				inst.add(&Leaf{Tok: p.toks[i]})
			}
		} else if len(inst.Children) == 0 {
			p.reject(p.cur(), "expected instance name")
			p.skipToText(";")
			break
		}
		list.add(inst)
		if p.curText(",") {
			p.next()
			continue
		}
		break
	}
	decl.add(list)
	if !p.curText(";") {
		p.reject(p.cur(), "expected ';' after instantiation")
		p.skipToText(";")
	}
	p.consumeSemi()
	return decl
}

// skipStatement consumes one statement: a begin/end block with nesting, a
// block construct through its end keyword, or a simple statement through
// ';'. Event controls like '@(posedge clk)' before the body are consumed.
func (p *parser) skipStatement() {
	if p.curText("@") {
		p.next()
		p.skipBalancedParen()
	}
	if p.curKw("begin") {
		p.next()
		// optional block label
		if p.curText(":") {
			p.next()
			if p.cur().IsIdentifier() {
				p.next()
			}
		}
		depth := 1
		for !p.atEOF() && depth > 0 {
			switch {
			case p.curKw("begin"):
				depth++
			case p.curKw("end"):
				depth--
			case p.curKw("endmodule"):
				p.reject(p.cur(), "unterminated 'begin' block")
				return
			}
			p.next()
		}
		return
	}
	switch {
	case p.curKw("case") || p.curKw("casex") || p.curKw("casez"):
		p.skipThroughKeyword("endcase")
	case p.curKw("fork"):
		p.skipThroughKeyword("join")
	default:
		p.skipToText(";")
		p.consumeSemi()
	}
}
