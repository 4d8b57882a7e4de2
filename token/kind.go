package token

// Kind classifies a lexed Verilog token.
type Kind int

const (
	// Error marks a byte sequence the lexer could not match.
	Error Kind = iota
	// EOF is the synthetic end-of-input token.
	EOF
	Identifier
	Keyword
	Number
	String
	Comment
	Operator
	Symbol
	// SystemTF is a $-prefixed system task or function name.
	SystemTF
	// MacroCall is a `-prefixed preprocessor identifier.
	MacroCall
)

func (k Kind) String() string {
	switch k {
	case Error:
		return "error"
	case EOF:
		return "eof"
	case Identifier:
		return "identifier"
	case Keyword:
		return "keyword"
	case Number:
		return "number"
	case String:
		return "string"
	case Comment:
		return "comment"
	case Operator:
		return "operator"
	case Symbol:
		return "symbol"
	case SystemTF:
		return "system-tf"
	case MacroCall:
		return "macro"
	default:
		return "unknown"
	}
}

// keywords is the set of Verilog-2001 keywords the parser and rules care
// about, plus the handful of SystemVerilog ones (logic, always_comb,
// always_ff) common in mixed codebases.
var keywords = map[string]struct{}{
	"module": {}, "endmodule": {}, "macromodule": {},
	"input": {}, "output": {}, "inout": {},
	"wire": {}, "reg": {}, "logic": {}, "integer": {}, "real": {}, "time": {},
	"realtime": {}, "genvar": {}, "signed": {}, "unsigned": {},
	"parameter": {}, "localparam": {}, "defparam": {},
	"begin": {}, "end": {},
	"case": {}, "casex": {}, "casez": {}, "endcase": {}, "default": {},
	"if": {}, "else": {}, "for": {}, "while": {}, "repeat": {}, "forever": {},
	"function": {}, "endfunction": {}, "task": {}, "endtask": {},
	"assign": {}, "deassign": {}, "always": {}, "initial": {}, "final": {},
	"always_comb": {}, "always_ff": {}, "always_latch": {},
	"generate": {}, "endgenerate": {},
	"posedge": {}, "negedge": {}, "edge": {},
	"supply0": {}, "supply1": {}, "tri": {}, "tri0": {}, "tri1": {},
	"wand": {}, "wor": {}, "trireg": {},
	"package": {}, "endpackage": {}, "interface": {}, "endinterface": {},
	"class": {}, "endclass": {}, "typedef": {}, "enum": {}, "struct": {}, "union": {},
	"wait": {}, "disable": {}, "fork": {}, "join": {},
	"specify": {}, "endspecify": {}, "primitive": {}, "endprimitive": {},
	"not": {}, "and": {}, "nand": {}, "or": {}, "nor": {}, "xor": {}, "xnor": {}, "buf": {},
}

// IsKeyword reports whether the identifier text is a reserved word.
func IsKeyword(text string) bool {
	_, ok := keywords[text]
	return ok
}
