package file

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/verilsp/verilsp/lsp"
)

// Kind describes the kind of the file in question.
type Kind int

const (
	// UnknownKind is a file type we don't know about.
	UnknownKind = Kind(iota)

	// Verilog is a Verilog source file.
	Verilog

	// SystemVerilog is a SystemVerilog source file.
	SystemVerilog
)

func (k Kind) String() string {
	switch k {
	case Verilog:
		return "verilog"
	case SystemVerilog:
		return "systemverilog"
	default:
		return fmt.Sprintf("internal error: unknown file kind %d", k)
	}
}

// KindForLang returns the file [Kind] associated with the given LSP
// LanguageKind string from the LanguageID field of [lsp.TextDocumentItem],
// or UnknownKind if the language is not one we serve.
func KindForLang(langID lsp.LanguageKind) Kind {
	switch langID {
	case "verilog":
		return Verilog
	case "systemverilog":
		return SystemVerilog
	default:
		return UnknownKind
	}
}

// KindForPath guesses the file kind from its extension, for files observed
// outside didOpen (e.g. CLI usage).
func KindForPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".v", ".vh":
		return Verilog
	case ".sv", ".svh":
		return SystemVerilog
	default:
		return UnknownKind
	}
}
