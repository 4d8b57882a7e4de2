package lsp

// Custom, non-standard methods exposed for hardware-aware tooling built on
// top of the server: verilsp/modulePorts, verilsp/moduleInfo and
// verilsp/allModuleInfo. The JSON shapes are part of the public surface and
// are consumed by editor extensions.

type ModulePortsParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type ModuleInfoParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type AllModuleInfoParams struct{}

// PortDescriptor describes a single module port. Width is either the literal
// "1" for scalar ports or the bracketed source text of the packed dimension,
// e.g. "[3:0]" or "[WIDTH-1:0]"; bounds are not numerically evaluated.
type PortDescriptor struct {
	Name string `json:"name"`
	// One of input, output, inout, or unknown (non-ANSI header where the
	// direction is declared separately in the body).
	Direction string `json:"direction"`
	Width     string `json:"width"`
}

// ParameterDescriptor describes a parameter or localparam declaration.
type ParameterDescriptor struct {
	// Type is "parameter" or "localparam".
	Type string `json:"type"`
	Name string `json:"name"`
	// Value is the initializer expression's literal source text; empty when
	// the declaration has no initializer.
	Value string `json:"value"`
	Line  int32  `json:"line"`
}

// InstantiationDescriptor describes one instance of a sub-module.
type InstantiationDescriptor struct {
	ModuleName string `json:"moduleName"`
	// InstanceName is empty (and Line zero) when the instance name token
	// cannot be resolved; the instantiation is still reported.
	InstanceName string `json:"instanceName"`
	Line         int32  `json:"line"`
}

// ModuleDescriptor is the structured description of one module declaration.
type ModuleDescriptor struct {
	Name  string           `json:"name"`
	Ports []PortDescriptor `json:"ports"`
	// Range and the two lists below are only populated by moduleInfo;
	// modulePorts responses carry name and ports only.
	Range          *Range                    `json:"range,omitempty"`
	Parameters     []ParameterDescriptor     `json:"parameters,omitempty"`
	Instantiations []InstantiationDescriptor `json:"instantiations,omitempty"`
}
