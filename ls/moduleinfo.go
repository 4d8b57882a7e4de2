package ls

import (
	"github.com/verilsp/verilsp/lsp"
	"github.com/verilsp/verilsp/syntax"
	"github.com/verilsp/verilsp/text"
)

// builtinTypes are the declaration type names that are nets or variables
// rather than instantiated modules.
var builtinTypes = map[string]bool{
	"reg": true, "wire": true, "logic": true,
	"integer": true, "real": true, "time": true,
}

// portWidth renders a port's packed dimension as "[hi:lo]" from the
// literal bound texts, or "1" for scalar ports. Bounds are not evaluated;
// "[WIDTH-1:0]" stays symbolic.
func portWidth(decl *syntax.Node) string {
	r := syntax.PortDeclarationDimensionRange(decl)
	if r == nil {
		return "1"
	}
	left, right := syntax.DimensionRangeBounds(r)
	if left == nil || right == nil {
		return "1"
	}
	return "[" + syntax.LiteralText(left) + ":" + syntax.LiteralText(right) + "]"
}

func portsFromDeclarations(list *syntax.Node) []lsp.PortDescriptor {
	var ports []lsp.PortDescriptor
	for _, decl := range syntax.PortDeclarations(list) {
		id := syntax.PortDeclarationIdentifier(decl)
		if id == nil {
			continue
		}
		direction := "input" // default when the declaration omits it
		if dir := syntax.PortDeclarationDirection(decl); dir != nil {
			direction = dir.Tok.Text
		}
		ports = append(ports, lsp.PortDescriptor{
			Name:      id.Tok.Text,
			Direction: direction,
			Width:     portWidth(decl),
		})
	}
	return ports
}

// modulePortList resolves a module's ports with a declaration-first
// strategy: the ANSI declaration list, then declarations found directly
// in the paren group. withReferences additionally falls back to bare
// non-ANSI port references, whose direction and width are unresolvable
// from the header alone.
func modulePortList(mod *syntax.Node, withReferences bool) []lsp.PortDescriptor {
	ports := []lsp.PortDescriptor{}
	if list := syntax.ModulePortDeclarationList(mod); list != nil {
		ports = append(ports, portsFromDeclarations(list)...)
	}
	group := syntax.ModulePortParenGroup(mod)
	if group == nil || len(ports) > 0 {
		return ports
	}
	ports = append(ports, portsFromDeclarations(group)...)
	if !withReferences || len(ports) > 0 {
		return ports
	}
	for _, port := range syntax.Ports(group) {
		ref := syntax.PortReferenceIdentifier(port)
		if ref == nil {
			continue
		}
		ports = append(ports, lsp.PortDescriptor{
			Name:      ref.Tok.Text,
			Direction: "unknown",
			Width:     "1",
		})
	}
	return ports
}

// GetModulePorts lists each module of the last good snapshot with its
// resolved ports, including the bare-reference fallback for non-ANSI
// headers.
func GetModulePorts(tracker *BufferTracker) []lsp.ModuleDescriptor {
	lastGood := tracker.LastGood()
	if lastGood == nil {
		return nil
	}
	var result []lsp.ModuleDescriptor
	for _, mod := range syntax.Modules(lastGood.Tree.Root) {
		name := syntax.ModuleName(mod)
		if name == nil {
			continue
		}
		result = append(result, lsp.ModuleDescriptor{
			Name:  name.Tok.Text,
			Ports: modulePortList(mod, true),
		})
	}
	return result
}

func moduleParameters(mod *syntax.Node, st *text.Structure) []lsp.ParameterDescriptor {
	var params []lsp.ParameterDescriptor
	for _, decl := range syntax.ParamDeclarations(mod) {
		name := syntax.ParamDeclarationName(decl)
		if name == nil {
			continue
		}
		value := ""
		if expr := syntax.ParamDeclarationValue(decl); expr != nil {
			if start, end, ok := syntax.Span(expr); ok {
				value = st.Contents()[start:end]
			}
		}
		params = append(params, lsp.ParameterDescriptor{
			Type:  syntax.ParamDeclarationKeyword(decl),
			Name:  name.Tok.Text,
			Value: value,
			Line:  st.LineColAt(name.Tok.Offset).Line,
		})
	}
	return params
}

func moduleInstantiations(mod *syntax.Node, st *text.Structure) []lsp.InstantiationDescriptor {
	items := syntax.ModuleItemList(mod)
	if items == nil {
		return nil
	}
	var insts []lsp.InstantiationDescriptor
	for _, decl := range syntax.DataDeclarations(items) {
		typeName, ok := syntax.DataDeclarationTypeName(decl)
		if !ok || builtinTypes[typeName] {
			continue
		}
		gates := syntax.GateInstances(decl)
		if gates == nil {
			continue
		}
		for _, gate := range gates {
			desc := lsp.InstantiationDescriptor{ModuleName: typeName}
			if tok, ok := syntax.GateInstanceName(gate); ok {
				desc.InstanceName = tok.Text
				desc.Line = st.LineColAt(tok.Offset).Line
			}
			insts = append(insts, desc)
		}
	}
	return insts
}

// GetModuleInfo returns the full structured description of each module in
// the last good snapshot: ports, range, parameters and instantiations.
func GetModuleInfo(tracker *BufferTracker) []lsp.ModuleDescriptor {
	lastGood := tracker.LastGood()
	if lastGood == nil {
		return nil
	}
	st := lastGood.Structure
	var result []lsp.ModuleDescriptor
	for _, mod := range syntax.Modules(lastGood.Tree.Root) {
		name := syntax.ModuleName(mod)
		if name == nil {
			continue
		}
		desc := lsp.ModuleDescriptor{
			Name: name.Tok.Text,
			// declaration-site ports only; the reference fallback
			// would report unknowns the body can still resolve
			Ports:          modulePortList(mod, false),
			Parameters:     moduleParameters(mod, st),
			Instantiations: moduleInstantiations(mod, st),
		}
		if _, end, ok := syntax.Span(mod); ok {
			r := lsp.Range{
				Start: st.LineColAt(name.Tok.Offset),
				End:   st.LineColAt(end),
			}
			desc.Range = &r
		}
		result = append(result, desc)
	}
	return result
}

// GetAllModuleInfo collects module descriptions across every open buffer,
// keyed by URI. Buffers without modules are left out.
func GetAllModuleInfo(container *TrackerContainer) map[lsp.DocumentURI][]lsp.ModuleDescriptor {
	result := make(map[lsp.DocumentURI][]lsp.ModuleDescriptor)
	for _, uri := range container.AllURIs() {
		info := GetModuleInfo(container.Get(uri))
		if len(info) > 0 {
			result[uri] = info
		}
	}
	return result
}
