package syntax

import "github.com/verilsp/verilsp/token"

// Accessors over the module-structure parts of the tree. All of them
// return nil (or a zero token with ok=false) when the queried shape is
// absent, so callers can chain lookups over partially recovered trees.

// Modules returns every module declaration in the tree in source order.
func Modules(root *Node) []*Node {
	if root == nil {
		return nil
	}
	return FindAll(root, KindModuleDeclaration)
}

// ModuleName returns the declared name leaf of a module, the identifier
// following the module keyword.
func ModuleName(module *Node) *Leaf {
	header := module.FirstChild(KindModuleHeader)
	if header == nil {
		return nil
	}
	return header.FirstLeaf(token.Token.IsIdentifier)
}

// ModulePortDeclarationList returns the ANSI port declaration list of a
// module header, if the module declares its ports there.
func ModulePortDeclarationList(module *Node) *Node {
	header := module.FirstChild(KindModuleHeader)
	if header == nil {
		return nil
	}
	group := header.FirstChild(KindPortParenGroup)
	if group == nil {
		return nil
	}
	return group.FirstChild(KindPortDeclarationList)
}

// ModulePortParenGroup returns the parenthesized port group of a module
// header.
func ModulePortParenGroup(module *Node) *Node {
	header := module.FirstChild(KindModuleHeader)
	if header == nil {
		return nil
	}
	return header.FirstChild(KindPortParenGroup)
}

// ModuleItemList returns the body of a module.
func ModuleItemList(module *Node) *Node {
	return module.FirstChild(KindModuleItemList)
}

// PortDeclarations returns every port declaration under sym.
func PortDeclarations(sym Symbol) []*Node {
	return FindAll(sym, KindPortDeclaration)
}

// PortDeclarationIdentifier returns the declared name leaf of a port
// declaration.
func PortDeclarationIdentifier(decl *Node) *Leaf {
	return decl.FirstLeaf(token.Token.IsIdentifier)
}

// PortDeclarationDirection returns the direction keyword leaf of a port
// declaration, or nil when the declaration omits it.
func PortDeclarationDirection(decl *Node) *Leaf {
	return decl.FirstLeaf(token.Token.IsDirection)
}

// PortDeclarationDimensionRange returns the first packed dimension range
// of a port declaration's data type. Unpacked dimensions after the port
// name do not participate.
func PortDeclarationDimensionRange(decl *Node) *Node {
	dt := decl.FirstChild(KindDataType)
	if dt == nil {
		return nil
	}
	dims := dt.FirstChild(KindPackedDimensions)
	if dims == nil {
		return nil
	}
	return dims.FirstChild(KindDimensionRange)
}

// DimensionRangeBounds returns the left and right bound expressions of a
// dimension range.
func DimensionRangeBounds(r *Node) (left, right *Node) {
	for _, c := range r.Children {
		n, ok := c.(*Node)
		if !ok || n.Kind != KindExpression {
			continue
		}
		if left == nil {
			left = n
		} else if right == nil {
			right = n
		}
	}
	return left, right
}

// Ports returns every non-ANSI port under sym.
func Ports(sym Symbol) []*Node {
	return FindAll(sym, KindPort)
}

// PortReferenceIdentifier returns the referenced name leaf of a non-ANSI
// port.
func PortReferenceIdentifier(port *Node) *Leaf {
	ref := port.FirstChild(KindPortReference)
	if ref == nil {
		return nil
	}
	return ref.FirstLeaf(token.Token.IsIdentifier)
}

// ParamDeclarations returns every parameter declaration under sym, both
// from parameter port lists and from the module body.
func ParamDeclarations(sym Symbol) []*Node {
	return FindAll(sym, KindParamDeclaration)
}

// ParamDeclarationKeyword returns "parameter" or "localparam". The
// keyword is optional in a parameter port list and defaults to
// "parameter".
func ParamDeclarationKeyword(decl *Node) string {
	kw := decl.FirstLeaf(func(t token.Token) bool {
		return t.Kind == token.Keyword && (t.Text == "parameter" || t.Text == "localparam")
	})
	if kw == nil {
		return "parameter"
	}
	return kw.Tok.Text
}

// ParamDeclarationName returns the declared name leaf.
func ParamDeclarationName(decl *Node) *Leaf {
	return decl.FirstLeaf(token.Token.IsIdentifier)
}

// ParamDeclarationValue returns the initializer expression, or nil when
// the parameter has none.
func ParamDeclarationValue(decl *Node) *Node {
	return decl.FirstChild(KindExpression)
}

// DataDeclarations returns every data declaration (net declarations and
// module instantiations) under sym.
func DataDeclarations(sym Symbol) []*Node {
	return FindAll(sym, KindDataDeclaration)
}

// DataDeclarationTypeName returns the type name text of a data
// declaration: the instantiated module for instantiations, the builtin
// keyword for net declarations.
func DataDeclarationTypeName(decl *Node) (string, bool) {
	it := decl.FirstChild(KindInstantiationType)
	if it == nil {
		return "", false
	}
	leaf := it.FirstLeaf(func(t token.Token) bool {
		return t.Kind == token.Identifier || t.Kind == token.Keyword
	})
	if leaf == nil {
		return "", false
	}
	return leaf.Tok.Text, true
}

// GateInstances returns the instances of a data declaration, or nil for
// declarations without an instance list.
func GateInstances(decl *Node) []*Node {
	list := decl.FirstChild(KindGateInstanceList)
	if list == nil {
		return nil
	}
	return FindAll(list, KindGateInstance)
}

// GateInstanceName returns the instance name token. ok is false for
// anonymous instances.
func GateInstanceName(inst *Node) (token.Token, bool) {
	leaf := inst.FirstLeaf(token.Token.IsIdentifier)
	if leaf == nil {
		return token.Token{}, false
	}
	return leaf.Tok, true
}

// RoutineName returns the declared name of a function or task
// declaration.
func RoutineName(n *Node) (token.Token, bool) {
	leaf := n.FirstLeaf(token.Token.IsIdentifier)
	if leaf == nil {
		return token.Token{}, false
	}
	return leaf.Tok, true
}
