// Package syntax defines the concrete syntax tree for Verilog module
// structure and the error-tolerant parser that produces it. The tree keeps
// every leaf token it consumed, so any subtree can be rendered back to its
// literal source text.
package syntax

import (
	"strings"

	"github.com/verilsp/verilsp/token"
)

// NodeKind tags the interior nodes of the tree.
type NodeKind int

const (
	KindSourceText NodeKind = iota
	KindModuleDeclaration
	KindModuleHeader
	KindParamDeclarationList
	KindPortDeclarationList
	KindPortParenGroup
	KindPortDeclaration
	KindPort
	KindPortReference
	KindDataType
	KindPackedDimensions
	KindDimensionRange
	KindExpression
	KindParamDeclaration
	KindDataDeclaration
	KindInstantiationType
	KindGateInstanceList
	KindGateInstance
	KindModuleItemList
	KindFunctionDeclaration
	KindTaskDeclaration
)

// Symbol is either a *Leaf or a *Node.
type Symbol interface {
	isSymbol()
}

// Leaf wraps a single token.
type Leaf struct {
	Tok token.Token
}

func (*Leaf) isSymbol() {}

// Node is an interior tree node.
type Node struct {
	Kind     NodeKind
	Children []Symbol
}

func (*Node) isSymbol() {}

func (n *Node) add(children ...Symbol) {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
}

// FindAll returns every node of the given kind in the subtree rooted at
// sym, in preorder, including sym itself when it matches.
func FindAll(sym Symbol, kind NodeKind) []*Node {
	var out []*Node
	var walk func(Symbol)
	walk = func(s Symbol) {
		n, ok := s.(*Node)
		if !ok {
			return
		}
		if n.Kind == kind {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(sym)
	return out
}

// FirstChild returns the first direct child node of the given kind.
func (n *Node) FirstChild(kind NodeKind) *Node {
	for _, c := range n.Children {
		if child, ok := c.(*Node); ok && child.Kind == kind {
			return child
		}
	}
	return nil
}

// FirstLeaf returns the first direct leaf child satisfying pred.
func (n *Node) FirstLeaf(pred func(token.Token) bool) *Leaf {
	for _, c := range n.Children {
		if leaf, ok := c.(*Leaf); ok && pred(leaf.Tok) {
			return leaf
		}
	}
	return nil
}

// LiteralText reconstructs a subtree's text by concatenating the literal
// text of all its leaf tokens in left-to-right order. This is the single
// text-flattening utility shared by width and expression rendering, so all
// call sites agree on formatting.
func LiteralText(sym Symbol) string {
	var sb strings.Builder
	var walk func(Symbol)
	walk = func(s Symbol) {
		switch s := s.(type) {
		case *Leaf:
			sb.WriteString(s.Tok.Text)
		case *Node:
			for _, c := range s.Children {
				walk(c)
			}
		}
	}
	walk(sym)
	return sb.String()
}

// Span returns the byte span covered by the subtree, from its first leaf's
// start to its last leaf's end. ok is false for subtrees with no leaves.
func Span(sym Symbol) (start, end int, ok bool) {
	var walk func(Symbol)
	walk = func(s Symbol) {
		switch s := s.(type) {
		case *Leaf:
			if !ok {
				start, end, ok = s.Tok.Offset, s.Tok.End(), true
				return
			}
			if s.Tok.Offset < start {
				start = s.Tok.Offset
			}
			if s.Tok.End() > end {
				end = s.Tok.End()
			}
		case *Node:
			for _, c := range s.Children {
				walk(c)
			}
		}
	}
	walk(sym)
	return start, end, ok
}
