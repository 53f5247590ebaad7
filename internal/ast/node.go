package ast

import "jdoc/internal/source"

// NodeID is a handle into a Tree's arena. The zero value is invalid.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

// Param is one formal parameter of a method or constructor declaration.
type Param struct {
	Name string
	Type string
}

// DeclInfo holds the signature shape extracted by the host parser for a
// declaration node.
type DeclInfo struct {
	Name       string
	TypeParams []string
	Params     []Param
	ReturnType string
	Throws     []string
	Modifiers  []string
}

// Visibility returns one of public, protected, private or package.
func (d *DeclInfo) Visibility() string {
	for _, v := range []string{"public", "protected", "private"} {
		if d.hasModifier(v) {
			return v
		}
	}
	return "package"
}

func (d *DeclInfo) hasModifier(mod string) bool {
	if d == nil {
		return false
	}
	for _, m := range d.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// Node is one tree node. A leaf (no children) contributes text to the
// rendered file: either its Span of the original content, or its Text when
// synthetic. An interior node's text is the concatenation of its children,
// which always partition the node's extent.
type Node struct {
	Kind      NodeKind
	Span      source.Span
	Text      string
	Synthetic bool
	Parent    NodeID
	Children  []NodeID
	Decl      *DeclInfo
}
