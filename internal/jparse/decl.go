package jparse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"jdoc/internal/ast"
)

// declInfo extracts the signature shape the synthesizer needs from a
// declaration node. Field names follow the tree-sitter Java grammar.
func declInfo(kind ast.NodeKind, n *sitter.Node, content []byte) *ast.DeclInfo {
	d := &ast.DeclInfo{
		Modifiers: modifiers(n, content),
	}

	if name := n.ChildByFieldName("name"); name != nil {
		d.Name = name.Content(content)
	} else if kind == ast.KindField {
		// int x, y; names the field after its first declarator.
		if decl := firstChildOfType(n, "variable_declarator"); decl != nil {
			if name := decl.ChildByFieldName("name"); name != nil {
				d.Name = name.Content(content)
			}
		}
	}

	if tps := n.ChildByFieldName("type_parameters"); tps != nil {
		d.TypeParams = typeParamNames(tps, content)
	}
	if t := n.ChildByFieldName("type"); t != nil {
		d.ReturnType = t.Content(content)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		d.Params = formalParams(params, content)
	}
	if throws := firstChildOfType(n, "throws"); throws != nil {
		for i := 0; i < int(throws.NamedChildCount()); i++ {
			d.Throws = append(d.Throws, throws.NamedChild(i).Content(content))
		}
	}
	return d
}

func modifiers(n *sitter.Node, content []byte) []string {
	mods := firstChildOfType(n, "modifiers")
	if mods == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(mods.ChildCount()); i++ {
		child := mods.Child(i)
		switch child.Type() {
		case "annotation", "marker_annotation":
			continue
		}
		out = append(out, child.Content(content))
	}
	return out
}

func typeParamNames(tps *sitter.Node, content []byte) []string {
	var out []string
	for i := 0; i < int(tps.NamedChildCount()); i++ {
		tp := tps.NamedChild(i)
		if tp.Type() != "type_parameter" {
			continue
		}
		// The parameter name is the bare identifier; bounds and
		// annotations are siblings inside the same node.
		if id := firstChildOfType(tp, "identifier"); id != nil {
			out = append(out, id.Content(content))
		} else if id := firstChildOfType(tp, "type_identifier"); id != nil {
			out = append(out, id.Content(content))
		}
	}
	return out
}

func formalParams(params *sitter.Node, content []byte) []ast.Param {
	var out []ast.Param
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "formal_parameter":
			out = append(out, ast.Param{
				Name: fieldText(p, "name", content),
				Type: fieldText(p, "type", content),
			})
		case "spread_parameter":
			// Varargs: the declarator carries the name and the element
			// type is an unnamed positional child, not a "type" field.
			param := ast.Param{Type: spreadType(p, content) + "..."}
			if decl := firstChildOfType(p, "variable_declarator"); decl != nil {
				param.Name = fieldText(decl, "name", content)
			}
			out = append(out, param)
		}
	}
	return out
}

// spreadType returns the element type of a varargs parameter: the first
// named child that is neither the modifier list nor the declarator.
func spreadType(p *sitter.Node, content []byte) string {
	for i := 0; i < int(p.NamedChildCount()); i++ {
		child := p.NamedChild(i)
		switch child.Type() {
		case "modifiers", "variable_declarator", "annotation", "marker_annotation":
			continue
		}
		return child.Content(content)
	}
	return ""
}

func fieldText(n *sitter.Node, field string, content []byte) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(content)
}

func firstChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}
