package dispatch

import (
	"jdoc/internal/ast"
	"jdoc/internal/doc"
)

// Collect returns the processing order for a file: every class-like
// declaration depth-first (outer before inner), and after each one its
// direct member methods and constructors, then its fields and enum
// constants, in declaration order.
func Collect(t *ast.Tree) []ast.NodeID {
	var classes []ast.NodeID
	t.Walk(t.Root, func(id ast.NodeID, n *ast.Node) bool {
		if n.Kind.ClassLike() {
			classes = append(classes, id)
		}
		return true
	})

	var order []ast.NodeID
	for _, cls := range classes {
		order = append(order, cls)
		for _, id := range t.Get(cls).Children {
			switch t.Get(id).Kind {
			case ast.KindMethod, ast.KindConstructor:
				order = append(order, id)
			}
		}
		for _, id := range t.Get(cls).Children {
			switch t.Get(id).Kind {
			case ast.KindField, ast.KindEnumConstant:
				order = append(order, id)
			}
		}
	}
	return order
}

// Classify maps a tree node onto the generator's element kind. Unknown
// kinds report false; the dispatcher records the skip and moves on.
func Classify(n *ast.Node) (doc.ElementKind, bool) {
	switch n.Kind {
	case ast.KindClass:
		return doc.ElemClass, true
	case ast.KindInterface:
		return doc.ElemInterface, true
	case ast.KindEnum:
		return doc.ElemEnum, true
	case ast.KindMethod:
		return doc.ElemMethod, true
	case ast.KindConstructor:
		return doc.ElemConstructor, true
	case ast.KindField:
		return doc.ElemField, true
	case ast.KindEnumConstant:
		return doc.ElemEnumConstant, true
	}
	return 0, false
}

// factsOf snapshots the declaration's signature for synthesis. Computed
// fresh per request; the declaration may change between runs.
func factsOf(kind doc.ElementKind, d *ast.DeclInfo) doc.SignatureFacts {
	facts := doc.SignatureFacts{Kind: kind, Name: d.Name}
	facts.TypeParams = append(facts.TypeParams, d.TypeParams...)
	for _, p := range d.Params {
		facts.Params = append(facts.Params, doc.Param{Name: p.Name, Type: p.Type})
	}
	facts.Throws = append(facts.Throws, d.Throws...)
	if kind == doc.ElemMethod && d.ReturnType != "" && d.ReturnType != "void" {
		facts.ReturnType = d.ReturnType
		facts.HasReturn = true
	}
	return facts
}
