package dispatch

import (
	"jdoc/internal/ast"
)

// CoverageCounts tallies documented declarations per element group.
type CoverageCounts struct {
	ClassDocumented  int
	ClassTotal       int
	MethodDocumented int
	MethodTotal      int
	FieldDocumented  int
	FieldTotal       int
}

func (c CoverageCounts) Documented() int {
	return c.ClassDocumented + c.MethodDocumented + c.FieldDocumented
}

func (c CoverageCounts) Total() int {
	return c.ClassTotal + c.MethodTotal + c.FieldTotal
}

// HasComment reports whether the element already owns a doc comment.
func HasComment(t *ast.Tree, elem ast.NodeID) bool {
	return existingComment(t, elem) != ""
}

// Measure walks the collect order and tallies documentation coverage.
func Measure(t *ast.Tree) CoverageCounts {
	var c CoverageCounts
	for _, id := range Collect(t) {
		n := t.Get(id)
		documented := HasComment(t, id)
		switch {
		case n.Kind.ClassLike():
			c.ClassTotal++
			if documented {
				c.ClassDocumented++
			}
		case n.Kind == ast.KindMethod || n.Kind == ast.KindConstructor:
			c.MethodTotal++
			if documented {
				c.MethodDocumented++
			}
		case n.Kind == ast.KindField || n.Kind == ast.KindEnumConstant:
			c.FieldTotal++
			if documented {
				c.FieldDocumented++
			}
		}
	}
	return c
}
