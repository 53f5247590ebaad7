// Package edit mutates the declaration tree: splicing doc comment nodes,
// keeping the comment/declaration whitespace separation intact, and
// re-indenting the spliced comment over a bounded byte range. All mutation
// entry points are meant to run inside a Transaction.
package edit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"jdoc/internal/ast"
	"jdoc/internal/diag"
	"jdoc/internal/source"
)

// Editor performs comment splicing on a tree. Structural-lookup failures
// during reformat are reported through Reporter at INFO severity and never
// escalate: by that point the comment text is already in the tree.
type Editor struct {
	Reporter diag.Reporter
}

// Place replaces or inserts the doc comment on elem. Replacement is
// delete-then-insert as two ordered steps, never an in-place edit of the
// old node.
func (e *Editor) Place(t *ast.Tree, elem ast.NodeID, comment string) error {
	n := t.Get(elem)
	if n == nil || !n.Kind.Declaration() {
		return fmt.Errorf("place: node %d is not a declaration", elem)
	}

	if first := t.FirstChild(elem); first.IsValid() && t.Get(first).Kind == ast.KindDocComment {
		if err := t.RemoveChild(elem, first); err != nil {
			return fmt.Errorf("place: remove existing comment: %w", err)
		}
	}
	commentID := t.Alloc(ast.Node{Kind: ast.KindDocComment, Synthetic: true, Text: comment})
	t.InsertChildAt(elem, 0, commentID)

	e.ensureWhitespaceAfterComment(t, elem)
	e.reformat(t, elem)
	return nil
}

// Remove deletes the element's doc comment, if any, together with the
// separator whitespace so no blank gutter line is left behind.
func (e *Editor) Remove(t *ast.Tree, elem ast.NodeID) error {
	n := t.Get(elem)
	if n == nil || !n.Kind.Declaration() {
		return fmt.Errorf("remove: node %d is not a declaration", elem)
	}
	first := t.FirstChild(elem)
	if !first.IsValid() || t.Get(first).Kind != ast.KindDocComment {
		return nil
	}
	if err := t.RemoveChild(elem, first); err != nil {
		return err
	}
	if next := t.FirstChild(elem); next.IsValid() && t.Get(next).Kind == ast.KindWhitespace {
		if err := t.RemoveChild(elem, next); err != nil {
			return err
		}
	}
	return nil
}

// ensureWhitespaceAfterComment inserts a newline node between the comment
// and the following token when none exists. Some declaration shapes
// (notably enum constants) do not separate a leading comment from the next
// token on their own.
func (e *Editor) ensureWhitespaceAfterComment(t *ast.Tree, elem ast.NodeID) {
	first := t.FirstChild(elem)
	if !first.IsValid() || t.Get(first).Kind != ast.KindDocComment {
		return
	}
	next := t.ChildAt(elem, 1)
	if next.IsValid() && t.Get(next).Kind == ast.KindWhitespace {
		return
	}
	ws := t.Alloc(ast.Node{Kind: ast.KindWhitespace, Synthetic: true, Text: "\n"})
	t.InsertChildAt(elem, 1, ws)
}

// reformat re-indents the freshly placed comment. The scope is bounded to
// [comment start, second child start + 1] in the rendered buffer rather
// than the whole file. A tree is re-rendered right before the offset work
// so bounds never point past real content.
func (e *Editor) reformat(t *ast.Tree, elem ast.NodeID) {
	buf, offsets := t.RenderWithOffsets()
	n := t.Get(elem)

	first := t.FirstChild(elem)
	if !first.IsValid() || t.Get(first).Kind != ast.KindDocComment {
		diag.ReportInfo(e.Reporter, diag.EditReformatSkipped, n.Span,
			"could not reformat javadoc: comment node not found")
		return
	}
	second := t.ChildAt(elem, 1)
	if !second.IsValid() {
		diag.ReportInfo(e.Reporter, diag.EditReformatSkipped, n.Span,
			"could not reformat javadoc: declaration has no second child")
		return
	}

	commentStart, okFirst := offsets[first]
	secondStart, okSecond := offsets[second]
	if !okFirst || !okSecond {
		diag.ReportInfo(e.Reporter, diag.EditReformatSkipped, n.Span,
			"could not reformat javadoc: node offsets unavailable")
		return
	}
	bounds, err := boundsSpan(t.File().ID, commentStart, secondStart+1)
	if err != nil {
		diag.ReportInfo(e.Reporter, diag.EditReformatSkipped, n.Span,
			fmt.Sprintf("could not reformat javadoc: %v", err))
		return
	}

	indent := lineIndent(buf[:bounds.Start], commentStart)
	t.SetLeafText(first, reindentComment(t.LeafText(first), indent))
	if ws := t.Get(second); ws.Kind == ast.KindWhitespace {
		t.SetLeafText(second, "\n"+indent)
	}
}

// boundsSpan builds the reformat range [start, end) with checked
// conversions.
func boundsSpan(file source.FileID, start, end int) (source.Span, error) {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		return source.Span{}, fmt.Errorf("offset overflow: %w", err)
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		return source.Span{}, fmt.Errorf("offset overflow: %w", err)
	}
	return source.Span{File: file, Start: s, End: e}, nil
}

// lineIndent returns the whitespace prefix of the line containing off,
// limited to the part before off.
func lineIndent(buf []byte, off int) string {
	lineStart := off
	for lineStart > 0 && buf[lineStart-1] != '\n' {
		lineStart--
	}
	for i := lineStart; i < off; i++ {
		if buf[i] != ' ' && buf[i] != '\t' {
			return ""
		}
	}
	return string(buf[lineStart:off])
}

// reindentComment aligns every continuation line of a comment block to the
// given indentation, with the conventional single space before the `*`.
func reindentComment(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimLeft(lines[i], " \t")
		if strings.HasPrefix(trimmed, "*") {
			lines[i] = indent + " " + trimmed
		} else {
			lines[i] = indent + trimmed
		}
	}
	return strings.Join(lines, "\n")
}
