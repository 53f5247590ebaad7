package jparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"jdoc/internal/ast"
	"jdoc/internal/diag"
	"jdoc/internal/source"
)

// DefaultMaxFileSize bounds the source files the parser will accept.
const DefaultMaxFileSize = 10 * 1024 * 1024

type Options struct {
	MaxFileSize int
	Reporter    diag.Reporter
}

func DefaultOptions() Options {
	return Options{MaxFileSize: DefaultMaxFileSize, Reporter: diag.NopReporter{}}
}

// Parser turns Java source into the mutable declaration tree. Each Parse
// call creates its own tree-sitter parser, so a Parser is safe for
// concurrent use.
type Parser struct {
	opts Options
}

func NewParser(opts Options) *Parser {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	return &Parser{opts: opts}
}

// Parse builds the declaration tree for f. The resulting tree is lossless:
// rendering it unchanged reproduces f.Content byte for byte. Syntax errors
// do not fail the parse; tree-sitter recovers and unparsed regions stay
// opaque text.
func (p *Parser) Parse(ctx context.Context, f *source.File) (*ast.Tree, error) {
	if f == nil {
		return nil, fmt.Errorf("parse: nil file")
	}
	if len(f.Content) > p.opts.MaxFileSize {
		err := fmt.Errorf("parse %s: file size %d exceeds limit %d", f.Path, len(f.Content), p.opts.MaxFileSize)
		diag.ReportError(p.opts.Reporter, diag.ParseFailed, source.Span{File: f.ID}, err.Error())
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	st, err := parser.ParseCtx(ctx, nil, f.Content)
	if err != nil {
		diag.ReportError(p.opts.Reporter, diag.ParseFailed, source.Span{File: f.ID}, err.Error())
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	defer st.Close()

	if st.RootNode().HasError() {
		diag.ReportWarning(p.opts.Reporter, diag.ParseSyntaxErrors, source.Span{File: f.ID},
			fmt.Sprintf("%s: syntax errors; regions that did not parse stay untouched", f.Path))
	}

	t := ast.NewTree(f)
	b := &builder{tree: t, content: f.Content, file: f.ID}
	b.buildInto(t.Root, st.RootNode(), 0, uint32(len(f.Content)))

	if !b.sawDecl {
		diag.ReportInfo(p.opts.Reporter, diag.ParseNoDeclarations,
			source.Span{File: f.ID}, fmt.Sprintf("%s: no documentable declarations", f.Path))
	}
	return t, nil
}

// builder splices declaration elements out of the tree-sitter parse while
// keeping every byte of the original content owned by exactly one leaf.
type builder struct {
	tree    *ast.Tree
	content []byte
	file    source.FileID
	sawDecl bool
}

// member pairs a declaration node with the javadoc comment that documents
// it, when one immediately precedes it.
type member struct {
	kind ast.NodeKind
	decl *sitter.Node
	doc  *sitter.Node
}

// buildInto partitions [from, to) of the content among parent's children:
// one element node per declaration found among container's members, opaque
// text leaves for everything in between.
func (b *builder) buildInto(parent ast.NodeID, container *sitter.Node, from, to uint32) {
	cursor := from
	for _, m := range b.scanMembers(container) {
		start := m.decl.StartByte()
		if m.doc != nil {
			start = m.doc.StartByte()
		}
		if start < cursor || m.decl.EndByte() > to {
			// Recovered parse placed the node outside our slice; keep
			// the region opaque rather than corrupt the partition.
			continue
		}
		if start > cursor {
			b.textLeaf(parent, cursor, start)
		}
		b.buildElement(parent, m)
		cursor = m.decl.EndByte()
	}
	if cursor < to {
		b.textLeaf(parent, cursor, to)
	}
}

// buildElement allocates the element node for m. Layout: an optional
// KindDocComment leaf, then a KindWhitespace leaf separating it from the
// declaration, then the declaration's own partition.
func (b *builder) buildElement(parent ast.NodeID, m member) {
	b.sawDecl = true
	span := source.Span{File: b.file, Start: m.decl.StartByte(), End: m.decl.EndByte()}
	if m.doc != nil {
		span = span.Cover(source.Span{File: b.file, Start: m.doc.StartByte(), End: m.doc.EndByte()})
	}
	elem := b.tree.Alloc(ast.Node{
		Kind: m.kind,
		Span: span,
		Decl: declInfo(m.kind, m.decl, b.content),
	})
	b.tree.AddChild(parent, elem)

	if m.doc != nil {
		doc := b.tree.Alloc(ast.Node{
			Kind: ast.KindDocComment,
			Span: source.Span{File: b.file, Start: m.doc.StartByte(), End: m.doc.EndByte()},
		})
		b.tree.AddChild(elem, doc)
		ws := b.tree.Alloc(ast.Node{
			Kind: ast.KindWhitespace,
			Span: source.Span{File: b.file, Start: m.doc.EndByte(), End: m.decl.StartByte()},
		})
		b.tree.AddChild(elem, ws)
	}

	if m.kind.ClassLike() {
		body := m.decl.ChildByFieldName("body")
		b.buildInto(elem, body, m.decl.StartByte(), m.decl.EndByte())
		return
	}
	b.textLeaf(elem, m.decl.StartByte(), m.decl.EndByte())
}

func (b *builder) textLeaf(parent ast.NodeID, from, to uint32) {
	if from >= to {
		return
	}
	leaf := b.tree.Alloc(ast.Node{
		Kind: ast.KindText,
		Span: source.Span{File: b.file, Start: from, End: to},
	})
	b.tree.AddChild(parent, leaf)
}

// scanMembers walks container's named children in source order and returns
// the documentable declarations, each with its preceding javadoc when the
// gap between them is pure whitespace. Enum bodies interleave constants and
// an enum_body_declarations section; both contribute members in order.
func (b *builder) scanMembers(container *sitter.Node) []member {
	if container == nil {
		return nil
	}
	var out []member
	var pendingDoc *sitter.Node
	n := int(container.NamedChildCount())
	for i := 0; i < n; i++ {
		child := container.NamedChild(i)
		switch child.Type() {
		case "block_comment":
			if b.isJavadoc(child) {
				pendingDoc = child
			} else {
				pendingDoc = nil
			}
			continue
		case "enum_body_declarations":
			// Constants before it already emitted; its own members keep
			// source order because it follows them.
			inner := b.scanMembers(child)
			if pendingDoc != nil && len(inner) > 0 && inner[0].doc == nil &&
				b.whitespaceBetween(pendingDoc.EndByte(), inner[0].declStart()) {
				inner[0].doc = pendingDoc
			}
			out = append(out, inner...)
			pendingDoc = nil
			continue
		}
		kind, ok := declKind(child.Type())
		if !ok {
			pendingDoc = nil
			continue
		}
		m := member{kind: kind, decl: child}
		if pendingDoc != nil && b.whitespaceBetween(pendingDoc.EndByte(), child.StartByte()) {
			m.doc = pendingDoc
		}
		pendingDoc = nil
		out = append(out, m)
	}
	return out
}

func (m member) declStart() uint32 { return m.decl.StartByte() }

func (b *builder) isJavadoc(n *sitter.Node) bool {
	text := n.Content(b.content)
	return strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***")
}

func (b *builder) whitespaceBetween(from, to uint32) bool {
	if from > to || int(to) > len(b.content) {
		return false
	}
	return len(strings.TrimSpace(string(b.content[from:to]))) == 0
}

func declKind(nodeType string) (ast.NodeKind, bool) {
	switch nodeType {
	case "class_declaration":
		return ast.KindClass, true
	case "interface_declaration":
		return ast.KindInterface, true
	case "enum_declaration":
		return ast.KindEnum, true
	case "method_declaration":
		return ast.KindMethod, true
	case "constructor_declaration":
		return ast.KindConstructor, true
	case "field_declaration", "constant_declaration":
		return ast.KindField, true
	case "enum_constant":
		return ast.KindEnumConstant, true
	}
	return 0, false
}
