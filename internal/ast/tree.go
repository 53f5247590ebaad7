package ast

import (
	"errors"

	"jdoc/internal/source"
)

// ErrNoSuchChild is returned when a child operation references a node that
// is not attached to the given parent.
var ErrNoSuchChild = errors.New("node is not a child of the given parent")

// Tree is the mutable declaration tree for one source file. Structure is
// mutated in place (comment splicing); node IDs stay stable across
// mutations. Handles must not be retained across generation requests.
type Tree struct {
	file *source.File
	// content is the file bytes the spans were computed against, frozen at
	// construction. Span leaves must keep reading these bytes even after a
	// committed write refreshes the FileSet content, otherwise every later
	// leaf in the same batch would index into shifted text.
	content []byte
	nodes   *Arena[Node]
	Root    NodeID
}

// NewTree creates a tree for the given file with an empty root covering the
// whole content.
func NewTree(file *source.File) *Tree {
	t := &Tree{
		file:    file,
		content: append([]byte(nil), file.Content...),
		nodes:   NewArena[Node](64),
	}
	t.Root = t.Alloc(Node{
		Kind: KindFile,
		Span: source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))},
	})
	return t
}

// File returns the source file this tree was built from.
func (t *Tree) File() *source.File {
	return t.file
}

// Alloc stores a node and returns its ID.
func (t *Tree) Alloc(n Node) NodeID {
	return NodeID(t.nodes.Allocate(n))
}

// Get returns the node for the given ID, or nil for an invalid ID.
func (t *Tree) Get(id NodeID) *Node {
	return t.nodes.Get(uint32(id))
}

// AddChild appends child to parent's children.
func (t *Tree) AddChild(parent, child NodeID) {
	p := t.Get(parent)
	p.Children = append(p.Children, child)
	t.Get(child).Parent = parent
}

// InsertChildAt splices child into parent's children at index idx.
func (t *Tree) InsertChildAt(parent NodeID, idx int, child NodeID) {
	p := t.Get(parent)
	if idx < 0 {
		idx = 0
	}
	if idx > len(p.Children) {
		idx = len(p.Children)
	}
	p.Children = append(p.Children, NoNodeID)
	copy(p.Children[idx+1:], p.Children[idx:])
	p.Children[idx] = child
	t.Get(child).Parent = parent
}

// RemoveChild detaches child from parent. The node itself stays allocated
// (arena storage is append-only) but no longer contributes to rendering.
func (t *Tree) RemoveChild(parent, child NodeID) error {
	p := t.Get(parent)
	for i, c := range p.Children {
		if c == child {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			t.Get(child).Parent = NoNodeID
			return nil
		}
	}
	return ErrNoSuchChild
}

// FirstChild returns parent's first child, or NoNodeID.
func (t *Tree) FirstChild(parent NodeID) NodeID {
	p := t.Get(parent)
	if p == nil || len(p.Children) == 0 {
		return NoNodeID
	}
	return p.Children[0]
}

// ChildAt returns the idx-th child of parent, or NoNodeID.
func (t *Tree) ChildAt(parent NodeID, idx int) NodeID {
	p := t.Get(parent)
	if p == nil || idx < 0 || idx >= len(p.Children) {
		return NoNodeID
	}
	return p.Children[idx]
}

// LeafText returns the text a leaf contributes to the rendered file.
func (t *Tree) LeafText(id NodeID) string {
	n := t.Get(id)
	if n == nil {
		return ""
	}
	if n.Synthetic {
		return n.Text
	}
	return string(t.content[n.Span.Start:n.Span.End])
}

// SetLeafText turns a leaf into a synthetic leaf with the given text.
func (t *Tree) SetLeafText(id NodeID, text string) {
	n := t.Get(id)
	n.Text = text
	n.Synthetic = true
}

// Render produces the file content the tree currently represents.
func (t *Tree) Render() []byte {
	buf, _ := t.RenderWithOffsets()
	return buf
}

// RenderWithOffsets renders the tree and reports the byte offset of every
// reachable node in the rendered buffer. Callers computing reformat bounds
// must use these offsets, never the original spans: prior mutations shift
// positions.
func (t *Tree) RenderWithOffsets() ([]byte, map[NodeID]int) {
	buf := make([]byte, 0, len(t.content))
	offsets := make(map[NodeID]int)
	buf = t.renderNode(t.Root, buf, offsets)
	return buf, offsets
}

func (t *Tree) renderNode(id NodeID, buf []byte, offsets map[NodeID]int) []byte {
	n := t.Get(id)
	if n == nil {
		return buf
	}
	offsets[id] = len(buf)
	if len(n.Children) == 0 {
		if n.Kind == KindFile {
			// An unparsed root renders its raw span.
			return append(buf, t.content[n.Span.Start:n.Span.End]...)
		}
		return append(buf, t.LeafText(id)...)
	}
	for _, c := range n.Children {
		buf = t.renderNode(c, buf, offsets)
	}
	return buf
}

// Snapshot captures the full node state for transactional rollback.
type Snapshot struct {
	nodes []Node
	root  NodeID
}

// Snapshot deep-copies the node storage.
func (t *Tree) Snapshot() *Snapshot {
	src := t.nodes.Slice()
	nodes := make([]Node, len(src))
	for i := range src {
		nodes[i] = src[i]
		nodes[i].Children = append([]NodeID(nil), src[i].Children...)
	}
	return &Snapshot{nodes: nodes, root: t.Root}
}

// Restore rolls the tree back to a previously captured snapshot.
func (t *Tree) Restore(s *Snapshot) {
	if s == nil {
		return
	}
	arena := NewArena[Node](uint(len(s.nodes)))
	for i := range s.nodes {
		n := s.nodes[i]
		n.Children = append([]NodeID(nil), s.nodes[i].Children...)
		arena.Allocate(n)
	}
	t.nodes = arena
	t.Root = s.root
}

// Walk visits id and its descendants depth-first, in child order.
func (t *Tree) Walk(id NodeID, visit func(NodeID, *Node) bool) {
	n := t.Get(id)
	if n == nil || !visit(id, n) {
		return
	}
	for _, c := range n.Children {
		t.Walk(c, visit)
	}
}
