package doc

import "sort"

// TagKind classifies one structured annotation inside a doc comment.
type TagKind uint8

const (
	// TagTypeParam documents a generic type parameter (@param <T>).
	TagTypeParam TagKind = iota
	// TagParam documents a formal parameter, keyed by its name.
	TagParam
	// TagReturn documents the return value. At most one per model.
	TagReturn
	// TagThrows documents a declared exception, keyed by the type name.
	TagThrows
	TagAuthor
	// TagOther carries any tag the generator does not manage (@see,
	// @since, @deprecated, ...). Preserved verbatim across regeneration.
	TagOther
)

func (k TagKind) String() string {
	switch k {
	case TagTypeParam:
		return "typeparam"
	case TagParam:
		return "param"
	case TagReturn:
		return "return"
	case TagThrows:
		return "throws"
	case TagAuthor:
		return "author"
	case TagOther:
		return "other"
	}
	return "unknown"
}

// Keyed reports whether tags of this kind are identified by Name.
// Keyed tags must be unique per name within a model.
func (k TagKind) Keyed() bool {
	return k == TagTypeParam || k == TagParam || k == TagThrows
}

// rank defines the canonical tag order. Regeneration is order-stable
// because Normalize always sorts by rank, never by input order.
func (k TagKind) rank() int {
	switch k {
	case TagTypeParam:
		return 0
	case TagParam:
		return 1
	case TagReturn:
		return 2
	case TagThrows:
		return 3
	case TagAuthor:
		return 4
	default:
		return 5
	}
}

// Tag is one structured annotation. Name is the parameter, type-parameter or
// exception identifier for keyed kinds and empty otherwise. Label is the
// literal tag word and is only meaningful for TagOther.
type Tag struct {
	Kind  TagKind
	Label string
	Name  string
	Body  string
}

// Word returns the javadoc tag word used when rendering.
func (t Tag) Word() string {
	switch t.Kind {
	case TagTypeParam, TagParam:
		return "param"
	case TagReturn:
		return "return"
	case TagThrows:
		return "throws"
	case TagAuthor:
		return "author"
	default:
		return t.Label
	}
}

// Model is the structured representation of one documentation comment.
type Model struct {
	Description string
	Tags        []Tag
}

// Find returns the first tag with the given kind and name.
func (m *Model) Find(kind TagKind, name string) (Tag, bool) {
	for _, t := range m.Tags {
		if t.Kind == kind && t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// First returns the first tag of the given kind regardless of name.
func (m *Model) First(kind TagKind) (Tag, bool) {
	for _, t := range m.Tags {
		if t.Kind == kind {
			return t, true
		}
	}
	return Tag{}, false
}

// Normalize sorts tags into canonical order. The sort is stable, so tags of
// the same kind keep their relative (declaration) order.
func (m *Model) Normalize() {
	sort.SliceStable(m.Tags, func(i, j int) bool {
		return m.Tags[i].Kind.rank() < m.Tags[j].Kind.rank()
	})
}

// Equal reports semantic equality: same description and tag-for-tag equal
// sequences.
func (m *Model) Equal(other *Model) bool {
	if m.Description != other.Description {
		return false
	}
	if len(m.Tags) != len(other.Tags) {
		return false
	}
	for i := range m.Tags {
		if m.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}
