package doc

import "testing"

func TestNormalizeCanonicalOrder(t *testing.T) {
	m := Model{
		Description: "Adds two numbers.",
		Tags: []Tag{
			{Kind: TagThrows, Name: "IOException", Body: "the io exception"},
			{Kind: TagOther, Label: "see", Body: "Calculator"},
			{Kind: TagReturn, Body: "the int"},
			{Kind: TagParam, Name: "b", Body: "the b"},
			{Kind: TagTypeParam, Name: "T", Body: "the type parameter"},
			{Kind: TagParam, Name: "a", Body: "the a"},
		},
	}
	m.Normalize()

	wantKinds := []TagKind{TagTypeParam, TagParam, TagParam, TagReturn, TagThrows, TagOther}
	for i, k := range wantKinds {
		if m.Tags[i].Kind != k {
			t.Fatalf("tag %d: got kind %v, want %v", i, m.Tags[i].Kind, k)
		}
	}
	// Stable sort keeps declaration order within a kind.
	if m.Tags[1].Name != "b" || m.Tags[2].Name != "a" {
		t.Errorf("param order not stable: %q, %q", m.Tags[1].Name, m.Tags[2].Name)
	}
}

func TestFindKeyedTag(t *testing.T) {
	m := Model{Tags: []Tag{
		{Kind: TagParam, Name: "a", Body: "the a"},
		{Kind: TagParam, Name: "b", Body: "the b"},
	}}

	tag, ok := m.Find(TagParam, "b")
	if !ok || tag.Body != "the b" {
		t.Fatalf("Find(param, b) = %v, %v", tag, ok)
	}
	if _, ok := m.Find(TagParam, "c"); ok {
		t.Errorf("Find(param, c) should miss")
	}
}

func TestTagWord(t *testing.T) {
	cases := []struct {
		tag  Tag
		want string
	}{
		{Tag{Kind: TagTypeParam, Name: "T"}, "param"},
		{Tag{Kind: TagParam, Name: "a"}, "param"},
		{Tag{Kind: TagReturn}, "return"},
		{Tag{Kind: TagThrows, Name: "IOException"}, "throws"},
		{Tag{Kind: TagAuthor}, "author"},
		{Tag{Kind: TagOther, Label: "deprecated"}, "deprecated"},
	}
	for _, c := range cases {
		if got := c.tag.Word(); got != c.want {
			t.Errorf("Word(%v) = %q, want %q", c.tag.Kind, got, c.want)
		}
	}
}
