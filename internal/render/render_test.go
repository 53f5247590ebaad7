package render

import (
	"strings"
	"testing"

	"jdoc/internal/doc"
)

func TestRenderFullComment(t *testing.T) {
	m := doc.Model{
		Description: "Adds two numbers.",
		Tags: []doc.Tag{
			{Kind: doc.TagParam, Name: "a", Body: "the a"},
			{Kind: doc.TagParam, Name: "b", Body: "the b"},
			{Kind: doc.TagReturn, Body: "the int"},
			{Kind: doc.TagThrows, Name: "IOException", Body: "the io exception"},
		},
	}

	got := Render(&m)
	want := strings.Join([]string{
		"/**",
		" * Adds two numbers.",
		" *",
		" * @param a the a",
		" * @param b the b",
		" * @return the int",
		" * @throws IOException the io exception",
		" */",
	}, "\n")
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderOmitsEmptyDescription(t *testing.T) {
	m := doc.Model{Tags: []doc.Tag{{Kind: doc.TagParam, Name: "a", Body: "the a"}}}
	got := Render(&m)
	want := "/**\n * @param a the a\n */"
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseStripsGutter(t *testing.T) {
	text := strings.Join([]string{
		"/**",
		"	 * Gets the name.",
		"	 *",
		"	 * @return the name",
		"	 */",
	}, "\n")

	m := Parse(text)
	if m.Description != "Gets the name." {
		t.Errorf("description: %q", m.Description)
	}
	if len(m.Tags) != 1 || m.Tags[0].Kind != doc.TagReturn || m.Tags[0].Body != "the name" {
		t.Errorf("tags: %+v", m.Tags)
	}
}

func TestParseTypeParamAndCustomTags(t *testing.T) {
	text := strings.Join([]string{
		"/**",
		" * The type Box.",
		" *",
		" * @param <T> the element type",
		" * @author Jane",
		" * @see Container",
		" */",
	}, "\n")

	m := Parse(text)
	if len(m.Tags) != 3 {
		t.Fatalf("expected 3 tags, got %d: %+v", len(m.Tags), m.Tags)
	}
	if m.Tags[0].Kind != doc.TagTypeParam || m.Tags[0].Name != "T" || m.Tags[0].Body != "the element type" {
		t.Errorf("type param tag: %+v", m.Tags[0])
	}
	if m.Tags[1].Kind != doc.TagAuthor || m.Tags[1].Body != "Jane" {
		t.Errorf("author tag: %+v", m.Tags[1])
	}
	if m.Tags[2].Kind != doc.TagOther || m.Tags[2].Label != "see" || m.Tags[2].Body != "Container" {
		t.Errorf("custom tag: %+v", m.Tags[2])
	}
}

func TestParseDropsDuplicateParamNames(t *testing.T) {
	text := "/**\n * @param a first\n * @param a second\n */"
	m := Parse(text)
	if len(m.Tags) != 1 || m.Tags[0].Body != "first" {
		t.Fatalf("expected first occurrence kept, got %+v", m.Tags)
	}
}

func TestParseMultiLineTagBody(t *testing.T) {
	text := strings.Join([]string{
		"/**",
		" * @param config the configuration,",
		" * never null",
		" */",
	}, "\n")
	m := Parse(text)
	if len(m.Tags) != 1 {
		t.Fatalf("tags: %+v", m.Tags)
	}
	if m.Tags[0].Body != "the configuration,\nnever null" {
		t.Errorf("body: %q", m.Tags[0].Body)
	}
}

func TestRoundTrip(t *testing.T) {
	models := []doc.Model{
		{Description: "The type Calculator."},
		{
			Description: "Adds two numbers.\nOverflow wraps.",
			Tags: []doc.Tag{
				{Kind: doc.TagTypeParam, Name: "T", Body: "the type parameter"},
				{Kind: doc.TagParam, Name: "a", Body: "the a"},
				{Kind: doc.TagParam, Name: "b", Body: "the b"},
				{Kind: doc.TagReturn, Body: "the int"},
				{Kind: doc.TagThrows, Name: "IOException", Body: "the io exception"},
				{Kind: doc.TagAuthor, Body: "Jane"},
				{Kind: doc.TagOther, Label: "since", Body: "1.2"},
			},
		},
		{
			Tags: []doc.Tag{
				{Kind: doc.TagParam, Name: "x", Body: "the x,\nmulti-line"},
			},
		},
	}

	for i := range models {
		m := models[i]
		back := Parse(Render(&m))
		if !back.Equal(&m) {
			t.Errorf("model %d: round trip drifted:\n got %+v\nwant %+v", i, back, m)
		}
	}
}
