package merge

import (
	"testing"

	"jdoc/internal/doc"
	"jdoc/internal/synth"
)

func addFacts() doc.SignatureFacts {
	return doc.SignatureFacts{
		Kind: doc.ElemMethod,
		Name: "add",
		Params: []doc.Param{
			{Name: "a", Type: "int"},
			{Name: "b", Type: "int"},
		},
		ReturnType: "int",
		HasReturn:  true,
		Throws:     []string{"IOException"},
	}
}

func TestMergeNoExistingReturnsSynthesized(t *testing.T) {
	s := synth.Synthesize(addFacts(), synth.Options{})
	out := Merge(nil, s)
	if !out.Equal(&s) {
		t.Errorf("got %+v, want %+v", out, s)
	}
}

func TestMergeKeepsUserBodiesAndFillsGaps(t *testing.T) {
	// Existing comment documents only `a`; merge keeps its body, adds a
	// placeholder for `b`, keeps return and throws.
	existing := doc.Model{
		Description: "Adds numbers carefully.",
		Tags: []doc.Tag{
			{Kind: doc.TagParam, Name: "a", Body: "the left operand"},
		},
	}
	s := synth.Synthesize(addFacts(), synth.Options{})
	out := Merge(&existing, s)

	if out.Description != "Adds numbers carefully." {
		t.Errorf("description: %q", out.Description)
	}
	a, _ := out.Find(doc.TagParam, "a")
	if a.Body != "the left operand" {
		t.Errorf("param a body: %q", a.Body)
	}
	b, ok := out.Find(doc.TagParam, "b")
	if !ok || b.Body != "the b" {
		t.Errorf("param b: %+v, %v", b, ok)
	}
	if _, ok := out.First(doc.TagReturn); !ok {
		t.Errorf("return tag missing")
	}
	if _, ok := out.Find(doc.TagThrows, "IOException"); !ok {
		t.Errorf("throws tag missing")
	}
}

func TestMergeDropsStaleParamTags(t *testing.T) {
	existing := doc.Model{
		Tags: []doc.Tag{
			{Kind: doc.TagParam, Name: "removed", Body: "was here once"},
			{Kind: doc.TagParam, Name: "a", Body: "the a"},
		},
	}
	out := Merge(&existing, synth.Synthesize(addFacts(), synth.Options{}))

	if _, ok := out.Find(doc.TagParam, "removed"); ok {
		t.Errorf("stale param tag survived: %+v", out.Tags)
	}
}

func TestMergeKeepsExistingReturnBodyLiterally(t *testing.T) {
	// Return type changes are not reflected in a body the user wrote.
	existing := doc.Model{
		Tags: []doc.Tag{{Kind: doc.TagReturn, Body: "the sum as a long"}},
	}
	out := Merge(&existing, synth.Synthesize(addFacts(), synth.Options{}))
	ret, _ := out.First(doc.TagReturn)
	if ret.Body != "the sum as a long" {
		t.Errorf("return body: %q", ret.Body)
	}
}

func TestMergeDropsReturnWhenMethodBecomesVoid(t *testing.T) {
	existing := doc.Model{
		Tags: []doc.Tag{{Kind: doc.TagReturn, Body: "the sum"}},
	}
	facts := addFacts()
	facts.HasReturn = false
	facts.ReturnType = "void"
	out := Merge(&existing, synth.Synthesize(facts, synth.Options{}))
	if _, ok := out.First(doc.TagReturn); ok {
		t.Errorf("return tag should not survive a void signature")
	}
}

func TestMergeCanonicalOrderIgnoresExistingOrder(t *testing.T) {
	existing := doc.Model{
		Tags: []doc.Tag{
			{Kind: doc.TagThrows, Name: "IOException", Body: "on io failure"},
			{Kind: doc.TagReturn, Body: "the sum"},
			{Kind: doc.TagParam, Name: "b", Body: "the right"},
			{Kind: doc.TagParam, Name: "a", Body: "the left"},
		},
	}
	out := Merge(&existing, synth.Synthesize(addFacts(), synth.Options{}))

	wantKinds := []doc.TagKind{doc.TagParam, doc.TagParam, doc.TagReturn, doc.TagThrows}
	if len(out.Tags) != len(wantKinds) {
		t.Fatalf("tags: %+v", out.Tags)
	}
	for i, k := range wantKinds {
		if out.Tags[i].Kind != k {
			t.Errorf("tag %d: got %v, want %v", i, out.Tags[i].Kind, k)
		}
	}
	// Synthesized (signature) order within a kind, not the comment's.
	if out.Tags[0].Name != "a" || out.Tags[1].Name != "b" {
		t.Errorf("param order: %q, %q", out.Tags[0].Name, out.Tags[1].Name)
	}
}

func TestMergePreservesUnmanagedTags(t *testing.T) {
	existing := doc.Model{
		Tags: []doc.Tag{
			{Kind: doc.TagOther, Label: "see", Body: "Calculator#subtract"},
			{Kind: doc.TagOther, Label: "since", Body: "1.2"},
			{Kind: doc.TagAuthor, Body: "Jane"},
		},
	}
	out := Merge(&existing, synth.Synthesize(addFacts(), synth.Options{}))

	var others []doc.Tag
	for _, tag := range out.Tags {
		if tag.Kind == doc.TagOther {
			others = append(others, tag)
		}
	}
	if len(others) != 2 || others[0].Label != "see" || others[1].Label != "since" {
		t.Errorf("unmanaged tags: %+v", others)
	}
	author, ok := out.First(doc.TagAuthor)
	if !ok || author.Body != "Jane" {
		t.Errorf("author: %+v, %v", author, ok)
	}
}

func TestMergeIdempotent(t *testing.T) {
	existings := []*doc.Model{
		nil,
		{Description: "Adds."},
		{
			Description: "Adds numbers.",
			Tags: []doc.Tag{
				{Kind: doc.TagParam, Name: "a", Body: "left"},
				{Kind: doc.TagParam, Name: "stale", Body: "gone"},
				{Kind: doc.TagReturn, Body: "sum"},
				{Kind: doc.TagAuthor, Body: "Jane"},
				{Kind: doc.TagOther, Label: "see", Body: "Other"},
			},
		},
	}
	s := synth.Synthesize(addFacts(), synth.Options{})
	for i, existing := range existings {
		once := Merge(existing, s)
		twice := Merge(&once, s)
		if !twice.Equal(&once) {
			t.Errorf("case %d: merge not idempotent:\n once %+v\ntwice %+v", i, once, twice)
		}
	}
}
