// Package synth produces the tag skeleton for a declaration from its
// signature facts. Synthesis is a pure function of its inputs: no tree
// access, no side effects, and it cannot fail for a well-formed signature.
package synth

import (
	"strings"

	"jdoc/internal/doc"
)

// Options carries the project-scoped settings synthesis consumes.
type Options struct {
	// Author is added as an @author tag on class-like declarations when
	// non-empty.
	Author string
}

// Synthesize builds the canonical-ordered doc model skeleton for the given
// signature. An element with no parameters, exceptions or generics yields a
// model with only a description placeholder.
func Synthesize(facts doc.SignatureFacts, opt Options) doc.Model {
	m := doc.Model{Description: description(facts)}

	for _, tp := range facts.TypeParams {
		m.Tags = append(m.Tags, doc.Tag{
			Kind: doc.TagTypeParam,
			Name: tp,
			Body: "the " + phrase(tp),
		})
	}
	for _, p := range facts.Params {
		m.Tags = append(m.Tags, doc.Tag{
			Kind: doc.TagParam,
			Name: p.Name,
			Body: "the " + phrase(p.Name),
		})
	}
	if facts.HasReturn {
		m.Tags = append(m.Tags, doc.Tag{
			Kind: doc.TagReturn,
			Body: returnBody(facts),
		})
	}
	for _, ex := range facts.Throws {
		m.Tags = append(m.Tags, doc.Tag{
			Kind: doc.TagThrows,
			Name: ex,
			Body: "the " + phrase(simpleType(ex)),
		})
	}
	if opt.Author != "" && facts.Kind.ClassLike() {
		m.Tags = append(m.Tags, doc.Tag{Kind: doc.TagAuthor, Body: opt.Author})
	}

	m.Normalize()
	return m
}

func description(facts doc.SignatureFacts) string {
	switch facts.Kind {
	case doc.ElemClass:
		return "The type " + sentence(facts.Name) + "."
	case doc.ElemInterface:
		return "The interface " + sentence(facts.Name) + "."
	case doc.ElemEnum:
		return "The enum " + sentence(facts.Name) + "."
	case doc.ElemConstructor:
		return "Instantiates a new " + sentence(facts.Name) + "."
	case doc.ElemMethod:
		return methodDescription(facts.Name)
	case doc.ElemField, doc.ElemEnumConstant:
		return "The " + phrase(facts.Name) + "."
	}
	return sentence(facts.Name) + "."
}

func methodDescription(name string) string {
	if prop, ok := accessorProperty(name); ok {
		verb := "Gets"
		if strings.HasPrefix(name, "set") {
			verb = "Sets"
		}
		return verb + " the " + phrase(prop) + "."
	}
	return sentence(name) + "."
}

// returnBody prefers the accessor property over the declared type: getName()
// documents "the name", everything else falls back to the return type.
func returnBody(facts doc.SignatureFacts) string {
	if prop, ok := accessorProperty(facts.Name); ok && !strings.HasPrefix(facts.Name, "set") {
		return "the " + phrase(prop)
	}
	if t := simpleType(facts.ReturnType); t != "" {
		return "the " + phrase(t)
	}
	return "the result"
}
