// Package merge reconciles a freshly synthesized doc model with whatever
// comment already documents the element, so manual edits survive
// regeneration while the tag set tracks the current signature.
package merge

import (
	"strings"

	"jdoc/internal/doc"
)

// Merge combines an existing model (nil when the element has no comment)
// with the synthesized skeleton.
//
// Rules:
//   - description: existing kept verbatim when non-empty
//   - name-keyed kinds (type-param, param, throws): union of names driven
//     by the synthesized side; names present in both keep the existing
//     body, names only in synthesized get the placeholder, names only in
//     existing are stale and dropped
//   - return: present iff synthesized has it; body from existing when the
//     existing comment had one (kept literally even if the return type
//     changed)
//   - author: existing wins, synthesized fills in
//   - unmanaged tags (@see, @since, ...): preserved in their original
//     relative order
//
// Output ordering is always canonical, never the existing comment's. The
// function is idempotent: Merge(Merge(E,S), S) == Merge(E,S).
func Merge(existing *doc.Model, synthesized doc.Model) doc.Model {
	if existing == nil {
		out := synthesized
		out.Normalize()
		return out
	}

	out := doc.Model{Description: synthesized.Description}
	if strings.TrimSpace(existing.Description) != "" {
		out.Description = existing.Description
	}

	for _, tag := range synthesized.Tags {
		switch {
		case tag.Kind.Keyed():
			if prior, ok := existing.Find(tag.Kind, tag.Name); ok {
				tag.Body = prior.Body
			}
		case tag.Kind == doc.TagReturn:
			if prior, ok := existing.First(doc.TagReturn); ok {
				tag.Body = prior.Body
			}
		case tag.Kind == doc.TagAuthor:
			if prior, ok := existing.First(doc.TagAuthor); ok {
				tag.Body = prior.Body
			}
		}
		out.Tags = append(out.Tags, tag)
	}

	// An author the user wrote survives even when synthesis adds none.
	if _, ok := out.First(doc.TagAuthor); !ok {
		if prior, hadAuthor := existing.First(doc.TagAuthor); hadAuthor {
			out.Tags = append(out.Tags, prior)
		}
	}

	for _, tag := range existing.Tags {
		if tag.Kind == doc.TagOther {
			out.Tags = append(out.Tags, tag)
		}
	}

	out.Normalize()
	return out
}
