// Package render serializes doc models to javadoc comment text and parses
// comment text back into models. The two directions round-trip: parsing a
// rendered model yields a tag-for-tag equal model; only formatting
// whitespace may differ.
package render

import (
	"strings"

	"jdoc/internal/doc"
)

// Render produces the literal comment text for a model, one tag per line,
// without indentation. Indentation of the gutter is applied later by the
// editor's bounded reformat, so rendering stays position-independent.
func Render(m *doc.Model) string {
	var b strings.Builder
	b.WriteString("/**\n")

	desc := strings.TrimRight(m.Description, "\n")
	hasDesc := strings.TrimSpace(desc) != ""
	if hasDesc {
		for _, line := range strings.Split(desc, "\n") {
			writeGutterLine(&b, line)
		}
	}
	if hasDesc && len(m.Tags) > 0 {
		b.WriteString(" *\n")
	}
	for _, tag := range m.Tags {
		writeTag(&b, tag)
	}
	b.WriteString(" */")
	return b.String()
}

func writeTag(b *strings.Builder, tag doc.Tag) {
	parts := []string{"@" + tag.Word()}
	switch tag.Kind {
	case doc.TagTypeParam:
		parts = append(parts, "<"+tag.Name+">")
	case doc.TagParam, doc.TagThrows:
		parts = append(parts, tag.Name)
	}

	body := strings.TrimRight(tag.Body, "\n")
	lines := strings.Split(body, "\n")
	if lines[0] != "" {
		parts = append(parts, lines[0])
	}
	writeGutterLine(b, strings.Join(parts, " "))
	for _, line := range lines[1:] {
		writeGutterLine(b, line)
	}
}

func writeGutterLine(b *strings.Builder, line string) {
	if line == "" {
		b.WriteString(" *\n")
		return
	}
	b.WriteString(" * ")
	b.WriteString(line)
	b.WriteString("\n")
}
