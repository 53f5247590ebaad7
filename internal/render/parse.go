package render

import (
	"strings"

	"jdoc/internal/doc"
)

// Parse converts literal javadoc comment text into a doc model. It is
// lenient about gutter formatting: any leading whitespace and a single `*`
// are stripped from every line. Keyed tags (param, type-param, throws) keep
// the first occurrence of each name; duplicates are dropped to preserve the
// per-name uniqueness invariant.
func Parse(text string) doc.Model {
	var m doc.Model

	var descLines []string
	var current *doc.Tag
	seen := map[string]bool{}

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimRight(current.Body, " \n")
		if current.Kind.Keyed() {
			key := current.Kind.String() + "\x00" + current.Name
			if seen[key] {
				current = nil
				return
			}
			seen[key] = true
		}
		m.Tags = append(m.Tags, *current)
		current = nil
	}

	for _, line := range commentLines(text) {
		if strings.HasPrefix(line, "@") {
			flush()
			tag := parseTagLine(line)
			current = &tag
			continue
		}
		if current != nil {
			current.Body += "\n" + line
			continue
		}
		descLines = append(descLines, line)
	}
	flush()

	// Trim the blank separator and surrounding empty lines off the
	// description.
	for len(descLines) > 0 && strings.TrimSpace(descLines[0]) == "" {
		descLines = descLines[1:]
	}
	for len(descLines) > 0 && strings.TrimSpace(descLines[len(descLines)-1]) == "" {
		descLines = descLines[:len(descLines)-1]
	}
	m.Description = strings.Join(descLines, "\n")
	return m
}

// commentLines strips the /** ... */ delimiters and the leading `*` gutter,
// returning the logical content lines.
func commentLines(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for i, line := range raw {
		line = strings.TrimLeft(line, " \t")
		if strings.HasPrefix(line, "*") {
			line = line[1:]
			line = strings.TrimPrefix(line, " ")
		}
		line = strings.TrimRight(line, " \t")
		if i == 0 && line == "" {
			continue
		}
		lines = append(lines, line)
	}
	// The line holding the closing delimiter contributes nothing.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func parseTagLine(line string) doc.Tag {
	word, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)

	switch word {
	case "param":
		if strings.HasPrefix(rest, "<") {
			if end := strings.Index(rest, ">"); end > 0 {
				return doc.Tag{
					Kind: doc.TagTypeParam,
					Name: rest[1:end],
					Body: strings.TrimSpace(rest[end+1:]),
				}
			}
		}
		name, body, _ := strings.Cut(rest, " ")
		return doc.Tag{Kind: doc.TagParam, Name: name, Body: strings.TrimSpace(body)}
	case "return":
		return doc.Tag{Kind: doc.TagReturn, Body: rest}
	case "throws", "exception":
		name, body, _ := strings.Cut(rest, " ")
		return doc.Tag{Kind: doc.TagThrows, Name: name, Body: strings.TrimSpace(body)}
	case "author":
		return doc.Tag{Kind: doc.TagAuthor, Body: rest}
	default:
		return doc.Tag{Kind: doc.TagOther, Label: word, Body: rest}
	}
}
