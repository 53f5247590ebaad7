package synth

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// words splits a Java identifier into lower-cased words. CamelCase,
// SCREAMING_SNAKE and acronym runs (IOException -> io, exception) are all
// handled.
func words(ident string) []string {
	var out []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = nil
		}
	}

	runes := []rune(ident)
	for i, r := range runes {
		switch {
		case r == '_' || r == '$':
			flush()
		case unicode.IsUpper(r):
			// Break before an uppercase rune unless it continues an
			// acronym run (next rune also uppercase or end of word).
			prevUpper := i > 0 && unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !prevUpper || nextLower {
				flush()
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return out
}

// phrase joins the identifier's words with spaces: "maxValue" -> "max value".
func phrase(ident string) string {
	return strings.Join(words(ident), " ")
}

// sentence builds a sentence start from an identifier: "fooBar" -> "Foo bar".
func sentence(ident string) string {
	w := words(ident)
	if len(w) == 0 {
		return ""
	}
	w[0] = titleCaser.String(w[0])
	return strings.Join(w, " ")
}

// simpleType reduces a Java type reference to its simple name:
// "java.util.List<String>[]" -> "List".
func simpleType(t string) string {
	if i := strings.IndexAny(t, "<["); i >= 0 {
		t = t[:i]
	}
	if i := strings.LastIndex(t, "."); i >= 0 {
		t = t[i+1:]
	}
	return strings.TrimSpace(t)
}

// accessorProperty returns the property name for getter/setter style method
// names, or false when the name has no such prefix.
func accessorProperty(name string) (string, bool) {
	for _, prefix := range []string{"get", "set", "is", "has"} {
		rest := strings.TrimPrefix(name, prefix)
		if rest != name && rest != "" && unicode.IsUpper([]rune(rest)[0]) {
			return rest, true
		}
	}
	return "", false
}
