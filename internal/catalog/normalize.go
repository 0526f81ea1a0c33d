package catalog

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var disallowedTitleChars = regexp.MustCompile(`[^a-z0-9а-яё\s\-]`)

// Normalize lower-cases and trims a title, then drops every character other
// than latin and cyrillic letters, digits, whitespace and hyphens.
func Normalize(title string) string {
	return disallowedTitleChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "")
}

// titleCase upper-cases the first letter of each word. A Caser is stateful,
// so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// deriveKey builds a catalog key from a display title ("The Lion King" -> "the_lion_king").
func deriveKey(title string) string {
	return strings.Join(strings.Fields(Normalize(title)), "_")
}
