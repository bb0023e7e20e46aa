package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips diacritics so "Cómbita" matches "combita".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// Matches reports whether query occurs in any of the record's search fields.
func Matches(r Record, query string) bool {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range r.SearchText() {
		if strings.Contains(Fold(field), q) {
			return true
		}
	}
	return false
}
