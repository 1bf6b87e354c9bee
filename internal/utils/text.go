package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// RemoveAccents strips diacritics so "Feijão" matches "feijao".
func RemoveAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// SingularPluralMatch returns the token and its singular/plural
// counterpart, so "ovos" finds "ovo" and vice versa.
func SingularPluralMatch(token string) []string {
	if strings.HasSuffix(token, "s") {
		return []string{token, strings.TrimSuffix(token, "s")}
	}
	return []string{token, token + "s"}
}

// MatchesFoodTitle reports whether every query token occurs in the food
// title, ignoring case and accents and tolerating plural variations.
func MatchesFoodTitle(title, query string) bool {
	normalized := RemoveAccents(strings.ToLower(title))
	for _, token := range strings.Fields(strings.ToLower(query)) {
		token = RemoveAccents(token)
		matched := false
		for _, variation := range SingularPluralMatch(token) {
			if strings.Contains(normalized, variation) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
