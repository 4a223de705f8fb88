package user

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const defaultUsernameLen = 20

// NormalizeUsername lowercases, folds diacritics and strips whitespace.
func NormalizeUsername(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, folded)
}

// DefaultUsername derives a username from the person's name.
func DefaultUsername(firstName, lastName string) string {
	name := []rune(NormalizeUsername(firstName + lastName))
	if len(name) > defaultUsernameLen {
		name = name[:defaultUsernameLen]
	}
	return string(name)
}
