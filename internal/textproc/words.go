package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

var wordRe = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// Words returns the lowercased alphabetic tokens of at least three letters.
func Words(text string) []string {
	matches := wordRe.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = strings.ToLower(m)
	}
	return matches
}

// WordSet is a set of lowercased tokens.
type WordSet map[string]struct{}

// NewWordSet collects the Words of text.
func NewWordSet(text string) WordSet {
	set := make(WordSet)
	for _, w := range Words(text) {
		set[w] = struct{}{}
	}
	return set
}

// FieldSet collects the lowercased whitespace-separated fields of text.
func FieldSet(text string) WordSet {
	set := make(WordSet)
	for _, f := range strings.Fields(strings.ToLower(text)) {
		set[f] = struct{}{}
	}
	return set
}

// Has reports membership.
func (s WordSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when either set is empty.
func Jaccard(a, b WordSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for w := range small {
		if large.Has(w) {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// IsTitle reports whether s is title cased: every cased run starts with an
// uppercase letter followed only by lowercase ones, and s has at least one
// cased letter.
func IsTitle(s string) bool {
	cased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased = true
			cased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased = true
			cased = true
		default:
			prevCased = false
		}
	}
	return cased
}

// IsUpper reports whether s has at least one cased letter and no lowercase ones.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// StartsUpper reports whether the first rune of s is an uppercase letter.
func StartsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// StartsUpperOrDigit reports whether s starts with an uppercase letter or a digit.
func StartsUpperOrDigit(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r) || unicode.IsDigit(r)
	}
	return false
}
