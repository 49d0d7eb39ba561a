// Package textutil provides shared text normalization helpers used by the
// normalization, rendering, and quality packages.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain decomposes to NFD, drops combining marks, and recomposes.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldAccents removes diacritical marks ("renseigné" → "renseigne").
// On a transform failure the input is returned unchanged.
func FoldAccents(s string) string {
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		return s
	}
	return folded
}

// CollapseWhitespace replaces every run of whitespace with a single space
// and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// KeyPart normalizes one component of an identity key: trim, lowercase,
// collapse whitespace, then strip every rune outside letters, numbers,
// space, hyphen, underscore, and period. Accented letters are preserved;
// ID stability across extraction re-runs matters more here than
// cross-locale matching, which uses Comparable instead.
func KeyPart(s string) string {
	s = CollapseWhitespace(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Comparable normalizes a string for placeholder detection and cross-locale
// equality: trim, lowercase, fold accents, then replace every
// non-alphanumeric rune with a space and collapse. "N/A" → "n a",
// "Non renseigné" → "non renseigne".
func Comparable(s string) string {
	s = FoldAccents(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return CollapseWhitespace(b.String())
}

// placeholderValues are upstream LLM filler strings that must never surface
// as real data. Matched against the Comparable form; empty also counts.
var placeholderValues = map[string]struct{}{
	"non renseigne": {},
	"nr":            {},
	"n a":           {},
	"na":            {},
	"none":          {},
	"null":          {},
	"undefined":     {},
}

// IsPlaceholder reports whether a value is empty or a recognized extraction
// filler such as "non renseigné" or "N/A".
func IsPlaceholder(s string) bool {
	c := Comparable(s)
	if c == "" {
		return true
	}
	_, ok := placeholderValues[c]
	return ok
}

// FirstNonPlaceholder returns the first candidate that is neither empty nor
// a recognized placeholder, or "" when none qualifies. This is the ordered
// candidate-field resolver shared by every multi-dialect field lookup.
func FirstNonPlaceholder(candidates ...string) string {
	for _, c := range candidates {
		if !IsPlaceholder(c) {
			return strings.TrimSpace(c)
		}
	}
	return ""
}
