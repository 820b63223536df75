// Package normalize holds the keyword rules providers use to map raw postings
// onto the canonical job shape (category, experience, skills, type, location, slug).
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// containsWord reports whether term occurs in text delimited by non-alphanumeric
// characters on both sides. Both arguments must already be lowercased.
func containsWord(text, term string) bool {
	if term == "" {
		return false
	}

	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)

		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		offset = start + 1
	}

	return false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if containsWord(text, t) {
			return true
		}
	}
	return false
}

func joinLower(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " \n "))
}
