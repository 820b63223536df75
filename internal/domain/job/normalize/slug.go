package normalize

import (
	"strings"
	"unicode"
)

// Slugify lowercases s, replaces every run of non-alphanumeric characters with a
// single hyphen and trims hyphens from both ends. Slugs are used as lookup keys,
// so the output depends only on the input.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// JobSlug is the slug of a posting derived from its title and company
func JobSlug(title, company string) string {
	if company == "" {
		return Slugify(title)
	}
	return Slugify(title + " at " + company)
}
