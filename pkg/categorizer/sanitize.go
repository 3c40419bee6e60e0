package categorizer

import "strings"

// asciiPunctuation is every ASCII punctuation character.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Sanitize removes ASCII punctuation anywhere in s, then trims surrounding
// whitespace. Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	stripped := strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(stripped)
}

// Validate returns s as a Category if it exactly matches one of the fixed
// labels (case-sensitive), otherwise FailedToClassify.
func Validate(s string) Category {
	for _, c := range categories {
		if string(c) == s {
			return c
		}
	}
	return FailedToClassify
}
