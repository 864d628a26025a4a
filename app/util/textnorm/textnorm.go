// Package textnorm turns free-text user input into the canonical form used as
// knowledge base keys.
package textnorm

import "strings"

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalize removes ASCII punctuation, trims surrounding whitespace and lowercases.
// Non-ASCII punctuation is left untouched.
func Normalize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, text)

	return strings.ToLower(strings.TrimSpace(stripped))
}

// Tokens splits normalized text on whitespace.
func Tokens(text string) []string {
	return strings.Fields(text)
}
