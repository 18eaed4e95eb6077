// Package tokenizer turns raw text into countable words.
//
// A countable word is lower-case and holds only ASCII letters, dashes and
// commas, with at least one letter. Case folding happens before stripping.
package tokenizer

import "strings"

// Normalize lower-cases each token, drops tokens without an ASCII letter and
// strips everything but letters, dashes and commas. Order is preserved.
func Normalize(tokens []string) []string {
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if w := NormalizeWord(t); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// NormalizeText splits text on whitespace and normalizes the pieces.
func NormalizeText(text string) []string {
	return Normalize(strings.Fields(text))
}

// NormalizeWord normalizes a single token, returning "" when nothing
// countable is left.
func NormalizeWord(token string) string {
	lower := strings.ToLower(token)
	if !HasLetter(lower) {
		return ""
	}

	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if isLetter(c) || c == '-' || c == ',' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// HasLetter reports whether s contains at least one ASCII letter.
func HasLetter(s string) bool {
	for i := 0; i < len(s); i++ {
		if isLetter(s[i]) || (s[i] >= 'A' && s[i] <= 'Z') {
			return true
		}
	}
	return false
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}
