package search

import (
	"strings"
	"unicode"
)

// Tokenize splits text into normalized tokens (lowercase words) and drops
// stop words. Tokens are returned in the order they appear in text.
func Tokenize(text string) []string {
	f := func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c)
	}
	fields := strings.FieldsFunc(strings.ToLower(text), f)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if IsStopWord(field) {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}
