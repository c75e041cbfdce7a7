package utils

import "strings"

// Tokenize splits document text on runs of whitespace, dropping empty tokens.
// A token's index in the result is its selection index; the split is
// deterministic so indexes round-trip for the same text.
func Tokenize(text string) []string {
	tokens := strings.Fields(text)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// JoinTokens renders the tokens at the given ascending indexes as one value
func JoinTokens(tokens []string, indexes []int) string {
	parts := make([]string, 0, len(indexes))
	for _, i := range indexes {
		if i >= 0 && i < len(tokens) {
			parts = append(parts, tokens[i])
		}
	}
	return strings.Join(parts, " ")
}
