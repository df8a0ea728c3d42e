package extract

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9_]+`)

// NormalizedText is the lower-cased, tokenized form of a message. It is a
// pure function of the input text; downstream components read it but never
// mutate it.
type NormalizedText struct {
	Text   string
	Tokens []string
}

// Normalize lower-cases and trims the message and tokenizes it on
// word-character boundaries. Empty input yields an empty token sequence,
// which is a valid "no signal" value, not an error.
func Normalize(text string) NormalizedText {
	lower := strings.ToLower(strings.TrimSpace(text))
	return NormalizedText{
		Text:   lower,
		Tokens: tokenPattern.FindAllString(lower, -1),
	}
}

// Empty reports whether the message carried no tokens at all.
func (n NormalizedText) Empty() bool {
	return len(n.Tokens) == 0
}
