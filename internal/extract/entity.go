package extract

import (
	"regexp"
	"strings"
)

var (
	// "to Mr. JOHN DOE", "from Shri RAMESH" — honorific-prefixed names.
	honorificNamePattern = regexp.MustCompile(`(?i)(?:to|from)\s+(?:mr|mrs|ms|shri|shrimati)\.?\s+([A-Z][A-Z\s]{2,30})`)
	// "payee: JOHN", "beneficiary: ACME STORES" — labeled parties.
	labeledNamePattern = regexp.MustCompile(`(?i)(?:to|from|payee|payer|beneficiary)[\s:]+([A-Z][A-Z\s]{2,30})`)
	// UPI-style handles: localpart@suffix.
	upiHandlePattern = regexp.MustCompile(`(?i)([a-z0-9._-]+@[a-z]+)`)
)

const (
	minEntityLen = 3
	maxEntityLen = 30
)

// EntityExtractor recovers a payee/payer or merchant identity from the raw
// message via an ordered cascade; the first stage to produce a plausible
// capture wins.
type EntityExtractor struct {
	merchants []string
}

func NewEntityExtractor(vocab Vocabulary) *EntityExtractor {
	return &EntityExtractor{merchants: vocab.Merchants}
}

// Extract returns the extracted party name, or nil when no cascade stage
// matches. Captures are trimmed; ones that fall outside the 3–30 character
// bounds are treated as spurious and the cascade moves on.
func (e *EntityExtractor) Extract(text string) *string {
	for _, pattern := range []*regexp.Regexp{honorificNamePattern, labeledNamePattern} {
		if name, ok := captureName(pattern, text); ok {
			return &name
		}
	}

	if m := upiHandlePattern.FindStringSubmatch(text); m != nil {
		handle := m[1]
		return &handle
	}

	lower := strings.ToLower(text)
	for _, merchant := range e.merchants {
		if strings.Contains(lower, merchant) {
			canon := CanonicalMerchant(merchant)
			return &canon
		}
	}
	return nil
}

func captureName(pattern *regexp.Regexp, text string) (string, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if len(name) < minEntityLen || len(name) > maxEntityLen {
		return "", false
	}
	return name, true
}
