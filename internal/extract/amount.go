package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPatterns is the ordered cascade of amount shapes, most specific
// first. The bare-number fallback at the end is over-eager on purpose (it
// will happily match a date or reference id); keeping it last trades that
// known imprecision for recall on message formats with no currency marker.
var amountPatterns = []*regexp.Regexp{
	// currency-prefixed: "Rs. 1,250.50", "INR 500", "rupees 99"
	regexp.MustCompile(`(?i)(?:rs\.?|rupees?|inr)\s*:?\s*(\d{1,3}(?:,\d{2,3})*(?:\.\d{1,2})?)`),
	// rupee-sign-prefixed: "₹ 2,500.00"
	regexp.MustCompile(`₹\s*:?\s*(\d{1,3}(?:,\d{2,3})*(?:\.\d{1,2})?)`),
	// currency-suffixed: "500 Rs", "1,000 rupees"
	regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{2,3})*(?:\.\d{1,2})?)\s*(?:rs\.?|rupees?|inr)`),
	// labeled: "amount: 350.00"
	regexp.MustCompile(`(?i)amount[\s:]+(\d{1,3}(?:,\d{2,3})*(?:\.\d{1,2})?)`),
	// bare-number fallback
	regexp.MustCompile(`\b(\d{1,3}(?:,\d{2,3})*(?:\.\d{1,2})?)\b`),
}

// AmountExtractor recovers a transaction amount from raw message text by
// trying each pattern of the cascade in order.
type AmountExtractor struct{}

func NewAmountExtractor() *AmountExtractor {
	return &AmountExtractor{}
}

// Extract returns the first parseable amount, or nil when no pattern
// matches. A match whose captured group fails to parse is not terminal; the
// cascade simply advances to the next pattern.
func (e *AmountExtractor) Extract(text string) *float64 {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	for _, pattern := range amountPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}
