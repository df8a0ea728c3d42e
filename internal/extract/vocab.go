// Package extract implements the transaction extraction pipeline: it turns a
// raw bank/UPI notification message into a structured transaction result using
// deterministic heuristics. Every component is a pure function of its inputs;
// the only state is the immutable vocabulary injected at construction.
package extract

import "strings"

// Vocabulary holds the fixed indicator tables the heuristic components match
// against. Built once at startup and passed in; never mutated afterwards.
type Vocabulary struct {
	FraudIndicators []string
	CreditKeywords  []string
	DebitKeywords   []string
	Merchants       []string
}

// DefaultVocabulary returns the stock vocabulary tables for Indian bank and
// UPI notification messages.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		FraudIndicators: []string{
			"urgent", "verify", "suspended", "click here", "link", "password",
			"account locked", "verify now", "immediately", "act now", "limited time",
			"prize", "winner", "congratulations", "free money", "claim now",
			"phishing", "scam", "suspicious", "verify account", "update now",
		},
		CreditKeywords: []string{
			"credited", "credit", "received", "deposit", "income", "salary",
			"refund", "cashback", "reward", "bonus", "incoming", "added",
		},
		DebitKeywords: []string{
			"debited", "debit", "paid", "payment", "purchase", "withdrawal",
			"transfer", "sent", "outgoing", "spent", "expense", "deducted",
		},
		Merchants: []string{
			"amazon", "flipkart", "swiggy", "zomato", "uber", "ola",
			"paytm", "phonepe", "gpay", "razorpay", "stripe", "netflix",
		},
	}
}

// CanonicalMerchant returns the display form of a merchant vocabulary entry.
func CanonicalMerchant(m string) string {
	if m == "" {
		return m
	}
	return strings.ToUpper(m[:1]) + m[1:]
}
