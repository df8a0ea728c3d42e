package extract

import "strings"

// FraudDetector flags messages containing known phishing/urgency vocabulary.
// It is deliberately high-recall: one indicator hit is enough, and false
// positives on legitimate transactional language are the accepted failure
// mode since a fraud verdict only suppresses the other fields.
type FraudDetector struct {
	indicators []string
}

func NewFraudDetector(vocab Vocabulary) *FraudDetector {
	return &FraudDetector{indicators: vocab.FraudIndicators}
}

// IsFraud reports whether any indicator phrase occurs as a substring of the
// normalized text. No scoring, no threshold.
func (d *FraudDetector) IsFraud(n NormalizedText) bool {
	for _, indicator := range d.indicators {
		if strings.Contains(n.Text, indicator) {
			return true
		}
	}
	return false
}
