package extract

import (
	"strings"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
)

// TypeClassifier decides credit vs debit vs unknown. The heuristic strategy
// scores competing keyword tables; ClassifyProbabilities accepts an
// externally supplied probability pair instead. Both are pure functions, so
// their verdicts can be compared directly in tests.
type TypeClassifier struct {
	credit []string
	debit  []string
}

func NewTypeClassifier(vocab Vocabulary) *TypeClassifier {
	return &TypeClassifier{credit: vocab.CreditKeywords, debit: vocab.DebitKeywords}
}

// Classify counts keyword hits from each table in the normalized text. The
// strictly larger non-zero count wins; any tie, including zero-zero, is
// unknown.
func (c *TypeClassifier) Classify(n NormalizedText) constants.TransactionType {
	creditScore := countHits(n.Text, c.credit)
	debitScore := countHits(n.Text, c.debit)

	switch {
	case creditScore > debitScore && creditScore > 0:
		return constants.TypeCredit
	case debitScore > creditScore && debitScore > 0:
		return constants.TypeDebit
	default:
		return constants.TypeUnknown
	}
}

func countHits(text string, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			score++
		}
	}
	return score
}

// ClassifyProbabilities maps a credit/debit probability pair to a type. The
// argmax class wins only when it clears the confidence threshold; anything
// else, including a third class, is unknown.
func ClassifyProbabilities(creditProb, debitProb, threshold float64) constants.TransactionType {
	switch {
	case creditProb > debitProb && creditProb > threshold:
		return constants.TypeCredit
	case debitProb > creditProb && debitProb > threshold:
		return constants.TypeDebit
	default:
		return constants.TypeUnknown
	}
}
