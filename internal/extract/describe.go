package extract

import (
	"strings"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
)

const (
	minDescriptionWords = 10
	maxDescriptionWords = 15
	paddingClause       = "bank account transaction completed successfully"
)

// Synthesize builds a short natural-language description from the type
// verdict and the extracted entity, bounded to 10–15 words. Sentences under
// the lower bound are padded with a fixed clause (repeatedly, so the bound
// holds for every template); sentences over the upper bound are cut to the
// first 15 words.
func Synthesize(txType constants.TransactionType, entity *string) string {
	var b strings.Builder

	if entity != nil && *entity != "" {
		switch txType {
		case constants.TypeCredit:
			b.WriteString("Received from ")
		case constants.TypeDebit:
			b.WriteString("Transfer to ")
		default:
			b.WriteString("Transaction with ")
		}
		b.WriteString(*entity)
	} else {
		switch txType {
		case constants.TypeCredit:
			b.WriteString("Money received credit transaction")
		case constants.TypeDebit:
			b.WriteString("Payment made debit transaction")
		default:
			b.WriteString("Bank transaction completed")
		}
	}

	if txType.Known() {
		b.WriteString(" ")
		b.WriteString(txType.String())
		b.WriteString(" type")
	}

	words := strings.Fields(b.String())
	for len(words) < minDescriptionWords {
		words = append(words, strings.Fields(paddingClause)...)
	}
	if len(words) > maxDescriptionWords {
		words = words[:maxDescriptionWords]
	}
	return strings.Join(words, " ")
}
