package extract

import (
	"encoding/json"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
)

// Result is the pipeline's sole output. Field order and literal nulls are
// part of the wire contract: consumers parse exactly these four keys.
type Result struct {
	Type        *constants.TransactionType `json:"type"`
	Amount      *float64                   `json:"amount"`
	Description *string                    `json:"description"`
	Fraud       bool                       `json:"fraud"`
}

// ToJSON renders the result as its canonical wire form. encoding/json owns
// string escaping (backslash, quote, control characters).
func (r Result) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// Aggregator assembles the final record and enforces the fraud override:
// a fraud verdict suppresses type, amount and description no matter what
// upstream components produced.
type Aggregator struct {
	// SuppressUnknown nulls all fields (fraud stays false) when the type
	// verdict is unknown, instead of surfacing a partial record.
	SuppressUnknown bool
}

// Aggregate applies the override invariants and synthesizes the description.
func (a Aggregator) Aggregate(fraud bool, txType constants.TransactionType, amount *float64, entity *string) Result {
	if fraud {
		return Result{Fraud: true}
	}
	if a.SuppressUnknown && !txType.Known() {
		return Result{}
	}

	desc := Synthesize(txType, entity)
	res := Result{
		Amount:      amount,
		Description: &desc,
	}
	if txType.Known() {
		t := txType
		res.Type = &t
	}
	return res
}
