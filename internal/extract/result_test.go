package extract

import (
	"strings"
	"testing"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
)

func floatPtr(f float64) *float64 { return &f }

// The fraud override holds regardless of what upstream components produced.
func TestAggregateFraudOverride(t *testing.T) {
	agg := Aggregator{}

	tests := []struct {
		name   string
		txType constants.TransactionType
		amount *float64
		entity *string
	}{
		{"all fields populated", constants.TypeCredit, floatPtr(2500), strPtr("AMIT KUMAR")},
		{"debit with amount", constants.TypeDebit, floatPtr(99.5), nil},
		{"unknown empty", constants.TypeUnknown, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.Aggregate(true, tt.txType, tt.amount, tt.entity)
			if !got.Fraud {
				t.Error("fraud flag lost")
			}
			if got.Type != nil || got.Amount != nil || got.Description != nil {
				t.Errorf("fraud result must null every other field, got %+v", got)
			}
		})
	}
}

func TestAggregatePopulatedResult(t *testing.T) {
	agg := Aggregator{}

	got := agg.Aggregate(false, constants.TypeCredit, floatPtr(2500), strPtr("AMIT KUMAR"))
	if got.Fraud {
		t.Error("unexpected fraud flag")
	}
	if got.Type == nil || *got.Type != constants.TypeCredit {
		t.Errorf("type: got %v, want credit", got.Type)
	}
	if got.Amount == nil || *got.Amount != 2500 {
		t.Errorf("amount: got %v, want 2500", got.Amount)
	}
	if got.Description == nil || !strings.HasPrefix(*got.Description, "Received from AMIT KUMAR") {
		t.Errorf("description: got %v", got.Description)
	}
}

func TestAggregateUnknownPolicies(t *testing.T) {
	t.Run("keep surfaces partial record", func(t *testing.T) {
		agg := Aggregator{SuppressUnknown: false}
		got := agg.Aggregate(false, constants.TypeUnknown, floatPtr(100), nil)
		if got.Type != nil {
			t.Errorf("type should be null for unknown, got %v", *got.Type)
		}
		if got.Amount == nil || *got.Amount != 100 {
			t.Errorf("amount should survive under keep policy, got %v", got.Amount)
		}
		if got.Description == nil {
			t.Error("description should survive under keep policy")
		}
		if got.Fraud {
			t.Error("unknown type is not a fraud verdict")
		}
	})

	t.Run("suppress nulls all fields without a fraud verdict", func(t *testing.T) {
		agg := Aggregator{SuppressUnknown: true}
		got := agg.Aggregate(false, constants.TypeUnknown, floatPtr(100), strPtr("Swiggy"))
		if got.Type != nil || got.Amount != nil || got.Description != nil {
			t.Errorf("suppress policy must null all fields, got %+v", got)
		}
		if got.Fraud {
			t.Error("suppress policy must not coerce fraud to true")
		}
	})
}

func TestResultToJSON(t *testing.T) {
	t.Run("fraud result with literal nulls", func(t *testing.T) {
		b, err := Result{Fraud: true}.ToJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"type":null,"amount":null,"description":null,"fraud":true}`
		if string(b) != want {
			t.Errorf("got %s, want %s", b, want)
		}
	})

	t.Run("populated result", func(t *testing.T) {
		typ := constants.TypeCredit
		desc := "Received from AMIT KUMAR credit type bank account transaction completed successfully"
		b, err := Result{Type: &typ, Amount: floatPtr(2500), Description: &desc}.ToJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"type":"credit","amount":2500,"description":"` + desc + `","fraud":false}`
		if string(b) != want {
			t.Errorf("got %s, want %s", b, want)
		}
	})

	t.Run("quotes and control characters escaped", func(t *testing.T) {
		desc := "line\nbreak \"quoted\" back\\slash"
		b, err := Result{Description: &desc}.ToJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(b), `line\nbreak \"quoted\" back\\slash`) {
			t.Errorf("escaping missing: %s", b)
		}
	})
}
