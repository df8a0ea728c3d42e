package extract

import (
	"testing"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
)

func TestTypeClassifierHeuristic(t *testing.T) {
	c := NewTypeClassifier(DefaultVocabulary())

	tests := []struct {
		name  string
		input string
		want  constants.TransactionType
	}{
		{
			name:  "clear credit",
			input: "Your account has been credited with salary",
			want:  constants.TypeCredit,
		},
		{
			name:  "clear debit",
			input: "Rs.500 debited, payment to merchant",
			want:  constants.TypeDebit,
		},
		{
			name:  "single keyword each side ties to unknown",
			input: "refund deducted",
			want:  constants.TypeUnknown,
		},
		{
			name:  "credited vs debited ties to unknown",
			input: "credited and debited on same day",
			want:  constants.TypeUnknown,
		},
		{
			name:  "no keywords",
			input: "your otp is 123456",
			want:  constants.TypeUnknown,
		},
		{
			name:  "empty text",
			input: "",
			want:  constants.TypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(Normalize(tt.input)); got != tt.want {
				t.Errorf("Classify(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyProbabilities(t *testing.T) {
	tests := []struct {
		name       string
		credit     float64
		debit      float64
		threshold  float64
		want       constants.TransactionType
	}{
		{"confident credit", 0.9, 0.1, 0.5, constants.TypeCredit},
		{"confident debit", 0.2, 0.8, 0.5, constants.TypeDebit},
		{"argmax below threshold", 0.45, 0.40, 0.5, constants.TypeUnknown},
		{"exact tie", 0.5, 0.5, 0.5, constants.TypeUnknown},
		{"at threshold is not enough", 0.5, 0.2, 0.5, constants.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyProbabilities(tt.credit, tt.debit, tt.threshold)
			if got != tt.want {
				t.Errorf("ClassifyProbabilities(%v, %v, %v): got %v, want %v",
					tt.credit, tt.debit, tt.threshold, got, tt.want)
			}
		})
	}
}
