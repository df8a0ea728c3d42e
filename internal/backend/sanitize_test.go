package backend

import (
	"encoding/json"
	"testing"
)

func TestNormalizeAndSanitizeJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]float64
	}{
		{
			name: "already clean",
			in:   `{"credit_probability":0.9,"debit_probability":0.1,"fraud_probability":0.05}`,
			want: map[string]float64{"credit_probability": 0.9, "debit_probability": 0.1, "fraud_probability": 0.05},
		},
		{
			name: "synonyms renamed",
			in:   `{"credit_prob":0.8,"debit_prob":0.2,"fraud_prob":0.1}`,
			want: map[string]float64{"credit_probability": 0.8, "debit_probability": 0.2, "fraud_probability": 0.1},
		},
		{
			name: "numeric strings coerced",
			in:   `{"credit_probability":"0.7","debit_probability":"0.3","fraud_probability":"0","amount":"2,500.00"}`,
			want: map[string]float64{"credit_probability": 0.7, "debit_probability": 0.3, "fraud_probability": 0, "amount": 2500},
		},
		{
			name: "fraud boolean coerced",
			in:   `{"credit_probability":0.5,"debit_probability":0.5,"fraud":true}`,
			want: map[string]float64{"credit_probability": 0.5, "debit_probability": 0.5, "fraud_probability": 1},
		},
		{
			name: "nulls and unknown keys dropped",
			in:   `{"credit_probability":0.6,"debit_probability":0.4,"fraud_probability":0.1,"amount":null,"reasoning":"looks legit"}`,
			want: map[string]float64{"credit_probability": 0.6, "debit_probability": 0.4, "fraud_probability": 0.1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := NormalizeAndSanitizeJSON([]byte(tt.in), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got map[string]float64
			if err := json.Unmarshal(out, &got); err != nil {
				t.Fatalf("output is not numeric JSON: %v (%s)", err, out)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("key %s: got %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestNormalizeAndSanitizeJSONBadInput(t *testing.T) {
	if _, _, err := NormalizeAndSanitizeJSON([]byte("not json"), nil); err == nil {
		t.Error("expected decode error for non-JSON input")
	}
}

func TestValidateSignalSchema(t *testing.T) {
	schema := BuildSignalJSONSchema()

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid minimal", `{"credit_probability":0.9,"debit_probability":0.1,"fraud_probability":0}`, false},
		{"valid with amount", `{"credit_probability":0.9,"debit_probability":0.1,"fraud_probability":0,"amount":2500,"confidence":0.8}`, false},
		{"missing required", `{"credit_probability":0.9}`, true},
		{"probability out of range", `{"credit_probability":1.5,"debit_probability":0.1,"fraud_probability":0}`, true},
		{"negative amount", `{"credit_probability":0.9,"debit_probability":0.1,"fraud_probability":0,"amount":-5}`, true},
		{"extra key rejected", `{"credit_probability":0.9,"debit_probability":0.1,"fraud_probability":0,"reasoning":"x"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONAgainstSchema(schema, []byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateJSONAgainstSchema(%s): err=%v, wantErr=%v", tt.in, err, tt.wantErr)
			}
		})
	}
}
