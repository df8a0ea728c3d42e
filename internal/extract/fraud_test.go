package extract

import "testing"

func TestFraudDetector(t *testing.T) {
	d := NewFraudDetector(DefaultVocabulary())

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "urgency phishing message",
			input: "URGENT: verify your account now, click here",
			want:  true,
		},
		{
			name:  "prize scam",
			input: "Congratulations! You are a WINNER, claim now",
			want:  true,
		},
		{
			name:  "single indicator is enough",
			input: "Please update now",
			want:  true,
		},
		{
			name:  "legitimate debit message",
			input: "Rs.500 debited from A/C XX1234 towards UPI payment",
			want:  false,
		},
		{
			name:  "legitimate credit message",
			input: "Your account has been credited with Rs.2,500.00 from AMIT KUMAR",
			want:  false,
		},
		{
			name:  "empty message",
			input: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsFraud(Normalize(tt.input)); got != tt.want {
				t.Errorf("IsFraud(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
