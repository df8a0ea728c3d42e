package extract

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		text   string
		tokens []string
	}{
		{
			name:   "lowercases and trims",
			input:  "  Rs.500 Credited to A/C  ",
			text:   "rs.500 credited to a/c",
			tokens: []string{"rs", "500", "credited", "to", "a", "c"},
		},
		{
			name:   "underscores stay inside tokens",
			input:  "ref_id 42",
			text:   "ref_id 42",
			tokens: []string{"ref_id", "42"},
		},
		{
			name:   "empty input",
			input:  "",
			text:   "",
			tokens: nil,
		},
		{
			name:   "whitespace only",
			input:  "   \t\n",
			text:   "",
			tokens: nil,
		},
		{
			name:   "punctuation only",
			input:  "!!! ...",
			text:   "!!! ...",
			tokens: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got.Text != tt.text {
				t.Errorf("text: got %q, want %q", got.Text, tt.text)
			}
			if !reflect.DeepEqual(got.Tokens, tt.tokens) {
				t.Errorf("tokens: got %v, want %v", got.Tokens, tt.tokens)
			}
		})
	}
}

func TestNormalizeEmptyIsNoSignal(t *testing.T) {
	n := Normalize("")
	if !n.Empty() {
		t.Error("empty input should normalize to an empty token sequence")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	const input = "Your account has been credited with Rs.2,500.00"
	first := Normalize(input)
	second := Normalize(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalize is not pure: %v vs %v", first, second)
	}
}
