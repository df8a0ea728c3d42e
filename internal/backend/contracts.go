package backend

import (
	"context"
	"errors"

	"github.com/arjun-krishnan/sms-txn-parser/internal/common"
)

// Request carries the per-call features handed to a model backend. Text is
// the raw message; Tokens is the normalized tokenization, for backends that
// want pre-split input.
type Request struct {
	Text   string
	Tokens []string
}

// Signal is the structured output of one inference call: a credit/debit
// probability pair, an optional amount estimate, a fraud probability, and
// the backend's own confidence. Created per call, consumed immediately by
// the fallback policy, never persisted.
type Signal struct {
	CreditProbability float64  `json:"credit_probability"`
	DebitProbability  float64  `json:"debit_probability"`
	Amount            *float64 `json:"amount,omitempty"`
	FraudProbability  float64  `json:"fraud_probability"`
	Confidence        float64  `json:"confidence,omitempty"`

	// Raw is the validated model JSON, kept for logging.
	Raw []byte `json:"-"`
}

// TypeConfidence is the probability of the argmax type class.
func (s *Signal) TypeConfidence() float64 {
	if s.CreditProbability > s.DebitProbability {
		return s.CreditProbability
	}
	return s.DebitProbability
}

// Backend is the model inference capability the pipeline may consult before
// falling back to heuristics. Implementations must be safe for concurrent
// Infer calls.
type Backend interface {
	// Name identifies the backend strategy ("openai", "gemini").
	Name() string
	// Infer runs one inference over the message features.
	Infer(ctx context.Context, req Request) (*Signal, error)
}

var (
	// ErrNotReady is returned for calls made before the loader finished.
	// It is the shared sentinel so HTTP surfaces map it to 503.
	ErrNotReady = common.ErrNotReady
	// ErrUnavailable is returned when no backend is configured or loading failed.
	ErrUnavailable = errors.New("backend unavailable")
)
