package constants

// TransactionType is the classification outcome for a parsed message.
// Unknown is a first-class outcome, not an error.
type TransactionType string

const (
	TypeCredit  TransactionType = "credit"
	TypeDebit   TransactionType = "debit"
	TypeUnknown TransactionType = "unknown"
)

// String returns the wire form of the type.
func (t TransactionType) String() string {
	return string(t)
}

// Known reports whether the type carries a usable credit/debit verdict.
func (t TransactionType) Known() bool {
	return t == TypeCredit || t == TypeDebit
}

// AnalysisSource records which strategy produced a stored analysis.
type AnalysisSource string

const (
	SourceHeuristic AnalysisSource = "heuristic"
	SourceOpenAI    AnalysisSource = "openai"
	SourceGemini    AnalysisSource = "gemini"
)
