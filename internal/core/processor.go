package core

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
	"github.com/arjun-krishnan/sms-txn-parser/internal/backend"
	"github.com/arjun-krishnan/sms-txn-parser/internal/common"
	"github.com/arjun-krishnan/sms-txn-parser/internal/extract"
)

// Analysis is one completed extraction: the structured result plus the
// provenance the service layers persist and report.
type Analysis struct {
	ID      uuid.UUID
	RawText string
	Result  extract.Result
	Source  constants.AnalysisSource
}

// Processor coordinates the extraction pipeline: heuristic fraud gate,
// optional model backend behind the loader, heuristic fallback, entity
// extraction and aggregation.
type Processor struct {
	logger       *slog.Logger
	loader       *backend.Loader
	inferTimeout time.Duration
	cfg          common.ExtractConfig

	fraud      *extract.FraudDetector
	classifier *extract.TypeClassifier
	amounts    *extract.AmountExtractor
	entities   *extract.EntityExtractor
	agg        extract.Aggregator
}

func NewProcessor(
	logger *slog.Logger,
	loader *backend.Loader,
	vocab extract.Vocabulary,
	cfg common.ExtractConfig,
	inferTimeout time.Duration,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TypeConfidenceThreshold == 0 {
		cfg.TypeConfidenceThreshold = 0.5
	}
	if cfg.FraudConfidenceThreshold == 0 {
		cfg.FraudConfidenceThreshold = 0.5
	}
	if inferTimeout <= 0 {
		inferTimeout = 10 * time.Second
	}
	return &Processor{
		logger:       logger,
		loader:       loader,
		inferTimeout: inferTimeout,
		cfg:          cfg,
		fraud:        extract.NewFraudDetector(vocab),
		classifier:   extract.NewTypeClassifier(vocab),
		amounts:      extract.NewAmountExtractor(),
		entities:     extract.NewEntityExtractor(vocab),
		agg:          extract.Aggregator{SuppressUnknown: cfg.Unknown == common.UnknownSuppress},
	}
}

// Analyze runs the full pipeline over one message. The only caller-visible
// failure is blank input; classification ambiguity comes back as unknown/null
// fields, and every backend problem is absorbed by the heuristic fallback.
func (p *Processor) Analyze(ctx context.Context, text string) (Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return Analysis{}, common.NewAppError("EMPTY_MESSAGE", "message text is empty", common.ErrInvalidInput)
	}

	id := uuid.New()
	start := time.Now()
	normalized := extract.Normalize(text)

	// Conservative gate: one indicator hit suppresses everything, no matter
	// what a backend would have said.
	if p.fraud.IsFraud(normalized) {
		p.logger.Info("analyze.fraud_detected", "analysis_id", id, "elapsed_ms", time.Since(start).Milliseconds())
		return Analysis{
			ID:      id,
			RawText: text,
			Result:  p.agg.Aggregate(true, constants.TypeUnknown, nil, nil),
			Source:  constants.SourceHeuristic,
		}, nil
	}

	txType, amount, fraud, source := p.resolve(ctx, id, text, normalized)
	if fraud {
		return Analysis{
			ID:      id,
			RawText: text,
			Result:  p.agg.Aggregate(true, constants.TypeUnknown, nil, nil),
			Source:  source,
		}, nil
	}

	entity := p.entities.Extract(text)
	result := p.agg.Aggregate(false, txType, amount, entity)

	p.logger.Info("analyze.ok",
		"analysis_id", id,
		"source", string(source),
		"type", txType.String(),
		"has_amount", amount != nil,
		"has_entity", entity != nil,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Analysis{ID: id, RawText: text, Result: result, Source: source}, nil
}

// resolve picks between the model backend and the heuristic strategy.
// Backend errors of any kind (not ready, timeout, malformed output) mean
// "backend unavailable for this call" and fall through to heuristics.
func (p *Processor) resolve(ctx context.Context, id uuid.UUID, text string, normalized extract.NormalizedText) (constants.TransactionType, *float64, bool, constants.AnalysisSource) {
	b, err := p.loader.Backend()
	if err == nil {
		ictx, cancel := context.WithTimeout(ctx, p.inferTimeout)
		sig, inferErr := b.Infer(ictx, backend.Request{Text: text, Tokens: normalized.Tokens})
		cancel()
		if inferErr == nil && sig == nil {
			inferErr = errors.New("backend returned no signal")
		}

		if inferErr != nil {
			p.logger.Warn("analyze.backend_failed",
				"analysis_id", id, "backend", b.Name(), "error", inferErr)
		} else {
			source := constants.AnalysisSource(b.Name())
			if sig.FraudProbability > p.cfg.FraudConfidenceThreshold {
				p.logger.Info("analyze.backend_fraud", "analysis_id", id, "fraud_p", sig.FraudProbability)
				return constants.TypeUnknown, nil, true, source
			}
			if sig.TypeConfidence() > p.cfg.TypeConfidenceThreshold {
				txType := extract.ClassifyProbabilities(
					sig.CreditProbability, sig.DebitProbability, p.cfg.TypeConfidenceThreshold)
				amount := sig.Amount
				if amount == nil {
					amount = p.amounts.Extract(text)
				}
				return txType, amount, false, source
			}
			p.logger.Debug("analyze.backend_underconfident",
				"analysis_id", id, "type_confidence", sig.TypeConfidence())
		}
	}

	return p.classifier.Classify(normalized), p.amounts.Extract(text), false, constants.SourceHeuristic
}
