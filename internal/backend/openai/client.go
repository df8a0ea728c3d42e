package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjun-krishnan/sms-txn-parser/internal/backend"
)

// Infer implements backend.Backend over an OpenAI-compatible
// /chat/completions endpoint. The model is constrained to a JSON object
// matching the signal schema; the response is validated strictly first and,
// when the client is lenient, sanitized and re-validated before giving up.
func (c *Client) Infer(ctx context.Context, req backend.Request) (*backend.Signal, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("backend.infer.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.Text),
		"tokens", len(req.Tokens),
	)

	schema := backend.BuildSignalJSONSchema()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": buildUserPrompt(req) + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, _, err := backend.SendJSON(ctx, c.http, endpoint, body, map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
	}, c.logger)
	if err != nil {
		c.logger.Error("backend.infer.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("backend.infer.decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return nil, fmt.Errorf("decode completion response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("backend.infer.no_choices", "req_id", rid, "raw", string(raw))
		return nil, fmt.Errorf("no choices in completion response")
	}
	content := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	// Validate strictly first.
	if err := backend.ValidateJSONAgainstSchema(schema, content); err != nil {
		if c.cfg.Strict {
			return nil, fmt.Errorf("schema validation failed: %w", err)
		}
		cleaned, dropped, sErr := backend.NormalizeAndSanitizeJSON(content, c.logger)
		if sErr != nil {
			c.logger.Error("backend.infer.sanitize_failed", "req_id", rid, "error", sErr)
			return nil, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := backend.ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			c.logger.Error("backend.infer.schema_validation_failed",
				"req_id", rid, "error", vErr, "content", string(content),
			)
			return nil, fmt.Errorf("schema validation failed: %w", vErr)
		}
		c.logger.Warn("backend.infer.lenient_sanitize_applied", "req_id", rid, "dropped", dropped)
		content = cleaned
	}

	var sig backend.Signal
	if err := json.Unmarshal(content, &sig); err != nil {
		return nil, fmt.Errorf("unmarshal signal: %w", err)
	}
	sig.Raw = content

	c.logger.Info("backend.infer.ok",
		"req_id", rid,
		"credit_p", sig.CreditProbability,
		"debit_p", sig.DebitProbability,
		"fraud_p", sig.FraudProbability,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &sig, nil
}

// Name implements backend.Backend.
func (c *Client) Name() string { return "openai" }

const systemPrompt = "You are a bank notification classifier. " +
	"Given one SMS message, estimate the probability that it describes money coming in (credit_probability) " +
	"or going out (debit_probability), the transaction amount if one is stated, and the probability that the " +
	"message is a phishing or scam attempt (fraud_probability). " +
	"Probabilities are numbers between 0 and 1. Never output null; omit a field you cannot estimate. " +
	"Return ONLY JSON."

func buildUserPrompt(req backend.Request) string {
	var b strings.Builder
	b.WriteString("Message:\n")
	if len(req.Text) > 1000 {
		b.WriteString(req.Text[:1000])
	} else {
		b.WriteString(req.Text)
	}
	return b.String()
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
