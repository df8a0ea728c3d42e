package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/arjun-krishnan/sms-txn-parser/internal/backend"
)

const defaultModel = "gemini-2.0-flash"

// Config for the Gemini client. Credentials come from the environment, the
// way the genai SDK resolves them.
type Config struct {
	Model string
}

type Client struct {
	cfg    Config
	client *genai.Client
	logger *slog.Logger
}

// New creates a Gemini-backed inference client.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{cfg: cfg, client: client, logger: logger}, nil
}

// Name implements backend.Backend.
func (c *Client) Name() string { return "gemini" }

// Infer implements backend.Backend via GenerateContent. Gemini tends to wrap
// JSON in Markdown fences even when told not to, so the response text goes
// through fence cleanup before validation.
func (c *Client) Infer(ctx context.Context, req backend.Request) (*backend.Signal, error) {
	start := time.Now()

	prompt := buildPrompt(req)
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("empty response from model")
	}
	content := []byte(cleanModelJSON(rawText))

	schema := backend.BuildSignalJSONSchema()
	if err := backend.ValidateJSONAgainstSchema(schema, content); err != nil {
		cleaned, dropped, sErr := backend.NormalizeAndSanitizeJSON(content, c.logger)
		if sErr != nil {
			return nil, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := backend.ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			return nil, fmt.Errorf("schema validation failed: %w", vErr)
		}
		c.logger.Warn("backend.infer.lenient_sanitize_applied", "backend", "gemini", "dropped", dropped)
		content = cleaned
	}

	var sig backend.Signal
	if err := json.Unmarshal(content, &sig); err != nil {
		return nil, fmt.Errorf("unmarshal signal: %w", err)
	}
	sig.Raw = content

	c.logger.Info("backend.infer.ok",
		"backend", "gemini",
		"model", c.cfg.Model,
		"credit_p", sig.CreditProbability,
		"debit_p", sig.DebitProbability,
		"fraud_p", sig.FraudProbability,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &sig, nil
}

func buildPrompt(req backend.Request) string {
	var b strings.Builder
	b.WriteString("You are a bank notification classifier for Indian bank and UPI SMS messages.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Read the message below and output STRICT JSON only (no comments, no extra text).\n")
	b.WriteString("- Output a single JSON object with these fields:\n")
	b.WriteString("  - \"credit_probability\": number 0..1, probability the message reports money received\n")
	b.WriteString("  - \"debit_probability\": number 0..1, probability the message reports money spent or sent\n")
	b.WriteString("  - \"amount\": number, the transaction amount if one is stated (omit otherwise)\n")
	b.WriteString("  - \"fraud_probability\": number 0..1, probability the message is phishing or a scam\n")
	b.WriteString("  - \"confidence\": number 0..1, your overall confidence (optional)\n\n")
	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Do NOT use ```json or any Markdown.\n\n")
	b.WriteString("Message:\n")
	b.WriteString(req.Text)
	return b.String()
}

func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
