package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
	"github.com/arjun-krishnan/sms-txn-parser/internal/backend"
	"github.com/arjun-krishnan/sms-txn-parser/internal/backend/openai"
	"github.com/arjun-krishnan/sms-txn-parser/internal/common"
	"github.com/arjun-krishnan/sms-txn-parser/internal/core"
	"github.com/arjun-krishnan/sms-txn-parser/internal/extract"
)

// smsparse analyzes one message and prints the result JSON. With
// BACKEND_PROVIDER=openai the model backend is consulted first; otherwise
// the heuristics run alone.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: smsparse <message text>")
		os.Exit(2)
	}
	text := core.UnwrapPrompt(strings.Join(os.Args[1:], " "))

	cfg := common.LoadConfig()

	var factory backend.Factory
	if cfg.Backend.Provider == "openai" {
		factory = func(context.Context) (backend.Backend, error) {
			return openai.NewClient(openai.Config{
				APIKey:      cfg.Backend.APIKey,
				BaseURL:     cfg.Backend.BaseURL,
				Model:       cfg.Backend.Model,
				Temperature: cfg.Backend.Temperature,
				Timeout:     cfg.Backend.InferTimeout,
			}, logger), nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	loader := backend.NewLoader(factory, logger)
	loader.Start(ctx)
	if factory != nil {
		waitForLoad(loader, 5*time.Second)
	}

	processor := core.NewProcessor(logger, loader, extract.DefaultVocabulary(), cfg.Extract, cfg.Backend.InferTimeout)
	analysis, err := processor.Analyze(ctx, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}

	out, err := analysis.Result.ToJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func waitForLoad(l *backend.Loader, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		s := l.Status()
		if s == constants.BackendAvailable || s == constants.BackendUnavailable {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}
