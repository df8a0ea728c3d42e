package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
	"github.com/arjun-krishnan/sms-txn-parser/internal/backend"
	"github.com/arjun-krishnan/sms-txn-parser/internal/backend/gemini"
	"github.com/arjun-krishnan/sms-txn-parser/internal/backend/openai"
	"github.com/arjun-krishnan/sms-txn-parser/internal/common"
	"github.com/arjun-krishnan/sms-txn-parser/internal/core"
	"github.com/arjun-krishnan/sms-txn-parser/internal/core/async"
	"github.com/arjun-krishnan/sms-txn-parser/internal/export"
	"github.com/arjun-krishnan/sms-txn-parser/internal/extract"
	"github.com/arjun-krishnan/sms-txn-parser/internal/repository"
	"github.com/arjun-krishnan/sms-txn-parser/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, repository.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxConns:        20,
		MinConns:        5,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.HealthCheck(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	repo, err := repository.NewAnalysisRepository(ctx, db, cfg.Database.Driver, logger)
	if err != nil {
		logger.Error("failed to initialize repository", "error", err)
		os.Exit(1)
	}

	loader := backend.NewLoader(backendFactory(cfg, logger), logger)
	loader.NotifyStatus(func(status constants.BackendStatus) {
		logger.Info("backend.status", "status", string(status))
	})
	loader.Start(context.Background())

	processor := core.NewProcessor(logger, loader, extract.DefaultVocabulary(), cfg.Extract, cfg.Backend.InferTimeout)
	queue := async.NewAnalyzeQueue(processor, repo, logger,
		async.WithWorkers(6),
		async.WithQueueSize(512),
		async.WithJobTimeout(cfg.Backend.InferTimeout+5*time.Second),
	)
	exporter := export.NewService(repo, logger)

	srv := server.New(logger, processor, queue, repo, exporter, loader, db)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("http.serve", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	queue.Shutdown(shutdownCtx)
	logger.Info("stopped")
}

// backendFactory maps the configured provider to a loader factory; "none"
// yields no factory, leaving the pipeline heuristic-only.
func backendFactory(cfg *common.Config, logger *slog.Logger) backend.Factory {
	switch cfg.Backend.Provider {
	case "openai":
		return func(context.Context) (backend.Backend, error) {
			return openai.NewClient(openai.Config{
				APIKey:      cfg.Backend.APIKey,
				BaseURL:     cfg.Backend.BaseURL,
				Model:       cfg.Backend.Model,
				Temperature: cfg.Backend.Temperature,
				Timeout:     cfg.Backend.InferTimeout,
			}, logger), nil
		}
	case "gemini":
		return func(ctx context.Context) (backend.Backend, error) {
			return gemini.New(ctx, gemini.Config{Model: cfg.Backend.Model}, logger)
		}
	default:
		return nil
	}
}
