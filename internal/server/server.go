// Package server exposes the analysis pipeline over a REST API.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arjun-krishnan/sms-txn-parser/internal/backend"
	"github.com/arjun-krishnan/sms-txn-parser/internal/common"
	"github.com/arjun-krishnan/sms-txn-parser/internal/core"
	"github.com/arjun-krishnan/sms-txn-parser/internal/core/async"
	"github.com/arjun-krishnan/sms-txn-parser/internal/export"
	"github.com/arjun-krishnan/sms-txn-parser/internal/repository"
)

type Server struct {
	logger    *slog.Logger
	processor *core.Processor
	queue     *async.AnalyzeQueue
	repo      *repository.AnalysisRepository
	exporter  *export.Service
	loader    *backend.Loader
	db        *repository.DB
}

func New(
	logger *slog.Logger,
	processor *core.Processor,
	queue *async.AnalyzeQueue,
	repo *repository.AnalysisRepository,
	exporter *export.Service,
	loader *backend.Loader,
	db *repository.DB,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:    logger,
		processor: processor,
		queue:     queue,
		repo:      repo,
		exporter:  exporter,
		loader:    loader,
		db:        db,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/health", s.health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/messages/analyze", s.analyzeMessage)
		v1.POST("/messages/batch", s.batchMessages)
		v1.GET("/jobs/:id", s.jobStatus)
		v1.GET("/transactions", s.listTransactions)
		v1.GET("/transactions/export", s.exportTransactions)
		v1.GET("/model/status", s.modelStatus)
		v1.POST("/model/load", s.modelLoad)
	}
	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := uuid.NewString()
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), rid))
		c.Header("X-Request-ID", rid)
		c.Next()
		s.logger.Info("http.request",
			"req_id", rid,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
		)
	}
}
