package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arjun-krishnan/sms-txn-parser/internal/common"
	"github.com/arjun-krishnan/sms-txn-parser/internal/core"
	"github.com/arjun-krishnan/sms-txn-parser/internal/core/async"
	"github.com/arjun-krishnan/sms-txn-parser/internal/extract"
)

type analyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

type analysisResponse struct {
	ID string `json:"id"`
	extract.Result
	Source string `json:"source"`
}

func toResponse(a core.Analysis) analysisResponse {
	return analysisResponse{
		ID:     a.ID.String(),
		Result: a.Result,
		Source: string(a.Source),
	}
}

// analyzeMessage runs the pipeline synchronously over one message and stores
// the result. Wrapped instructions ("... SMS: \"...\"") are unwrapped first.
func (s *Server) analyzeMessage(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	text := core.UnwrapPrompt(req.Text)
	analysis, err := s.processor.Analyze(c.Request.Context(), text)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message text is empty"})
			return
		}
		s.logger.Error("http.analyze.failed", "req_id", common.RequestIDFromContext(c.Request.Context()), "error", err)
		c.JSON(common.HTTPStatus(err), gin.H{"error": "analysis failed"})
		return
	}

	if err := s.repo.Save(c.Request.Context(), analysis); err != nil {
		s.logger.Error("http.analyze.store_failed", "req_id", common.RequestIDFromContext(c.Request.Context()), "analysis_id", analysis.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store analysis"})
		return
	}

	c.JSON(http.StatusOK, toResponse(analysis))
}

type batchRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

type batchResponse struct {
	Jobs []batchJob `json:"jobs"`
}

type batchJob struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// batchMessages enqueues each message for background analysis and returns
// the job IDs for polling.
func (s *Server) batchMessages(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Texts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "texts is required"})
		return
	}

	resp := batchResponse{Jobs: make([]batchJob, 0, len(req.Texts))}
	for _, text := range req.Texts {
		job := async.Job{ID: uuid.New(), Text: core.UnwrapPrompt(text)}
		if err := s.queue.Enqueue(c.Request.Context(), job); err != nil {
			s.logger.Error("http.batch.enqueue_failed", "req_id", common.RequestIDFromContext(c.Request.Context()), "job_id", job.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue"})
			return
		}
		status, _ := s.queue.Status(job.ID)
		resp.Jobs = append(resp.Jobs, batchJob{ID: job.ID.String(), Status: string(status)})
	}

	c.JSON(http.StatusAccepted, resp)
}

func (s *Server) jobStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	status, ok := s.queue.Status(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.String(), "status": string(status)})
}
