package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun-krishnan/sms-txn-parser/internal/common"
)

func (s *Server) health(c *gin.Context) {
	if s.db != nil {
		if err := s.db.HealthCheck(c.Request.Context()); err != nil {
			s.logger.Error("http.health.db_failed", "req_id", common.RequestIDFromContext(c.Request.Context()), "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"backend": string(s.loader.Status()),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"backend": string(s.loader.Status()),
	})
}
