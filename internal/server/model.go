package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) modelStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": string(s.loader.Status())})
}

// modelLoad starts backend initialization if it has not started yet and
// reports the state after the call.
func (s *Server) modelLoad(c *gin.Context) {
	// Loading must outlive this request.
	s.loader.Start(context.Background())
	c.JSON(http.StatusAccepted, gin.H{"status": string(s.loader.Status())})
}
