package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arjun-krishnan/sms-txn-parser/internal/common"
	"github.com/arjun-krishnan/sms-txn-parser/internal/extract"
)

type transactionRow struct {
	ID string `json:"id"`
	extract.Result
	Source    string    `json:"source"`
	RawText   string    `json:"raw_text"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) listTransactions(c *gin.Context) {
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)

	recs, err := s.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.logger.Error("http.transactions.list_failed", "req_id", common.RequestIDFromContext(c.Request.Context()), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}

	out := make([]transactionRow, 0, len(recs))
	for _, r := range recs {
		out = append(out, transactionRow{
			ID:        r.ID.String(),
			Result:    r.Result,
			Source:    string(r.Source),
			RawText:   r.RawText,
			CreatedAt: r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"transactions": out})
}

func (s *Server) exportTransactions(c *gin.Context) {
	limit := intQuery(c, "limit", 500)

	b, err := s.exporter.ExportAnalysesXLSX(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("http.transactions.export_failed", "req_id", common.RequestIDFromContext(c.Request.Context()), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", b)
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
