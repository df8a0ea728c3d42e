package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arjun-krishnan/sms-txn-parser/internal/repository"
)

// Service is a tiny façade over the analyses repository that produces XLSX
// bytes for exports.
type Service struct {
	repo   *repository.AnalysisRepository
	logger *slog.Logger
}

func NewService(repo *repository.AnalysisRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportAnalysesXLSX returns an XLSX workbook (as bytes) with the most recent
// stored analyses, up to limit rows.
func (s *Service) ExportAnalysesXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()

	recs, err := s.repo.List(ctx, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Transactions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Analyzed At",
		"Type",
		"Amount",
		"Description",
		"Fraud",
		"Source",
		"Message",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		if !r.CreatedAt.IsZero() {
			write(1, r.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		} else {
			write(1, "")
		}

		txType := ""
		if r.Result.Type != nil {
			txType = r.Result.Type.String()
		}
		write(2, txType)

		if r.Result.Amount != nil {
			write(3, *r.Result.Amount)
		} else {
			write(3, "")
		}

		description := ""
		if r.Result.Description != nil {
			description = *r.Result.Description
		}
		write(4, truncate(description, 140))

		write(5, r.Result.Fraud)
		write(6, string(r.Source))
		write(7, truncate(r.RawText, 200))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 20) // timestamp
	_ = f.SetColWidth(sheet, "B", "B", 10) // type
	_ = f.SetColWidth(sheet, "C", "C", 14) // amount
	_ = f.SetColWidth(sheet, "D", "D", 48) // description
	_ = f.SetColWidth(sheet, "E", "F", 10) // fraud, source
	_ = f.SetColWidth(sheet, "G", "G", 60) // message

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
