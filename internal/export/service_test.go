package export

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
	"github.com/arjun-krishnan/sms-txn-parser/internal/core"
	"github.com/arjun-krishnan/sms-txn-parser/internal/extract"
	"github.com/arjun-krishnan/sms-txn-parser/internal/repository"
)

func TestExportAnalysesXLSX(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	ctx := context.Background()

	db, err := repository.Open(ctx, repository.Config{Driver: "sqlite", DSN: ":memory:"}, logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := repository.NewAnalysisRepository(ctx, db, "sqlite", logger)
	if err != nil {
		t.Fatalf("NewAnalysisRepository: %v", err)
	}

	txType := constants.TypeDebit
	amount := 450.00
	desc := "Payment made at Amazon debit type"
	if err := repo.Save(ctx, core.Analysis{
		ID:      uuid.New(),
		RawText: "Rs. 450.00 paid at amazon",
		Result:  extract.Result{Type: &txType, Amount: &amount, Description: &desc},
		Source:  constants.SourceHeuristic,
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, core.Analysis{
		ID:      uuid.New(),
		RawText: "URGENT verify your account now",
		Result:  extract.Result{Fraud: true},
		Source:  constants.SourceHeuristic,
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	svc := NewService(repo, logger)
	b, err := svc.ExportAnalysesXLSX(ctx, 100)
	if err != nil {
		t.Fatalf("ExportAnalysesXLSX: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("empty workbook bytes")
	}

	wb, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Transactions")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("workbook has %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "Analyzed At" || rows[0][4] != "Fraud" {
		t.Errorf("unexpected header row: %v", rows[0])
	}

	sawDebit := false
	for _, r := range rows[1:] {
		if len(r) > 1 && r[1] == "debit" {
			sawDebit = true
			if r[3] != desc {
				t.Errorf("description cell = %q, want %q", r[3], desc)
			}
		}
	}
	if !sawDebit {
		t.Error("debit analysis missing from export")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("hello world", 5); got != "hell…" {
		t.Errorf("truncate = %q, want %q", got, "hell…")
	}
}
