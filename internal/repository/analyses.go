package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
	"github.com/arjun-krishnan/sms-txn-parser/internal/common"
	"github.com/arjun-krishnan/sms-txn-parser/internal/core"
	"github.com/arjun-krishnan/sms-txn-parser/internal/extract"
)

const analysesSchema = `
CREATE TABLE IF NOT EXISTS analyses (
	id          TEXT PRIMARY KEY,
	raw_text    TEXT NOT NULL,
	tx_type     TEXT,
	amount      DOUBLE PRECISION,
	description TEXT,
	fraud       BOOLEAN NOT NULL,
	source      TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
)`

// AnalysisRepository stores and lists completed analyses.
type AnalysisRepository struct {
	db       *DB
	logger   *slog.Logger
	postgres bool
}

// NewAnalysisRepository creates the analyses table when missing and returns
// the repository.
func NewAnalysisRepository(ctx context.Context, db *DB, driver string, logger *slog.Logger) (*AnalysisRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := db.SQL.ExecContext(ctx, analysesSchema); err != nil {
		return nil, common.NewAppError("DB_ERROR", "creating analyses table", err)
	}
	return &AnalysisRepository{db: db, logger: logger, postgres: driver == "postgres"}, nil
}

// rebind rewrites ? placeholders to $N for postgres.
func (r *AnalysisRepository) rebind(query string) string {
	if !r.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (r *AnalysisRepository) Save(ctx context.Context, a core.Analysis) error {
	var txType, description sql.NullString
	var amount sql.NullFloat64
	if a.Result.Type != nil {
		txType = sql.NullString{String: string(*a.Result.Type), Valid: true}
	}
	if a.Result.Amount != nil {
		amount = sql.NullFloat64{Float64: *a.Result.Amount, Valid: true}
	}
	if a.Result.Description != nil {
		description = sql.NullString{String: *a.Result.Description, Valid: true}
	}

	query := r.rebind(`INSERT INTO analyses (id, raw_text, tx_type, amount, description, fraud, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.SQL.ExecContext(ctx, query,
		a.ID.String(), a.RawText, txType, amount, description,
		a.Result.Fraud, string(a.Source), time.Now().UTC())
	if err != nil {
		r.logger.Error("repo.analyses.save.failed", "analysis_id", a.ID, "error", err)
		return common.NewAppError("DB_ERROR", "saving analysis", err)
	}
	return nil
}

// StoredAnalysis is one persisted row.
type StoredAnalysis struct {
	ID        uuid.UUID
	RawText   string
	Result    extract.Result
	Source    constants.AnalysisSource
	CreatedAt time.Time
}

// List returns the most recent analyses, newest first.
func (r *AnalysisRepository) List(ctx context.Context, limit, offset int) ([]StoredAnalysis, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := r.rebind(`SELECT id, raw_text, tx_type, amount, description, fraud, source, created_at
		FROM analyses ORDER BY created_at DESC, id LIMIT ? OFFSET ?`)
	rows, err := r.db.SQL.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("repo.analyses.list.failed", "error", err)
		return nil, common.NewAppError("DB_ERROR", "listing analyses", err)
	}
	defer rows.Close()

	var out []StoredAnalysis
	for rows.Next() {
		var (
			id          string
			s           StoredAnalysis
			txType      sql.NullString
			amount      sql.NullFloat64
			description sql.NullString
			source      string
		)
		if err := rows.Scan(&id, &s.RawText, &txType, &amount, &description, &s.Result.Fraud, &source, &s.CreatedAt); err != nil {
			return nil, common.NewAppError("DB_ERROR", "scanning analysis row", err)
		}
		s.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, common.NewAppError("DB_ERROR", "parsing analysis id", err)
		}
		if txType.Valid {
			t := constants.TransactionType(txType.String)
			s.Result.Type = &t
		}
		if amount.Valid {
			v := amount.Float64
			s.Result.Amount = &v
		}
		if description.Valid {
			d := description.String
			s.Result.Description = &d
		}
		s.Source = constants.AnalysisSource(source)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError("DB_ERROR", "iterating analyses", err)
	}
	return out, nil
}

// Count returns the number of stored analyses.
func (r *AnalysisRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.SQL.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&n); err != nil {
		return 0, common.NewAppError("DB_ERROR", "counting analyses", err)
	}
	return n, nil
}
