// Package repository persists completed analyses behind database/sql, with
// sqlite for embedded use and postgres (via a pgx pool) for deployments.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	Driver           string // "sqlite" or "postgres"
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// DB wraps the opened handle plus the postgres pool when one exists.
type DB struct {
	SQL  *sql.DB
	pool *pgxpool.Pool
}

// Open connects per cfg.Driver and verifies the connection within
// cfg.DialTimeout.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 3 * time.Second
	}

	switch cfg.Driver {
	case "sqlite", "":
		logger.Info("db.open", "driver", "sqlite", "dsn", cfg.DSN)
		db, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			logger.Error("db.open.failed", "error", err)
			return nil, err
		}
		// modernc sqlite serializes writes; a single conn avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			logger.Error("db.open.failed", "error", err)
			return nil, err
		}
		return &DB{SQL: db}, nil

	case "postgres":
		logger.Info("db.open", "driver", "postgres")
		pc, err := pgxpool.ParseConfig(cfg.DSN)
		if err != nil {
			logger.Error("db.open.failed", "error", err)
			return nil, err
		}
		if cfg.MaxConns > 0 {
			pc.MaxConns = cfg.MaxConns
		}
		if cfg.MinConns > 0 {
			pc.MinConns = cfg.MinConns
		}
		if cfg.MaxConnLifetime > 0 {
			pc.MaxConnLifetime = cfg.MaxConnLifetime
		}
		if cfg.MaxConnIdleTime > 0 {
			pc.MaxConnIdleTime = cfg.MaxConnIdleTime
		}
		pc.ConnConfig.RuntimeParams["application_name"] = "sms-txn-parser"
		if cfg.StatementTimeout > 0 {
			pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
		}

		ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
		pool, err := pgxpool.NewWithConfig(ctx, pc)
		if err != nil {
			logger.Error("db.open.failed", "error", err)
			return nil, err
		}
		logger.Info("db.open.ok", "driver", "postgres")
		return &DB{SQL: stdlib.OpenDBFromPool(pool), pool: pool}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// HealthCheck pings the database with a short deadline.
func (d *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.SQL.PingContext(ctx)
}

func (d *DB) Close() error {
	err := d.SQL.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}
