package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the shared connection pool from the DATABASE_URL
// environment variable. Callers that run without a database simply skip
// this; the statement cache then falls back to files.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
	})
	return err
}

// GetPool returns the shared pool, nil when InitDB was never called
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the shared pool
func Close() {
	if pool != nil {
		pool.Close()
	}
}

// Schema returns the DDL for the statement cache table. Applied out of band;
// the cache itself never migrates.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS statement_builds (
    id              TEXT PRIMARY KEY,
    cik             TEXT NOT NULL,
    ticker          TEXT,
    fiscal_year     INT NOT NULL,
    fiscal_period   TEXT NOT NULL,
    statement_kind  TEXT NOT NULL,
    statement       JSONB NOT NULL,
    built_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS statement_builds_lookup
    ON statement_builds (cik, fiscal_year, fiscal_period, statement_kind);
`
}
