// Package store caches assembled statements outside the pure core.
// Hybrid layout: Postgres when a pool is configured, filesystem fallback
// for local use. The core never calls into this package.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"xbrl_statements/pkg/models"
)

// StatementCache stores assembled statement grids keyed by company and
// fiscal period, so repeat renders skip selection and assembly.
type StatementCache struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewStatementCache creates a cache. A nil pool falls back to files under
// dir; an empty dir defaults to .cache/statements.
func NewStatementCache(pool *pgxpool.Pool, dir string) (*StatementCache, error) {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "statements")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create statement cache dir: %w", err)
		}
	}
	return &StatementCache{pool: pool, fileDir: dir}, nil
}

// Entry is one cached statement build
type Entry struct {
	ID           string            `json:"id"`
	CIK          string            `json:"cik"`
	Ticker       string            `json:"ticker,omitempty"`
	FiscalYear   int               `json:"fiscal_year"`
	FiscalPeriod string            `json:"fiscal_period"` // "FY", "Q1", ...
	Statement    *models.Statement `json:"statement"`
	BuiltAt      time.Time         `json:"built_at"`
}

// Put stores a statement build
func (c *StatementCache) Put(ctx context.Context, e Entry) error {
	if e.Statement == nil {
		return fmt.Errorf("statement cache: nil statement")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.BuiltAt.IsZero() {
		e.BuiltAt = time.Now().UTC()
	}

	if c.pool != nil {
		payload, err := json.Marshal(e.Statement)
		if err != nil {
			return fmt.Errorf("marshal statement: %w", err)
		}
		_, err = c.pool.Exec(ctx, `
			INSERT INTO statement_builds (id, cik, ticker, fiscal_year, fiscal_period, statement_kind, statement, built_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET statement = EXCLUDED.statement, built_at = EXCLUDED.built_at
		`, e.ID, e.CIK, e.Ticker, e.FiscalYear, e.FiscalPeriod, string(e.Statement.Kind), payload, e.BuiltAt)
		if err != nil {
			return fmt.Errorf("insert statement build: %w", err)
		}
		return nil
	}

	if c.fileDir != "" {
		payload, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal cache entry: %w", err)
		}
		return os.WriteFile(c.entryPath(e.CIK, e.FiscalYear, e.FiscalPeriod, e.Statement.Kind), payload, 0644)
	}
	return nil
}

// Get retrieves the most recent cached build for a company period.
// Returns (nil, nil) on miss.
func (c *StatementCache) Get(ctx context.Context, cik string, fiscalYear int, fiscalPeriod string, kind models.StatementKind) (*models.Statement, error) {
	if c.pool != nil {
		var payload []byte
		err := c.pool.QueryRow(ctx, `
			SELECT statement FROM statement_builds
			WHERE cik = $1 AND fiscal_year = $2 AND fiscal_period = $3 AND statement_kind = $4
			ORDER BY built_at DESC LIMIT 1
		`, cik, fiscalYear, fiscalPeriod, string(kind)).Scan(&payload)
		if err != nil {
			return nil, nil // miss
		}
		var st models.Statement
		if err := json.Unmarshal(payload, &st); err != nil {
			return nil, fmt.Errorf("unmarshal cached statement: %w", err)
		}
		return &st, nil
	}

	if c.fileDir != "" {
		data, err := os.ReadFile(c.entryPath(cik, fiscalYear, fiscalPeriod, kind))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("read cached statement: %w", err)
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("unmarshal cached entry: %w", err)
		}
		return e.Statement, nil
	}
	return nil, nil
}

func (c *StatementCache) entryPath(cik string, fiscalYear int, fiscalPeriod string, kind models.StatementKind) string {
	name := fmt.Sprintf("%s_%d_%s_%s.json", padCIK(cik), fiscalYear, fiscalPeriod, kind)
	return filepath.Join(c.fileDir, name)
}

// padCIK pads a CIK to the 10 digits SEC tooling expects
func padCIK(cik string) string {
	cik = strings.TrimLeft(cik, "0")
	for len(cik) < 10 {
		cik = "0" + cik
	}
	return cik
}
