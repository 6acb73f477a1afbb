package store

import (
	"context"
	"testing"
	"time"

	"xbrl_statements/pkg/models"
)

func TestStatementCacheFileRoundTrip(t *testing.T) {
	cache, err := NewStatementCache(nil, t.TempDir())
	if err != nil {
		t.Fatalf("NewStatementCache failed: %v", err)
	}

	end := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)
	st := &models.Statement{
		BuildID: "test-build",
		Kind:    models.IncomeStatement,
		Columns: []models.Column{{Period: models.Instant(end), Label: "Sep 30, 2024"}},
		Rows: []models.StatementRow{
			{Concept: "us-gaap:Revenues", Label: "Revenue", OriginalLabel: "Total revenues",
				Values: []models.CellValue{{Value: 25182}}},
		},
	}

	ctx := context.Background()
	err = cache.Put(ctx, Entry{CIK: "1318605", Ticker: "TSLA", FiscalYear: 2024, FiscalPeriod: "Q3", Statement: st})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := cache.Get(ctx, "1318605", 2024, "Q3", models.IncomeStatement)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for a stored statement")
	}
	if got.BuildID != "test-build" || len(got.Rows) != 1 {
		t.Errorf("round trip mangled statement: %+v", got)
	}
	if got.Rows[0].OriginalLabel != "Total revenues" {
		t.Errorf("original label lost in cache: %q", got.Rows[0].OriginalLabel)
	}
}

func TestStatementCacheMissReturnsNil(t *testing.T) {
	cache, err := NewStatementCache(nil, t.TempDir())
	if err != nil {
		t.Fatalf("NewStatementCache failed: %v", err)
	}

	got, err := cache.Get(context.Background(), "0000320193", 2024, "FY", models.BalanceSheet)
	if err != nil {
		t.Fatalf("Get on miss errored: %v", err)
	}
	if got != nil {
		t.Errorf("Get on miss = %+v, want nil", got)
	}
}

func TestPadCIK(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1318605", "0001318605"},
		{"0001318605", "0001318605"},
		{"320193", "0000320193"},
	}
	for _, tt := range tests {
		if got := padCIK(tt.in); got != tt.want {
			t.Errorf("padCIK(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
