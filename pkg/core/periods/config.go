// Package periods selects which reporting periods become the columns of a
// financial statement. Filings expose many overlapping and duplicate period
// contexts; the selector deduplicates, ranks, and deliberately
// over-provisions candidates so the assembler's data-quality filter has
// real choice.
package periods

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// TieBreak controls the precedence between span fidelity and data
// completeness when ranking quarterly candidates. The right order is not
// settled, so both are supported and covered by tests.
type TieBreak string

const (
	// TieBreakSpanFirst ranks by deviation from a canonical quarter length
	// before populated-fact count.
	TieBreakSpanFirst TieBreak = "span_first"
	// TieBreakFactsFirst ranks by populated-fact count before span
	// deviation.
	TieBreakFactsFirst TieBreak = "facts_first"
)

// Config carries the selection knobs. DefaultConfig values reflect observed
// filing behavior; override via OverlayFile for unusual fiscal calendars.
type Config struct {
	// DuplicateToleranceDays collapses redundant contexts whose dates
	// differ by at most this many days.
	DuplicateToleranceDays int `yaml:"duplicate_tolerance_days"`

	// InstantCeiling is the candidate pool size for instant-period
	// statements. Kept generous: narrow pools caused real data loss.
	InstantCeiling int `yaml:"instant_ceiling"`

	// AnnualCeiling caps annual duration candidates. Annual filings rarely
	// carry more than a few comparable years.
	AnnualCeiling int `yaml:"annual_ceiling"`

	// Annual periods span roughly a fiscal year. The bounds reject
	// quarters (~90 days) and multi-year cumulative spans.
	AnnualMinDays int `yaml:"annual_min_days"`
	AnnualMaxDays int `yaml:"annual_max_days"`

	// Quarterly periods span roughly a fiscal quarter
	QuarterMinDays int `yaml:"quarter_min_days"`
	QuarterMaxDays int `yaml:"quarter_max_days"`

	// QuarterlyScanLimit is how many historical quarterly candidates are
	// examined. Scanning only the most recent handful silently drops the
	// year-ago comparison when spans misalign.
	QuarterlyScanLimit int `yaml:"quarterly_scan_limit"`

	// QuarterlyPoolFactor multiplies the requested column count to size
	// the returned candidate pool.
	QuarterlyPoolFactor int `yaml:"quarterly_pool_factor"`

	QuarterlyTieBreak TieBreak `yaml:"quarterly_tie_break"`
}

// DefaultConfig returns the standard selection configuration
func DefaultConfig() Config {
	return Config{
		DuplicateToleranceDays: 3,
		InstantCeiling:         10,
		AnnualCeiling:          5,
		AnnualMinDays:          300,
		AnnualMaxDays:          400,
		QuarterMinDays:         75,
		QuarterMaxDays:         105,
		QuarterlyScanLimit:     12,
		QuarterlyPoolFactor:    3,
		QuarterlyTieBreak:      TieBreakSpanFirst,
	}
}

// LoadConfig reads a YAML config file layered over DefaultConfig
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read period config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse period config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.QuarterlyTieBreak {
	case TieBreakSpanFirst, TieBreakFactsFirst:
	default:
		return fmt.Errorf("unknown quarterly_tie_break %q", c.QuarterlyTieBreak)
	}
	if c.QuarterlyPoolFactor < 1 {
		return fmt.Errorf("quarterly_pool_factor must be >= 1, got %d", c.QuarterlyPoolFactor)
	}
	return nil
}
