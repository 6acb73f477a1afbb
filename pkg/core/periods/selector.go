package periods

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"xbrl_statements/pkg/models"
)

// Request describes one selection call
type Request struct {
	// MaxColumns is how many columns the caller ultimately wants. The
	// returned pool is intentionally larger.
	MaxColumns int

	// DocumentPeriodEnd is the filing's declared period of report.
	// Zero when unknown; selection then falls back to pure recency.
	DocumentPeriodEnd time.Time

	// Fiscal year end, when known, refines annual ranking.
	// Zero values mean unknown.
	FiscalYearEndMonth time.Month
	FiscalYearEndDay   int
}

// Candidate is one ranked period option
type Candidate struct {
	Period    models.Period
	FactCount int // facts populated for this period across the input
}

// Selector ranks and filters period candidates. It holds no mutable state;
// a single instance may serve concurrent builds.
type Selector struct {
	cfg Config
	log *zap.SugaredLogger
}

// SelectorOption configures a Selector
type SelectorOption func(*Selector)

// WithLogger sets the selection logger (default no-op)
func WithLogger(l *zap.SugaredLogger) SelectorOption {
	return func(s *Selector) { s.log = l }
}

// NewSelector creates a selector with the given config
func NewSelector(cfg Config, opts ...SelectorOption) *Selector {
	s := &Selector{cfg: cfg, log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select produces the ranked, deduplicated candidate pool for one statement.
// The pool is over-provisioned relative to req.MaxColumns; the assembler's
// quality filter picks the final subset. An empty input yields an empty pool,
// never an error.
func (s *Selector) Select(facts []models.Fact, kind models.StatementKind, cadence models.Cadence, req Request) []Candidate {
	all := distinctPeriods(facts, s.cfg.DuplicateToleranceDays)
	if len(all) == 0 {
		s.log.Warnw("no period candidates in fact set", "kind", kind)
		return nil
	}

	// Periods ending after the document date are artifacts of forward
	// context definitions; filter them first. If that empties the set the
	// document date is suspect, so fall back to the unfiltered list.
	filtered := filterByDocumentDate(all, req.DocumentPeriodEnd)
	if len(filtered) == 0 {
		s.log.Warnw("document date filter removed every period, using unfiltered set",
			"kind", kind, "document_period_end", req.DocumentPeriodEnd)
		filtered = all
	}

	var out []Candidate
	if kind.UsesInstantPeriods() {
		out = s.selectInstant(filtered, req)
	} else if cadence == models.Annual {
		out = s.selectAnnual(filtered, req)
	} else {
		out = s.selectQuarterly(filtered, req)
	}

	if len(out) < 2 {
		out = s.ensureComparability(out, filtered, kind)
	}
	return out
}

// =============================================================================
// INSTANT PERIODS (balance sheet)
// =============================================================================

func (s *Selector) selectInstant(all []Candidate, req Request) []Candidate {
	instants := filterKind(all, models.PeriodInstant)
	if len(instants) == 0 {
		return nil
	}

	docEnd := req.DocumentPeriodEnd
	sort.SliceStable(instants, func(i, j int) bool {
		a, b := instants[i].Period, instants[j].Period
		if !docEnd.IsZero() {
			da, db := absDays(a.Date, docEnd), absDays(b.Date, docEnd)
			if da != db {
				return da < db
			}
		}
		return a.Date.After(b.Date)
	})

	ceiling := s.cfg.InstantCeiling
	if req.MaxColumns > ceiling {
		ceiling = req.MaxColumns
	}
	return topN(instants, ceiling)
}

// =============================================================================
// ANNUAL DURATION PERIODS
// =============================================================================

func (s *Selector) selectAnnual(all []Candidate, req Request) []Candidate {
	annual := filterSpan(filterKind(all, models.PeriodDuration), s.cfg.AnnualMinDays, s.cfg.AnnualMaxDays)
	if len(annual) == 0 {
		// A filing marked annual can still carry only quarterly spans;
		// recency is the only signal left.
		durations := filterKind(all, models.PeriodDuration)
		sortByRecency(durations)
		return topN(durations, s.cfg.AnnualCeiling)
	}

	docEnd := req.DocumentPeriodEnd
	sort.SliceStable(annual, func(i, j int) bool {
		a, b := annual[i].Period, annual[j].Period
		if !docEnd.IsZero() {
			da, db := absDays(a.End, docEnd), absDays(b.End, docEnd)
			if da != db {
				return da < db
			}
		}
		sa, sb := absInt(a.Days()-365), absInt(b.Days()-365)
		if sa != sb {
			return sa < sb
		}
		fa := fiscalAlignmentScore(a.End, req.FiscalYearEndMonth, req.FiscalYearEndDay)
		fb := fiscalAlignmentScore(b.End, req.FiscalYearEndMonth, req.FiscalYearEndDay)
		if fa != fb {
			return fa > fb
		}
		return a.End.After(b.End)
	})
	return topN(annual, s.cfg.AnnualCeiling)
}

// fiscalAlignmentScore grades how well an end date lands on the declared
// fiscal year end: exact day, same month, adjacent month, or elsewhere.
func fiscalAlignmentScore(end time.Time, month time.Month, day int) int {
	if month == 0 || day == 0 {
		return 0
	}
	switch {
	case end.Month() == month && end.Day() == day:
		return 100
	case end.Month() == month && absInt(end.Day()-day) <= 15:
		return 75
	case absInt(int(end.Month())-int(month)) <= 1:
		return 50
	default:
		return 25
	}
}

// =============================================================================
// QUARTERLY DURATION PERIODS
// =============================================================================

// selectQuarterly returns roughly QuarterlyPoolFactor × MaxColumns
// candidates drawn from a deep historical scan. Current-quarter and
// year-ago-quarter spans frequently misalign in raw data; a narrow scan or
// pool silently drops the prior-year comparison, which is exactly the
// regression this over-provisioning prevents.
func (s *Selector) selectQuarterly(all []Candidate, req Request) []Candidate {
	quarters := filterSpan(filterKind(all, models.PeriodDuration), s.cfg.QuarterMinDays, s.cfg.QuarterMaxDays)
	if len(quarters) == 0 {
		durations := filterKind(all, models.PeriodDuration)
		sortByRecency(durations)
		return topN(durations, s.cfg.QuarterlyScanLimit)
	}

	// Scan deep before ranking: most recent first, up to the scan limit.
	sortByRecency(quarters)
	quarters = topN(quarters, s.cfg.QuarterlyScanLimit)

	docEnd := req.DocumentPeriodEnd
	tol := s.cfg.DuplicateToleranceDays
	tieBreak := s.cfg.QuarterlyTieBreak
	sort.SliceStable(quarters, func(i, j int) bool {
		a, b := quarters[i], quarters[j]
		if !docEnd.IsZero() {
			ea := withinTol(a.Period.End, docEnd, tol)
			eb := withinTol(b.Period.End, docEnd, tol)
			if ea != eb {
				return ea
			}
		}
		spanCmp := absInt(a.Period.Days()-91) - absInt(b.Period.Days()-91)
		factCmp := b.FactCount - a.FactCount
		first, second := spanCmp, factCmp
		if tieBreak == TieBreakFactsFirst {
			first, second = factCmp, spanCmp
		}
		if first != 0 {
			return first < 0
		}
		if second != 0 {
			return second < 0
		}
		return a.Period.End.After(b.Period.End)
	})

	pool := req.MaxColumns * s.cfg.QuarterlyPoolFactor
	if pool < 2 {
		pool = 2
	}
	return topN(quarters, pool)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// ensureComparability backfills the pool when ranking produced fewer than
// two candidates but the input holds at least two usably distinct periods
// of the statement's kind.
func (s *Selector) ensureComparability(out, filtered []Candidate, kind models.StatementKind) []Candidate {
	wantKind := models.PeriodDuration
	if kind.UsesInstantPeriods() {
		wantKind = models.PeriodInstant
	}
	pool := filterKind(filtered, wantKind)
	sortByRecency(pool)
	for _, c := range pool {
		if len(out) >= 2 {
			break
		}
		dup := false
		for _, have := range out {
			if have.Period.SameAs(c.Period, s.cfg.DuplicateToleranceDays) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// distinctPeriods collapses the facts' periods into deduplicated candidates,
// counting how many facts populate each. Facts whose contexts differ only
// within the tolerance count toward the same candidate.
func distinctPeriods(facts []models.Fact, toleranceDays int) []Candidate {
	var out []Candidate
	for _, f := range facts {
		matched := false
		for i := range out {
			if out[i].Period.SameAs(f.Period, toleranceDays) {
				out[i].FactCount++
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, Candidate{Period: f.Period, FactCount: 1})
		}
	}
	return out
}

func filterByDocumentDate(all []Candidate, docEnd time.Time) []Candidate {
	if docEnd.IsZero() {
		return all
	}
	var out []Candidate
	for _, c := range all {
		if !c.Period.EndDate().After(docEnd) {
			out = append(out, c)
		}
	}
	return out
}

func filterKind(all []Candidate, kind models.PeriodKind) []Candidate {
	var out []Candidate
	for _, c := range all {
		if c.Period.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func filterSpan(all []Candidate, minDays, maxDays int) []Candidate {
	var out []Candidate
	for _, c := range all {
		d := c.Period.Days()
		if d >= minDays && d <= maxDays {
			out = append(out, c)
		}
	}
	return out
}

func sortByRecency(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].Period.EndDate().After(cs[j].Period.EndDate())
	})
}

func topN(cs []Candidate, n int) []Candidate {
	if len(cs) > n {
		return cs[:n]
	}
	return cs
}

func absDays(a, b time.Time) int {
	d := int(a.Sub(b).Hours() / 24)
	return absInt(d)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func withinTol(a, b time.Time, days int) bool {
	return absDays(a, b) <= days
}
