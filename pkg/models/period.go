package models

import (
	"fmt"
	"time"
)

// PeriodKind distinguishes point-in-time dates from date ranges
type PeriodKind string

const (
	PeriodInstant  PeriodKind = "instant"
	PeriodDuration PeriodKind = "duration"
)

// DateLayout is the canonical date format used in period keys and fixtures
const DateLayout = "2006-01-02"

// Period is a reporting period: either an instant (balance sheet date)
// or a duration (income statement / cash flow span).
// The zero value is not a valid period; use Instant or Duration.
type Period struct {
	Kind  PeriodKind `json:"kind"`
	Date  time.Time  `json:"date,omitempty"`  // instant only
	Start time.Time  `json:"start,omitempty"` // duration only
	End   time.Time  `json:"end,omitempty"`   // duration only
}

// Instant creates a point-in-time period
func Instant(date time.Time) Period {
	return Period{Kind: PeriodInstant, Date: date}
}

// Duration creates a date-range period
func Duration(start, end time.Time) Period {
	return Period{Kind: PeriodDuration, Start: start, End: end}
}

// EndDate returns the date the period ends on, for both kinds.
// Periods are ranked by recency using this date.
func (p Period) EndDate() time.Time {
	if p.Kind == PeriodInstant {
		return p.Date
	}
	return p.End
}

// Days returns the span length in days (0 for instants)
func (p Period) Days() int {
	if p.Kind == PeriodInstant {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours() / 24)
}

// SameAs reports whether two periods are duplicates within toleranceDays.
// Filings frequently carry redundant contexts whose dates differ by a day
// or two; those must collapse to a single column.
func (p Period) SameAs(o Period, toleranceDays int) bool {
	if p.Kind != o.Kind {
		return false
	}
	if p.Kind == PeriodInstant {
		return withinDays(p.Date, o.Date, toleranceDays)
	}
	return withinDays(p.Start, o.Start, toleranceDays) && withinDays(p.End, o.End, toleranceDays)
}

// Key returns a stable identifier usable as a map key or cache key
func (p Period) Key() string {
	if p.Kind == PeriodInstant {
		return "instant_" + p.Date.Format(DateLayout)
	}
	return "duration_" + p.Start.Format(DateLayout) + "_" + p.End.Format(DateLayout)
}

// Label returns a human-readable column header
func (p Period) Label() string {
	if p.Kind == PeriodInstant {
		return p.Date.Format("Jan 2, 2006")
	}
	return fmt.Sprintf("%s - %s", p.Start.Format("Jan 2, 2006"), p.End.Format("Jan 2, 2006"))
}

func withinDays(a, b time.Time, days int) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= time.Duration(days)*24*time.Hour
}
