package models

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPeriodSameAs(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Period
		tolerance int
		want      bool
	}{
		{"identical instants", Instant(date("2024-12-31")), Instant(date("2024-12-31")), 3, true},
		{"instants within tolerance", Instant(date("2024-12-31")), Instant(date("2024-12-29")), 3, true},
		{"instants outside tolerance", Instant(date("2024-12-31")), Instant(date("2024-12-20")), 3, false},
		{"instant vs duration", Instant(date("2024-12-31")), Duration(date("2024-01-01"), date("2024-12-31")), 3, false},
		{"identical durations", Duration(date("2024-07-01"), date("2024-09-30")), Duration(date("2024-07-01"), date("2024-09-30")), 3, true},
		{"duration end jitter", Duration(date("2024-07-01"), date("2024-09-30")), Duration(date("2024-07-01"), date("2024-09-28")), 3, true},
		{"duration different quarter", Duration(date("2024-07-01"), date("2024-09-30")), Duration(date("2023-07-01"), date("2023-09-30")), 3, false},
		{"zero tolerance exact only", Instant(date("2024-12-31")), Instant(date("2024-12-30")), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.SameAs(tt.b, tt.tolerance); got != tt.want {
				t.Errorf("SameAs(%v, %v, %d) = %v, want %v", tt.a, tt.b, tt.tolerance, got, tt.want)
			}
		})
	}
}

func TestPeriodEndDate(t *testing.T) {
	instant := Instant(date("2024-12-31"))
	if !instant.EndDate().Equal(date("2024-12-31")) {
		t.Errorf("instant EndDate = %v, want 2024-12-31", instant.EndDate())
	}
	duration := Duration(date("2024-01-01"), date("2024-12-31"))
	if !duration.EndDate().Equal(date("2024-12-31")) {
		t.Errorf("duration EndDate = %v, want 2024-12-31", duration.EndDate())
	}
}

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		name string
		p    Period
		want string
	}{
		{"instant", Instant(date("2024-12-31")), "instant_2024-12-31"},
		{"duration", Duration(date("2024-07-01"), date("2024-09-30")), "duration_2024-07-01_2024-09-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPeriodDays(t *testing.T) {
	q := Duration(date("2024-07-01"), date("2024-09-30"))
	if got := q.Days(); got != 91 {
		t.Errorf("quarter Days() = %d, want 91", got)
	}
	fy := Duration(date("2023-01-01"), date("2023-12-31"))
	if got := fy.Days(); got != 364 {
		t.Errorf("year Days() = %d, want 364", got)
	}
	if got := Instant(date("2024-12-31")).Days(); got != 0 {
		t.Errorf("instant Days() = %d, want 0", got)
	}
}
