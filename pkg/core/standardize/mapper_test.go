package standardize

import (
	"testing"

	"xbrl_statements/pkg/models"
)

func TestMapConcept(t *testing.T) {
	store := newTestStore(t, testTesla)
	mapper := NewConceptMapper(store)

	tests := []struct {
		name   string
		rawTag string
		label  string
		kind   models.StatementKind
		want   string
	}{
		{"company tag standardized", "tsla:AutomotiveLeasing", "Automotive leasing", models.IncomeStatement, "Automotive Leasing Revenue"},
		{"baseline tag standardized", "us-gaap_Revenue", "Revenues, total", models.IncomeStatement, "Revenue"},
		{"unmapped keeps original label", "foo:Bar", "Some odd line", models.IncomeStatement, "Some odd line"},
		{"context-scoped entry", "us-gaap:CashPeriodIncreaseDecrease", "Change in cash", models.CashFlowStatement, "Net Change in Cash"},
		{"scoped entry absent under other kind", "us-gaap:CashPeriodIncreaseDecrease", "Change in cash", models.IncomeStatement, "Change in cash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapper.MapConcept(tt.rawTag, tt.label, MappingContext{StatementKind: tt.kind})
			if got != tt.want {
				t.Errorf("MapConcept(%q, %q) = %q, want %q", tt.rawTag, tt.label, got, tt.want)
			}
		})
	}
}

func TestStandardizeStatement(t *testing.T) {
	store := newTestStore(t, testTesla)
	mapper := NewConceptMapper(store)

	rows := []models.StatementRow{
		{Concept: "us-gaap:RevenuesAbstract", Label: "Revenues", IsAbstract: true},
		{Concept: "tsla:AutomotiveLeasing", Label: "Automotive leasing", Level: 1},
		{Concept: "us-gaap:Revenue", Label: "Total revenues", Level: 1},
		{Concept: "foo:Bar", Label: "Unmapped line", Level: 1},
	}

	out := StandardizeStatement(rows, mapper, models.IncomeStatement)

	if len(out) != len(rows) {
		t.Fatalf("row count changed: %d → %d", len(rows), len(out))
	}

	// Abstract grouping row passes through untouched
	if out[0].Label != "Revenues" || out[0].OriginalLabel != "" {
		t.Errorf("abstract row modified: label=%q original=%q", out[0].Label, out[0].OriginalLabel)
	}

	// Standardized rows keep the filing's own label verbatim
	if out[1].Label != "Automotive Leasing Revenue" {
		t.Errorf("row 1 label = %q, want Automotive Leasing Revenue", out[1].Label)
	}
	if out[1].OriginalLabel != "Automotive leasing" {
		t.Errorf("row 1 original label = %q, want Automotive leasing", out[1].OriginalLabel)
	}
	if out[2].Label != "Revenue" || out[2].OriginalLabel != "Total revenues" {
		t.Errorf("row 2 = (%q, %q), want (Revenue, Total revenues)", out[2].Label, out[2].OriginalLabel)
	}

	// Unmapped row falls back to its own label
	if out[3].Label != "Unmapped line" || out[3].OriginalLabel != "Unmapped line" {
		t.Errorf("row 3 = (%q, %q), want (Unmapped line, Unmapped line)", out[3].Label, out[3].OriginalLabel)
	}

	// Input slice is not mutated
	if rows[1].OriginalLabel != "" {
		t.Error("StandardizeStatement mutated its input")
	}
}

func TestCanonicalAliases(t *testing.T) {
	tests := []struct {
		label string
		want  StandardConcept
	}{
		{"Profit/Loss", NetIncome},
		{"Net Profit", NetIncome},
		{"Sales", Revenue},
		{"Cost of Goods Sold", CostOfRevenue},
		{"Revenue", Revenue},
		{"Some Company Specific Line", StandardConcept("Some Company Specific Line")},
	}
	for _, tt := range tests {
		if got := Canonical(tt.label); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
