package models

// StatementKind identifies which financial statement a build targets
type StatementKind string

const (
	BalanceSheet      StatementKind = "BalanceSheet"
	IncomeStatement   StatementKind = "IncomeStatement"
	CashFlowStatement StatementKind = "CashFlowStatement"
	EquityStatement   StatementKind = "StatementOfEquity"
)

// UsesInstantPeriods reports whether the statement's columns are
// point-in-time dates rather than durations
func (k StatementKind) UsesInstantPeriods() bool {
	return k == BalanceSheet
}

// Cadence is the filing frequency that period selection adapts to
type Cadence string

const (
	Annual    Cadence = "FY"
	Quarterly Cadence = "Q"
)

// CellValue is one value slot in the statement grid. Missing is explicit:
// a period with no matching fact never shows up as zero.
type CellValue struct {
	Value   float64 `json:"value"`
	Raw     string  `json:"raw,omitempty"`
	Missing bool    `json:"missing"`
}

// MissingCell is the marker for an empty slot
func MissingCell() CellValue {
	return CellValue{Missing: true}
}

// StatementRow is one line item of an assembled statement.
// OriginalLabel always holds the filing's own label verbatim, even when
// Label has been standardized.
type StatementRow struct {
	Concept       string      `json:"concept"`
	Label         string      `json:"label"`
	OriginalLabel string      `json:"original_label,omitempty"`
	Level         int         `json:"level"` // indent depth from the presentation layout
	IsAbstract    bool        `json:"is_abstract"`
	Dimension     string      `json:"dimension,omitempty"`
	Balance       string      `json:"balance,omitempty"` // "debit" | "credit"
	Weight        float64     `json:"weight,omitempty"`
	Values        []CellValue `json:"values,omitempty"` // one slot per statement column
}

// Column is one period column of an assembled statement
type Column struct {
	Period Period `json:"period"`
	Label  string `json:"label"`
}

// Statement is the final row/column grid handed to rendering.
// Column order is the selector's final ranked order.
type Statement struct {
	BuildID string         `json:"build_id"`
	Kind    StatementKind  `json:"kind"`
	Columns []Column       `json:"columns"`
	Rows    []StatementRow `json:"rows"`
}
