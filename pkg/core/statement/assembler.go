// Package statement joins selected periods (columns) with standardized line
// items (rows) and the raw facts into the final statement grid.
package statement

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"xbrl_statements/pkg/core/periods"
	"xbrl_statements/pkg/core/standardize"
	"xbrl_statements/pkg/models"
)

// Assembler builds statement grids. Stateless; one instance may serve
// concurrent builds.
type Assembler struct {
	mapper        *standardize.ConceptMapper
	toleranceDays int
	log           *zap.SugaredLogger
}

// AssemblerOption configures an Assembler
type AssemblerOption func(*Assembler)

// WithLogger sets the build logger (default no-op)
func WithLogger(l *zap.SugaredLogger) AssemblerOption {
	return func(a *Assembler) { a.log = l }
}

// WithDuplicateTolerance overrides the period-match tolerance in days
func WithDuplicateTolerance(days int) AssemblerOption {
	return func(a *Assembler) { a.toleranceDays = days }
}

// NewAssembler creates an assembler using the given mapper for row labels
func NewAssembler(mapper *standardize.ConceptMapper, opts ...AssemblerOption) *Assembler {
	a := &Assembler{mapper: mapper, toleranceDays: 3, log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build assembles the final grid. candidates is the selector's
// over-provisioned pool; when it exceeds maxColumns a quality filter keeps
// the periods with the most populated values. Row order and indent levels
// come from the layout untouched; only labels and per-period values are
// computed here.
func (a *Assembler) Build(kind models.StatementKind, layout []models.StatementRow, facts []models.Fact, candidates []periods.Candidate, maxColumns int) *models.Statement {
	rows := standardize.StandardizeStatement(layout, a.mapper, kind)
	cols := a.chooseColumns(rows, facts, candidates, maxColumns)

	for i := range rows {
		if rows[i].IsAbstract {
			rows[i].Values = nil
			continue
		}
		values := make([]models.CellValue, len(cols))
		for j, col := range cols {
			values[j] = a.lookupCell(rows[i], facts, col.Period)
		}
		rows[i].Values = values
	}

	st := &models.Statement{
		BuildID: uuid.NewString(),
		Kind:    kind,
		Columns: cols,
		Rows:    rows,
	}
	if len(cols) == 0 {
		a.log.Warnw("statement assembled with zero comparative columns", "kind", kind)
	}
	return st
}

// chooseColumns applies the data-quality filter: candidates are ranked by
// the fraction of this statement's concepts populated for the period
// (descending), tie-broken by recency, and the top maxColumns kept. The
// final column order is that ranking. This is what keeps high-missing-data
// periods from crowding out genuinely comparable ones.
func (a *Assembler) chooseColumns(rows []models.StatementRow, facts []models.Fact, candidates []periods.Candidate, maxColumns int) []models.Column {
	if maxColumns < 1 {
		maxColumns = 1
	}
	type scored struct {
		cand     periods.Candidate
		coverage float64
	}
	concepts := 0
	for _, r := range rows {
		if !r.IsAbstract {
			concepts++
		}
	}

	pool := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		populated := 0
		for _, r := range rows {
			if r.IsAbstract {
				continue
			}
			if cell := a.lookupCell(r, facts, c.Period); !cell.Missing {
				populated++
			}
		}
		cov := 0.0
		if concepts > 0 {
			cov = float64(populated) / float64(concepts)
		}
		pool = append(pool, scored{cand: c, coverage: cov})
	}

	if len(pool) > maxColumns {
		sort.SliceStable(pool, func(i, j int) bool {
			if pool[i].coverage != pool[j].coverage {
				return pool[i].coverage > pool[j].coverage
			}
			return pool[i].cand.Period.EndDate().After(pool[j].cand.Period.EndDate())
		})
		pool = pool[:maxColumns]
	}

	cols := make([]models.Column, len(pool))
	for i, s := range pool {
		cols[i] = models.Column{Period: s.cand.Period, Label: s.cand.Period.Label()}
	}
	return cols
}

// lookupCell finds the fact for a row at a period. Concept tags must match
// after normalization, the period must match within tolerance, and
// non-dimensional rows only accept facts without dimensional qualifiers.
// No match yields an explicit missing marker, never a zero.
func (a *Assembler) lookupCell(row models.StatementRow, facts []models.Fact, p models.Period) models.CellValue {
	want := standardize.NormalizeTag(row.Concept)
	for _, f := range facts {
		if standardize.NormalizeTag(f.Concept) != want {
			continue
		}
		if !f.Period.SameAs(p, a.toleranceDays) {
			continue
		}
		if row.Dimension == "" && f.HasDimensions() {
			continue
		}
		if row.Dimension != "" && !factHasDimension(f, row.Dimension) {
			continue
		}
		return models.CellValue{Value: f.Value, Raw: f.Raw}
	}
	return models.MissingCell()
}

func factHasDimension(f models.Fact, member string) bool {
	for _, v := range f.Dimensions {
		if v == member {
			return true
		}
	}
	return false
}
