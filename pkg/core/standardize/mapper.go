package standardize

import (
	"xbrl_statements/pkg/models"
)

// MappingContext carries the recognized disambiguators for concept mapping.
// Unlike a free-form dictionary, unknown inputs simply have nowhere to go.
type MappingContext struct {
	StatementKind models.StatementKind
}

// ConceptMapper converts raw tags plus presentation labels into display
// labels using a frozen MappingStore.
type ConceptMapper struct {
	store *MappingStore
}

// NewConceptMapper creates a mapper over a built store
func NewConceptMapper(store *MappingStore) *ConceptMapper {
	return &ConceptMapper{store: store}
}

// MapConcept resolves rawTag and returns the canonical display label.
// When no layer maps the tag, the original presentation label is returned
// unchanged; a label is never fabricated.
func (m *ConceptMapper) MapConcept(rawTag, presentationLabel string, ctx MappingContext) string {
	if c, ok := m.store.GetStandardConceptForKind(rawTag, ctx.StatementKind); ok {
		return c.String()
	}
	return presentationLabel
}

// StandardizeStatement applies MapConcept to every non-abstract row, setting
// the displayed label and retaining the filing's own label under
// OriginalLabel. Abstract grouping rows pass through untouched.
func StandardizeStatement(rows []models.StatementRow, m *ConceptMapper, kind models.StatementKind) []models.StatementRow {
	out := make([]models.StatementRow, len(rows))
	ctx := MappingContext{StatementKind: kind}
	for i, row := range rows {
		if row.IsAbstract {
			out[i] = row
			continue
		}
		row.OriginalLabel = row.Label
		row.Label = m.MapConcept(row.Concept, row.Label, ctx)
		out[i] = row
	}
	return out
}
