package standardize

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"go.uber.org/zap"

	"xbrl_statements/pkg/models"
)

// ErrMissingBaseline is returned when the baseline definition is absent or
// unparsable. Without a baseline no concept can resolve, so this is fatal.
var ErrMissingBaseline = errors.New("standardize: missing baseline mapping definition")

// Namespace prefixes that belong to standard taxonomies and are never
// treated as company identifiers.
var reservedPrefixes = map[string]bool{
	"us-gaap":   true,
	"ifrs-full": true,
	"dei":       true,
	"srt":       true,
}

// =============================================================================
// DEFINITION FILE SHAPES
// =============================================================================

// companyDefinition is the on-disk shape of a company override file.
// Files are Hjson, so hand-edited definitions may carry comments.
type companyDefinition struct {
	Metadata struct {
		EntityIdentifier string `json:"entity_identifier"`
		CompanyName      string `json:"company_name"`
		Priority         string `json:"priority"` // "high" | "normal"
	} `json:"metadata"`
	ConceptMappings map[string][]string `json:"concept_mappings"`
	HierarchyRules  map[string]struct {
		Children []string `json:"children"`
	} `json:"hierarchy_rules"`
}

// CompanyInfo describes one loaded company layer
type CompanyInfo struct {
	EntityIdentifier string `json:"entity_identifier"`
	CompanyName      string `json:"company_name"`
	Priority         string `json:"priority"`
	ConceptCount     int    `json:"concept_count"`
}

type companyLayer struct {
	info      CompanyInfo
	byTag     map[string]StandardConcept            // normalized tag → concept
	hierarchy map[StandardConcept][]StandardConcept // this layer's own rules
}

// =============================================================================
// MAPPING STORE
// =============================================================================

// MappingStore layers a baseline concept mapping with per-company overrides.
// It is built once and read-only afterwards; concurrent reads are safe
// without synchronization.
type MappingStore struct {
	log       *zap.SugaredLogger
	baseline  map[string]StandardConcept                          // normalized tag → concept
	byContext map[models.StatementKind]map[string]StandardConcept // statement-kind scoped entries
	companies map[string]*companyLayer                            // entity id → layer
	reverse   map[StandardConcept][]string                        // concept → normalized tags, load order
	hierarchy map[StandardConcept][]StandardConcept               // parent → ordered children
}

// Option configures a MappingStore at construction time
type Option func(*MappingStore)

// WithLogger sets the logger used for load-time warnings.
// Defaults to a no-op logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *MappingStore) { s.log = l }
}

// NewMappingStore parses the baseline definition and zero or more company
// definitions. A company source that fails to parse is logged and skipped;
// it never aborts the load. A missing or unparsable baseline is fatal.
func NewMappingStore(baseline []byte, companies [][]byte, opts ...Option) (*MappingStore, error) {
	s := &MappingStore{
		log:       zap.NewNop().Sugar(),
		baseline:  make(map[string]StandardConcept),
		byContext: make(map[models.StatementKind]map[string]StandardConcept),
		companies: make(map[string]*companyLayer),
		reverse:   make(map[StandardConcept][]string),
		hierarchy: make(map[StandardConcept][]StandardConcept),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.loadBaseline(baseline); err != nil {
		return nil, err
	}
	for i, src := range companies {
		if err := s.loadCompany(src); err != nil {
			s.log.Warnw("skipping company mapping definition", "index", i, "error", err)
		}
	}
	return s, nil
}

// LoadMappingStore reads definitions from a filesystem. companyPaths entries
// that fail to read are skipped like parse failures.
func LoadMappingStore(fsys fs.FS, baselinePath string, companyPaths []string, opts ...Option) (*MappingStore, error) {
	baseline, err := fs.ReadFile(fsys, baselinePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingBaseline, err)
	}
	var companies [][]byte
	for _, p := range companyPaths {
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			// Unreadable files go through the same skip-and-warn path as
			// unparsable ones.
			b = nil
		}
		companies = append(companies, b)
	}
	return NewMappingStore(baseline, companies, opts...)
}

// =============================================================================
// LOADING
// =============================================================================

func (s *MappingStore) loadBaseline(src []byte) error {
	if len(src) == 0 {
		return ErrMissingBaseline
	}
	var raw map[string]interface{}
	if err := hjson.Unmarshal(src, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingBaseline, err)
	}
	if len(raw) == 0 {
		return ErrMissingBaseline
	}

	for label, v := range raw {
		if label == "context_mappings" {
			if err := s.loadContextMappings(v); err != nil {
				return fmt.Errorf("%w: context_mappings: %v", ErrMissingBaseline, err)
			}
			continue
		}
		tags, err := toStringSlice(v)
		if err != nil {
			return fmt.Errorf("%w: entry %q: %v", ErrMissingBaseline, label, err)
		}
		concept := Canonical(label)
		for _, tag := range tags {
			norm := NormalizeTag(tag)
			s.baseline[norm] = concept
			s.reverse[concept] = append(s.reverse[concept], norm)
		}
	}
	return nil
}

// loadContextMappings installs statement-kind scoped entries, e.g. a tag that
// means one thing on an income statement and another on a cash flow statement.
func (s *MappingStore) loadContextMappings(v interface{}) error {
	kinds, ok := v.(map[string]interface{})
	if !ok {
		return fmt.Errorf("expected object keyed by statement kind")
	}
	for kindName, entries := range kinds {
		kind := models.StatementKind(kindName)
		byLabel, ok := entries.(map[string]interface{})
		if !ok {
			return fmt.Errorf("kind %q: expected object of label → tags", kindName)
		}
		if s.byContext[kind] == nil {
			s.byContext[kind] = make(map[string]StandardConcept)
		}
		for label, tagsVal := range byLabel {
			tags, err := toStringSlice(tagsVal)
			if err != nil {
				return fmt.Errorf("kind %q entry %q: %v", kindName, label, err)
			}
			concept := Canonical(label)
			for _, tag := range tags {
				s.byContext[kind][NormalizeTag(tag)] = concept
			}
		}
	}
	return nil
}

func (s *MappingStore) loadCompany(src []byte) error {
	var def companyDefinition
	if err := hjson.Unmarshal(src, &def); err != nil {
		// Hand-edited files sometimes arrive truncated or with stray
		// syntax; try one repair pass before giving up on the source.
		repaired, rerr := jsonrepair.RepairJSON(string(src))
		if rerr != nil {
			return fmt.Errorf("parse failed: %v (repair also failed: %v)", err, rerr)
		}
		if jerr := json.Unmarshal([]byte(repaired), &def); jerr != nil {
			return fmt.Errorf("parse failed: %v (after repair: %v)", err, jerr)
		}
		s.log.Debugw("company mapping definition recovered by JSON repair")
	}

	entity := strings.ToLower(strings.TrimSpace(def.Metadata.EntityIdentifier))
	if entity == "" {
		return fmt.Errorf("definition has no metadata.entity_identifier")
	}
	if reservedPrefixes[entity] {
		return fmt.Errorf("entity identifier %q is a reserved taxonomy prefix", entity)
	}
	priority := def.Metadata.Priority
	if priority == "" {
		priority = "normal"
	}

	layer := &companyLayer{
		info: CompanyInfo{
			EntityIdentifier: entity,
			CompanyName:      def.Metadata.CompanyName,
			Priority:         priority,
			ConceptCount:     0,
		},
		byTag:     make(map[string]StandardConcept),
		hierarchy: make(map[StandardConcept][]StandardConcept),
	}
	for label, tags := range def.ConceptMappings {
		concept := Canonical(label)
		for _, tag := range tags {
			norm := NormalizeTag(tag)
			layer.byTag[norm] = concept
			s.reverse[concept] = append(s.reverse[concept], norm)
			layer.info.ConceptCount++
		}
	}

	// Two definitions can claim the same prefix; a "high" priority layer
	// displaces a "normal" one, otherwise first load wins.
	if existing, ok := s.companies[entity]; ok {
		if !(priority == "high" && existing.info.Priority != "high") {
			return fmt.Errorf("entity %q already registered by %q", entity, existing.info.CompanyName)
		}
	}
	s.companies[entity] = layer

	for parent, rule := range def.HierarchyRules {
		children := make([]StandardConcept, 0, len(rule.Children))
		for _, c := range rule.Children {
			children = append(children, Canonical(c))
		}
		key := Canonical(parent)
		layer.hierarchy[key] = children
		// The global table keeps the first rule for a parent; a high
		// priority layer displaces one from a normal layer.
		if _, exists := s.hierarchy[key]; exists && priority != "high" {
			s.log.Warnw("hierarchy rule collision, keeping existing",
				"parent", key, "entity", entity)
			continue
		}
		s.hierarchy[key] = children
	}
	return nil
}

// =============================================================================
// LOOKUP
// =============================================================================

// GetStandardConcept resolves a raw tag to its canonical concept.
// The company layer for the tag's detected entity is checked first, then the
// baseline. Idempotent for a fixed store.
func (s *MappingStore) GetStandardConcept(rawTag string) (StandardConcept, bool) {
	return s.getConcept(rawTag, "")
}

// GetStandardConceptForKind resolves a raw tag with statement-kind scoped
// entries taking precedence, falling back to the context-agnostic entry.
func (s *MappingStore) GetStandardConceptForKind(rawTag string, kind models.StatementKind) (StandardConcept, bool) {
	return s.getConcept(rawTag, kind)
}

func (s *MappingStore) getConcept(rawTag string, kind models.StatementKind) (StandardConcept, bool) {
	norm := NormalizeTag(rawTag)

	if entity, ok := s.DetectEntity(rawTag); ok {
		if c, ok := s.companies[entity].byTag[norm]; ok {
			return c, true
		}
	}
	if kind != "" {
		if ctx, ok := s.byContext[kind]; ok {
			if c, ok := ctx[norm]; ok {
				return c, true
			}
		}
	}
	c, ok := s.baseline[norm]
	return c, ok
}

// DetectEntity extracts the namespace prefix of a tag and returns it only if
// it names a registered company layer. Standard taxonomy prefixes and
// unregistered prefixes yield false.
func (s *MappingStore) DetectEntity(rawTag string) (string, bool) {
	prefix, _, found := splitTag(rawTag)
	if !found {
		return "", false
	}
	prefix = strings.ToLower(prefix)
	if reservedPrefixes[prefix] {
		return "", false
	}
	if _, ok := s.companies[prefix]; !ok {
		return "", false
	}
	return prefix, true
}

// HierarchyChildren returns the ordered children of a concept, exactly as
// listed in the source definition. Nil when the concept has no rule.
func (s *MappingStore) HierarchyChildren(c StandardConcept) []StandardConcept {
	return s.hierarchy[Canonical(string(c))]
}

// HierarchyChildrenFor returns the rule a specific company layer declared
// for a concept, regardless of what the merged global table resolved to.
func (s *MappingStore) HierarchyChildrenFor(entity string, c StandardConcept) []StandardConcept {
	layer, ok := s.companies[strings.ToLower(entity)]
	if !ok {
		return nil
	}
	return layer.hierarchy[Canonical(string(c))]
}

// CompanyConcepts returns every raw tag (normalized) mapped to a concept,
// across all layers, in load order.
func (s *MappingStore) CompanyConcepts(c StandardConcept) []string {
	return s.reverse[Canonical(string(c))]
}

// Companies lists the loaded company layers sorted by entity identifier
func (s *MappingStore) Companies() []CompanyInfo {
	out := make([]CompanyInfo, 0, len(s.companies))
	for _, layer := range s.companies {
		out = append(out, layer.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityIdentifier < out[j].EntityIdentifier })
	return out
}

// =============================================================================
// TAG NORMALIZATION
// =============================================================================

// NormalizeTag canonicalizes a raw tag for lookup: the namespace separator
// may be ':' or the first '_', and matching is case-insensitive.
// "us-gaap_Revenue" and "US-GAAP:Revenue" normalize identically.
func NormalizeTag(raw string) string {
	prefix, local, found := splitTag(raw)
	if !found {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return strings.ToLower(prefix) + ":" + strings.ToLower(local)
}

// splitTag separates the namespace prefix from the local name
func splitTag(raw string) (prefix, local string, found bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, ':'); i > 0 {
		return raw[:i], raw[i+1:], true
	}
	if i := strings.IndexByte(raw, '_'); i > 0 {
		return raw[:i], raw[i+1:], true
	}
	return "", "", false
}

func toStringSlice(v interface{}) ([]string, error) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected list of raw tags, got %T", v)
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		str, ok := it.(string)
		if !ok {
			return nil, fmt.Errorf("expected string tag, got %T", it)
		}
		out = append(out, str)
	}
	return out, nil
}
