package standardize

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed data
var defaultDefinitions embed.FS

// DefaultMappingStore builds a store from the definitions shipped with this
// module: the baseline plus every bundled company override. Each call
// returns a fresh instance; nothing ambient is mutated.
func DefaultMappingStore(opts ...Option) (*MappingStore, error) {
	entries, err := fs.Glob(defaultDefinitions, "data/company_mappings/*.hjson")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	return LoadMappingStore(defaultDefinitions, "data/concept_mappings.hjson", entries, opts...)
}
