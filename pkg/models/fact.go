package models

// Fact is a single extracted value from a filing. Facts are produced once by
// the extraction layer and read-only inside this module.
type Fact struct {
	Concept    string            `json:"concept"` // namespace-prefixed tag, e.g. "us-gaap:Revenue"
	Value      float64           `json:"value"`
	Raw        string            `json:"raw,omitempty"` // original string value
	Unit       string            `json:"unit,omitempty"`
	Period     Period            `json:"period"`
	Dimensions map[string]string `json:"dimensions,omitempty"` // axis → member
	Decimals   string            `json:"decimals,omitempty"`
}

// HasDimensions reports whether the fact carries dimensional qualifiers.
// Non-dimensional statement rows only match facts without them.
func (f Fact) HasDimensions() bool {
	return len(f.Dimensions) > 0
}
