package features

import "fmt"

// Schema is the ordered list of model inputs shared between training and
// serving. Features defines the column order of the raw feature table;
// Categorical is the subset (in fit order) handled by the one-hot encoder.
type Schema struct {
	Features     []string `json:"features"`
	Categorical  []string `json:"categorical_features"`
	ModelVersion string   `json:"model_version"`
	TrainedDate  string   `json:"trained_date"`
}

// Validate checks internal consistency: the categorical subset must appear
// in Features and contain no duplicates. Called once at artifact load.
func (s Schema) Validate() error {
	if len(s.Features) == 0 {
		return fmt.Errorf("schema has no features")
	}
	known := make(map[string]bool, len(s.Features))
	for _, name := range s.Features {
		if name == "" {
			return fmt.Errorf("schema contains an empty feature name")
		}
		if known[name] {
			return fmt.Errorf("schema feature %q is duplicated", name)
		}
		known[name] = true
	}
	seen := make(map[string]bool, len(s.Categorical))
	for _, name := range s.Categorical {
		if !known[name] {
			return fmt.Errorf("categorical feature %q is not in the feature list", name)
		}
		if seen[name] {
			return fmt.Errorf("categorical feature %q is duplicated", name)
		}
		seen[name] = true
	}
	return nil
}

// CategoricalSet returns the categorical names for membership checks.
func (s Schema) CategoricalSet() map[string]bool {
	set := make(map[string]bool, len(s.Categorical))
	for _, name := range s.Categorical {
		set[name] = true
	}
	return set
}

// NumericFeatures returns the non-categorical features in schema order.
// These columns pass through encoding untouched and follow the encoded
// categorical block in the final matrix.
func (s Schema) NumericFeatures() []string {
	cat := s.CategoricalSet()
	out := make([]string, 0, len(s.Features)-len(s.Categorical))
	for _, name := range s.Features {
		if !cat[name] {
			out = append(out, name)
		}
	}
	return out
}
