// Package encoding holds the fitted categorical encoder used at serving
// time. Fitting happens offline at training time; the serving side only
// loads the fitted category tables and applies the transform.
package encoding

import "fmt"

// FittedFeature is one categorical input with the category values observed
// at fit time, in fit order.
type FittedFeature struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// OneHot is an immutable fitted one-hot encoder. Each fitted
// (feature, category) pair owns one output column; a value not seen at fit
// time contributes an all-zero block for its feature. That unseen-category
// policy is part of the model contract: live requests routinely carry
// user/purpose/room combinations absent from the historical fit.
type OneHot struct {
	features []FittedFeature
	index    []map[string]int
	offsets  []int
	width    int
}

// NewOneHot builds an encoder from fitted features.
func NewOneHot(features []FittedFeature) (*OneHot, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("encoder has no fitted features")
	}
	enc := &OneHot{
		features: append([]FittedFeature(nil), features...),
		index:    make([]map[string]int, len(features)),
		offsets:  make([]int, len(features)),
	}
	for i, feat := range features {
		if feat.Name == "" {
			return nil, fmt.Errorf("fitted feature %d has no name", i)
		}
		if len(feat.Categories) == 0 {
			return nil, fmt.Errorf("fitted feature %q has no categories", feat.Name)
		}
		idx := make(map[string]int, len(feat.Categories))
		for j, cat := range feat.Categories {
			if _, dup := idx[cat]; dup {
				return nil, fmt.Errorf("fitted feature %q has duplicate category %q", feat.Name, cat)
			}
			idx[cat] = j
		}
		enc.index[i] = idx
		enc.offsets[i] = enc.width
		enc.width += len(feat.Categories)
	}
	return enc, nil
}

// FeatureNames returns the fitted input feature names in fit order.
func (e *OneHot) FeatureNames() []string {
	out := make([]string, len(e.features))
	for i, feat := range e.features {
		out[i] = feat.Name
	}
	return out
}

// OutputNames returns one name per output column, "<feature>_<category>",
// in the fixed output order.
func (e *OneHot) OutputNames() []string {
	out := make([]string, 0, e.width)
	for _, feat := range e.features {
		for _, cat := range feat.Categories {
			out = append(out, feat.Name+"_"+cat)
		}
	}
	return out
}

// Width returns the number of output columns.
func (e *OneHot) Width() int {
	return e.width
}

// Transform encodes raw categorical rows into the fixed-width numeric
// representation. Each input row must carry one value per fitted feature,
// in fit order. Row count is always preserved.
func (e *OneHot) Transform(rows [][]string) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(e.features) {
			return nil, fmt.Errorf("row %d has %d values, encoder fitted on %d features", i, len(row), len(e.features))
		}
		encoded := make([]float64, e.width)
		for j, value := range row {
			if pos, ok := e.index[j][value]; ok {
				encoded[e.offsets[j]+pos] = 1
			}
			// Unseen value: leave the block at zero.
		}
		out[i] = encoded
	}
	return out, nil
}
