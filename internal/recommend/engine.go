package recommend

import (
	"fmt"
	"sort"
	"time"

	"roomrec-backend/internal/encoding"
	"roomrec-backend/internal/features"
	"roomrec-backend/internal/forest"
)

// Engine assembles the feature matrix in schema order, scores every
// candidate and returns the top-k by predicted success probability.
type Engine struct {
	Schema  features.Schema
	Encoder *encoding.OneHot
	Model   *forest.Forest
}

// ScoreAndRank scores the candidates and returns at most topK
// recommendations, sorted by descending success probability. Ties retain
// generator emission order (stable sort), which keeps identical requests
// byte-identical. Pure function of its inputs; topK must be positive
// (enforced at the HTTP boundary).
func (e *Engine) ScoreAndRank(candidates []Candidate, topK int) ([]Recommendation, error) {
	if len(candidates) == 0 {
		return []Recommendation{}, nil
	}

	matrix, err := e.assembleMatrix(candidates)
	if err != nil {
		return nil, err
	}

	probs, err := e.Model.PredictProba(matrix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return probs[order[a]] > probs[order[b]]
	})

	if topK > len(order) {
		topK = len(order)
	}
	out := make([]Recommendation, 0, topK)
	for _, idx := range order[:topK] {
		c := candidates[idx]
		out = append(out, Recommendation{
			RoomID:              c.RoomID,
			StartTime:           c.StartTime.Format(time.RFC3339),
			SuccessProbability:  probs[idx],
			RoomType:            c.RoomType,
			RoomCapacity:        c.RoomCapacity,
			HasProjector:        c.HasProjector,
			HasWhiteboard:       c.HasWhiteboard,
			CapacityUtilization: c.CapacityUtilization,
		})
	}
	return out, nil
}

// assembleMatrix projects candidates into the classifier's input layout:
// encoded categorical columns first, numeric columns after, both driven by
// the schema's declared order. Column order is a binding contract with the
// training side, enforced here rather than left to incidental iteration.
func (e *Engine) assembleMatrix(candidates []Candidate) ([][]float64, error) {
	catRows := make([][]string, len(candidates))
	for i, c := range candidates {
		row := make([]string, len(e.Schema.Categorical))
		for j, name := range e.Schema.Categorical {
			value, ok := c.categoricalValue(name)
			if !ok {
				return nil, fmt.Errorf("%w: schema categorical feature %q is unknown to candidates", ErrInference, name)
			}
			row[j] = value
		}
		catRows[i] = row
	}

	encoded, err := e.Encoder.Transform(catRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}

	numeric := e.Schema.NumericFeatures()
	matrix := make([][]float64, len(candidates))
	for i, c := range candidates {
		row := make([]float64, 0, len(encoded[i])+len(numeric))
		row = append(row, encoded[i]...)
		for _, name := range numeric {
			value, ok := c.numericValue(name)
			if !ok {
				return nil, fmt.Errorf("%w: schema numeric feature %q is unknown to candidates", ErrInference, name)
			}
			row = append(row, value)
		}
		matrix[i] = row
	}
	return matrix, nil
}
