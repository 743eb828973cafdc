// Package forest evaluates an exported random-forest binary classifier.
// The artifact stores each tree as flat node arrays (the layout the
// training side exports); serving only walks the trees.
package forest

import "fmt"

// Tree is one decision tree in flat-array form. ChildrenLeft[i] < 0 marks
// node i as a leaf. Value[i] holds [negative, positive] sample counts.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Forest is a fitted ensemble. Immutable after load.
type Forest struct {
	NFeatures int    `json:"n_features"`
	Trees     []Tree `json:"trees"`
}

// Validate checks the structural integrity of every tree once at load so
// scoring never has to bounds-check.
func (f *Forest) Validate() error {
	if f.NFeatures <= 0 {
		return fmt.Errorf("forest declares %d features", f.NFeatures)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	for ti, tree := range f.Trees {
		n := len(tree.ChildrenLeft)
		if n == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		if len(tree.ChildrenRight) != n || len(tree.Feature) != n || len(tree.Threshold) != n || len(tree.Value) != n {
			return fmt.Errorf("tree %d has inconsistent node arrays", ti)
		}
		for i := 0; i < n; i++ {
			left, right := tree.ChildrenLeft[i], tree.ChildrenRight[i]
			if left < 0 {
				if len(tree.Value[i]) != 2 {
					return fmt.Errorf("tree %d leaf %d must carry [neg, pos] counts", ti, i)
				}
				continue
			}
			if left >= n || right < 0 || right >= n {
				return fmt.Errorf("tree %d node %d has out-of-range children", ti, i)
			}
			if tree.Feature[i] < 0 || tree.Feature[i] >= f.NFeatures {
				return fmt.Errorf("tree %d node %d splits on feature %d, forest has %d", ti, i, tree.Feature[i], f.NFeatures)
			}
		}
	}
	return nil
}

// PredictProba returns the positive-class probability per input row,
// averaged over all trees. Rows must have exactly NFeatures columns.
func (f *Forest) PredictProba(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != f.NFeatures {
			return nil, fmt.Errorf("row %d has %d features, forest expects %d", i, len(row), f.NFeatures)
		}
		var sum float64
		for _, tree := range f.Trees {
			sum += tree.positiveProb(row)
		}
		out[i] = sum / float64(len(f.Trees))
	}
	return out, nil
}

func (t *Tree) positiveProb(row []float64) float64 {
	node := 0
	for t.ChildrenLeft[node] >= 0 {
		if row[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	neg, pos := t.Value[node][0], t.Value[node][1]
	total := neg + pos
	if total <= 0 {
		return 0
	}
	return pos / total
}
