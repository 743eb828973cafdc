package recommend

import (
	"testing"

	"roomrec-backend/internal/artifacts"
	"roomrec-backend/internal/catalog"
	"roomrec-backend/internal/encoding"
	"roomrec-backend/internal/features"
	"roomrec-backend/internal/forest"
)

func defaultSchema() features.Schema {
	return features.Schema{
		Features: []string{
			"user_id", "purpose", "room_type",
			"has_projector", "has_whiteboard", "attendees", "room_capacity",
			"hour_of_day", "day_of_week", "is_weekend", "is_preferred_room",
			"capacity_utilization", "season",
		},
		Categorical:  []string{"user_id", "purpose", "room_type"},
		ModelVersion: "1.0",
	}
}

func defaultEncoder(t *testing.T) *encoding.OneHot {
	t.Helper()
	enc, err := encoding.NewOneHot([]encoding.FittedFeature{
		{Name: "user_id", Categories: []string{"5"}},
		{Name: "purpose", Categories: []string{"Team meeting"}},
		{Name: "room_type", Categories: []string{"conference", "training"}},
	})
	if err != nil {
		t.Fatalf("build encoder: %v", err)
	}
	return enc
}

func defaultCatalog() *catalog.Catalog {
	return catalog.New(
		map[string]catalog.Attributes{
			"R1": {Capacity: 8, Type: "conference", HasProjector: true, HasWhiteboard: true},
			"R2": {Capacity: 15, Type: "training", HasProjector: true, HasWhiteboard: false},
		},
		map[string][]string{"5": {"R1"}},
	)
}

// utilizationStump prefers comfortable rooms: candidates at or under full
// capacity score 0.9, overloaded ones 0.2. Feature 12 is
// capacity_utilization in the default schema's assembled layout
// (4 encoded columns + 8 numeric columns before it).
func utilizationStump() *forest.Forest {
	return &forest.Forest{
		NFeatures: 14,
		Trees: []forest.Tree{{
			ChildrenLeft:  []int{1, -1, -1},
			ChildrenRight: []int{2, -1, -1},
			Feature:       []int{12, -1, -1},
			Threshold:     []float64{1.0, 0, 0},
			Value:         [][]float64{{0, 0}, {10, 90}, {80, 20}},
		}},
	}
}

// constantModel scores every candidate 0.5, exposing tie-break behavior.
func constantModel(nFeatures int) *forest.Forest {
	return &forest.Forest{
		NFeatures: nFeatures,
		Trees: []forest.Tree{{
			ChildrenLeft:  []int{-1},
			ChildrenRight: []int{-1},
			Feature:       []int{-1},
			Threshold:     []float64{0},
			Value:         [][]float64{{50, 50}},
		}},
	}
}

func testHolder(t *testing.T, model *forest.Forest) *artifacts.Holder {
	t.Helper()
	holder := artifacts.NewHolder()
	holder.Set(&artifacts.Artifacts{
		Model:     model,
		Encoder:   defaultEncoder(t),
		Schema:    defaultSchema(),
		Catalog:   defaultCatalog(),
		ModelFile: "model_2024-02-20_10-00.json",
	})
	return holder
}
