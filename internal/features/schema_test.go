package features

import (
	"reflect"
	"testing"
)

func testSchema() Schema {
	return Schema{
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

func TestSchemaValidate(t *testing.T) {
	if err := testSchema().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestSchemaValidateRejectsUnknownCategorical(t *testing.T) {
	s := testSchema()
	s.Categorical = append(s.Categorical, "building")
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for categorical feature outside feature list")
	}
}

func TestSchemaValidateRejectsDuplicates(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Schema)
	}{
		{"duplicate_feature", func(s *Schema) { s.Features = append(s.Features, "season") }},
		{"duplicate_categorical", func(s *Schema) { s.Categorical = append(s.Categorical, "purpose") }},
		{"empty_features", func(s *Schema) { s.Features = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testSchema()
			tc.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestNumericFeaturesPreserveOrder(t *testing.T) {
	got := testSchema().NumericFeatures()
	want := []string{
		"has_projector", "has_whiteboard", "attendees", "room_capacity",
		"hour_of_day", "day_of_week", "is_weekend", "is_preferred_room",
		"capacity_utilization", "season",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("numeric features mismatch:\n got %v\nwant %v", got, want)
	}
}
