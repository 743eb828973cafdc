// Package artifacts discovers and loads the serialized model artifacts the
// service needs: classifier, encoder, room lookup, user preferences and
// feature schema. Everything is validated once here so request handling can
// treat the loaded set as consistent, immutable shared state.
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"roomrec-backend/internal/catalog"
	"roomrec-backend/internal/encoding"
	"roomrec-backend/internal/features"
	"roomrec-backend/internal/forest"
)

var (
	// ErrNoModel means the models directory has no versioned model file.
	ErrNoModel = errors.New("no versioned model files found")
	// ErrSchemaMismatch means the fitted encoder disagrees with the feature
	// schema. Fatal at load, never surfaced per request.
	ErrSchemaMismatch = errors.New("encoder does not match feature schema")
)

// Dirs locates the artifact directories on disk.
type Dirs struct {
	Models    string
	Encoder   string
	ModelInfo string
}

// Artifacts is the loaded, immutable artifact set.
type Artifacts struct {
	Model     *forest.Forest
	Encoder   *encoding.OneHot
	Schema    features.Schema
	Catalog   *catalog.Catalog
	ModelFile string
}

// Load reads and cross-validates all artifacts. Any failure leaves the
// service without a usable artifact set; callers decide whether that is
// fatal (migrate-style CLIs) or a degraded state (the API server).
func Load(dirs Dirs) (*Artifacts, error) {
	modelPath, err := latestModelFile(dirs.Models)
	if err != nil {
		return nil, err
	}

	var model forest.Forest
	if err := readJSON(modelPath, &model); err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", filepath.Base(modelPath), err)
	}

	var fitted struct {
		Features []encoding.FittedFeature `json:"features"`
	}
	if err := readJSON(filepath.Join(dirs.Encoder, "encoder.json"), &fitted); err != nil {
		return nil, err
	}
	encoder, err := encoding.NewOneHot(fitted.Features)
	if err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}

	var rooms map[string]catalog.Attributes
	if err := readJSON(filepath.Join(dirs.ModelInfo, "room_lookup.json"), &rooms); err != nil {
		return nil, err
	}
	var prefs map[string][]string
	if err := readJSON(filepath.Join(dirs.ModelInfo, "user_preferences.json"), &prefs); err != nil {
		return nil, err
	}

	var schema features.Schema
	if err := readJSON(filepath.Join(dirs.ModelInfo, "model_info.json"), &schema); err != nil {
		return nil, err
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("model_info.json: %w", err)
	}

	if err := checkConsistency(schema, encoder, &model); err != nil {
		return nil, err
	}

	return &Artifacts{
		Model:     &model,
		Encoder:   encoder,
		Schema:    schema,
		Catalog:   catalog.New(rooms, prefs),
		ModelFile: filepath.Base(modelPath),
	}, nil
}

// latestModelFile selects the model whose filename sorts lexicographically
// last. This equals "most recent" only because the training side embeds a
// sortable timestamp in the name; that invariant is owned by the artifact
// producer.
func latestModelFile(modelsDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(modelsDir, "model_*.json"))
	if err != nil {
		return "", fmt.Errorf("scan models dir: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoModel, modelsDir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// checkConsistency enforces the training/serving contract: the encoder must
// have been fitted on exactly the schema's categorical subset in order, and
// the classifier's input width must equal encoded width plus the numeric
// column count.
func checkConsistency(schema features.Schema, encoder *encoding.OneHot, model *forest.Forest) error {
	fitted := encoder.FeatureNames()
	if len(fitted) != len(schema.Categorical) {
		return fmt.Errorf("%w: encoder fitted on %d features, schema declares %d categorical",
			ErrSchemaMismatch, len(fitted), len(schema.Categorical))
	}
	for i, name := range schema.Categorical {
		if fitted[i] != name {
			return fmt.Errorf("%w: position %d is %q in encoder, %q in schema",
				ErrSchemaMismatch, i, fitted[i], name)
		}
	}

	expected := encoder.Width() + len(schema.NumericFeatures())
	if model.NFeatures != expected {
		return fmt.Errorf("%w: classifier expects %d input columns, schema+encoder produce %d",
			ErrSchemaMismatch, model.NFeatures, expected)
	}
	return nil
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse artifact %s: %w", path, err)
	}
	return nil
}
