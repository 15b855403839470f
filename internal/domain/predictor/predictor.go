// Package predictor loads the serialized regression model and performs
// single-row inference over assembled feature vectors.
package predictor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/critiq/internal/domain/features"
)

// artifact mirrors the serialized model document.
type artifact struct {
	Name         string             `json:"name"`
	Version      string             `json:"version"`
	Features     []string           `json:"features"`
	Coefficients map[string]float64 `json:"coefficients"`
	Intercept    float64            `json:"intercept"`
}

// Model is a pre-trained linear regression over named features. It owns
// the required feature ordering; the assembler builds vectors against it.
// A Model is immutable after Load and safe for concurrent use.
type Model struct {
	name         string
	version      string
	features     []string
	coefficients map[string]float64
	intercept    float64
}

// Load reads and validates a model artifact from disk.
func Load(_ context.Context, path string) (*Model, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path comes from service config
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadModel, err)
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadModel, err)
	}

	if len(a.Features) == 0 {
		return nil, fmt.Errorf("%w: empty feature list", ErrInvalidModel)
	}
	seen := make(map[string]bool, len(a.Features))
	for _, f := range a.Features {
		if seen[f] {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrInvalidModel, f)
		}
		seen[f] = true
		if _, ok := a.Coefficients[f]; !ok {
			return nil, fmt.Errorf("%w: no coefficient for feature %q", ErrInvalidModel, f)
		}
	}

	return &Model{
		name:         a.Name,
		version:      a.Version,
		features:     a.Features,
		coefficients: a.Coefficients,
		intercept:    a.Intercept,
	}, nil
}

// Name returns the model's name.
func (m *Model) Name() string { return m.name }

// Version returns the model's version string.
func (m *Model) Version() string { return m.version }

// Features returns the required feature names in the order the model
// expects its input columns.
func (m *Model) Features() []string {
	out := make([]string, len(m.features))
	copy(out, m.features)
	return out
}

// Predict runs inference over the vector and returns the predicted score.
// The score is nominally in [0,10] but is not clamped.
func (m *Model) Predict(_ context.Context, vec *features.Vector) (float64, error) {
	score := m.intercept
	for _, name := range m.features {
		value, ok := vec.Get(name)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingFeature, name)
		}
		score += m.coefficients[name] * value
	}
	return score, nil
}
