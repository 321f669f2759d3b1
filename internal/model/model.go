// Package model defines the regression collaborator the ensemble consults for
// a relevance score, plus a linear implementation loaded from a JSON artifact.
package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jonathan/ats-scorer/internal/features"
)

// ErrUntrained is returned by Predict on a regressor that has no weights.
var ErrUntrained = errors.New("regressor is not trained")

// Regressor maps a feature vector to a relevance score in [0,100].
type Regressor interface {
	Predict(ctx context.Context, values []float64) (float64, error)
	// Trained reports whether Predict can be used. Callers fall back to the
	// heuristic when it returns false.
	Trained() bool
}

// LoadError is returned when a model artifact cannot be read or does not
// match the feature vector layout.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("model %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// artifact is the on-disk layout of a linear model.
type artifact struct {
	FeatureNames []string  `json:"feature_names"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// LinearRegressor predicts intercept + coefficients·values, clamped to [0,100].
type LinearRegressor struct {
	coefficients []float64
	intercept    float64
}

// NewLinearRegressor builds a regressor whose coefficients follow the
// feature vector order.
func NewLinearRegressor(coefficients []float64, intercept float64) (*LinearRegressor, error) {
	if len(coefficients) != features.Count {
		return nil, fmt.Errorf("expected %d coefficients, got %d", features.Count, len(coefficients))
	}
	coef := make([]float64, len(coefficients))
	copy(coef, coefficients)
	return &LinearRegressor{coefficients: coef, intercept: intercept}, nil
}

// LoadFile reads a linear model artifact from path.
func LoadFile(path string) (*LinearRegressor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to open artifact", Cause: err}
	}
	defer func() { _ = f.Close() }()
	return load(path, f)
}

// Load reads a linear model artifact from r.
func Load(r io.Reader) (*LinearRegressor, error) {
	return load("reader", r)
}

func load(source string, r io.Reader) (*LinearRegressor, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, &LoadError{Source: source, Message: "invalid JSON", Cause: err}
	}

	expected := features.Names()
	if len(a.FeatureNames) != len(expected) {
		return nil, &LoadError{
			Source:  source,
			Message: fmt.Sprintf("artifact has %d feature names, vector has %d", len(a.FeatureNames), len(expected)),
		}
	}
	for i, name := range expected {
		if a.FeatureNames[i] != name {
			return nil, &LoadError{
				Source:  source,
				Message: fmt.Sprintf("feature %d is %q, expected %q", i, a.FeatureNames[i], name),
			}
		}
	}
	for i, c := range a.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, &LoadError{Source: source, Message: fmt.Sprintf("coefficient %d is not finite", i)}
		}
	}

	reg, err := NewLinearRegressor(a.Coefficients, a.Intercept)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "coefficient count mismatch", Cause: err}
	}
	return reg, nil
}

// Trained always reports true.
func (r *LinearRegressor) Trained() bool {
	return true
}

// Predict returns the clamped linear prediction.
func (r *LinearRegressor) Predict(_ context.Context, values []float64) (float64, error) {
	if len(values) != len(r.coefficients) {
		return 0, fmt.Errorf("expected %d feature values, got %d", len(r.coefficients), len(values))
	}
	score := r.intercept
	for i, v := range values {
		score += r.coefficients[i] * v
	}
	if math.IsNaN(score) {
		return 0, errors.New("prediction is NaN")
	}
	return math.Max(0, math.Min(100, score)), nil
}

// Untrained is the regressor used when no artifact is configured.
type Untrained struct{}

// Trained always reports false.
func (Untrained) Trained() bool {
	return false
}

// Predict always fails with ErrUntrained.
func (Untrained) Predict(context.Context, []float64) (float64, error) {
	return 0, ErrUntrained
}
