package entities

import (
	"fmt"

	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// FeatureNames is the classifier's training-time feature order. It must
// never be reordered between training and inference; the model loader
// refuses artifacts whose recorded order differs.
var FeatureNames = []string{
	"Pregnancies",
	"Glucose",
	"BloodPressure",
	"SkinThickness",
	"Insulin",
	"BMI",
	"DiabetesPedigreeFunction",
	"Age",
}

// FeatureVector is an ordered mapping from feature name to value.
// Consumers align by name, never by raw position.
type FeatureVector struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

// BuildFeatureVector validates the input and assembles the canonical
// feature vector in training order. No side effects.
func BuildFeatureVector(input *MedicalInput) (*FeatureVector, error) {
	if input == nil {
		return nil, apperrors.NewValidationError("medical input is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, len(FeatureNames))
	copy(names, FeatureNames)

	return &FeatureVector{
		Names:  names,
		Values: input.fieldValues(),
	}, nil
}

// Value returns the value for the named feature.
func (v *FeatureVector) Value(name string) (float64, error) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], nil
		}
	}
	return 0, fmt.Errorf("feature %q not present in vector", name)
}

// Aligned returns the values reordered to match the given name order.
func (v *FeatureVector) Aligned(order []string) ([]float64, error) {
	if len(v.Names) != len(order) {
		return nil, fmt.Errorf("vector has %d features, expected %d", len(v.Names), len(order))
	}
	aligned := make([]float64, len(order))
	for i, name := range order {
		value, err := v.Value(name)
		if err != nil {
			return nil, err
		}
		aligned[i] = value
	}
	return aligned, nil
}
