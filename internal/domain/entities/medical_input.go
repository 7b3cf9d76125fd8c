package entities

import (
	"fmt"

	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// MedicalInput is one user-submitted health record, in the units the
// Pima screening form collects them.
type MedicalInput struct {
	Pregnancies              int     `json:"pregnancies" db:"pregnancies"`
	Glucose                  int     `json:"glucose" db:"glucose"`
	BloodPressure            int     `json:"blood_pressure" db:"blood_pressure"`
	SkinThickness            int     `json:"skin_thickness" db:"skin_thickness"`
	Insulin                  int     `json:"insulin" db:"insulin"`
	BMI                      float64 `json:"bmi" db:"bmi"`
	DiabetesPedigreeFunction float64 `json:"diabetes_pedigree_function" db:"diabetes_pedigree_function"`
	Age                      int     `json:"age" db:"age"`
}

type fieldBound struct {
	name string
	min  float64
	max  float64
}

// Bounds mirror the intake form's declared ranges. The form enforces them
// first; Validate is the single downstream enforcement point.
var inputBounds = []fieldBound{
	{"pregnancies", 0, 20},
	{"glucose", 0, 200},
	{"blood_pressure", 0, 150},
	{"skin_thickness", 0, 100},
	{"insulin", 0, 900},
	{"bmi", 0, 67},
	{"diabetes_pedigree_function", 0, 2.5},
	{"age", 1, 120},
}

func (m *MedicalInput) fieldValues() []float64 {
	return []float64{
		float64(m.Pregnancies),
		float64(m.Glucose),
		float64(m.BloodPressure),
		float64(m.SkinThickness),
		float64(m.Insulin),
		m.BMI,
		m.DiabetesPedigreeFunction,
		float64(m.Age),
	}
}

// Validate checks every field against its declared bound and returns a
// validation error naming the first offending field.
func (m *MedicalInput) Validate() error {
	values := m.fieldValues()
	for i, bound := range inputBounds {
		if values[i] < bound.min || values[i] > bound.max {
			return apperrors.NewValidationError(fmt.Sprintf(
				"%s must be between %g and %g, got %g",
				bound.name, bound.min, bound.max, values[i],
			))
		}
	}
	return nil
}
