package services

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// BMIResult is the body-mass-index calculation with its WHO class.
type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// Relative is one family member in the pedigree estimate.
type Relative struct {
	Relation string `json:"relation"`
	Diabetic bool   `json:"diabetic"`
}

// DPFResult is the kinship-weighted pedigree function estimate.
type DPFResult struct {
	DPF       float64 `json:"dpf"`
	Relatives int     `json:"relatives"`
}

// Kinship weights by relation degree: first-degree relatives count full,
// second-degree half, third-degree a quarter of that.
var kinshipWeights = map[string]float64{
	"parent":      0.5,
	"sibling":     0.5,
	"grandparent": 0.25,
	"aunt":        0.25,
	"uncle":       0.25,
	"cousin":      0.125,
}

// CalculatorService holds the standalone helpers the intake form links
// to: BMI and a pedigree-function estimate for users who do not know
// their clinical DPF value.
type CalculatorService struct{}

func NewCalculatorService() *CalculatorService {
	return &CalculatorService{}
}

// BMI computes kg/m² and the WHO weight category.
func (s *CalculatorService) BMI(weightKg, heightCm float64) (*BMIResult, error) {
	if weightKg < minWeightKg || weightKg > maxWeightKg {
		return nil, apperrors.NewValidationError(fmt.Sprintf("weight must be between %d and %d kg", minWeightKg, maxWeightKg))
	}
	if heightCm < 50 || heightCm > 250 {
		return nil, apperrors.NewValidationError("height must be between 50 and 250 cm")
	}

	heightM := heightCm / 100
	bmi := math.Round(weightKg/(heightM*heightM)*10) / 10

	var category string
	switch {
	case bmi < 18.5:
		category = "Underweight"
	case bmi < 25:
		category = "Normal weight"
	case bmi < 30:
		category = "Overweight"
	default:
		category = "Obese"
	}
	return &BMIResult{BMI: bmi, Category: category}, nil
}

// DPF estimates the diabetes pedigree function as the diabetic-weighted
// fraction of the listed relatives' kinship weights. No relatives, or no
// diabetic ones, yields a small non-zero floor matching the dataset's
// observed minimum.
func (s *CalculatorService) DPF(relatives []Relative) (*DPFResult, error) {
	var total, diabetic float64
	for _, rel := range relatives {
		weight, ok := kinshipWeights[strings.ToLower(strings.TrimSpace(rel.Relation))]
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown relation %q", rel.Relation))
		}
		total += weight
		if rel.Diabetic {
			diabetic += weight
		}
	}

	dpf := 0.078
	if total > 0 && diabetic > 0 {
		dpf = diabetic / total
		if dpf > 2.5 {
			dpf = 2.5
		}
	}
	return &DPFResult{
		DPF:       math.Round(dpf*1000) / 1000,
		Relatives: len(relatives),
	}, nil
}
