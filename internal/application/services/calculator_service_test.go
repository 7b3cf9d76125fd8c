package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

func TestCalculatorServiceBMI(t *testing.T) {
	svc := NewCalculatorService()

	t.Run("computes kg per square meter", func(t *testing.T) {
		result, err := svc.BMI(70, 175)
		require.NoError(t, err)
		assert.Equal(t, 22.9, result.BMI)
		assert.Equal(t, "Normal weight", result.Category)
	})

	t.Run("WHO categories", func(t *testing.T) {
		cases := []struct {
			weight, height float64
			category       string
		}{
			{45, 170, "Underweight"},
			{70, 175, "Normal weight"},
			{75, 165, "Overweight"},
			{100, 170, "Obese"},
		}
		for _, tc := range cases {
			result, err := svc.BMI(tc.weight, tc.height)
			require.NoError(t, err)
			assert.Equal(t, tc.category, result.Category, "%.0fkg %.0fcm", tc.weight, tc.height)
		}
	})

	t.Run("rejects implausible measurements", func(t *testing.T) {
		_, err := svc.BMI(5, 175)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		_, err = svc.BMI(70, 400)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestCalculatorServiceDPF(t *testing.T) {
	svc := NewCalculatorService()

	t.Run("weights by kinship degree", func(t *testing.T) {
		result, err := svc.DPF([]Relative{
			{Relation: "parent", Diabetic: true},
			{Relation: "sibling", Diabetic: false},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.5, result.DPF)
		assert.Equal(t, 2, result.Relatives)
	})

	t.Run("mixed degrees", func(t *testing.T) {
		result, err := svc.DPF([]Relative{
			{Relation: "parent", Diabetic: true},
			{Relation: "cousin", Diabetic: false},
		})
		require.NoError(t, err)
		// 0.5 / (0.5 + 0.125) = 0.8.
		assert.Equal(t, 0.8, result.DPF)
	})

	t.Run("no diabetic relatives yields the floor", func(t *testing.T) {
		result, err := svc.DPF([]Relative{{Relation: "parent", Diabetic: false}})
		require.NoError(t, err)
		assert.Equal(t, 0.078, result.DPF)
	})

	t.Run("no relatives yields the floor", func(t *testing.T) {
		result, err := svc.DPF(nil)
		require.NoError(t, err)
		assert.Equal(t, 0.078, result.DPF)
	})

	t.Run("unknown relation is rejected", func(t *testing.T) {
		_, err := svc.DPF([]Relative{{Relation: "neighbor", Diabetic: true}})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
