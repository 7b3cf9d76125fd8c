package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/ml"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// glucoseForest splits on Glucose only, so glucose should dominate both
// the attributions and the importance ranking.
func glucoseForest() *ml.Forest {
	return &ml.Forest{
		ModelVersion: "test-1",
		Features:     append([]string{}, entities.FeatureNames...),
		Threshold:    0.5,
		Trees: []ml.Tree{
			{Nodes: []ml.Node{
				{Feature: 1, Threshold: 120, Left: 1, Right: 2},
				{Left: -1, Value: [2]float64{9, 1}},
				{Left: -1, Value: [2]float64{1, 9}},
			}},
		},
	}
}

// The glucose column keeps its mean (108.75) below the tree's 120 split so
// the mean-imputed baseline lands in the low-risk leaf, while the last two
// rows stay above it so the forest separates the outcomes perfectly.
func backgroundDataset() *ml.Dataset {
	return &ml.Dataset{
		Names: entities.FeatureNames,
		Rows: [][]float64{
			{1, 80, 70, 20, 80, 24, 0.3, 30},
			{2, 90, 72, 22, 85, 26, 0.4, 35},
			{4, 130, 85, 30, 120, 33, 0.7, 50},
			{5, 135, 88, 32, 130, 35, 0.8, 55},
		},
		Outcomes: []int{0, 0, 1, 1},
	}
}

func TestExplanationServiceExplain(t *testing.T) {
	ctx := context.Background()
	svc := NewExplanationService(glucoseForest(), backgroundDataset())

	t.Run("attributions sum to prediction minus baseline", func(t *testing.T) {
		explanation, err := svc.Explain(ctx, validInput())
		require.NoError(t, err)

		var sum float64
		for _, attr := range explanation.Attributions {
			sum += attr.Contribution
		}
		assert.InDelta(t, explanation.Prediction-explanation.Baseline, sum, 1e-9)
	})

	t.Run("the split feature carries the whole attribution", func(t *testing.T) {
		explanation, err := svc.Explain(ctx, validInput())
		require.NoError(t, err)

		require.NotEmpty(t, explanation.Attributions)
		assert.Equal(t, "Glucose", explanation.Attributions[0].Feature)
		assert.InDelta(t, explanation.Prediction-explanation.Baseline, explanation.Attributions[0].Contribution, 1e-9)
		assert.Greater(t, explanation.Attributions[0].Contribution, 0.0)
		for _, attr := range explanation.Attributions[1:] {
			assert.InDelta(t, 0, attr.Contribution, 1e-12, attr.Feature)
		}
	})

	t.Run("invalid input is rejected", func(t *testing.T) {
		input := validInput()
		input.Glucose = 500
		_, err := svc.Explain(ctx, input)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("unavailable without a dataset", func(t *testing.T) {
		missing := NewExplanationService(glucoseForest(), nil)
		_, err := missing.Explain(ctx, validInput())
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable))
	})
}

func TestExplanationServicePermutationImportance(t *testing.T) {
	ctx := context.Background()
	svc := NewExplanationService(glucoseForest(), backgroundDataset())

	t.Run("glucose ranks first", func(t *testing.T) {
		report, err := svc.PermutationImportance(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1.0, report.BaselineAccuracy)
		require.NotEmpty(t, report.Features)
		assert.Equal(t, "Glucose", report.Features[0].Feature)
		assert.Greater(t, report.Features[0].Importance, 0.0)
	})

	t.Run("deterministic under the fixed seed", func(t *testing.T) {
		first, err := svc.PermutationImportance(ctx)
		require.NoError(t, err)
		second, err := svc.PermutationImportance(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
