package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// fakeClassifier returns a fixed probability and counts its calls, so
// tests can assert inference never ran.
type fakeClassifier struct {
	proba     float64
	threshold float64
	calls     int
	err       error
}

func (f *fakeClassifier) PredictProba(vector *entities.FeatureVector) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.proba, nil
}

func (f *fakeClassifier) Predict(vector *entities.FeatureVector) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if f.proba >= f.threshold {
		return 1, nil
	}
	return 0, nil
}

// fakeHistory is an in-memory PredictionRepository.
type fakeHistory struct {
	records   map[string][]*entities.HistoryRecord
	appendErr error
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{records: make(map[string][]*entities.HistoryRecord)}
}

func (f *fakeHistory) Append(ctx context.Context, record *entities.HistoryRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records[record.UserEmail] = append(f.records[record.UserEmail], record)
	return nil
}

func (f *fakeHistory) List(ctx context.Context, userEmail string) ([]*entities.HistoryRecord, error) {
	stored := f.records[userEmail]
	out := make([]*entities.HistoryRecord, len(stored))
	for i := range stored {
		out[i] = stored[len(stored)-1-i]
	}
	return out, nil
}

func (f *fakeHistory) Clear(ctx context.Context, userEmail string) error {
	delete(f.records, userEmail)
	return nil
}

func validInput() *entities.MedicalInput {
	return &entities.MedicalInput{
		Pregnancies:              2,
		Glucose:                  130,
		BloodPressure:            80,
		SkinThickness:            25,
		Insulin:                  100,
		BMI:                      31.4,
		DiabetesPedigreeFunction: 0.52,
		Age:                      41,
	}
}

func TestPredictionServicePredict(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rounded risk and matching label", func(t *testing.T) {
		classifier := &fakeClassifier{proba: 0.82314, threshold: 0.5}
		svc := NewPredictionService(classifier, newFakeHistory(), nil)

		result, err := svc.Predict(ctx, "alice@example.com", validInput())
		require.NoError(t, err)
		assert.Equal(t, 82.31, result.RiskPercent)
		assert.Equal(t, entities.PredictionLabelPositive, result.Label)
		assert.Equal(t, "You may have diabetes.", result.Message)
		assert.NotEmpty(t, result.ID)
		assert.False(t, result.CreatedAt.IsZero())
	})

	t.Run("negative below threshold", func(t *testing.T) {
		classifier := &fakeClassifier{proba: 0.2, threshold: 0.5}
		svc := NewPredictionService(classifier, newFakeHistory(), nil)

		result, err := svc.Predict(ctx, "alice@example.com", validInput())
		require.NoError(t, err)
		assert.Equal(t, entities.PredictionLabelNegative, result.Label)
		assert.Equal(t, "You are unlikely to have diabetes.", result.Message)
	})

	t.Run("missing user is unauthorized", func(t *testing.T) {
		svc := NewPredictionService(&fakeClassifier{}, newFakeHistory(), nil)
		_, err := svc.Predict(ctx, "", validInput())
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})

	t.Run("invalid input never reaches the classifier", func(t *testing.T) {
		classifier := &fakeClassifier{proba: 0.9, threshold: 0.5}
		svc := NewPredictionService(classifier, newFakeHistory(), nil)

		input := validInput()
		input.Age = 0
		_, err := svc.Predict(ctx, "alice@example.com", input)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Contains(t, err.Error(), "age")
		assert.Zero(t, classifier.calls)
	})

	t.Run("nil classifier means model unavailable", func(t *testing.T) {
		svc := NewPredictionService(nil, newFakeHistory(), nil)
		_, err := svc.Predict(ctx, "alice@example.com", validInput())
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable))
	})

	t.Run("inference failure is a prediction error", func(t *testing.T) {
		classifier := &fakeClassifier{err: fmt.Errorf("boom")}
		svc := NewPredictionService(classifier, newFakeHistory(), nil)
		_, err := svc.Predict(ctx, "alice@example.com", validInput())
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePrediction))
	})

	t.Run("append failure still returns the result", func(t *testing.T) {
		history := newFakeHistory()
		history.appendErr = apperrors.NewPersistenceError("disk full", nil)
		svc := NewPredictionService(&fakeClassifier{proba: 0.7, threshold: 0.5}, history, nil)

		result, err := svc.Predict(ctx, "alice@example.com", validInput())
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePersistence))
		require.NotNil(t, result)
		assert.Equal(t, 70.0, result.RiskPercent)
	})

	t.Run("successful prediction lands in history", func(t *testing.T) {
		history := newFakeHistory()
		svc := NewPredictionService(&fakeClassifier{proba: 0.61, threshold: 0.5}, history, nil)

		input := validInput()
		result, err := svc.Predict(ctx, "bob@example.com", input)
		require.NoError(t, err)

		records, err := history.List(ctx, "bob@example.com")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, result.ID, records[0].ID)
		assert.Equal(t, input.Glucose, records[0].Glucose)
		assert.Equal(t, 61.0, records[0].RiskPercent)
		assert.Equal(t, entities.PredictionLabelPositive, records[0].Prediction)

		other, err := history.List(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestRoundRiskPercent(t *testing.T) {
	cases := map[float64]float64{
		0.82314: 82.31,
		0.82317: 82.32,
		0:       0,
		1:       100,
		0.005:   0.5,
	}
	for proba, want := range cases {
		assert.Equal(t, want, RoundRiskPercent(proba), "proba %v", proba)
	}
}
