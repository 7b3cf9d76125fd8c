package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/repositories"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/observability"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// Classifier is the trained binary model contract. Implementations must be
// deterministic: the same vector always yields the same probability, and
// Predict must agree with PredictProba against the model's own threshold.
type Classifier interface {
	PredictProba(vector *entities.FeatureVector) (float64, error)
	Predict(vector *entities.FeatureVector) (int, error)
}

// PredictionService orchestrates validation, inference and the durable
// history append for one submitted medical input.
type PredictionService struct {
	classifier Classifier
	history    repositories.PredictionRepository
	metrics    *observability.Metrics
}

// NewPredictionService creates a new prediction service. A nil classifier
// means the model artifact failed to load; predictions are then refused
// with a model-unavailable error instead of crashing the process.
func NewPredictionService(classifier Classifier, history repositories.PredictionRepository, metrics *observability.Metrics) *PredictionService {
	return &PredictionService{
		classifier: classifier,
		history:    history,
		metrics:    metrics,
	}
}

// Available reports whether the classifier loaded.
func (s *PredictionService) Available() bool {
	return s.classifier != nil
}

// Predict classifies the input and appends the result to the user's
// history. Validation fails before any inference. When the append fails
// the computed result is still returned together with the persistence
// error, so the caller can show the prediction and the save failure
// distinctly.
func (s *PredictionService) Predict(ctx context.Context, userEmail string, input *entities.MedicalInput) (*entities.PredictionResult, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}

	vector, err := entities.BuildFeatureVector(input)
	if err != nil {
		return nil, err
	}

	if s.classifier == nil {
		return nil, apperrors.NewModelUnavailableError("risk prediction is temporarily disabled: model artifact not loaded", nil)
	}

	inferStart := time.Now()
	probability, err := s.classifier.PredictProba(vector)
	if err != nil {
		return nil, apperrors.NewPredictionError("classifier failed during inference", err)
	}
	code, err := s.classifier.Predict(vector)
	if err != nil {
		return nil, apperrors.NewPredictionError("classifier failed during inference", err)
	}

	label := entities.LabelFromCode(code)
	if s.metrics != nil {
		observability.RecordPrediction(ctx, s.metrics, string(label), time.Since(inferStart))
	}

	result := &entities.PredictionResult{
		ID:          uuid.New().String(),
		UserEmail:   userEmail,
		Input:       *input,
		Vector:      vector,
		Probability: probability,
		RiskPercent: RoundRiskPercent(probability),
		Label:       label,
		Message:     label.Message(),
		CreatedAt:   time.Now().UTC(),
	}

	storeStart := time.Now()
	if err := s.history.Append(ctx, result.Record()); err != nil {
		logger := observability.LoggerFromContext(ctx)
		logger.Error().Err(err).Str("user", userEmail).Msg("prediction computed but history append failed")
		if !apperrors.IsType(err, apperrors.ErrorTypePersistence) {
			err = apperrors.NewPersistenceError("failed to save prediction to history", err)
		}
		return result, err
	}
	if s.metrics != nil {
		observability.RecordStoreMetric(ctx, s.metrics, "append", time.Since(storeStart))
	}

	return result, nil
}

// RoundRiskPercent converts a probability to a percentage rounded to two
// decimals: 0.8231 becomes 82.31.
func RoundRiskPercent(probability float64) float64 {
	return math.Round(probability*100*100) / 100
}
