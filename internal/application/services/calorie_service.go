package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/repositories"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// MET values per supported exercise. Unknown exercises fall back to the
// generic moderate-activity value.
var metByExercise = map[string]float64{
	"walking":  3.5,
	"running":  8.0,
	"cycling":  6.0,
	"swimming": 6.0,
	"yoga":     2.5,
	"gym":      5.0,
	"dancing":  4.5,
	"aerobics": 6.5,
	"skipping": 10.0,
}

const fallbackMET = 4.0

const (
	minDurationMinutes = 1
	maxDurationMinutes = 600
	minWeightKg        = 20
	maxWeightKg        = 300
	maxHeartRate       = 220

	minExerciseGoal     = 50
	maxExerciseGoal     = 3000
	defaultExerciseGoal = 300
)

// CalorieService estimates workout calorie burn from MET values and keeps
// the per-user exercise history and daily burn goal.
type CalorieService struct {
	sessions repositories.ExerciseRepository
	goals    repositories.GoalRepository
}

func NewCalorieService(sessions repositories.ExerciseRepository, goals repositories.GoalRepository) *CalorieService {
	return &CalorieService{sessions: sessions, goals: goals}
}

// Estimate computes the calorie burn for one session and appends it to
// the user's history. Heart rate is optional (zero means not measured)
// and scales the estimate by measured intensity.
func (s *CalorieService) Estimate(ctx context.Context, userEmail, exerciseType string, durationMinutes, heartRate, weightKg float64) (*entities.ExerciseSession, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}
	exerciseType = strings.TrimSpace(strings.ToLower(exerciseType))
	if exerciseType == "" {
		return nil, apperrors.NewValidationError("exercise type is required")
	}
	if durationMinutes < minDurationMinutes || durationMinutes > maxDurationMinutes {
		return nil, apperrors.NewValidationError(fmt.Sprintf("duration must be between %d and %d minutes", minDurationMinutes, maxDurationMinutes))
	}
	if weightKg < minWeightKg || weightKg > maxWeightKg {
		return nil, apperrors.NewValidationError(fmt.Sprintf("weight must be between %d and %d kg", minWeightKg, maxWeightKg))
	}
	if heartRate < 0 || heartRate > maxHeartRate {
		return nil, apperrors.NewValidationError(fmt.Sprintf("heart rate must be between 0 and %d bpm", maxHeartRate))
	}

	session := &entities.ExerciseSession{
		ID:              uuid.New().String(),
		UserEmail:       userEmail,
		ExerciseType:    exerciseType,
		DurationMinutes: durationMinutes,
		HeartRate:       heartRate,
		WeightKg:        weightKg,
		Calories:        EstimateCalories(exerciseType, durationMinutes, heartRate, weightKg),
		Timestamp:       time.Now().UTC(),
	}
	if err := s.sessions.Append(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// EstimateCalories is the MET formula: MET x weight(kg) x duration(h),
// scaled by a heart-rate intensity factor when the rate was measured.
func EstimateCalories(exerciseType string, durationMinutes, heartRate, weightKg float64) float64 {
	met, ok := metByExercise[exerciseType]
	if !ok {
		met = fallbackMET
	}
	calories := met * weightKg * (durationMinutes / 60)
	calories *= intensityFactor(heartRate)
	return math.Round(calories*100) / 100
}

// intensityFactor adjusts the table MET for measured effort: a high heart
// rate means the session burned hotter than the table assumes.
func intensityFactor(heartRate float64) float64 {
	switch {
	case heartRate <= 0:
		return 1.0
	case heartRate < 100:
		return 0.9
	case heartRate < 140:
		return 1.0
	default:
		return 1.15
	}
}

// ListSessions returns the user's exercise history, most recent first.
func (s *CalorieService) ListSessions(ctx context.Context, userEmail string) ([]*entities.ExerciseSession, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}
	return s.sessions.List(ctx, userEmail)
}

// SetBurnGoal stores the user's daily calorie-burn target.
func (s *CalorieService) SetBurnGoal(ctx context.Context, userEmail string, goal float64) error {
	if userEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}
	if goal < minExerciseGoal || goal > maxExerciseGoal {
		return apperrors.NewValidationError(fmt.Sprintf("daily burn goal must be between %d and %d calories", minExerciseGoal, maxExerciseGoal))
	}
	return s.goals.Set(ctx, userEmail, entities.GoalKindExerciseCalories, goal)
}

// BurnGoal returns the user's daily burn target, defaulted when unset.
func (s *CalorieService) BurnGoal(ctx context.Context, userEmail string) (float64, error) {
	if userEmail == "" {
		return 0, apperrors.NewUnauthorizedError("user identifier is required")
	}
	goal, err := s.goals.Get(ctx, userEmail, entities.GoalKindExerciseCalories)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return defaultExerciseGoal, nil
		}
		return 0, err
	}
	return goal, nil
}
