package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/providers"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/repositories"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

const (
	// Physiologically plausible meter readings, mg/dL.
	minSugarLevel = 20
	maxSugarLevel = 600

	// Change between consecutive readings that counts as a spike or
	// downfall, mg/dL.
	spikeDelta    = 25
	downfallDelta = -20

	// Meals logged within this window before a reading are surfaced as
	// possible causes.
	recentFoodWindow = 120 * time.Minute

	// Trailing trend window and the in-range band.
	trendDays   = 7
	inRangeLow  = 70
	inRangeHigh = 180
)

// SugarService manages blood-sugar readings, spike analysis and
// personalized advice.
type SugarService struct {
	readings repositories.SugarRepository
	meals    repositories.MealRepository
	advice   providers.AdviceProvider
}

// NewSugarService wires the sugar tracker. The advice provider is
// optional; without it Advice falls back to the static guidance.
func NewSugarService(readings repositories.SugarRepository, meals repositories.MealRepository, advice providers.AdviceProvider) *SugarService {
	return &SugarService{readings: readings, meals: meals, advice: advice}
}

// LogReading validates and appends one blood-sugar reading.
func (s *SugarService) LogReading(ctx context.Context, userEmail string, level float64, readingContext entities.SugarContext, note string) (*entities.SugarReading, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}
	if level < minSugarLevel || level > maxSugarLevel {
		return nil, apperrors.NewValidationError(fmt.Sprintf("sugar level must be between %d and %d mg/dL", minSugarLevel, maxSugarLevel))
	}
	if !entities.ValidSugarContext(readingContext) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown reading context %q", readingContext))
	}

	reading := &entities.SugarReading{
		ID:        uuid.New().String(),
		UserEmail: userEmail,
		Level:     level,
		Context:   readingContext,
		Note:      strings.TrimSpace(note),
		Timestamp: time.Now().UTC(),
	}
	if err := s.readings.Append(ctx, reading); err != nil {
		return nil, err
	}
	return reading, nil
}

// ListReadings returns the user's readings, most recent first.
func (s *SugarService) ListReadings(ctx context.Context, userEmail string) ([]*entities.SugarReading, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}
	return s.readings.List(ctx, userEmail)
}

// Analyze classifies the latest reading against the previous one, lists
// meals eaten shortly before it, and summarizes the trailing week.
func (s *SugarService) Analyze(ctx context.Context, userEmail string) (*entities.SugarAnalysis, error) {
	readings, err := s.ListReadings(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, apperrors.NewNotFoundError("no blood-sugar readings logged yet")
	}

	analysis := &entities.SugarAnalysis{
		Latest:      readings[0],
		RecentFoods: []*entities.MealEntry{},
	}
	if len(readings) == 1 {
		analysis.Event = entities.SugarEventFirstReading
	} else {
		analysis.Delta = readings[0].Level - readings[1].Level
		switch {
		case analysis.Delta > spikeDelta:
			analysis.Event = entities.SugarEventSpike
		case analysis.Delta < downfallDelta:
			analysis.Event = entities.SugarEventDownfall
		default:
			analysis.Event = entities.SugarEventStable
		}
	}

	if s.meals != nil {
		meals, err := s.meals.List(ctx, userEmail)
		if err == nil {
			cutoff := analysis.Latest.Timestamp.Add(-recentFoodWindow)
			for _, meal := range meals {
				if !meal.Timestamp.Before(cutoff) && !meal.Timestamp.After(analysis.Latest.Timestamp) {
					analysis.RecentFoods = append(analysis.RecentFoods, meal)
				}
			}
		}
	}

	analysis.Trend = trendSummary(readings, analysis.Latest.Timestamp)
	return analysis, nil
}

func trendSummary(readings []*entities.SugarReading, now time.Time) *entities.SugarTrend {
	cutoff := now.AddDate(0, 0, -trendDays)
	trend := &entities.SugarTrend{Days: trendDays}
	var sum float64
	inRange := 0
	for _, r := range readings {
		if r.Timestamp.Before(cutoff) {
			continue
		}
		if trend.Count == 0 {
			trend.Min = r.Level
			trend.Max = r.Level
		}
		trend.Count++
		sum += r.Level
		if r.Level < trend.Min {
			trend.Min = r.Level
		}
		if r.Level > trend.Max {
			trend.Max = r.Level
		}
		if r.Level >= inRangeLow && r.Level <= inRangeHigh {
			inRange++
		}
	}
	if trend.Count > 0 {
		trend.Mean = sum / float64(trend.Count)
		trend.InRangeFraction = float64(inRange) / float64(trend.Count)
	}
	return trend
}

// Advice asks the advice provider for guidance grounded in the user's
// latest analysis. Provider failures fall back to static guidance so the
// tracker never blocks on the external service.
func (s *SugarService) Advice(ctx context.Context, userEmail string) (string, error) {
	analysis, err := s.Analyze(ctx, userEmail)
	if err != nil {
		return "", err
	}
	if s.advice == nil {
		return staticSugarAdvice(analysis), nil
	}
	reply, err := s.advice.GenerateAdvice(ctx, sugarAdvicePrompt(analysis))
	if err != nil {
		return staticSugarAdvice(analysis), nil
	}
	return reply, nil
}

func sugarAdvicePrompt(a *entities.SugarAnalysis) string {
	var sb strings.Builder
	sb.WriteString("You are a diabetes care assistant. Give short, practical, non-alarming advice.\n")
	fmt.Fprintf(&sb, "Latest blood sugar: %.0f mg/dL (%s). Change from previous reading: %+.0f mg/dL (%s).\n",
		a.Latest.Level, a.Latest.Context, a.Delta, a.Event)
	if len(a.RecentFoods) > 0 {
		names := make([]string, 0, len(a.RecentFoods))
		for _, m := range a.RecentFoods {
			names = append(names, m.Food)
		}
		fmt.Fprintf(&sb, "Foods eaten in the last two hours: %s.\n", strings.Join(names, ", "))
	}
	if a.Trend != nil && a.Trend.Count > 0 {
		fmt.Fprintf(&sb, "Past %d days: %d readings, mean %.0f, range %.0f-%.0f, %.0f%% in the 70-180 band.\n",
			a.Trend.Days, a.Trend.Count, a.Trend.Mean, a.Trend.Min, a.Trend.Max, a.Trend.InRangeFraction*100)
	}
	sb.WriteString("Suggest what to do next and what to watch for. Do not diagnose.")
	return sb.String()
}

func staticSugarAdvice(a *entities.SugarAnalysis) string {
	switch a.Event {
	case entities.SugarEventSpike:
		return "Your blood sugar rose sharply since the last reading. Drink water, take a short walk, and avoid further carbohydrates for now. Recheck in 1-2 hours and contact your care provider if it stays high."
	case entities.SugarEventDownfall:
		return "Your blood sugar dropped quickly since the last reading. If you feel shaky or dizzy, take 15g of fast-acting carbohydrates and recheck in 15 minutes."
	case entities.SugarEventFirstReading:
		return "First reading logged. Keep measuring at consistent times, such as fasting and after meals, to build a useful trend."
	default:
		return "Your blood sugar is stable compared to the last reading. Keep up regular meals, hydration and activity, and continue logging."
	}
}
