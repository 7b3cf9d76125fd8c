package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/providers"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/repositories"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/observability"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

const (
	// Daily calorie goal bounds from the tracker's settings form.
	minCalorieGoal     = 800
	maxCalorieGoal     = 4000
	defaultCalorieGoal = 2000

	nutritionCacheTTL = 24 * 60 * 60 // seconds
	foodSearchLimit   = 10
)

// DietService manages logged meals, the daily calorie goal, food search
// and nutrition lookups.
type DietService struct {
	meals     repositories.MealRepository
	goals     repositories.GoalRepository
	foods     repositories.FoodSearchRepository
	nutrition providers.NutritionProvider
	cache     providers.CacheProvider
	metrics   *observability.Metrics
}

// NewDietService wires the diet tracker. The food index, nutrition
// provider and cache are optional: when absent the respective lookups
// degrade instead of failing meal logging.
func NewDietService(
	meals repositories.MealRepository,
	goals repositories.GoalRepository,
	foods repositories.FoodSearchRepository,
	nutrition providers.NutritionProvider,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
) *DietService {
	return &DietService{
		meals:     meals,
		goals:     goals,
		foods:     foods,
		nutrition: nutrition,
		cache:     cache,
		metrics:   metrics,
	}
}

// LogMeal validates and appends one meal entry. The glycemic index is
// optional; when present it is bucketed into the stored GI class.
func (s *DietService) LogMeal(ctx context.Context, userEmail string, food string, calories float64, mealTime entities.MealTime, glycemicIndex *float64) (*entities.MealEntry, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}
	food = strings.TrimSpace(food)
	if food == "" {
		return nil, apperrors.NewValidationError("food name is required")
	}
	if calories <= 0 {
		return nil, apperrors.NewValidationError("calories must be positive")
	}
	if !entities.ValidMealTime(mealTime) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown meal time %q", mealTime))
	}

	entry := &entities.MealEntry{
		ID:            uuid.New().String(),
		UserEmail:     userEmail,
		Food:          food,
		Calories:      calories,
		MealTime:      mealTime,
		GlycemicIndex: glycemicIndex,
		GIClass:       entities.GIClassUnknown,
		Timestamp:     time.Now().UTC(),
	}
	if glycemicIndex != nil {
		entry.GIClass = entities.ClassifyGI(*glycemicIndex)
	}

	if err := s.meals.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListMeals returns the user's meal log, most recent first.
func (s *DietService) ListMeals(ctx context.Context, userEmail string) ([]*entities.MealEntry, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}
	return s.meals.List(ctx, userEmail)
}

// ClearMeals removes the user's meal log.
func (s *DietService) ClearMeals(ctx context.Context, userEmail string) error {
	if userEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}
	return s.meals.Clear(ctx, userEmail)
}

// SetCalorieGoal stores the user's daily calorie target.
func (s *DietService) SetCalorieGoal(ctx context.Context, userEmail string, goal float64) error {
	if userEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}
	if goal < minCalorieGoal || goal > maxCalorieGoal {
		return apperrors.NewValidationError(fmt.Sprintf("daily calorie goal must be between %d and %d", minCalorieGoal, maxCalorieGoal))
	}
	return s.goals.Set(ctx, userEmail, entities.GoalKindDietCalories, goal)
}

// CalorieGoal returns the user's daily target, falling back to the
// default when none was ever set.
func (s *DietService) CalorieGoal(ctx context.Context, userEmail string) (float64, error) {
	if userEmail == "" {
		return 0, apperrors.NewUnauthorizedError("user identifier is required")
	}
	goal, err := s.goals.Get(ctx, userEmail, entities.GoalKindDietCalories)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return defaultCalorieGoal, nil
		}
		return 0, err
	}
	return goal, nil
}

// DailySummary aggregates the given calendar day's meals against the
// user's goal. day is interpreted in UTC, matching stored timestamps.
func (s *DietService) DailySummary(ctx context.Context, userEmail string, day time.Time) (*entities.DailySummary, error) {
	entries, err := s.ListMeals(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	goal, err := s.CalorieGoal(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	date := day.UTC().Format("2006-01-02")
	summary := &entities.DailySummary{
		Date:       date,
		Goal:       goal,
		ByMealTime: make(map[entities.MealTime]float64),
		Entries:    []*entities.MealEntry{},
	}
	for _, entry := range entries {
		if entry.Timestamp.UTC().Format("2006-01-02") != date {
			continue
		}
		summary.Consumed += entry.Calories
		summary.ByMealTime[entry.MealTime] += entry.Calories
		summary.Entries = append(summary.Entries, entry)
	}
	summary.Remaining = summary.Goal - summary.Consumed
	return summary, nil
}

// SearchFoods queries the food index. Without an index configured the
// result is empty rather than an error.
func (s *DietService) SearchFoods(ctx context.Context, query string) ([]*entities.FoodItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	if s.foods == nil {
		return []*entities.FoodItem{}, nil
	}
	return s.foods.Search(ctx, query, foodSearchLimit)
}

// Nutrition resolves nutrition facts for a food: cache first, then the
// local index, then the external provider. External hits are cached for
// a day.
func (s *DietService) Nutrition(ctx context.Context, food string) (*entities.NutritionFacts, error) {
	food = strings.TrimSpace(food)
	if food == "" {
		return nil, apperrors.NewValidationError("food name is required")
	}
	cacheKey := "nutrition:" + strings.ToLower(food)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && raw != nil {
			var facts entities.NutritionFacts
			if err := json.Unmarshal(raw, &facts); err == nil {
				if s.metrics != nil {
					observability.RecordCacheHit(ctx, s.metrics, cacheKey)
				}
				return &facts, nil
			}
		}
		if s.metrics != nil {
			observability.RecordCacheMiss(ctx, s.metrics, cacheKey)
		}
	}

	if s.foods != nil {
		items, err := s.foods.Search(ctx, food, 1)
		if err == nil && len(items) > 0 && strings.EqualFold(items[0].Name, food) {
			facts := &entities.NutritionFacts{
				Food:     items[0].Name,
				Calories: items[0].Calories,
				Source:   "index",
			}
			s.cacheFacts(ctx, cacheKey, facts)
			return facts, nil
		}
	}

	if s.nutrition == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no nutrition data for %q", food))
	}
	facts, err := s.nutrition.Lookup(ctx, food)
	if err != nil {
		if errors.Is(err, providers.ErrFoodNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no nutrition data for %q", food))
		}
		return nil, apperrors.NewExternalError("nutrition lookup failed", err)
	}
	s.cacheFacts(ctx, cacheKey, facts)
	return facts, nil
}

func (s *DietService) cacheFacts(ctx context.Context, key string, facts *entities.NutritionFacts) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(facts)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, nutritionCacheTTL); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to cache nutrition facts")
	}
}
