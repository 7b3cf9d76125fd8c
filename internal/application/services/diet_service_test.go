package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/providers"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

func TestDietServiceLogMeal(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid meal with its GI class", func(t *testing.T) {
		meals := &fakeMealRepo{}
		svc := NewDietService(meals, newFakeGoalRepo(), nil, nil, nil, nil)

		gi := 72.0
		entry, err := svc.LogMeal(ctx, "alice@example.com", "white rice", 204, entities.MealTimeLunch, &gi)
		require.NoError(t, err)
		assert.Equal(t, entities.GIClassHigh, entry.GIClass)
		assert.Len(t, meals.entries, 1)
	})

	t.Run("GI is optional", func(t *testing.T) {
		svc := NewDietService(&fakeMealRepo{}, newFakeGoalRepo(), nil, nil, nil, nil)
		entry, err := svc.LogMeal(ctx, "alice@example.com", "eggs", 155, entities.MealTimeBreakfast, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.GIClassUnknown, entry.GIClass)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc := NewDietService(&fakeMealRepo{}, newFakeGoalRepo(), nil, nil, nil, nil)

		_, err := svc.LogMeal(ctx, "", "eggs", 155, entities.MealTimeBreakfast, nil)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

		_, err = svc.LogMeal(ctx, "alice@example.com", "  ", 155, entities.MealTimeBreakfast, nil)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		_, err = svc.LogMeal(ctx, "alice@example.com", "eggs", 0, entities.MealTimeBreakfast, nil)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		_, err = svc.LogMeal(ctx, "alice@example.com", "eggs", 155, "brunch", nil)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestDietServiceCalorieGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when unset", func(t *testing.T) {
		svc := NewDietService(&fakeMealRepo{}, newFakeGoalRepo(), nil, nil, nil, nil)
		goal, err := svc.CalorieGoal(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, float64(defaultCalorieGoal), goal)
	})

	t.Run("set then get", func(t *testing.T) {
		svc := NewDietService(&fakeMealRepo{}, newFakeGoalRepo(), nil, nil, nil, nil)
		require.NoError(t, svc.SetCalorieGoal(ctx, "alice@example.com", 1800))
		goal, err := svc.CalorieGoal(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, 1800.0, goal)
	})

	t.Run("enforces bounds", func(t *testing.T) {
		svc := NewDietService(&fakeMealRepo{}, newFakeGoalRepo(), nil, nil, nil, nil)
		assert.True(t, apperrors.IsType(svc.SetCalorieGoal(ctx, "alice@example.com", 500), apperrors.ErrorTypeValidation))
		assert.True(t, apperrors.IsType(svc.SetCalorieGoal(ctx, "alice@example.com", 5000), apperrors.ErrorTypeValidation))
	})
}

func TestDietServiceDailySummary(t *testing.T) {
	ctx := context.Background()
	meals := &fakeMealRepo{}
	svc := NewDietService(meals, newFakeGoalRepo(), nil, nil, nil, nil)

	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	meals.entries = []*entities.MealEntry{
		{UserEmail: "alice@example.com", Food: "eggs", Calories: 155, MealTime: entities.MealTimeBreakfast, Timestamp: today.Add(8 * time.Hour)},
		{UserEmail: "alice@example.com", Food: "rice", Calories: 204, MealTime: entities.MealTimeLunch, Timestamp: today.Add(13 * time.Hour)},
		{UserEmail: "alice@example.com", Food: "soup", Calories: 120, MealTime: entities.MealTimeDinner, Timestamp: today.AddDate(0, 0, -1)},
		{UserEmail: "bob@example.com", Food: "cake", Calories: 350, MealTime: entities.MealTimeSnack, Timestamp: today.Add(10 * time.Hour)},
	}

	summary, err := svc.DailySummary(ctx, "alice@example.com", today)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", summary.Date)
	assert.Equal(t, 359.0, summary.Consumed)
	assert.Equal(t, float64(defaultCalorieGoal)-359.0, summary.Remaining)
	assert.Equal(t, 155.0, summary.ByMealTime[entities.MealTimeBreakfast])
	assert.Equal(t, 204.0, summary.ByMealTime[entities.MealTimeLunch])
	assert.Len(t, summary.Entries, 2)
}

func TestDietServiceNutrition(t *testing.T) {
	ctx := context.Background()
	facts := &entities.NutritionFacts{Food: "banana", Calories: 89, Carbs: 23, Protein: 1.1, Fat: 0.3, Source: "usda"}

	t.Run("falls through to the provider and caches", func(t *testing.T) {
		provider := &fakeNutritionProvider{facts: facts}
		cache := newFakeCache()
		svc := NewDietService(&fakeMealRepo{}, newFakeGoalRepo(), nil, provider, cache, nil)

		got, err := svc.Nutrition(ctx, "banana")
		require.NoError(t, err)
		assert.Equal(t, facts, got)
		assert.Equal(t, 1, provider.calls)

		// Second lookup is served from cache.
		again, err := svc.Nutrition(ctx, "banana")
		require.NoError(t, err)
		assert.Equal(t, facts.Calories, again.Calories)
		assert.Equal(t, 1, provider.calls)
	})

	t.Run("index hit short-circuits the provider", func(t *testing.T) {
		provider := &fakeNutritionProvider{facts: facts}
		index := &fakeFoodIndex{items: []*entities.FoodItem{{Name: "banana", Calories: 89}}}
		svc := NewDietService(&fakeMealRepo{}, newFakeGoalRepo(), index, provider, nil, nil)

		got, err := svc.Nutrition(ctx, "banana")
		require.NoError(t, err)
		assert.Equal(t, "index", got.Source)
		assert.Zero(t, provider.calls)
	})

	t.Run("unknown food is not found", func(t *testing.T) {
		provider := &fakeNutritionProvider{err: providers.ErrFoodNotFound}
		svc := NewDietService(&fakeMealRepo{}, newFakeGoalRepo(), nil, provider, nil, nil)

		_, err := svc.Nutrition(ctx, "unobtainium")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("provider outage is an external error", func(t *testing.T) {
		provider := &fakeNutritionProvider{err: assert.AnError}
		svc := NewDietService(&fakeMealRepo{}, newFakeGoalRepo(), nil, provider, nil, nil)

		_, err := svc.Nutrition(ctx, "banana")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	})
}

func TestDietServiceSearchFoods(t *testing.T) {
	ctx := context.Background()

	t.Run("no index means empty results", func(t *testing.T) {
		svc := NewDietService(&fakeMealRepo{}, newFakeGoalRepo(), nil, nil, nil, nil)
		items, err := svc.SearchFoods(ctx, "rice")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		svc := NewDietService(&fakeMealRepo{}, newFakeGoalRepo(), nil, nil, nil, nil)
		_, err := svc.SearchFoods(ctx, "  ")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
