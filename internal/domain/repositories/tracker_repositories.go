package repositories

import (
	"context"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
)

// MealRepository stores logged meals per user.
type MealRepository interface {
	Append(ctx context.Context, entry *entities.MealEntry) error
	// List returns the user's meals, most recent first.
	List(ctx context.Context, userEmail string) ([]*entities.MealEntry, error)
	Clear(ctx context.Context, userEmail string) error
}

// SugarRepository stores blood-sugar readings per user.
type SugarRepository interface {
	Append(ctx context.Context, reading *entities.SugarReading) error
	// List returns the user's readings, most recent first.
	List(ctx context.Context, userEmail string) ([]*entities.SugarReading, error)
	Clear(ctx context.Context, userEmail string) error
}

// ExerciseRepository stores estimated workout sessions per user.
type ExerciseRepository interface {
	Append(ctx context.Context, session *entities.ExerciseSession) error
	// List returns the user's sessions, most recent first.
	List(ctx context.Context, userEmail string) ([]*entities.ExerciseSession, error)
	Clear(ctx context.Context, userEmail string) error
}

// GoalRepository stores per-user daily goals. Get returns a not-found
// error when the user never set the goal.
type GoalRepository interface {
	Set(ctx context.Context, userEmail string, kind entities.GoalKind, value float64) error
	Get(ctx context.Context, userEmail string, kind entities.GoalKind) (float64, error)
}

// FoodSearchRepository is the searchable food index backing the diet tracker.
type FoodSearchRepository interface {
	InitSchema(ctx context.Context) error
	Index(ctx context.Context, item *entities.FoodItem) error
	Search(ctx context.Context, query string, limit int) ([]*entities.FoodItem, error)
}
