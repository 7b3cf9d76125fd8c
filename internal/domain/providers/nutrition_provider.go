package providers

import (
	"context"
	"errors"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
)

// ErrFoodNotFound indicates the provider has no data for the food.
var ErrFoodNotFound = errors.New("food not found")

// NutritionProvider looks up nutrition facts for a food by name.
type NutritionProvider interface {
	Lookup(ctx context.Context, food string) (*entities.NutritionFacts, error)
}
