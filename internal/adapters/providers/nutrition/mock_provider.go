package nutrition

import (
	"context"
	"strings"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/providers"
)

// MockProvider serves a small fixed table for local development and tests.
type MockProvider struct {
	foods map[string]entities.NutritionFacts
}

var _ providers.NutritionProvider = (*MockProvider)(nil)

// NewMockProvider creates a mock nutrition provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		foods: map[string]entities.NutritionFacts{
			"rice":    {Food: "rice", Calories: 130, Carbs: 28.2, Protein: 2.7, Fat: 0.3, Source: "mock"},
			"apple":   {Food: "apple", Calories: 52, Carbs: 13.8, Protein: 0.3, Fat: 0.2, Source: "mock"},
			"chicken": {Food: "chicken", Calories: 239, Carbs: 0, Protein: 27.3, Fat: 13.6, Source: "mock"},
			"dal":     {Food: "dal", Calories: 116, Carbs: 20.1, Protein: 9, Fat: 0.4, Source: "mock"},
			"roti":    {Food: "roti", Calories: 264, Carbs: 55.8, Protein: 8.8, Fat: 1.2, Source: "mock"},
		},
	}
}

// Lookup returns the fixed facts for known foods.
func (p *MockProvider) Lookup(ctx context.Context, food string) (*entities.NutritionFacts, error) {
	facts, ok := p.foods[strings.ToLower(strings.TrimSpace(food))]
	if !ok {
		return nil, providers.ErrFoodNotFound
	}
	return &facts, nil
}
