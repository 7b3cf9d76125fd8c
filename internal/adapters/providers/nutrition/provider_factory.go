package nutrition

import (
	"fmt"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/providers"
	"github.com/Raksa1108/Diabetes-assistance-app/pkg/config"
)

// NewProvider creates a nutrition provider based on configuration.
func NewProvider(cfg *config.NutritionConfig) (providers.NutritionProvider, error) {
	switch cfg.Provider {
	case "usda":
		return NewUSDAProvider(cfg.APIKey)
	case "mock", "":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown nutrition provider: %s", cfg.Provider)
	}
}
