package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/providers"
	"github.com/Raksa1108/Diabetes-assistance-app/pkg/retry"
)

const usdaBaseURL = "https://api.nal.usda.gov/fdc/v1"

// Nutrient names as FoodData Central reports them.
const (
	nutrientEnergy  = "Energy"
	nutrientCarbs   = "Carbohydrate, by difference"
	nutrientProtein = "Protein"
	nutrientFat     = "Total lipid (fat)"
)

// USDAProvider looks up nutrition facts from the USDA FoodData Central API.
type USDAProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ providers.NutritionProvider = (*USDAProvider)(nil)

// NewUSDAProvider creates a new USDA FoodData Central provider.
func NewUSDAProvider(apiKey string) (*USDAProvider, error) {
	if apiKey == "" {
		return nil, errors.New("usda api key is required")
	}
	return &USDAProvider{
		apiKey:  apiKey,
		baseURL: usdaBaseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}, nil
}

type searchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// Lookup returns nutrition facts for the best match on the food name.
func (p *USDAProvider) Lookup(ctx context.Context, food string) (*entities.NutritionFacts, error) {
	food = strings.ToLower(strings.TrimSpace(food))
	if food == "" {
		return nil, errors.New("food name is required")
	}

	var envelope searchResponse
	err := retry.Do(ctx, retry.ExternalAPIConfig(), func() error {
		return p.search(ctx, food, &envelope)
	})
	if err != nil {
		return nil, fmt.Errorf("usda lookup failed: %w", err)
	}

	if len(envelope.Foods) == 0 {
		return nil, providers.ErrFoodNotFound
	}

	facts := &entities.NutritionFacts{
		Food:   food,
		Source: "usda",
	}
	for _, nutrient := range envelope.Foods[0].FoodNutrients {
		switch nutrient.NutrientName {
		case nutrientEnergy:
			facts.Calories = nutrient.Value
		case nutrientCarbs:
			facts.Carbs = nutrient.Value
		case nutrientProtein:
			facts.Protein = nutrient.Value
		case nutrientFat:
			facts.Fat = nutrient.Value
		}
	}

	return facts, nil
}

func (p *USDAProvider) search(ctx context.Context, food string, out *searchResponse) error {
	endpoint := fmt.Sprintf("%s/foods/search?query=%s&pageSize=1&api_key=%s",
		p.baseURL, url.QueryEscape(food), p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("usda request failed with status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
