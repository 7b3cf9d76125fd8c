package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/repositories"
	tsclient "github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements food search using Typesense.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.FoodSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter.
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the foods collection exists.
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(tsclient.FoodsCollection).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: tsclient.FoodsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "calories", Type: "float"},
			{Name: "glycemic_index", Type: "float", Optional: pointer.True()},
		},
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a food document. Names are stored lowercased so lookups
// are case-insensitive.
func (a *TypesenseAdapter) Index(ctx context.Context, item *entities.FoodItem) error {
	name := strings.ToLower(strings.TrimSpace(item.Name))
	if name == "" {
		return fmt.Errorf("food name is required")
	}

	document := map[string]interface{}{
		"id":       strings.ReplaceAll(name, " ", "_"),
		"name":     name,
		"calories": item.Calories,
	}
	if item.GlycemicIndex != nil {
		document["glycemic_index"] = *item.GlycemicIndex
	}

	_, err := a.client.Client().Collection(tsclient.FoodsCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index food: %w", err)
	}

	return nil
}

// Search returns foods matching the query by name.
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.FoodItem, error) {
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(strings.ToLower(strings.TrimSpace(query))),
		QueryBy: pointer.String("name"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.FoodsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search foods: %w", err)
	}

	items := []*entities.FoodItem{}
	if result.Hits == nil {
		return items, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		item := &entities.FoodItem{}
		if name, ok := doc["name"].(string); ok {
			item.Name = name
		}
		if calories, ok := doc["calories"].(float64); ok {
			item.Calories = calories
		}
		if gi, ok := doc["glycemic_index"].(float64); ok {
			item.GlycemicIndex = &gi
		}

		items = append(items, item)
	}

	return items, nil
}
