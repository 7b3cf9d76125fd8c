package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/adapters/search"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	typesenseclient "github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/clients/typesense"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/observability"
	"github.com/Raksa1108/Diabetes-assistance-app/pkg/config"
)

// indexfoods merges food CSV files (food,calories[,glycemic index]) and
// upserts them into the typesense food index. Later files win on
// duplicate names.
func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s file.csv [file.csv ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("indexfoods", cfg.Env)
	logger := observability.GetLogger()

	merged := make(map[string]*entities.FoodItem)
	for _, path := range flag.Args() {
		items, err := readFoodCSV(path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("failed to read food csv")
		}
		for _, item := range items {
			merged[item.Name] = item
		}
		logger.Info().Str("path", path).Int("foods", len(items)).Msg("read food csv")
	}

	client, err := typesenseclient.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to typesense")
	}
	adapter := search.NewTypesenseAdapter(client)

	ctx := context.Background()
	if err := adapter.InitSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to init food index schema")
	}

	indexed := 0
	for _, item := range merged {
		if err := adapter.Index(ctx, item); err != nil {
			logger.Error().Err(err).Str("food", item.Name).Msg("failed to index food")
			continue
		}
		indexed++
	}
	logger.Info().Int("indexed", indexed).Int("total", len(merged)).Msg("food index updated")
}

// readFoodCSV parses one source file. The header row names a food column
// and a calorie column; a glycemic index column is optional. Names are
// lowercased so duplicates across files collapse.
func readFoodCSV(path string) ([]*entities.FoodItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	foodCol, calorieCol, giCol := -1, -1, -1
	for i, name := range header {
		switch normalized := strings.ToLower(strings.TrimSpace(name)); {
		case strings.Contains(normalized, "food"):
			foodCol = i
		case strings.Contains(normalized, "calorie"):
			calorieCol = i
		case strings.Contains(normalized, "glycemic"):
			giCol = i
		}
	}
	if foodCol < 0 || calorieCol < 0 {
		return nil, fmt.Errorf("%s: header must name food and calorie columns", path)
	}

	var items []*entities.FoodItem
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if foodCol >= len(row) || calorieCol >= len(row) {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(row[foodCol]))
		if name == "" {
			continue
		}
		calories, err := strconv.ParseFloat(strings.TrimSpace(row[calorieCol]), 64)
		if err != nil {
			continue
		}
		item := &entities.FoodItem{Name: name, Calories: calories}
		if giCol >= 0 && giCol < len(row) {
			if gi, err := strconv.ParseFloat(strings.TrimSpace(row[giCol]), 64); err == nil {
				item.GlycemicIndex = &gi
			}
		}
		items = append(items, item)
	}
	return items, nil
}
