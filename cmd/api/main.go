package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/adapters/cache"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/adapters/database"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/adapters/filestore"
	nutritionproviders "github.com/Raksa1108/Diabetes-assistance-app/internal/adapters/providers/nutrition"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/adapters/search"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/api/handlers"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/api/routes"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/application/services"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/providers"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/repositories"
	geminiclient "github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/clients/gemini"
	postgresclient "github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/clients/postgres"
	redisclient "github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/clients/redis"
	typesenseclient "github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/clients/typesense"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/observability"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/ml"
	"github.com/Raksa1108/Diabetes-assistance-app/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.OTEL.Enabled {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to set up telemetry")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("telemetry shutdown failed")
			}
		}()
		metrics, err = observability.InitMetrics()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init metrics")
		}
	}

	// The model is loaded once at startup. A broken or missing artifact
	// degrades predictions to 503s instead of refusing to boot, so the
	// trackers stay usable.
	var forest *ml.Forest
	if f, err := ml.Load(cfg.Model.Path); err != nil {
		logger.Warn().Err(err).Str("path", cfg.Model.Path).Msg("model artifact not loaded, predictions disabled")
	} else {
		forest = f
		logger.Info().Str("version", f.ModelVersion).Int("trees", len(f.Trees)).Msg("model loaded")
	}

	var dataset *ml.Dataset
	if d, err := ml.LoadDataset(cfg.Model.BackgroundDataPath); err != nil {
		logger.Warn().Err(err).Str("path", cfg.Model.BackgroundDataPath).Msg("background dataset not loaded, explanations disabled")
	} else {
		dataset = d
	}

	// Prediction history backend. Tracker logs are always file-backed.
	var history repositories.PredictionRepository
	var pgClient *postgresclient.Client
	switch cfg.History.Backend {
	case config.HistoryBackendPostgres:
		pgClient, err = postgresclient.NewClient(&cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pgClient.Close()
		history = database.NewPredictionAdapter(pgClient)
	case config.HistoryBackendFile:
		history, err = filestore.NewPredictionStore(cfg.History.UserDataDir)
		if err != nil {
			logger.Fatal().Err(err).Str("dir", cfg.History.UserDataDir).Msg("failed to init history store")
		}
	default:
		logger.Fatal().Str("backend", cfg.History.Backend).Msg("unknown history backend")
	}

	mealStore, err := filestore.NewMealStore(cfg.History.UserDataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init meal store")
	}
	sugarStore, err := filestore.NewSugarStore(cfg.History.UserDataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init sugar store")
	}
	exerciseStore, err := filestore.NewExerciseStore(cfg.History.UserDataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init exercise store")
	}
	goalStore, err := filestore.NewGoalStore(cfg.History.UserDataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init goal store")
	}

	// Optional infrastructure: cache, food index, advice provider. Each
	// degrades independently when unreachable or unconfigured.
	var cacheProvider providers.CacheProvider
	if rc, err := redisclient.NewClient(&cfg.Redis); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, nutrition cache disabled")
	} else {
		defer rc.Close()
		cacheProvider = cache.NewRedisAdapter(rc)
	}

	var foodIndex repositories.FoodSearchRepository
	if tc, err := typesenseclient.NewClient(&cfg.Typesense); err != nil {
		logger.Warn().Err(err).Msg("typesense unavailable, food search disabled")
	} else {
		adapter := search.NewTypesenseAdapter(tc)
		if err := adapter.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("food index schema init failed, food search disabled")
		} else {
			foodIndex = adapter
		}
	}

	var advice providers.AdviceProvider
	if cfg.Advice.APIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not set, advice and chat use static fallbacks")
	} else if gc, err := geminiclient.NewClient(&cfg.Advice); err != nil {
		logger.Warn().Err(err).Msg("advice client init failed, using static fallbacks")
	} else {
		advice = gc
	}

	nutrition, err := nutritionproviders.NewProvider(&cfg.Nutrition)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init nutrition provider")
	}

	var classifier services.Classifier
	var valueClassifier services.ValueClassifier
	if forest != nil {
		classifier = forest
		valueClassifier = forest
	}

	predictionService := services.NewPredictionService(classifier, history, metrics)
	historyService := services.NewHistoryService(history)
	explanationService := services.NewExplanationService(valueClassifier, dataset)
	performanceService := services.NewPerformanceService(valueClassifier, dataset)
	dietService := services.NewDietService(mealStore, goalStore, foodIndex, nutrition, cacheProvider, metrics)
	sugarService := services.NewSugarService(sugarStore, mealStore, advice)
	calorieService := services.NewCalorieService(exerciseStore, goalStore)
	chatService := services.NewChatService(advice)
	calculatorService := services.NewCalculatorService()

	router := routes.NewRouter(routes.Handlers{
		Health:      handlers.NewHealthHandler(predictionService),
		Prediction:  handlers.NewPredictionHandler(predictionService, historyService),
		Explanation: handlers.NewExplanationHandler(explanationService),
		Performance: handlers.NewPerformanceHandler(performanceService),
		Diet:        handlers.NewDietHandler(dietService),
		Sugar:       handlers.NewSugarHandler(sugarService),
		Calorie:     handlers.NewCalorieHandler(calorieService),
		Chat:        handlers.NewChatHandler(chatService),
		Calculator:  handlers.NewCalculatorHandler(calculatorService),
	}, metrics)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
