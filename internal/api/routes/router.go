package routes

import (
	"net/http"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/api/handlers"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/api/middleware"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/observability"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health      *handlers.HealthHandler
	Prediction  *handlers.PredictionHandler
	Explanation *handlers.ExplanationHandler
	Performance *handlers.PerformanceHandler
	Diet        *handlers.DietHandler
	Sugar       *handlers.SugarHandler
	Calorie     *handlers.CalorieHandler
	Chat        *handlers.ChatHandler
	Calculator  *handlers.CalculatorHandler
}

// NewRouter mounts every route with the shared middleware chain.
func NewRouter(h Handlers, metrics *observability.Metrics) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/predictions", h.Prediction.Predict)
	mux.HandleFunc("GET /api/predictions", h.Prediction.ListHistory)
	mux.HandleFunc("DELETE /api/predictions", h.Prediction.ClearHistory)
	mux.HandleFunc("GET /api/predictions/export", h.Prediction.ExportHistory)

	mux.HandleFunc("POST /api/explanations", h.Explanation.Explain)
	mux.HandleFunc("GET /api/explanations/importance", h.Explanation.Importance)

	mux.HandleFunc("GET /api/model/performance", h.Performance.Evaluate)

	mux.HandleFunc("POST /api/meals", h.Diet.LogMeal)
	mux.HandleFunc("GET /api/meals", h.Diet.ListMeals)
	mux.HandleFunc("GET /api/meals/summary", h.Diet.DailySummary)
	mux.HandleFunc("PUT /api/meals/goal", h.Diet.SetGoal)
	mux.HandleFunc("GET /api/meals/goal", h.Diet.GetGoal)
	mux.HandleFunc("GET /api/foods/search", h.Diet.SearchFoods)
	mux.HandleFunc("GET /api/foods/nutrition", h.Diet.Nutrition)

	mux.HandleFunc("POST /api/sugar", h.Sugar.LogReading)
	mux.HandleFunc("GET /api/sugar", h.Sugar.ListReadings)
	mux.HandleFunc("GET /api/sugar/analysis", h.Sugar.Analyze)
	mux.HandleFunc("POST /api/sugar/advice", h.Sugar.Advice)

	mux.HandleFunc("POST /api/calories/estimate", h.Calorie.Estimate)
	mux.HandleFunc("GET /api/calories", h.Calorie.ListSessions)
	mux.HandleFunc("PUT /api/calories/goal", h.Calorie.SetGoal)
	mux.HandleFunc("GET /api/calories/goal", h.Calorie.GetGoal)

	mux.HandleFunc("POST /api/chat", h.Chat.Ask)

	mux.HandleFunc("POST /api/calculators/bmi", h.Calculator.BMI)
	mux.HandleFunc("POST /api/calculators/dpf", h.Calculator.DPF)

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.CORS,
		middleware.Observability(metrics),
		middleware.Logging,
	)
}
