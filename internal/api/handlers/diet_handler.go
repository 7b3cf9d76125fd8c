package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/application/services"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// DietHandler serves meal logging, the daily summary, the calorie goal
// and the food search/nutrition endpoints.
type DietHandler struct {
	diet *services.DietService
}

func NewDietHandler(diet *services.DietService) *DietHandler {
	return &DietHandler{diet: diet}
}

type logMealRequest struct {
	Food          string   `json:"food"`
	Calories      float64  `json:"calories"`
	MealTime      string   `json:"meal_time"`
	GlycemicIndex *float64 `json:"glycemic_index"`
}

// LogMeal handles POST /api/meals.
func (h *DietHandler) LogMeal(w http.ResponseWriter, r *http.Request) {
	var req logMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	entry, err := h.diet.LogMeal(r.Context(), userEmail(r), req.Food, req.Calories, entities.MealTime(req.MealTime), req.GlycemicIndex)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, entry)
}

// ListMeals handles GET /api/meals.
func (h *DietHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	entries, err := h.diet.ListMeals(r.Context(), userEmail(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"meals": entries,
		"count": len(entries),
	})
}

// DailySummary handles GET /api/meals/summary?date=YYYY-MM-DD. The date
// defaults to today.
func (h *DietHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	day := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondWithError(w, r, apperrors.NewValidationError("date must be YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	summary, err := h.diet.DailySummary(r.Context(), userEmail(r), day)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}

type goalRequest struct {
	Goal float64 `json:"goal"`
}

// SetGoal handles PUT /api/meals/goal.
func (h *DietHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if err := h.diet.SetCalorieGoal(r.Context(), userEmail(r), req.Goal); err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]float64{"goal": req.Goal})
}

// GetGoal handles GET /api/meals/goal.
func (h *DietHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.diet.CalorieGoal(r.Context(), userEmail(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]float64{"goal": goal})
}

// SearchFoods handles GET /api/foods/search?q=...
func (h *DietHandler) SearchFoods(w http.ResponseWriter, r *http.Request) {
	items, err := h.diet.SearchFoods(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"foods": items,
		"count": len(items),
	})
}

// Nutrition handles GET /api/foods/nutrition?food=...
func (h *DietHandler) Nutrition(w http.ResponseWriter, r *http.Request) {
	facts, err := h.diet.Nutrition(r.Context(), r.URL.Query().Get("food"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, facts)
}
