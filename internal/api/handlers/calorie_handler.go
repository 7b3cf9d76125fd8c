package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/application/services"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// CalorieHandler serves the workout calorie estimator endpoints.
type CalorieHandler struct {
	calories *services.CalorieService
}

func NewCalorieHandler(calories *services.CalorieService) *CalorieHandler {
	return &CalorieHandler{calories: calories}
}

type estimateRequest struct {
	ExerciseType    string  `json:"exercise_type"`
	DurationMinutes float64 `json:"duration_minutes"`
	HeartRate       float64 `json:"heart_rate"`
	WeightKg        float64 `json:"weight_kg"`
}

// Estimate handles POST /api/calories/estimate.
func (h *CalorieHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	session, err := h.calories.Estimate(r.Context(), userEmail(r), req.ExerciseType, req.DurationMinutes, req.HeartRate, req.WeightKg)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, session)
}

// ListSessions handles GET /api/calories.
func (h *CalorieHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.calories.ListSessions(r.Context(), userEmail(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// SetGoal handles PUT /api/calories/goal.
func (h *CalorieHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if err := h.calories.SetBurnGoal(r.Context(), userEmail(r), req.Goal); err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]float64{"goal": req.Goal})
}

// GetGoal handles GET /api/calories/goal.
func (h *CalorieHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.calories.BurnGoal(r.Context(), userEmail(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]float64{"goal": goal})
}
