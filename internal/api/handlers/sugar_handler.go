package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/application/services"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// SugarHandler serves the blood-sugar tracker endpoints.
type SugarHandler struct {
	sugar *services.SugarService
}

func NewSugarHandler(sugar *services.SugarService) *SugarHandler {
	return &SugarHandler{sugar: sugar}
}

type logReadingRequest struct {
	Level   float64 `json:"sugar_level"`
	Context string  `json:"context"`
	Note    string  `json:"note"`
}

// LogReading handles POST /api/sugar.
func (h *SugarHandler) LogReading(w http.ResponseWriter, r *http.Request) {
	var req logReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	reading, err := h.sugar.LogReading(r.Context(), userEmail(r), req.Level, entities.SugarContext(req.Context), req.Note)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, reading)
}

// ListReadings handles GET /api/sugar.
func (h *SugarHandler) ListReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := h.sugar.ListReadings(r.Context(), userEmail(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"readings": readings,
		"count":    len(readings),
	})
}

// Analyze handles GET /api/sugar/analysis.
func (h *SugarHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.sugar.Analyze(r.Context(), userEmail(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, analysis)
}

// Advice handles POST /api/sugar/advice.
func (h *SugarHandler) Advice(w http.ResponseWriter, r *http.Request) {
	advice, err := h.sugar.Advice(r.Context(), userEmail(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"advice": advice})
}
