package handlers

import (
	"net/http"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/application/services"
)

// HealthHandler reports liveness and whether the classifier loaded.
type HealthHandler struct {
	predictions *services.PredictionService
}

func NewHealthHandler(predictions *services.PredictionService) *HealthHandler {
	return &HealthHandler{predictions: predictions}
}

// Health handles GET /health. The service stays alive without the model;
// the payload says whether predictions are currently possible.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"model_available": h.predictions.Available(),
	})
}
