package handlers

import (
	"net/http"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/application/services"
)

// PerformanceHandler serves the model quality report.
type PerformanceHandler struct {
	performance *services.PerformanceService
}

func NewPerformanceHandler(performance *services.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performance: performance}
}

// Evaluate handles GET /api/model/performance.
func (h *PerformanceHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	report, err := h.performance.Evaluate(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}
