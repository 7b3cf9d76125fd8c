package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/application/services"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// ExplanationHandler serves per-prediction attributions and the global
// importance ranking.
type ExplanationHandler struct {
	explanations *services.ExplanationService
}

func NewExplanationHandler(explanations *services.ExplanationService) *ExplanationHandler {
	return &ExplanationHandler{explanations: explanations}
}

// Explain handles POST /api/explanations. The full input is resubmitted
// with the request; the service keeps no per-user prediction state.
func (h *ExplanationHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	explanation, err := h.explanations.Explain(r.Context(), input)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, explanation)
}

// Importance handles GET /api/explanations/importance.
func (h *ExplanationHandler) Importance(w http.ResponseWriter, r *http.Request) {
	report, err := h.explanations.PermutationImportance(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}
