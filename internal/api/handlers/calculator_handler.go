package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/application/services"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// CalculatorHandler serves the BMI and pedigree calculators the intake
// form links to.
type CalculatorHandler struct {
	calculators *services.CalculatorService
}

func NewCalculatorHandler(calculators *services.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculators: calculators}
}

type bmiRequest struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}

// BMI handles POST /api/calculators/bmi.
func (h *CalculatorHandler) BMI(w http.ResponseWriter, r *http.Request) {
	var req bmiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	result, err := h.calculators.BMI(req.WeightKg, req.HeightCm)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

type dpfRequest struct {
	Relatives []services.Relative `json:"relatives"`
}

// DPF handles POST /api/calculators/dpf.
func (h *CalculatorHandler) DPF(w http.ResponseWriter, r *http.Request) {
	var req dpfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	result, err := h.calculators.DPF(req.Relatives)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
