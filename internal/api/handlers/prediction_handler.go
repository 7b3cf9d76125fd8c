package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/application/services"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// PredictionHandler serves the risk prediction and history endpoints.
type PredictionHandler struct {
	predictions *services.PredictionService
	history     *services.HistoryService
}

func NewPredictionHandler(predictions *services.PredictionService, history *services.HistoryService) *PredictionHandler {
	return &PredictionHandler{predictions: predictions, history: history}
}

// predictRequest uses pointer fields so an absent field is distinguishable
// from a legitimate zero.
type predictRequest struct {
	Pregnancies              *int     `json:"pregnancies"`
	Glucose                  *int     `json:"glucose"`
	BloodPressure            *int     `json:"blood_pressure"`
	SkinThickness            *int     `json:"skin_thickness"`
	Insulin                  *int     `json:"insulin"`
	BMI                      *float64 `json:"bmi"`
	DiabetesPedigreeFunction *float64 `json:"diabetes_pedigree_function"`
	Age                      *int     `json:"age"`
}

func (req *predictRequest) toInput() (*entities.MedicalInput, error) {
	missing := ""
	switch {
	case req.Pregnancies == nil:
		missing = "pregnancies"
	case req.Glucose == nil:
		missing = "glucose"
	case req.BloodPressure == nil:
		missing = "blood_pressure"
	case req.SkinThickness == nil:
		missing = "skin_thickness"
	case req.Insulin == nil:
		missing = "insulin"
	case req.BMI == nil:
		missing = "bmi"
	case req.DiabetesPedigreeFunction == nil:
		missing = "diabetes_pedigree_function"
	case req.Age == nil:
		missing = "age"
	}
	if missing != "" {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s is required", missing))
	}
	return &entities.MedicalInput{
		Pregnancies:              *req.Pregnancies,
		Glucose:                  *req.Glucose,
		BloodPressure:            *req.BloodPressure,
		SkinThickness:            *req.SkinThickness,
		Insulin:                  *req.Insulin,
		BMI:                      *req.BMI,
		DiabetesPedigreeFunction: *req.DiabetesPedigreeFunction,
		Age:                      *req.Age,
	}, nil
}

type predictResponse struct {
	Result *entities.PredictionResult `json:"result"`
	Saved  bool                       `json:"saved"`
	Notice string                     `json:"notice,omitempty"`
}

// Predict handles POST /api/predictions. When only the history append
// failed the prediction still succeeded, so the response is a 200 with
// saved=false rather than an error.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.predictions.Predict(r.Context(), userEmail(r), input)
	if err != nil {
		if result != nil && apperrors.IsType(err, apperrors.ErrorTypePersistence) {
			respondWithJSON(w, http.StatusOK, predictResponse{
				Result: result,
				Saved:  false,
				Notice: "prediction succeeded but could not be saved to history",
			})
			return
		}
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, predictResponse{Result: result, Saved: true})
}

// ListHistory handles GET /api/predictions.
func (h *PredictionHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.history.List(r.Context(), userEmail(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// ClearHistory handles DELETE /api/predictions.
func (h *PredictionHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Clear(r.Context(), userEmail(r)); err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// ExportHistory handles GET /api/predictions/export with a CSV download.
func (h *PredictionHandler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	data, err := h.history.ExportCSV(r.Context(), userEmail(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="prediction_history.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
