package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/application/services"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

type stubClassifier struct{ proba float64 }

func (s *stubClassifier) PredictProba(vector *entities.FeatureVector) (float64, error) {
	return s.proba, nil
}

func (s *stubClassifier) Predict(vector *entities.FeatureVector) (int, error) {
	if s.proba >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

type stubHistory struct {
	records   []*entities.HistoryRecord
	appendErr error
}

func (s *stubHistory) Append(ctx context.Context, record *entities.HistoryRecord) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.records = append(s.records, record)
	return nil
}

func (s *stubHistory) List(ctx context.Context, userEmail string) ([]*entities.HistoryRecord, error) {
	return s.records, nil
}

func (s *stubHistory) Clear(ctx context.Context, userEmail string) error {
	s.records = nil
	return nil
}

func newHandler(classifier services.Classifier, history *stubHistory) *PredictionHandler {
	predictionSvc := services.NewPredictionService(classifier, history, nil)
	historySvc := services.NewHistoryService(history)
	return NewPredictionHandler(predictionSvc, historySvc)
}

const validBody = `{
	"pregnancies": 2, "glucose": 130, "blood_pressure": 80,
	"skin_thickness": 25, "insulin": 100, "bmi": 31.4,
	"diabetes_pedigree_function": 0.52, "age": 41
}`

func doPredict(h *PredictionHandler, body, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/predictions", strings.NewReader(body))
	if user != "" {
		req.Header.Set("X-User-Email", user)
	}
	rec := httptest.NewRecorder()
	h.Predict(rec, req)
	return rec
}

func TestPredictionHandlerPredict(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := newHandler(&stubClassifier{proba: 0.8231}, &stubHistory{})
		rec := doPredict(h, validBody, "alice@example.com")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Result struct {
				RiskPercent float64 `json:"risk_percent"`
				Label       string  `json:"label"`
			} `json:"result"`
			Saved bool `json:"saved"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Saved)
		assert.Equal(t, 82.31, resp.Result.RiskPercent)
		assert.Equal(t, "Positive", resp.Result.Label)
	})

	t.Run("missing field is a 400 naming the field", func(t *testing.T) {
		h := newHandler(&stubClassifier{proba: 0.8}, &stubHistory{})
		body := `{"pregnancies": 2, "glucose": 130}`
		rec := doPredict(h, body, "alice@example.com")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "blood_pressure")
	})

	t.Run("missing user header is a 401", func(t *testing.T) {
		h := newHandler(&stubClassifier{proba: 0.8}, &stubHistory{})
		rec := doPredict(h, validBody, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("out-of-range value is a 400", func(t *testing.T) {
		h := newHandler(&stubClassifier{proba: 0.8}, &stubHistory{})
		body := strings.Replace(validBody, `"age": 41`, `"age": 0`, 1)
		rec := doPredict(h, body, "alice@example.com")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "age")
	})

	t.Run("missing model is a 503", func(t *testing.T) {
		h := newHandler(nil, &stubHistory{})
		rec := doPredict(h, validBody, "alice@example.com")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("failed save still returns the prediction", func(t *testing.T) {
		history := &stubHistory{appendErr: apperrors.NewPersistenceError("disk full", nil)}
		h := newHandler(&stubClassifier{proba: 0.7}, history)
		rec := doPredict(h, validBody, "alice@example.com")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Saved  bool   `json:"saved"`
			Notice string `json:"notice"`
			Result struct {
				RiskPercent float64 `json:"risk_percent"`
			} `json:"result"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Saved)
		assert.NotEmpty(t, resp.Notice)
		assert.Equal(t, 70.0, resp.Result.RiskPercent)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		h := newHandler(&stubClassifier{proba: 0.8}, &stubHistory{})
		rec := doPredict(h, "{not json", "alice@example.com")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPredictionHandlerExport(t *testing.T) {
	h := newHandler(&stubClassifier{proba: 0.8}, &stubHistory{})
	require.Equal(t, http.StatusOK, doPredict(h, validBody, "alice@example.com").Code)

	req := httptest.NewRequest(http.MethodGet, "/api/predictions/export", nil)
	req.Header.Set("X-User-Email", "alice@example.com")
	rec := httptest.NewRecorder()
	h.ExportHistory(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "prediction_history.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(entities.HistoryColumns, ","), lines[0])
	assert.Contains(t, lines[1], "82.31")
	assert.Contains(t, lines[1], "Positive")
}
