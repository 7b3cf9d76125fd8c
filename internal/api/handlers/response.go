package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/observability"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// userEmailHeader carries the caller's identity. Authentication itself is
// out of scope: the gateway in front of this service sets the header.
const userEmailHeader = "X-User-Email"

func userEmail(r *http.Request) string {
	return r.Header.Get(userEmailHeader)
}

type errorResponse struct {
	Error string              `json:"error"`
	Type  apperrors.ErrorType `json:"type"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"failed to encode response","type":"INTERNAL"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError maps the application error taxonomy onto HTTP status
// codes and logs server-side failures.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	errType := apperrors.TypeOf(err)

	var status int
	switch errType {
	case apperrors.ErrorTypeValidation:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeUnauthorized:
		status = http.StatusUnauthorized
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrorTypeModelUnavailable:
		status = http.StatusServiceUnavailable
	case apperrors.ErrorTypeExternal:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).Msg("request failed")
	}

	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	respondWithJSON(w, status, errorResponse{Error: message, Type: errType})
}
