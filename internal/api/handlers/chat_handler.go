package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/application/services"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// ChatHandler serves the free-text assistant endpoint.
type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback"`
}

// Ask handles POST /api/chat.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	answer, fallback, err := h.chat.Ask(r.Context(), req.Question)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, chatResponse{Answer: answer, Fallback: fallback})
}
