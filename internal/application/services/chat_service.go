package services

import (
	"context"
	"strings"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/providers"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/observability"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

const maxQuestionLength = 2000

const chatSystemPreamble = "You are a helpful diabetes care assistant. Answer the question below in plain language, keep it short, and remind the user to consult a medical professional for clinical decisions.\n\nQuestion: "

const chatFallback = "The assistant is unavailable right now. General guidance: maintain regular meals, monitor your blood sugar as advised, stay active, and consult your care provider for anything urgent."

// ChatService answers free-text diabetes questions through the advice
// provider. It is fully independent of the prediction path: provider
// outages degrade to a static reply.
type ChatService struct {
	advice providers.AdviceProvider
}

func NewChatService(advice providers.AdviceProvider) *ChatService {
	return &ChatService{advice: advice}
}

// Ask forwards the question to the advice provider. The reply carries a
// fallback flag so callers can tell a generated answer from the static one.
func (s *ChatService) Ask(ctx context.Context, question string) (string, bool, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", false, apperrors.NewValidationError("question is required")
	}
	if len(question) > maxQuestionLength {
		return "", false, apperrors.NewValidationError("question is too long")
	}
	if s.advice == nil {
		return chatFallback, true, nil
	}

	reply, err := s.advice.GenerateAdvice(ctx, chatSystemPreamble+question)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("advice provider failed, serving fallback")
		return chatFallback, true, nil
	}
	return reply, false, nil
}
