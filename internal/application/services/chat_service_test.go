package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

func TestChatServiceAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards the question", func(t *testing.T) {
		provider := &fakeAdviceProvider{reply: "aim for 150 minutes a week"}
		svc := NewChatService(provider)

		answer, fallback, err := svc.Ask(ctx, "how much exercise do I need?")
		require.NoError(t, err)
		assert.False(t, fallback)
		assert.Equal(t, "aim for 150 minutes a week", answer)
		assert.Contains(t, provider.last, "how much exercise do I need?")
	})

	t.Run("serves the fallback on provider failure", func(t *testing.T) {
		svc := NewChatService(&fakeAdviceProvider{err: assert.AnError})
		answer, fallback, err := svc.Ask(ctx, "what is a normal fasting level?")
		require.NoError(t, err)
		assert.True(t, fallback)
		assert.NotEmpty(t, answer)
	})

	t.Run("serves the fallback without a provider", func(t *testing.T) {
		svc := NewChatService(nil)
		_, fallback, err := svc.Ask(ctx, "hello")
		require.NoError(t, err)
		assert.True(t, fallback)
	})

	t.Run("rejects empty and oversized questions", func(t *testing.T) {
		svc := NewChatService(&fakeAdviceProvider{reply: "x"})

		_, _, err := svc.Ask(ctx, "   ")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		_, _, err = svc.Ask(ctx, strings.Repeat("a", maxQuestionLength+1))
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
