package providers

import (
	"context"
	"errors"
)

// ErrAdviceUnavailable indicates the advice backend rejected or could not
// serve the request. Callers fall back to static text; the prediction and
// history paths never depend on this provider.
var ErrAdviceUnavailable = errors.New("advice provider unavailable")

// AdviceProvider generates free-text guidance from an assembled prompt.
// Implementations own their timeout and rate limiting.
type AdviceProvider interface {
	GenerateAdvice(ctx context.Context, prompt string) (string, error)
}
