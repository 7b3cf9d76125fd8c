package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/observability"
)

// Observability opens a span per request and records the request metrics.
// With a nil metrics set only tracing is active.
func Observability(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := observability.StartSpan(r.Context(), fmt.Sprintf("%s %s", r.Method, r.URL.Path))
			defer span.End()

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r.WithContext(ctx))

			if metrics != nil {
				observability.RecordRequestMetric(ctx, metrics, r.Method, r.URL.Path, rec.status, time.Since(start))
			}
		})
	}
}

// Chain applies middlewares outermost-first.
func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
