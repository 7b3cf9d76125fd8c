package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/providers"
	"github.com/Raksa1108/Diabetes-assistance-app/pkg/config"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client implements the advice provider on the Gemini generateContent API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *tokenBucket
}

var _ providers.AdviceProvider = (*Client)(nil)

// NewClient creates a new Gemini client.
func NewClient(cfg *config.AdviceConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateAdvice sends the prompt and returns the model's text answer.
func (c *Client) GenerateAdvice(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is required")
	}

	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordAdviceMetric(ctx, c.model, 0, 0, err)
			return "", err
		}
		recordAdviceRateLimitWait(ctx, c.model, time.Since(waitStart))
	}

	payload := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature:     0.4,
			MaxOutputTokens: 800,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordAdviceMetric(ctx, c.model, 0, time.Since(start), err)
		return "", fmt.Errorf("%w: %v", providers.ErrAdviceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordAdviceMetric(ctx, c.model, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		return "", fmt.Errorf("%w: gemini request failed with status %d", providers.ErrAdviceUnavailable, resp.StatusCode)
	}

	var envelope generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordAdviceMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	var text string
	for _, candidate := range envelope.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.Text != "" {
				text = p.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	if text == "" {
		recordAdviceMetric(ctx, c.model, resp.StatusCode, time.Since(start), errors.New("missing candidate text"))
		return "", fmt.Errorf("%w: gemini response missing candidate text", providers.ErrAdviceUnavailable)
	}

	recordAdviceMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return strings.TrimSpace(text), nil
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm == 0 {
		rpm = 60
	}
	if rpm < 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}

	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}
	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

type tokenBucket struct {
	tokens chan struct{}
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type adviceMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var (
	metricsOnce sync.Once
	metrics     adviceMetrics
)

func ensureAdviceMetrics() {
	metricsOnce.Do(func() {
		meter := otel.Meter("github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/clients/gemini")
		metrics.requestCount, _ = meter.Int64Counter(
			"advice.request.count",
			metric.WithDescription("Number of advice generation requests"),
		)
		metrics.requestDuration, _ = meter.Float64Histogram(
			"advice.request.duration",
			metric.WithDescription("Advice request duration in milliseconds"),
			metric.WithUnit("ms"),
		)
		metrics.requestErrors, _ = meter.Int64Counter(
			"advice.request.errors",
			metric.WithDescription("Number of failed advice requests"),
		)
		metrics.rateLimitWait, _ = meter.Float64Histogram(
			"advice.ratelimit.wait",
			metric.WithDescription("Time spent waiting on the advice rate limiter in milliseconds"),
			metric.WithUnit("ms"),
		)
	})
}

func recordAdviceMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureAdviceMetrics()
	attrs := []attribute.KeyValue{
		attribute.String("advice.model", model),
		attribute.Int("http.status_code", statusCode),
	}
	if metrics.requestCount != nil {
		metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if metrics.requestDuration != nil {
		metrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	}
	if err != nil && metrics.requestErrors != nil {
		metrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordAdviceRateLimitWait(ctx context.Context, model string, waited time.Duration) {
	ensureAdviceMetrics()
	if metrics.rateLimitWait != nil {
		metrics.rateLimitWait.Record(ctx, float64(waited.Milliseconds()),
			metric.WithAttributes(attribute.String("advice.model", model)))
	}
}
