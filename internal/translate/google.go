package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// googleTranslateEndpoint is the public endpoint behind Google
	// Translate's web widget.
	googleTranslateEndpoint = "https://translate.googleapis.com/translate_a/single"

	googleTranslateTimeout = 15 * time.Second
)

// GoogleBackend implements Backend using the translate_a/single
// endpoint. It needs no credentials.
type GoogleBackend struct {
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	endpoint string
}

// NewGoogleBackend creates a new Google translation backend
func NewGoogleBackend(config *Config) (Backend, error) {
	endpoint := config.GoogleEndpoint
	if endpoint == "" {
		endpoint = googleTranslateEndpoint
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "google-translate",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &GoogleBackend{
		client:   &http.Client{Timeout: googleTranslateTimeout},
		breaker:  breaker,
		endpoint: endpoint,
	}, nil
}

// Translate converts text from the source language into the target
// locale.
func (b *GoogleBackend) Translate(ctx context.Context, text, source, target string) (string, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.request(ctx, text, source, target)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// request performs one HTTP round-trip against the endpoint.
func (b *GoogleBackend) request(ctx context.Context, text, source, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("google translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read translate response: %w", err)
	}

	return parseTranslateResponse(data)
}

// parseTranslateResponse extracts the translated text from the
// endpoint's nested array payload. The first element holds rows of
// [translated, original, ...] segments.
func parseTranslateResponse(data []byte) (string, error) {
	var payload []any
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("unexpected translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translate response")
	}

	rows, ok := payload[0].([]any)
	if !ok {
		return "", fmt.Errorf("unexpected translate response shape")
	}

	var sb strings.Builder
	for _, r := range rows {
		row, ok := r.([]any)
		if !ok || len(row) == 0 {
			continue
		}
		if segment, ok := row[0].(string); ok {
			sb.WriteString(segment)
		}
	}

	translation := strings.TrimSpace(sb.String())
	if translation == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return translation, nil
}

// Name returns the backend name
func (b *GoogleBackend) Name() string {
	return "google"
}
