package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
)

// Compile-time interface check.
var _ port.Predictor = (*HTTPModelClient)(nil)

const maxResponseBytes = 1 << 16

// HTTPModelClient implements port.Predictor against a remote model server.
type HTTPModelClient struct {
	client *http.Client
	logger *slog.Logger
	url    string
}

// NewHTTPModelClient creates a client posting to url with the given timeout.
func NewHTTPModelClient(url string, timeout time.Duration, logger *slog.Logger) *HTTPModelClient {
	return &HTTPModelClient{
		url:    url,
		logger: logger,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Probability *float64 `json:"probability"`
}

// Predict sends the vector and returns the server's probability.
func (c *HTTPModelClient) Predict(ctx context.Context, features model.FeatureVector) (float64, error) {
	payload, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("model server request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.DebugContext(ctx, "model server responded",
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("model server error (status %d): %s", resp.StatusCode, string(body))
	}

	var result predictResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Probability == nil {
		return 0, fmt.Errorf("model server response has no probability")
	}

	return *result.Probability, nil
}
