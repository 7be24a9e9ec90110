// Package libre is a client for LibreTranslate-compatible detection and
// translation endpoints.
package libre

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lumen-cloud/memodex/internal/domain"
	"github.com/lumen-cloud/memodex/internal/metrics"
)

// The upstream API defines no timeout; a bounded client timeout keeps a slow
// endpoint from pinning request handlers.
const defaultTimeout = 8 * time.Second

// Client calls the external detection and translation endpoints. Both methods
// return typed results and errors; the decision to swallow or propagate a
// failure belongs to the caller.
type Client struct {
	httpClient   *http.Client
	detectURL    string
	translateURL string
	logger       *zap.Logger
}

// Config holds the translation provider settings.
type Config struct {
	DetectURL    string
	TranslateURL string
	Timeout      time.Duration
	Logger       *zap.Logger
}

// NewClient creates a LibreTranslate-compatible client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		detectURL:    cfg.DetectURL,
		translateURL: cfg.TranslateURL,
		logger:       logger,
	}
}

// Detect identifies the language of text via the detection endpoint.
func (c *Client) Detect(ctx context.Context, text string) (domain.Detection, error) {
	form := url.Values{"q": {text}}

	body, err := c.postForm(ctx, "detect", c.detectURL, form)
	if err != nil {
		return domain.Detection{}, err
	}

	var candidates []struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal(body, &candidates); err != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("detect", "decode").Inc()
		return domain.Detection{}, fmt.Errorf("decode detection response: %w", err)
	}
	if len(candidates) == 0 {
		metrics.TranslationErrorsTotal.WithLabelValues("detect", "empty_response").Inc()
		return domain.Detection{}, fmt.Errorf("empty detection response")
	}

	return domain.Detection{
		Language:   candidates[0].Language,
		Confidence: candidates[0].Confidence,
	}, nil
}

// Translate converts text from source to target via the translation endpoint.
// A well-formed response without a translatedText field yields the original
// text, mirroring the upstream API contract for untranslatable input.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	form := url.Values{
		"q":      {text},
		"source": {source},
		"target": {target},
	}

	body, err := c.postForm(ctx, "translate", c.translateURL, form)
	if err != nil {
		return "", err
	}

	var parsed struct {
		TranslatedText *string `json:"translatedText"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("translate", "decode").Inc()
		return "", fmt.Errorf("decode translation response: %w", err)
	}
	if parsed.TranslatedText == nil {
		c.logger.Debug("translation response without translatedText, keeping original")
		return text, nil
	}

	return *parsed.TranslatedText, nil
}

// postForm sends a form-encoded POST and returns the response body with
// request metrics recorded per operation.
func (c *Client) postForm(ctx context.Context, operation, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.TranslationRequestsTotal.WithLabelValues(operation, "error").Inc()
		metrics.TranslationErrorsTotal.WithLabelValues(operation, "network").Inc()
		return nil, fmt.Errorf("%s request: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.TranslationRequestsTotal.WithLabelValues(operation, "error").Inc()
		metrics.TranslationErrorsTotal.WithLabelValues(operation, "network").Inc()
		return nil, fmt.Errorf("read %s response: %w", operation, err)
	}

	metrics.TranslationRequestsTotal.WithLabelValues(operation, "success").Inc()
	metrics.TranslationRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())

	return body, nil
}
