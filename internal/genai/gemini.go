// Package genai asks the Gemini generateContent API a question and reduces
// the answer to a single word.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"bfhl-service/internal/common/config"
	"bfhl-service/internal/common/errors"
	commonhttp "bfhl-service/internal/common/http"
	"bfhl-service/internal/common/logger"
)

// FallbackAnswer is used when the response carries no candidate text.
const FallbackAnswer = "Unknown"

const (
	maxResponseBytes = 8 << 20
	defaultTimeout   = 30 * time.Second
)

// Generator produces an answer for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls generateContent through the shared HTTP client.
type GeminiClient struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *commonhttp.Client
	logger     logger.Logger
}

func NewGeminiClient(cfg config.GenAIConfig, log logger.Logger) *GeminiClient {
	timeout := config.GetDuration(cfg.Timeout)
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &GeminiClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		model:      normalizeModel(cfg.Model),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: commonhttp.NewClient(timeout),
		logger:     log,
	}
}

// Configured reports whether an API key is present.
func (c *GeminiClient) Configured() bool {
	return c.apiKey != ""
}

// Generate sends prompt as a single user part and returns the raw text of the
// first candidate, or FallbackAnswer when there is none.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", errors.NewGenAINotConfiguredError()
	}

	callCtx, cancel := context.WithTimeout(ctx, c.httpClient.Timeout())
	defer cancel()

	start := time.Now()
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	resp, err := c.httpClient.PostJSON(callCtx, c.endpoint(), reqBody)
	if err != nil {
		return "", c.classify(ctx, callCtx, err, errors.NewGenAITransportError)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", c.classify(ctx, callCtx, err, errors.NewGenAITransportError)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", errors.NewGenAIDecodeError(err)
	}
	if payload == nil {
		return "", errors.NewGenAIDecodeError(fmt.Errorf("response body is null"))
	}
	// any other non-object value has no error and no candidates
	body, _ := payload.(map[string]any)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || truthy(body["error"]) {
		return "", errors.NewGenAIServiceError(resp.StatusCode, errorMessage(body["error"]))
	}

	text, err := firstCandidateText(body)
	if err != nil {
		return "", errors.NewGenAIDecodeError(err)
	}

	c.logger.Debug("Generative text call completed", map[string]interface{}{
		"model":      c.model,
		"durationMs": time.Since(start).Milliseconds(),
		"fallback":   text == FallbackAnswer,
	})
	return text, nil
}

func (c *GeminiClient) endpoint() string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	return fmt.Sprintf("%s/models/%s:generateContent?%s", c.baseURL, url.PathEscape(c.model), q.Encode())
}

// classify turns expiry of the call deadline into a timeout error. A caller
// that went away is reported through wrap.
func (c *GeminiClient) classify(parent, callCtx context.Context, err error, wrap func(error) *errors.StandardError) error {
	if parent.Err() == nil && callCtx.Err() == context.DeadlineExceeded {
		return errors.NewGenAITimeoutError(c.httpClient.Timeout())
	}
	if isTimeout(err) && parent.Err() == nil {
		return errors.NewGenAITimeoutError(c.httpClient.Timeout())
	}
	return wrap(redactKey(err, c.apiKey))
}

func normalizeModel(model string) string {
	model = strings.TrimSpace(model)
	model = strings.TrimPrefix(model, "models/")
	if model == "" {
		return config.DefaultGenAIModel
	}
	return model
}
