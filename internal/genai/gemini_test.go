package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bfhl-service/internal/common/config"
	"bfhl-service/internal/common/errors"
	"bfhl-service/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Helpers
// ==========================

func newTestClient(t *testing.T, baseURL string, timeoutMs int) *GeminiClient {
	t.Helper()
	return NewGeminiClient(config.GenAIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "models/gemini-flash-latest",
		Timeout: timeoutMs,
	}, logger.NewTestLogger(t))
}

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(b)
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	stdErr := errors.Normalize(err)
	assert.Equal(t, code, stdErr.Code)
}

// ==========================
// Request shape
// ==========================

func TestGenerate_RequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-flash-latest:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "What is the capital city of Maharashtra?", req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(candidateBody("The capital is Mumbai.")))
	}))
	defer srv.Close()

	text, err := newTestClient(t, srv.URL+"/", 2000).Generate(context.Background(), "What is the capital city of Maharashtra?")
	require.NoError(t, err)
	assert.Equal(t, "The capital is Mumbai.", text)
}

// ==========================
// Response handling
// ==========================

func TestGenerate_Responses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantText string
		wantCode errors.ErrorCode
	}{
		{name: "candidate text", status: 200, body: candidateBody("Mumbai"), wantText: "Mumbai"},
		{name: "no candidates falls back", status: 200, body: `{"candidates":[]}`, wantText: FallbackAnswer},
		{name: "empty object falls back", status: 200, body: `{}`, wantText: FallbackAnswer},
		{name: "empty text falls back", status: 200, body: candidateBody(""), wantText: FallbackAnswer},
		{name: "parts missing falls back", status: 200, body: `{"candidates":[{"content":{}}]}`, wantText: FallbackAnswer},
		{name: "falsy error ignored", status: 200, body: `{"error":null,"candidates":[]}`, wantText: FallbackAnswer},
		{name: "non-2xx status", status: 503, body: `{"error":{"message":"overloaded"}}`, wantCode: errors.ErrCodeGenAIServiceError},
		{name: "embedded error on 200", status: 200, body: `{"error":{"code":400,"message":"bad"}}`, wantCode: errors.ErrCodeGenAIServiceError},
		{name: "non-2xx without error body", status: 404, body: `{}`, wantCode: errors.ErrCodeGenAIServiceError},
		{name: "html body", status: 502, body: `<html>bad gateway</html>`, wantCode: errors.ErrCodeGenAIDecodeFailed},
		{name: "null body", status: 200, body: `null`, wantCode: errors.ErrCodeGenAIDecodeFailed},
		{name: "array body falls back", status: 200, body: `[]`, wantText: FallbackAnswer},
		{name: "string body falls back", status: 200, body: `"ok"`, wantText: FallbackAnswer},
		{name: "number body falls back", status: 200, body: `5`, wantText: FallbackAnswer},
		{name: "boolean body falls back", status: 200, body: `true`, wantText: FallbackAnswer},
		{name: "array body on non-2xx", status: 500, body: `[]`, wantCode: errors.ErrCodeGenAIServiceError},
		{name: "non-string text", status: 200, body: `{"candidates":[{"content":{"parts":[{"text":42}]}}]}`, wantCode: errors.ErrCodeGenAIDecodeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			text, err := newTestClient(t, srv.URL, 2000).Generate(context.Background(), "q")
			if tt.wantCode != "" {
				requireCode(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

// ==========================
// Failure modes
// ==========================

func TestGenerate_NotConfigured(t *testing.T) {
	c := NewGeminiClient(config.GenAIConfig{BaseURL: "http://127.0.0.1:1", Timeout: 1000}, nil)
	assert.False(t, c.Configured())

	_, err := c.Generate(context.Background(), "q")
	requireCode(t, err, errors.ErrCodeGenAINotConfigured)
}

func TestGenerate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	_, err := newTestClient(t, baseURL, 2000).Generate(context.Background(), "q")
	requireCode(t, err, errors.ErrCodeGenAITransportFailed)
	assert.NotContains(t, err.Error(), "test-key")
	assert.NotContains(t, errors.Normalize(err).Details, "test-key")
}

func TestGenerate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := newTestClient(t, srv.URL, 50).Generate(context.Background(), "q")
	requireCode(t, err, errors.ErrCodeGenAITimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGenerate_CallerCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// drain the body so the server notices the client disconnect on older toolchains
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := newTestClient(t, srv.URL, 5000).Generate(ctx, "q")
	requireCode(t, err, errors.ErrCodeGenAITransportFailed)
	assert.ErrorIs(t, err, context.Canceled)
}
