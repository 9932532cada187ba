package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string) (*GeminiClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewGeminiClient(GeminiConfig{
		BaseURL: srv.URL + "/v1beta/",
		APIKey:  apiKey,
		Model:   "gemini-1.5-flash-latest",
		Timeout: 5 * time.Second,
	}), srv
}

func TestGenerateContent_ReturnsFirstCandidateVerbatim(t *testing.T) {
	var got GenerateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash-latest:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Go, Node.js and **Python**  "}]}},{"content":{"parts":[{"text":"second"}]}}]}`))
	}, "secret")

	text, err := client.GenerateContent(context.Background(), "prompt text")
	require.NoError(t, err)
	assert.Equal(t, "  Go, Node.js and **Python**  ", text)

	require.Len(t, got.Contents, 1)
	assert.Equal(t, "prompt text", got.Contents[0].Parts[0].Text)
	assert.Equal(t, DefaultGenerationConfig(), got.GenerationConfig)
	require.Len(t, got.SafetySettings, 4)
	for _, s := range got.SafetySettings {
		assert.Equal(t, "BLOCK_MEDIUM_AND_ABOVE", s.Threshold)
	}
}

func TestGenerateContent_NoCandidates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}, "secret")

	text, err := client.GenerateContent(context.Background(), "hi")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestGenerateContent_Non2xx(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota"}}`))
	}, "secret")

	_, err := client.GenerateContent(context.Background(), "hi")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Contains(t, err.Error(), "quota")
}

func TestGenerateContent_MissingKeySkipsUpstream(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "")

	_, err := client.GenerateContent(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, called)
}

func TestGenerateContent_NetworkError(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, "secret")
	srv.Close()

	_, err := client.GenerateContent(context.Background(), "hi")
	assert.Error(t, err)
}
