package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponder_RequiresKey(t *testing.T) {
	t.Parallel()
	_, err := NewResponder(context.Background(), ResponderConfig{Provider: ProviderGroq})
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = NewResponder(context.Background(), ResponderConfig{Provider: "mystery", APIKey: "k"})
	assert.Error(t, err)
}

func TestOpenAIResponder(t *testing.T) {
	t.Parallel()
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "llama-3.3-70b-versatile",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Aquifers store water."}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14}
		}`))
	}))
	t.Cleanup(srv.Close)

	r, err := NewResponder(context.Background(), ResponderConfig{
		Provider: ProviderGroq,
		APIKey:   "gsk-test",
		BaseURL:  srv.URL + "/",
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderGroq, r.Provider())

	got, err := r.Respond(context.Background(), "what is an aquifer")
	require.NoError(t, err)
	assert.Equal(t, "Aquifers store water.", got)
	assert.Equal(t, DefaultModels[ProviderGroq], gotBody["model"])
	assert.NoError(t, r.Close())
}

func TestOpenAIResponder_ErrorsAreClassified(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		status int
		body   string
		want   ErrorAction
	}{
		{"quota", http.StatusTooManyRequests, `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota"}}`, ActionFallback},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"Slow down","type":"tokens"}}`, ActionRetry},
		{"bad key", http.StatusUnauthorized, `{"error":{"message":"Bad key","type":"auth"}}`, ActionFail},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"oops","type":"server"}}`, ActionRetry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			r, err := NewResponder(context.Background(), ResponderConfig{Provider: ProviderCerebras, APIKey: "k", BaseURL: srv.URL + "/"})
			require.NoError(t, err)

			_, err = r.Respond(context.Background(), "p")
			require.Error(t, err)
			var llmErr *LLMError
			require.ErrorAs(t, err, &llmErr)
			assert.Equal(t, tt.status, llmErr.StatusCode)
			assert.Equal(t, tt.want, ClassifyError(err))
			assert.Equal(t, int32(1), calls.Load(), "SDK retries are disabled")
		})
	}
}

func TestGeminiResponder(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-test:generateContent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Ground"}, {"text": "water."}]}}],
			"usageMetadata": {"promptTokenCount": 5, "candidatesTokenCount": 2, "totalTokenCount": 7}
		}`))
	}))
	t.Cleanup(srv.Close)

	r, err := NewResponder(context.Background(), ResponderConfig{
		Provider: ProviderGemini,
		APIKey:   "AIza-test",
		Model:    "gemini-test",
		BaseURL:  srv.URL + "/",
	})
	require.NoError(t, err)

	got, err := r.Respond(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Groundwater.", got)
	assert.Equal(t, ProviderGemini, r.Provider())
}

func TestListGeminiModels(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models": [
			{"name": "models/gemini-2.5-flash", "displayName": "Gemini 2.5 Flash", "supportedGenerationMethods": ["generateContent", "countTokens"]},
			{"name": "models/text-embedding-004", "displayName": "Text Embedding 004", "supportedGenerationMethods": ["embedContent"]}
		]}`))
	}))
	t.Cleanup(srv.Close)

	models, err := ListGeminiModels(context.Background(), "AIza-test", srv.URL+"/", nil)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "models/gemini-2.5-flash", models[0].Name)
	assert.Equal(t, "Gemini 2.5 Flash", models[0].DisplayName)

	_, err = ListGeminiModels(context.Background(), "", "", nil)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
