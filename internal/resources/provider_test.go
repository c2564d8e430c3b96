package resources_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/schoolstock/internal/resources"
)

const payload = `[{"title":"Main Library","summary":"Books.","category":"Facilities"},{"title":"Rugby","summary":"Bradby Shield.","category":""}]`

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := resources.NewProvider(ctx, resources.ProviderConfig{Name: resources.ProviderNone})
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = resources.NewProvider(ctx, resources.ProviderConfig{Name: "openai"})
	assert.ErrorContains(t, err, "unknown provider")

	_, err = resources.NewProvider(ctx, resources.ProviderConfig{Name: resources.ProviderAnthropic})
	assert.ErrorContains(t, err, "API key is required")

	_, err = resources.NewProvider(ctx, resources.ProviderConfig{Name: resources.ProviderGemini})
	assert.ErrorContains(t, err, "API key is required")
}

func TestAnthropicProvider(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "msg_01",
			"type":          "message",
			"role":          "assistant",
			"model":         "claude-sonnet-4-5",
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"content":       []map[string]any{{"type": "text", "text": payload}},
			"usage":         map[string]any{"input_tokens": 10, "output_tokens": 20},
		})
	}))
	defer srv.Close()

	p, err := resources.NewAnthropicProvider(resources.ProviderConfig{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())

	got, err := p.FindResources(context.Background(), "sports")
	require.NoError(t, err)
	assert.Equal(t, []resources.Resource{
		{Title: "Main Library", Summary: "Books.", Category: "Facilities"},
		{Title: "Rugby", Summary: "Bradby Shield.", Category: "General"},
	}, got)

	assert.Equal(t, resources.DefaultAnthropicModel, gotBody["model"])
	assert.EqualValues(t, 2048, gotBody["max_tokens"])
}

func TestAnthropicProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"api_error","message":"overloaded"}}`)
	}))
	defer srv.Close()

	p, err := resources.NewAnthropicProvider(resources.ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)
	_, err = p.FindResources(context.Background(), "sports")
	assert.Error(t, err)
}

func TestGeminiProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": payload}},
				},
				"finishReason": "STOP",
			}},
		})
	}))
	defer srv.Close()

	p, err := resources.NewGeminiProvider(context.Background(), resources.ProviderConfig{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	got, err := p.FindResources(context.Background(), "sports")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "General", got[1].Category)
}
