// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/researcher-agent/internal/agent"
	"github.com/pdiddy/researcher-agent/pkg/types"
)

// newTestClient points a Client at a test server and restores the real base
// URL on cleanup.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := apiBaseURL
	apiBaseURL = ts.URL
	t.Cleanup(func() { apiBaseURL = old })

	return NewClient(types.AIConfig{Model: "test-model", APIKey: "test-key"}, ts.Client())
}

func candidateBody(texts ...string) map[string]any {
	parts := make([]map[string]string, len(texts))
	for i, txt := range texts {
		parts[i] = map[string]string{"text": txt}
	}
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": parts}},
		},
	}
}

func TestGenerate_Success(t *testing.T) {
	var gotPath, gotKey, gotPrompt string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Contents[0].Parts[0].Text

		json.NewEncoder(w).Encode(candidateBody("Hello, ", "world."))
	})

	text, err := c.Generate(context.Background(), "say hello")
	require.NoError(t, err)

	assert.Equal(t, "Hello, world.", text)
	assert.Equal(t, "/models/test-model:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "say hello", gotPrompt)
}

func TestGenerate_RateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	})

	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)

	var ue *agent.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusTooManyRequests, ue.Status)
	assert.Contains(t, ue.Message, "quota exceeded")
	assert.Contains(t, ue.Message, "RESOURCE_EXHAUSTED")
}

func TestGenerate_ModelNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"code": 404, "message": "model not found", "status": "NOT_FOUND"}}`))
	})

	_, err := c.Generate(context.Background(), "p")
	var ue *agent.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusNotFound, ue.Status)
}

func TestGenerate_NoRetryOn429(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "client must not retry")
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, agent.IsUpstream(err))
}

func TestGenerate_EmptyText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(candidateBody("   "))
	})

	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, agent.IsUpstream(err))
}

func TestGenerate_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := ts.Client()
	ts.Close() // connection refused from here on

	old := apiBaseURL
	apiBaseURL = ts.URL
	defer func() { apiBaseURL = old }()

	c := NewClient(types.AIConfig{Model: "test-model"}, client)
	_, err := c.Generate(context.Background(), "p")

	var ue *agent.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 0, ue.Status)
	assert.NotNil(t, ue.Err)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(types.AIConfig{}, nil)
	assert.Equal(t, DefaultModel, c.Model())
	assert.NotNil(t, c.client)
}
