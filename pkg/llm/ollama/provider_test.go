package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-docgen-be/pkg/llm"
)

func TestOllamaProvider_Complete(t *testing.T) {
	var gotReq ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := ollamaChatResponse{
			Model:           gotReq.Model,
			Message:         ollamaMessage{Role: "assistant", Content: "## Auth Service\n\nHandles login."},
			Done:            true,
			PromptEvalCount: 42,
			EvalCount:       12,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")
	completion, err := provider.Complete(context.Background(), "Document the auth service",
		llm.WithMaxTokens(256), llm.WithSystem("You write technical docs"))
	require.NoError(t, err)

	assert.Equal(t, "## Auth Service\n\nHandles login.", completion.Text)
	assert.Equal(t, 42, completion.TokensIn)
	assert.Equal(t, 12, completion.TokensOut)
	assert.Zero(t, completion.CostEstimate)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, 256, gotReq.Options.NumPredict)
	assert.False(t, gotReq.Stream)
}

func TestOllamaProvider_TokenFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "12345678"},
			Done:    true,
		})
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")
	completion, err := provider.Complete(context.Background(), "abcd")
	require.NoError(t, err)

	// No usage counts in the response, length/4 estimates apply.
	assert.Equal(t, 1, completion.TokensIn)
	assert.Equal(t, 2, completion.TokensOut)
}

func TestOllamaProvider_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "missing")
	_, err := provider.Complete(context.Background(), "hello")
	assert.ErrorContains(t, err, "status 404")
}
