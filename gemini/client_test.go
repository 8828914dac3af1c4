package gemini_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/passagecli/passage"
	"github.com/passagecli/passage/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractText(t *testing.T) {
	t.Parallel()

	t.Run("joins text parts of the first candidate", func(t *testing.T) {
		t.Parallel()
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Role: "model", Parts: []*genai.Part{
					{Text: "thinking...", Thought: true},
					{Text: "Hello"},
					{Text: " world"},
				}}},
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "ignored"}}}},
			},
		}
		got, err := gemini.ExtractText(resp)
		require.NoError(t, err)
		assert.Equal(t, "Hello world", got)
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()
		_, err := gemini.ExtractText(&genai.GenerateContentResponse{})
		assert.ErrorIs(t, err, passage.ErrMalformedResponse)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		_, err := gemini.ExtractText(nil)
		assert.ErrorIs(t, err, passage.ErrMalformedResponse)
	})

	t.Run("candidate without text", func(t *testing.T) {
		t.Parallel()
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: "x", Thought: true}}}}},
		}
		_, err := gemini.ExtractText(resp)
		assert.ErrorIs(t, err, passage.ErrMalformedResponse)
	})
}

func TestClient_Complete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"pong"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	client := gemini.New(gemini.WithAPIKey("test-key"))
	got, err := client.Complete(context.Background(), passage.CompletionRequest{
		BaseURL: srv.URL,
		Model:   "gemini-test",
		Message: "ping",
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", got)
}
