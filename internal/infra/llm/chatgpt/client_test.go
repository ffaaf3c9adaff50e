package chatgpt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateChatCompletionSuccess(t *testing.T) {
	var got ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"m","choices":[{"message":{"role":"assistant","content":" hello "}}],"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", BaseURL: server.URL + "/"})
	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:       "m",
		Messages:    []Message{{Role: "system", Content: "sys"}, {Role: "user", Content: "usr"}},
		MaxTokens:   100,
		Temperature: 0.5,
	})
	require.NoError(t, err)

	content, err := FirstContent(resp)
	require.NoError(t, err)
	require.Equal(t, "hello", content)
	require.Equal(t, 5, resp.Usage.TotalTokens)
	require.Len(t, got.Messages, 2)
	require.Equal(t, 100, got.MaxTokens)
	require.False(t, got.Stream)
}

func TestCreateChatCompletionMissingCredential(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.ErrorIs(t, err, ErrMissingCredential)
	require.Zero(t, atomic.LoadInt32(&calls))
}

func TestCreateChatCompletionErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "structured object", status: http.StatusUnauthorized, body: `{"error":{"message":"invalid token"}}`, wantMessage: "invalid token"},
		{name: "structured string", status: http.StatusBadRequest, body: `{"error":"model not found"}`, wantMessage: "model not found"},
		{name: "detail field", status: http.StatusUnprocessableEntity, body: `{"detail":"bad input"}`, wantMessage: "bad input"},
		{name: "plain text", status: http.StatusBadGateway, body: "upstream down", wantMessage: "upstream down"},
		{name: "unknown json shape", status: http.StatusInternalServerError, body: `{"foo":1}`, wantMessage: "500 Internal Server Error"},
		{name: "empty body", status: http.StatusServiceUnavailable, body: "", wantMessage: "503 Service Unavailable"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
			_, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tt.status, apiErr.Status)
			require.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestCreateChatCompletionMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.ErrorIs(t, err, ErrMalformedResponse)
	require.ErrorContains(t, err, "decode chat completion")
}

func TestFirstContentNoChoices(t *testing.T) {
	_, err := FirstContent(ChatCompletionResponse{})
	require.ErrorIs(t, err, ErrNoContent)
}
