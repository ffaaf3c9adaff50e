package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/cspark/internal/domain/extractor"
	"github.com/yanqian/cspark/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/cspark/pkg/errors"
	"github.com/yanqian/cspark/pkg/util"
)

func TestGenerateSuccess(t *testing.T) {
	client := &stubChatClient{resp: completionWith("  Üretilen metin  ")}
	client.resp.Usage = &chatgpt.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}
	svc := newTestService(client, &stubExtractor{})

	resp, err := svc.Generate(context.Background(), Request{Input: "Go hakkında bir metin", Task: "summary"})
	require.NoError(t, err)
	require.Equal(t, "Üretilen metin", resp.Result)
	require.False(t, resp.IsFallback)
	require.Equal(t, "test-model", resp.Model)
	require.Equal(t, 15, resp.Usage.TotalTokens)

	require.Len(t, client.last.Messages, 2)
	require.Equal(t, "system", client.last.Messages[0].Role)
	require.Contains(t, client.last.Messages[0].Content, "## Ana Noktalar")
	require.Contains(t, client.last.Messages[0].Content, "profesyonel")
	require.Equal(t, "user", client.last.Messages[1].Role)
	require.True(t, strings.HasSuffix(client.last.Messages[1].Content, "Go hakkında bir metin"))
	require.Equal(t, 1500, client.last.MaxTokens)
	require.InDelta(t, 0.7, client.last.Temperature, 0.0001)
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		match string
	}{
		{name: "empty input", req: Request{Input: "", Task: "summary"}, match: "input cannot be empty"},
		{name: "whitespace input", req: Request{Input: " \n\t ", Task: "summary"}, match: "input cannot be empty"},
		{name: "unknown task", req: Request{Input: "metin", Task: "podcast"}, match: "task must be one of"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := &stubChatClient{resp: completionWith("x")}
			svc := newTestService(client, &stubExtractor{})

			_, err := svc.Generate(context.Background(), tt.req)
			require.True(t, apperrors.IsCode(err, "invalid_input"))
			require.Contains(t, apperrors.MessageOf(err), tt.match)
			require.Zero(t, client.calls)
		})
	}
}

func TestGenerateFallbackOnModelFailure(t *testing.T) {
	tests := []struct {
		name    string
		resp    chatgpt.ChatCompletionResponse
		err     error
		outcome outcome
	}{
		{name: "missing credential", err: chatgpt.ErrMissingCredential, outcome: outcomeMissingCredential},
		{name: "transport", err: fmt.Errorf("request chat completion: %w", errors.New("connection refused")), outcome: outcomeTransport},
		{name: "http error", err: &chatgpt.APIError{Status: http.StatusUnauthorized, Message: "invalid token"}, outcome: outcomeHTTPError},
		{name: "malformed body", err: fmt.Errorf("%w: decode", chatgpt.ErrMalformedResponse), outcome: outcomeMalformed},
		{name: "no choices", resp: chatgpt.ChatCompletionResponse{}, outcome: outcomeMalformed},
		{name: "blank content", resp: completionWith("   "), outcome: outcomeMalformed},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.outcome, classify(tt.resp, tt.err).outcome)

			for _, task := range Tasks {
				for _, lang := range []string{"tr", "en", "fr"} {
					client := &stubChatClient{resp: tt.resp, err: tt.err}
					svc := newTestService(client, &stubExtractor{})

					resp, err := svc.Generate(context.Background(), Request{Input: "metin", Task: string(task), Lang: lang})
					require.NoError(t, err)
					require.True(t, resp.IsFallback)
					require.Equal(t, FallbackFor(task, lang), resp.Result)
					require.NotEmpty(t, resp.Result)
				}
			}
		})
	}
}

func TestGenerateFromURL(t *testing.T) {
	article := strings.Repeat("Uzun makale metni. ", 600)
	extract := &stubExtractor{result: extractor.Result{Domain: "example.com", Text: util.Truncate(article, 8000)}}
	client := &stubChatClient{resp: completionWith("ok")}
	svc := newTestService(client, extract)

	resp, err := svc.Generate(context.Background(), Request{Input: " https://example.com/post ", Task: "seo"})
	require.NoError(t, err)
	require.Equal(t, "example.com", resp.Source)
	require.Equal(t, "https://example.com/post", extract.last.URL)
	require.Equal(t, 8000, extract.last.MaxChars)

	user := client.last.Messages[1].Content
	content := strings.TrimPrefix(user, BuildUserPrompt(TaskSEO, "tr", ""))
	require.True(t, strings.HasPrefix(content, "[Source: example.com]\n\n"))
	require.LessOrEqual(t, util.CharCount(content), 4000)
	require.True(t, strings.HasSuffix(content, "..."))
}

func TestGenerateURLExtractionFailure(t *testing.T) {
	extractErr := apperrors.Wrap("extraction_failed", "page returned HTTP 404 Not Found", nil)
	client := &stubChatClient{resp: completionWith("ok")}
	svc := newTestService(client, &stubExtractor{err: extractErr})

	_, err := svc.Generate(context.Background(), Request{Input: "https://example.com/missing", Task: "summary"})
	require.True(t, apperrors.IsCode(err, "extraction_failed"))
	require.Equal(t, "page returned HTTP 404 Not Found", apperrors.MessageOf(err))
	require.Zero(t, client.calls)
}

func TestGeneratePlainTextIsTruncated(t *testing.T) {
	client := &stubChatClient{resp: completionWith("ok")}
	extract := &stubExtractor{}
	svc := newTestService(client, extract)

	_, err := svc.Generate(context.Background(), Request{Input: strings.Repeat("ğ", 5000), Task: "social"})
	require.NoError(t, err)
	require.Zero(t, extract.calls)

	content := strings.TrimPrefix(client.last.Messages[1].Content, BuildUserPrompt(TaskSocial, "tr", ""))
	require.Equal(t, 4000, util.CharCount(content))
}

func TestGenerateClampsSamplingParameters(t *testing.T) {
	tests := []struct {
		name            string
		maxTokens       int
		temperature     *float32
		wantMaxTokens   int
		wantTemperature float32
	}{
		{name: "defaults", wantMaxTokens: 1500, wantTemperature: 0.7},
		{name: "above ceiling", maxTokens: 100000, temperature: float32Ptr(5), wantMaxTokens: 4096, wantTemperature: 2},
		{name: "below floor", maxTokens: -3, temperature: float32Ptr(-1), wantMaxTokens: 1, wantTemperature: 0},
		{name: "explicit zero temperature", maxTokens: 200, temperature: float32Ptr(0), wantMaxTokens: 200, wantTemperature: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := &stubChatClient{resp: completionWith("ok")}
			svc := newTestService(client, &stubExtractor{})

			_, err := svc.Generate(context.Background(), Request{Input: "metin", Task: "summary", MaxTokens: tt.maxTokens, Temperature: tt.temperature})
			require.NoError(t, err)
			require.Equal(t, tt.wantMaxTokens, client.last.MaxTokens)
			require.InDelta(t, tt.wantTemperature, client.last.Temperature, 0.0001)
		})
	}
}

func TestGenerateEnglishDefaults(t *testing.T) {
	client := &stubChatClient{resp: completionWith("ok")}
	svc := newTestService(client, &stubExtractor{})

	_, err := svc.Generate(context.Background(), Request{Input: "some text", Task: "youtube", Lang: "en"})
	require.NoError(t, err)
	require.Contains(t, client.last.Messages[0].Content, "professional")
	require.True(t, strings.HasPrefix(client.last.Messages[1].Content, "Create a YouTube video"))
}

func newTestService(client ChatClient, extract extractor.Service) Service {
	cfg := Config{
		Model:              "test-model",
		MaxInputChars:      4000,
		InlineMaxChars:     8000,
		DefaultLang:        "tr",
		DefaultTone:        "profesyonel",
		DefaultLength:      "orta",
		DefaultMaxTokens:   1500,
		MaxTokensLimit:     4096,
		DefaultTemperature: 0.7,
	}
	return NewService(cfg, client, extract, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func completionWith(content string) chatgpt.ChatCompletionResponse {
	var resp chatgpt.ChatCompletionResponse
	resp.Choices = append(resp.Choices, struct {
		Message chatgpt.Message `json:"message"`
	}{Message: chatgpt.Message{Role: "assistant", Content: content}})
	return resp
}

func float32Ptr(v float32) *float32 {
	return &v
}

type stubChatClient struct {
	resp  chatgpt.ChatCompletionResponse
	err   error
	calls int
	last  chatgpt.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.calls++
	s.last = req
	return s.resp, s.err
}

type stubExtractor struct {
	result extractor.Result
	err    error
	calls  int
	last   extractor.Request
}

func (s *stubExtractor) Extract(ctx context.Context, req extractor.Request) (extractor.Result, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return extractor.Result{}, s.err
	}
	return s.result, nil
}
