package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/yanqian/cspark/internal/domain/extractor"
	"github.com/yanqian/cspark/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/cspark/pkg/errors"
	"github.com/yanqian/cspark/pkg/metrics"
	"github.com/yanqian/cspark/pkg/util"
)

const (
	defaultMaxTokens   = 1500
	maxTokensCeiling   = 4096
	defaultTemperature = 0.7
	maxTemperature     = 2

	englishTone   = "professional"
	englishLength = "medium"
)

// Service exposes content generation capabilities.
type Service interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type outcome string

const (
	outcomeOK                outcome = "ok"
	outcomeMissingCredential outcome = "missing_credential"
	outcomeTransport         outcome = "transport"
	outcomeHTTPError         outcome = "http_error"
	outcomeMalformed         outcome = "malformed"
)

// completion is the classified result of a single model call.
type completion struct {
	outcome outcome
	text    string
	status  int
	err     error
}

type service struct {
	cfg       Config
	client    ChatClient
	extractor extractor.Service
	metrics   *metrics.Recorder
	logger    *slog.Logger
}

// NewService is a wire provider for the generator domain.
func NewService(cfg Config, client ChatClient, extract extractor.Service, recorder *metrics.Recorder, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		client:    client,
		extractor: extract,
		metrics:   recorder,
		logger:    logger.With("component", "generator.service"),
	}
}

func (s *service) Generate(ctx context.Context, req Request) (Response, error) {
	input := normalize(req.Input)
	if input == "" {
		return Response{}, apperrors.Wrap("invalid_input", "input cannot be empty", nil)
	}
	task, ok := ParseTask(req.Task)
	if !ok {
		return Response{}, apperrors.Wrap("invalid_input", fmt.Sprintf("task must be one of %s", taskNames()), nil)
	}
	lang := normalizeLang(req.Lang)
	if lang == "" {
		lang = normalizeLang(s.cfg.DefaultLang)
	}
	if lang == "" {
		lang = langTurkish
	}

	content := input
	var source string
	if extractor.IsHTTPURL(input) {
		page, err := s.extractor.Extract(ctx, extractor.Request{URL: input, MaxChars: s.cfg.InlineMaxChars})
		if err != nil {
			return Response{}, err
		}
		source = page.Domain
		content = fmt.Sprintf("[Source: %s]\n\n%s", page.Domain, page.Text)
	}
	content = util.Truncate(content, s.cfg.MaxInputChars)

	opts := s.promptOptions(req, task, lang)
	model := s.cfg.Model
	started := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: model,
		Messages: []chatgpt.Message{
			{Role: "system", Content: BuildSystemPrompt(opts)},
			{Role: "user", Content: BuildUserPrompt(task, lang, content)},
		},
		MaxTokens:   s.maxTokens(req.MaxTokens),
		Temperature: s.temperature(req.Temperature),
	})
	result := classify(resp, err)
	if result.outcome != outcomeMissingCredential {
		s.metrics.ObserveLLM(model, time.Since(started))
	}
	s.metrics.ObserveGeneration(string(task), string(result.outcome))

	if result.outcome != outcomeOK {
		s.logger.Warn("llm generation failed, serving fallback",
			"task", task,
			"lang", lang,
			"outcome", result.outcome,
			"status", result.status,
			"error", result.err,
		)
		return Response{Result: FallbackFor(task, lang), IsFallback: true, Source: source}, nil
	}

	out := Response{Result: result.text, Model: resp.Model, Source: source}
	if out.Model == "" {
		out.Model = model
	}
	if resp.Usage != nil {
		usage := metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
		if !usage.IsZero() {
			out.Usage = &usage
			s.metrics.ObserveTokens(out.Model, usage)
		}
	}
	s.logger.Debug("generation completed", "task", task, "lang", lang, "chars", util.CharCount(out.Result))
	return out, nil
}

func (s *service) promptOptions(req Request, task Task, lang string) Options {
	tone, length := strings.TrimSpace(req.Tone), strings.TrimSpace(req.Length)
	defaultTone, defaultLength := s.cfg.DefaultTone, s.cfg.DefaultLength
	if lang != langTurkish {
		defaultTone, defaultLength = englishTone, englishLength
	}
	if tone == "" {
		tone = defaultTone
	}
	if length == "" {
		length = defaultLength
	}
	return Options{Task: task, Lang: lang, Tone: tone, Length: length, Persona: req.Persona}
}

func (s *service) maxTokens(requested int) int {
	limit := s.cfg.MaxTokensLimit
	if limit <= 0 || limit > maxTokensCeiling {
		limit = maxTokensCeiling
	}
	if requested == 0 {
		requested = s.cfg.DefaultMaxTokens
	}
	if requested == 0 {
		requested = defaultMaxTokens
	}
	if requested < 1 {
		return 1
	}
	if requested > limit {
		return limit
	}
	return requested
}

func (s *service) temperature(requested *float32) float32 {
	value := s.cfg.DefaultTemperature
	if value == 0 {
		value = defaultTemperature
	}
	if requested != nil {
		value = *requested
	}
	if value < 0 {
		return 0
	}
	if value > maxTemperature {
		return maxTemperature
	}
	return value
}

// classify maps a model call onto exactly one outcome.
func classify(resp chatgpt.ChatCompletionResponse, err error) completion {
	var apiErr *chatgpt.APIError
	switch {
	case err == nil:
	case errors.Is(err, chatgpt.ErrMissingCredential):
		return completion{outcome: outcomeMissingCredential, err: err}
	case errors.As(err, &apiErr):
		return completion{outcome: outcomeHTTPError, status: apiErr.Status, err: err}
	case errors.Is(err, chatgpt.ErrMalformedResponse):
		return completion{outcome: outcomeMalformed, err: err}
	default:
		return completion{outcome: outcomeTransport, err: err}
	}
	text, err := chatgpt.FirstContent(resp)
	if err != nil {
		return completion{outcome: outcomeMalformed, err: err}
	}
	return completion{outcome: outcomeOK, text: text}
}

func taskNames() string {
	names := make([]string, 0, len(Tasks))
	for _, task := range Tasks {
		names = append(names, string(task))
	}
	return strings.Join(names, ", ")
}

func normalize(text string) string {
	text = strings.TrimSpace(text)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, text)
}
