package bundle

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/cspark/internal/domain/generator"
	apperrors "github.com/yanqian/cspark/pkg/errors"
	"github.com/yanqian/cspark/pkg/metrics"
)

// Service runs every generation task for a single input.
type Service interface {
	GenerateAll(ctx context.Context, req Request) (Response, error)
}

// TaskGenerator produces the text for one task.
type TaskGenerator interface {
	Generate(ctx context.Context, req generator.Request) (generator.Response, error)
}

type service struct {
	cfg       Config
	generator TaskGenerator
	metrics   *metrics.Recorder
	logger    *slog.Logger
}

// NewService is a wire provider for the bundle domain.
func NewService(cfg Config, gen TaskGenerator, recorder *metrics.Recorder, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		generator: gen,
		metrics:   recorder,
		logger:    logger.With("component", "bundle.service"),
	}
}

func (s *service) GenerateAll(ctx context.Context, req Request) (Response, error) {
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return nil, apperrors.Wrap("invalid_input", "input cannot be empty", nil)
	}
	lang := strings.TrimSpace(req.Lang)
	if lang == "" {
		lang = s.cfg.DefaultLang
	}
	var (
		mu  sync.Mutex
		out = make(Response, len(generator.Tasks))
	)
	run := func(task generator.Task) {
		text, ok := s.runTask(ctx, task, input, lang)
		if !ok {
			return
		}
		mu.Lock()
		out[string(task)] = text
		mu.Unlock()
	}

	if s.cfg.Concurrency > 1 {
		// Tasks never return errors to the group so one failure cannot cancel the rest.
		var g errgroup.Group
		g.SetLimit(s.cfg.Concurrency)
		for _, task := range generator.Tasks {
			task := task
			g.Go(func() error {
				run(task)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, task := range generator.Tasks {
			run(task)
		}
	}

	if len(out) == 0 {
		return nil, apperrors.Wrap("bundle_failed", "all generation tasks failed", nil)
	}
	s.logger.Info("bundle generated", "succeeded", len(out), "total", len(generator.Tasks))
	return out, nil
}

func (s *service) runTask(ctx context.Context, task generator.Task, input, lang string) (string, bool) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	resp, err := s.generator.Generate(ctx, generator.Request{Input: input, Task: string(task), Lang: lang})
	if err == nil && strings.TrimSpace(resp.Result) == "" {
		err = apperrors.Wrap("bundle_failed", "empty result", nil)
	}
	s.metrics.ObserveBundleTask(string(task), err == nil)
	if err != nil {
		s.logger.Warn("bundle task failed", "task", task, "error", err)
		return "", false
	}
	return resp.Result, true
}
