package bundle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/cspark/internal/domain/generator"
	apperrors "github.com/yanqian/cspark/pkg/errors"
)

func TestGenerateAllPartialSuccess(t *testing.T) {
	for _, concurrency := range []int{1, 3} {
		concurrency := concurrency
		t.Run(map[int]string{1: "sequential", 3: "bounded"}[concurrency], func(t *testing.T) {
			t.Parallel()
			gen := &stubGenerator{failing: map[string]bool{"shorts": true}}
			svc := newTestService(gen, concurrency)

			resp, err := svc.GenerateAll(context.Background(), Request{Input: "metin"})
			require.NoError(t, err)
			require.Len(t, resp, 4)
			require.NotContains(t, resp, "shorts")
			for _, task := range []string{"summary", "youtube", "social", "seo"} {
				require.Equal(t, "sonuç: "+task, resp[task])
			}
		})
	}
}

func TestGenerateAllSequentialOrder(t *testing.T) {
	gen := &stubGenerator{}
	svc := newTestService(gen, 1)

	_, err := svc.GenerateAll(context.Background(), Request{Input: "metin", Lang: "en"})
	require.NoError(t, err)
	require.Equal(t, []string{"summary", "youtube", "shorts", "social", "seo"}, gen.order)
	for _, req := range gen.requests {
		require.Equal(t, "metin", req.Input)
		require.Equal(t, "en", req.Lang)
	}
}

func TestGenerateAllDefaultLang(t *testing.T) {
	gen := &stubGenerator{}
	svc := newTestService(gen, 1)

	_, err := svc.GenerateAll(context.Background(), Request{Input: "metin"})
	require.NoError(t, err)
	require.Equal(t, "tr", gen.requests[0].Lang)
}

func TestGenerateAllBoundedConcurrency(t *testing.T) {
	gen := &stubGenerator{delay: 20 * time.Millisecond}
	svc := newTestService(gen, 2)

	resp, err := svc.GenerateAll(context.Background(), Request{Input: "metin"})
	require.NoError(t, err)
	require.Len(t, resp, 5)
	require.LessOrEqual(t, atomic.LoadInt32(&gen.peak), int32(2))
}

func TestGenerateAllEmptyInput(t *testing.T) {
	gen := &stubGenerator{}
	svc := newTestService(gen, 1)

	_, err := svc.GenerateAll(context.Background(), Request{Input: "   "})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Empty(t, gen.order)
}

func TestGenerateAllEveryTaskFails(t *testing.T) {
	gen := &stubGenerator{failing: map[string]bool{"summary": true, "youtube": true, "shorts": true, "social": true, "seo": true}}
	svc := newTestService(gen, 1)

	resp, err := svc.GenerateAll(context.Background(), Request{Input: "metin"})
	require.Error(t, err)
	require.Nil(t, resp)
	require.False(t, apperrors.IsCode(err, "invalid_input"))
}

func newTestService(gen TaskGenerator, concurrency int) Service {
	cfg := Config{DefaultLang: "tr", Concurrency: concurrency, Timeout: time.Second}
	return NewService(cfg, gen, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type stubGenerator struct {
	failing map[string]bool
	// slow limits the delay to the named tasks; empty delays every task.
	slow         map[string]bool
	delay        time.Duration
	honorContext bool

	mu       sync.Mutex
	order    []string
	requests []generator.Request
	active   int32
	peak     int32
}

func (s *stubGenerator) Generate(ctx context.Context, req generator.Request) (generator.Response, error) {
	current := atomic.AddInt32(&s.active, 1)
	defer atomic.AddInt32(&s.active, -1)
	for {
		peak := atomic.LoadInt32(&s.peak)
		if current <= peak || atomic.CompareAndSwapInt32(&s.peak, peak, current) {
			break
		}
	}

	s.mu.Lock()
	s.order = append(s.order, req.Task)
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.delay > 0 && (len(s.slow) == 0 || s.slow[req.Task]) {
		if s.honorContext {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return generator.Response{}, ctx.Err()
			}
		} else {
			time.Sleep(s.delay)
		}
	}
	if s.failing[req.Task] {
		return generator.Response{}, errors.New("upstream failed")
	}
	return generator.Response{Result: "sonuç: " + req.Task}, nil
}

func TestGenerateAllTimeoutIsPerTask(t *testing.T) {
	gen := &stubGenerator{delay: 30 * time.Millisecond, honorContext: true}
	cfg := Config{DefaultLang: "tr", Concurrency: 1, Timeout: 90 * time.Millisecond}
	svc := NewService(cfg, gen, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp, err := svc.GenerateAll(context.Background(), Request{Input: "metin"})
	require.NoError(t, err)
	require.Len(t, resp, 5)
}

func TestGenerateAllDropsTaskPastItsDeadline(t *testing.T) {
	gen := &stubGenerator{delay: 50 * time.Millisecond, honorContext: true, slow: map[string]bool{"social": true}}
	cfg := Config{DefaultLang: "tr", Concurrency: 1, Timeout: 20 * time.Millisecond}
	svc := NewService(cfg, gen, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp, err := svc.GenerateAll(context.Background(), Request{Input: "metin"})
	require.NoError(t, err)
	require.Len(t, resp, 4)
	require.NotContains(t, resp, "social")
}
