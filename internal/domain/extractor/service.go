package extractor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	apperrors "github.com/yanqian/cspark/pkg/errors"
	"github.com/yanqian/cspark/pkg/metrics"
	"github.com/yanqian/cspark/pkg/util"
)

// Service turns a URL into bounded plain text.
type Service interface {
	Extract(ctx context.Context, req Request) (Result, error)
}

// PageFetcher retrieves a raw page.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// Cache stores extraction results. Implementations must treat a miss as (Result{}, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, result Result, ttl time.Duration) error
}

type service struct {
	cfg     Config
	fetcher PageFetcher
	cache   Cache
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// NewService wires up the extractor domain. cache may be nil.
func NewService(cfg Config, fetcher PageFetcher, cache Cache, recorder *metrics.Recorder, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		fetcher: fetcher,
		cache:   cache,
		metrics: recorder,
		logger:  logger.With("component", "extractor.service"),
	}
}

func (s *service) Extract(ctx context.Context, req Request) (Result, error) {
	parsed, err := ParseHTTPURL(req.URL)
	if err != nil {
		s.metrics.ObserveExtraction("invalid_url")
		return Result{}, apperrors.Wrap("invalid_input", "a valid http or https url is required", err)
	}
	target := parsed.String()
	limit := req.MaxChars
	if limit <= 0 {
		limit = s.cfg.MaxChars
	}

	key := cacheKey(target, limit)
	if cached, ok := s.lookup(ctx, key); ok {
		s.metrics.ObserveExtraction("cache_hit")
		return cached, nil
	}

	page, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return Result{}, s.fail(target, err)
	}
	if page.StatusCode < 200 || page.StatusCode >= 300 {
		return Result{}, s.fail(target, &StatusError{StatusCode: page.StatusCode})
	}
	if !isHTML(page.ContentType, page.Body) {
		return Result{}, s.fail(target, fmt.Errorf("%w (content type %q)", ErrNotHTML, page.ContentType))
	}

	doc := string(page.Body)
	text := cleanText(doc)
	if util.CharCount(text) < s.cfg.MinChars {
		return Result{}, s.fail(target, fmt.Errorf("%w: %d characters extracted, at least %d required", ErrTooShort, util.CharCount(text), s.cfg.MinChars))
	}
	text = util.Truncate(text, limit)

	result := Result{
		Title:       extractTitle(doc),
		Text:        text,
		Description: extractDescription(doc),
		Domain:      parsed.Hostname(),
		WordCount:   util.WordCount(text),
	}
	s.metrics.ObserveExtraction("ok")
	s.logger.Info("page extracted", "domain", result.Domain, "chars", util.CharCount(text), "words", result.WordCount)
	s.store(ctx, key, result)
	return result, nil
}

func (s *service) fail(target string, err error) error {
	reason, message := describeFailure(err)
	s.metrics.ObserveExtraction(reason)
	s.logger.Warn("page extraction failed", "url", target, "reason", reason, "error", err)
	return apperrors.Wrap("extraction_failed", message, err)
}

// describeFailure maps a failure to a metric label and a user facing message.
func describeFailure(err error) (string, string) {
	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrTimeout):
		return "timeout", "request timed out while fetching the page"
	case errors.As(err, &statusErr):
		return "http_status", fmt.Sprintf("page returned HTTP %d %s", statusErr.StatusCode, http.StatusText(statusErr.StatusCode))
	case errors.Is(err, ErrNotHTML):
		return "not_html", "page content is not HTML"
	case errors.Is(err, ErrTooShort):
		return "too_short", "content too short to extract meaningful text"
	case errors.Is(err, ErrNetwork):
		return "network", "could not reach the page"
	default:
		return "network", "could not fetch the page"
	}
}

func (s *service) lookup(ctx context.Context, key string) (Result, bool) {
	if s.cache == nil {
		return Result{}, false
	}
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("extraction cache read failed", "error", err)
		return Result{}, false
	}
	return cached, ok
}

func (s *service) store(ctx context.Context, key string, result Result) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, result, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("extraction cache write failed", "error", err)
	}
}

func cacheKey(target string, limit int) string {
	sum := sha256.Sum256([]byte(target))
	return fmt.Sprintf("%s:%d", hex.EncodeToString(sum[:16]), limit)
}

// isHTML trusts a specific Content-Type header and sniffs the body otherwise.
func isHTML(contentType string, body []byte) bool {
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(contentType))
	if err == nil && mediaType != "" && mediaType != "application/octet-stream" {
		return mediaType == "text/html" || mediaType == "application/xhtml+xml"
	}
	return mimetype.Detect(body).Is("text/html")
}
