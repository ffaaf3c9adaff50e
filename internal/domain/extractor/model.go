package extractor

import (
	"errors"
	"fmt"
	"time"
)

// Config bounds the extracted text.
type Config struct {
	MaxChars int
	MinChars int
	CacheTTL time.Duration
}

// Request represents the incoming extraction payload. MaxChars overrides the
// configured cap when positive; it is never read from the wire.
type Request struct {
	URL      string `json:"url"`
	MaxChars int    `json:"-"`
}

// Result is the plain text of a page plus lightweight metadata.
type Result struct {
	Title       string `json:"title,omitempty"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
	Domain      string `json:"domain"`
	WordCount   int    `json:"wordCount"`
}

// Page is a raw fetched document.
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

var (
	ErrTimeout      = errors.New("request timed out")
	ErrNetwork      = errors.New("network error")
	ErrNotHTML      = errors.New("content is not html")
	ErrTooShort     = errors.New("content too short")
	ErrUpstreamHTTP = errors.New("upstream http error")
)

// StatusError reports a non-OK upstream status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("page returned HTTP %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstreamHTTP
}
