package webpage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/yanqian/cspark/internal/domain/extractor"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultBodyLimit = 5 << 20
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	maxRedirects     = 10
)

// Fetcher downloads pages the way a desktop browser would request them.
type Fetcher struct {
	userAgent  string
	bodyLimit  int64
	httpClient *http.Client
}

// NewFetcher builds a page fetcher. Zero values fall back to defaults.
func NewFetcher(userAgent string, timeout time.Duration, bodyLimit int64) *Fetcher {
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if bodyLimit <= 0 {
		bodyLimit = defaultBodyLimit
	}
	return &Fetcher{
		userAgent: userAgent,
		bodyLimit: bodyLimit,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

// Fetch retrieves the page. Non-OK statuses are returned as a Page, not an error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (extractor.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return extractor.Page{}, fmt.Errorf("%w: build page request: %v", extractor.ErrNetwork, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return extractor.Page{}, classify(err)
	}
	defer resp.Body.Close()

	page := extractor.Page{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return page, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.bodyLimit))
	if err != nil {
		return extractor.Page{}, classify(err)
	}
	page.Body = toUTF8(body, page.ContentType)
	return page, nil
}

// toUTF8 transcodes the body using the declared or sniffed charset.
// Undecodable bodies are returned unchanged.
func toUTF8(body []byte, contentType string) []byte {
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return body
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return body
	}
	return decoded
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", extractor.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", extractor.ErrNetwork, err)
}

var _ extractor.PageFetcher = (*Fetcher)(nil)
