package extractor

import (
	"errors"
	"net/url"
	"strings"
)

// IsHTTPURL reports whether s is an absolute http or https URL.
func IsHTTPURL(s string) bool {
	_, err := ParseHTTPURL(s)
	return err == nil
}

// ParseHTTPURL parses s and requires an http(s) scheme and a host.
func ParseHTTPURL(s string) (*url.URL, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t\r\n") {
		return nil, errors.New("url must be a single absolute http or https address")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return nil, errors.New("url must use http or https scheme")
	}
	if parsed.Hostname() == "" {
		return nil, errors.New("url must have a host")
	}
	return parsed, nil
}
