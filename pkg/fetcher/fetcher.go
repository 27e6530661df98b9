// Package fetcher loads page snapshots for extraction: over HTTP with colly,
// through a headless browser with chromedp, or from a local file or stdin.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves the page at url.
	Fetch(ctx context.Context, url string, opts Options) (Page, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns "static" or "dynamic".
	Type() string
}

// Options controls one fetch.
type Options struct {
	UserAgent       string
	Timeout         time.Duration
	WaitForSelector string        // dynamic only
	WaitDuration    time.Duration // dynamic only, extra wait after load
	Headers         map[string]string
}

// Page is a fetched document.
type Page struct {
	URL         string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// Fetch modes accepted by New.
const (
	ModeStatic  = "static"
	ModeDynamic = "dynamic"
)

// DefaultUserAgent identifies cleanread to servers.
const DefaultUserAgent = "Mozilla/5.0 (compatible; cleanread/1.0; +https://github.com/jmylchreest/cleanread)"

// DefaultTimeout bounds one fetch.
const DefaultTimeout = 30 * time.Second

// ErrNotHTML is returned when the response is not an HTML document.
var ErrNotHTML = errors.New("response is not HTML")

// Config holds common fetcher configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

func (c Config) withDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// New returns the fetcher for mode. An empty mode selects static.
func New(mode string, cfg Config) (Fetcher, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeStatic:
		return NewStatic(cfg), nil
	case ModeDynamic:
		return NewDynamic(cfg), nil
	default:
		return nil, fmt.Errorf("unknown fetch mode %q (supported: static, dynamic)", mode)
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
