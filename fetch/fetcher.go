// Package fetch retrieves pages and feeds over HTTP with a browser-like
// identity, bounded retry on transient failures, and charset normalization.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"wavefeeds/config"
)

// browserHeaders mimics a regular browser session; some origins serve
// stripped or blocked pages to unknown clients.
var browserHeaders = map[string]string{
	"User-Agent":      config.UserAgent,
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.7",
	"Connection":      "keep-alive",
	"Cache-Control":   "no-cache",
}

// retryStatus lists the HTTP statuses treated as transient.
var retryStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// StatusError reports a non-2xx response. Callers treat it as "this
// source is unavailable" and move on.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
}

// Fetcher performs HTTP GETs with retry and per-host rate limiting.
// The pipeline is sequential, so Fetcher is not safe for concurrent use.
type Fetcher struct {
	client   *http.Client
	attempts int
	baseWait time.Duration
	limiters map[string]*rate.Limiter
	perHost  rate.Limit
}

// New creates a Fetcher with the given per-request timeout.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		attempts: config.MaxFetchAttempts,
		baseWait: config.RetryBaseDelay,
		limiters: make(map[string]*rate.Limiter),
		// one request per half second per host keeps us polite
		perHost: rate.Every(500 * time.Millisecond),
	}
}

// NewWithClient creates a Fetcher around an injected HTTP client,
// used by tests to point at a local server.
func NewWithClient(client *http.Client) *Fetcher {
	f := New(config.FetchTimeout)
	f.client = client
	return f
}

// Fetch GETs rawURL and returns the body decoded to UTF-8. Transient
// statuses (429, 500, 502, 503, 504) are retried with exponential
// backoff; any other failure returns immediately.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	var lastErr error
	wait := f.baseWait

	for attempt := 1; attempt <= f.attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			wait *= 2
		}

		body, err := f.get(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if se, ok := err.(*StatusError); !ok || !retryStatus[se.Code] {
			return "", err
		}
	}
	return "", lastErr
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (string, error) {
	if err := f.waitHost(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: rawURL, Code: resp.StatusCode}
	}

	// Re-decode using detected encoding; declared charsets lie often
	// enough to garble text otherwise.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", rawURL, err)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rawURL, err)
	}
	return string(raw), nil
}

// waitHost blocks until the per-host limiter admits another request.
func (f *Fetcher) waitHost(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	host := strings.ToLower(u.Host)
	lim, ok := f.limiters[host]
	if !ok {
		lim = rate.NewLimiter(f.perHost, 1)
		f.limiters[host] = lim
	}
	return lim.Wait(ctx)
}
