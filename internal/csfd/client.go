package csfd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mhavel/csfd/internal/errutil"
)

//go:generate mockgen -destination=../mocks/doer.go -package=mocks github.com/mhavel/csfd/internal/csfd Doer
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	// userAgent mimics a regular desktop browser. ČSFD serves a reduced
	// page to unknown clients.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	// acceptLanguage asks for the Czech version of every page, which is
	// what the parsers expect.
	acceptLanguage = "cs-CZ,cs;q=0.9,en;q=0.8"
)

// Client fetches pages from ČSFD.cz. It rate-limits every request and
// retries transient failures with exponential backoff.
type Client struct {
	baseURL        string
	maxRetries     int
	retryBaseDelay time.Duration
	limiter        *RateLimiter
	http           Doer
}

// NewClient creates a new Client from cfg. Zero values in cfg fall back to
// the same defaults as the env tags.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return NewClientWithDoer(cfg, &http.Client{
		Timeout: timeout,
	})
}

// NewClientWithDoer creates a new Client that sends its requests through
// doer. Useful for tests.
func NewClientWithDoer(cfg Config, doer Doer) *Client {
	if cfg.URL == "" {
		cfg.URL = "https://www.csfd.cz"
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = time.Second
	}

	return &Client{
		baseURL:        cfg.URL,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		limiter:        NewRateLimiter(cfg.RequestsPerSecond),
		http:           doer,
	}
}

// Fetch retrieves the page at path (relative to the base URL) and returns
// its body.
//
// 404 fails immediately with a NotFoundError. 429, 5xx and transport
// errors (timeouts included) are retried with exponential backoff until
// the retry budget runs out, then surface as ErrRateLimited or a
// StatusError. Any other non-2xx status fails immediately.
func (c *Client) Fetch(ctx context.Context, path string) (string, error) {
	url := c.baseURL + path

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		body, retryable, err := c.do(ctx, url)
		if err == nil {
			return body, nil
		}
		if !retryable || attempt >= c.maxRetries {
			return "", err
		}
		if err = sleep(ctx, c.backoffDelay(attempt)); err != nil {
			return "", err
		}
	}
}

// do performs a single GET attempt. retryable reports whether a failure is
// worth another attempt.
func (c *Client) do(ctx context.Context, url string) (body string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", true, fmt.Errorf("send http request: %w", err)
	}
	defer errutil.RunAndSetError(res.Body.Close, &err, "close response body")

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		data, err := io.ReadAll(res.Body)
		if err != nil {
			return "", true, fmt.Errorf("read response body: %w", err)
		}
		return string(data), false, nil
	case res.StatusCode == http.StatusNotFound:
		return "", false, &NotFoundError{URL: url}
	case res.StatusCode == http.StatusTooManyRequests:
		return "", true, ErrRateLimited
	case res.StatusCode >= 500:
		return "", true, &StatusError{URL: url, StatusCode: res.StatusCode}
	default:
		return "", false, &StatusError{URL: url, StatusCode: res.StatusCode}
	}
}

// backoffDelay returns the delay before the retry that follows attempt
// (0-indexed): base, 2*base, 4*base, ...
func (c *Client) backoffDelay(attempt int) time.Duration {
	return c.retryBaseDelay << attempt
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
