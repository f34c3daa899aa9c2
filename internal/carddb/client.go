// Package carddb downloads, caches and normalizes card databases.
package carddb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultRateLimit      = 250 * time.Millisecond // 4 req/sec
	defaultRequestTimeout = 60 * time.Second
	defaultMaxRetries     = 2
	initialBackoff        = 1 * time.Second
	maxBackoff            = 16 * time.Second
)

// Client is a rate-limited HTTP client for card database endpoints.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
	maxRetries  int
	backoff     time.Duration
}

// ClientOptions configures a Client.
type ClientOptions struct {
	Timeout    time.Duration // HTTP request timeout
	RateLimit  time.Duration // Minimum delay between requests
	UserAgent  string
	MaxRetries int // Retries after HTTP 429 only
}

// DefaultClientOptions returns sensible default client options.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:    defaultRequestTimeout,
		RateLimit:  defaultRateLimit,
		UserAgent:  "TCG-Deck-Companion/1.0",
		MaxRetries: defaultMaxRetries,
	}
}

// NewClient creates a new card database client.
func NewClient(options ClientOptions) *Client {
	if options.Timeout <= 0 {
		options.Timeout = defaultRequestTimeout
	}
	if options.RateLimit <= 0 {
		options.RateLimit = defaultRateLimit
	}
	if options.UserAgent == "" {
		options.UserAgent = DefaultClientOptions().UserAgent
	}
	return &Client{
		httpClient:  &http.Client{Timeout: options.Timeout},
		rateLimiter: rate.NewLimiter(rate.Every(options.RateLimit), 1),
		userAgent:   options.UserAgent,
		maxRetries:  options.MaxRetries,
		backoff:     initialBackoff,
	}
}

// Fetch GETs url and returns the response body. Network failures are not
// retried: the loader falls back to a stale cache instead. Rate limiting
// (HTTP 429) is retried with exponential backoff.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	backoff := c.backoff

	for attempt := 0; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if readErr != nil {
				return nil, fmt.Errorf("failed to read response body: %w", readErr)
			}
			return body, nil

		case http.StatusTooManyRequests:
			if attempt >= c.maxRetries {
				return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: "rate limited"}
			}
			wait := backoff
			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs >= 0 {
				wait = time.Duration(secs) * time.Second
			}
			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
			backoff = min(backoff*2, maxBackoff)

		case http.StatusNotFound:
			return nil, &NotFoundError{URL: url}

		default:
			return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
