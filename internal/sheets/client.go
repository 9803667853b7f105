package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxBackoff = 30 * time.Second

// ClientConfig locates the published spreadsheets.
type ClientConfig struct {
	BaseURL       string // e.g. https://docs.google.com/spreadsheets/d
	StatusID      string // Spreadsheet holding the daily status table
	StatusGID     string
	LedgerID      string // Spreadsheet holding the component ledgers
	DetailsGID    string
	EnginesGID    string
	PropellersGID string
	Timeout       time.Duration
	MaxRetries    int // Retries after the first attempt; negative retries forever
	RetryBackoff  time.Duration
}

// HTTPError reports a non-2xx response.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Client fetches exports over HTTP, retrying transient failures with
// exponential backoff.
type Client struct {
	http         *http.Client
	cfg          ClientConfig
	maxRetries   int
	retryBackoff time.Duration
}

// NewClient creates an export client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 1 * time.Second
	}
	return &Client{
		http:         &http.Client{Timeout: timeout},
		cfg:          cfg,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: backoff,
	}
}

// URL builds the export address.
func (c *Client) URL(export Export) (string, error) {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	switch export {
	case StatusExport:
		return fmt.Sprintf("%s/%s/gviz/tq?tqx=out:json&gid=%s", base, url.PathEscape(c.cfg.StatusID), url.QueryEscape(c.cfg.StatusGID)), nil
	case DetailsExport:
		return c.csvURL(base, c.cfg.DetailsGID), nil
	case EnginesExport:
		return c.csvURL(base, c.cfg.EnginesGID), nil
	case PropellersExport:
		return c.csvURL(base, c.cfg.PropellersGID), nil
	default:
		return "", fmt.Errorf("unknown export %q", export)
	}
}

func (c *Client) csvURL(base, gid string) string {
	return fmt.Sprintf("%s/%s/export?format=csv&gid=%s", base, url.PathEscape(c.cfg.LedgerID), url.QueryEscape(gid))
}

// Fetch downloads an export.
func (c *Client) Fetch(ctx context.Context, export Export) ([]byte, error) {
	target, err := c.URL(export)
	if err != nil {
		return nil, err
	}

	retryCount := 0
	backoff := c.retryBackoff

	for {
		body, err := c.get(ctx, target)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !retryable(err) {
			return nil, err
		}

		retryCount++
		if c.maxRetries >= 0 && retryCount > c.maxRetries {
			return nil, fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, err)
		}
		slog.Warn("Failed to fetch sheet export", "export", export, "retry", retryCount, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		// Exponential backoff: 1s, 2s, 4s, 8s, max 30s
		backoff = backoff * 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", target, err)
	}
	return body, nil
}

func retryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	return true
}
