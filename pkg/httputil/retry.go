// Package httputil provides small HTTP client helpers shared by the data
// source integrations: retry with exponential backoff and JSON request
// plumbing with transient-failure classification.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses) with this type
// so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times with exponential backoff.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. The delay doubles after each failed attempt.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff is a convenience wrapper around [Retry] with sensible
// defaults: 3 attempts with 1 second initial delay (doubling each retry).
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// =============================================================================
// JSON Requests
// =============================================================================

// GetJSON performs a GET request and decodes the JSON response body into out.
// Server errors (5xx) and transport failures come back wrapped as
// [RetryableError]; client errors (4xx) do not, since retrying them cannot
// help. A 204 or empty body leaves out untouched.
func GetJSON(ctx context.Context, client *http.Client, url string, out any) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return &RetryableError{Err: fmt.Errorf("GET %s: status %d", url, resp.StatusCode)}
	case resp.StatusCode >= 400:
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	case resp.StatusCode == http.StatusNoContent:
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RetryableError{Err: err}
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
