// Package httputil provides HTTP helpers for fetching remote commit lists.
//
// The main entry point is [Fetch], which performs a GET request with
// retries on transient failures (network errors and 5xx responses).
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/gitlanes/gitlanes/pkg/errors"
)

// maxBodySize caps response bodies to guard against runaway downloads.
// Commit lists are small; 32 MiB is generous.
const maxBodySize = 32 << 20

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

	for i := range attempts {
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

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Fetch performs a GET request against url and returns the response body.
// Transient failures (connection errors, HTTP 5xx) are retried up to three
// times with exponential backoff starting at one second. Non-2xx responses
// other than 5xx fail immediately.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	return FetchWithClient(ctx, http.DefaultClient, url)
}

// FetchWithClient is [Fetch] with a caller-supplied http.Client.
func FetchWithClient(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	var body []byte

	err := Retry(ctx, 3, time.Second, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "building request for %s", url)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return &RetryableError{Err: apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetching %s", url)}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return &RetryableError{Err: apperrors.New(apperrors.ErrCodeNetwork,
				"fetching %s: server returned %s", url, resp.Status)}
		case resp.StatusCode == http.StatusNotFound:
			return apperrors.New(apperrors.ErrCodeNotFound, "fetching %s: %s", url, resp.Status)
		case resp.StatusCode != http.StatusOK:
			return apperrors.New(apperrors.ErrCodeNetwork, "fetching %s: unexpected status %s", url, resp.Status)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return &RetryableError{Err: fmt.Errorf("reading response from %s: %w", url, err)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
