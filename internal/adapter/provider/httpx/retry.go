// Package httpx holds the HTTP plumbing shared by the external API adapters.
package httpx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy controls how transient failures are retried.
// MaxRetries is the number of extra attempts after the first one.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy retries once after roughly half a second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      1,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

// StatusError reports a response status that exhausted the retries.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Retryable reports whether a response status is worth another attempt.
func Retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Do sends req, retrying network errors, 429 and 5xx responses according to
// policy. Any other response (including 4xx) is returned to the caller, who
// must close its body. The request must not carry a body.
func Do(ctx context.Context, client *http.Client, req *http.Request, policy RetryPolicy, log *slog.Logger) (*http.Response, error) {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = policy.InitialInterval
	if policy.MaxInterval > 0 {
		expo.MaxInterval = policy.MaxInterval
	}
	expo.MaxElapsedTime = 0

	retries := policy.MaxRetries
	if retries < 0 {
		retries = 0
	}
	b := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(retries)), ctx)

	var resp *http.Response
	op := func() error {
		r, err := client.Do(req.Clone(ctx))
		if err != nil {
			// Don't retry if context is already cancelled.
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		if Retryable(r.StatusCode) {
			drain(r)
			return &StatusError{Code: r.StatusCode}
		}
		resp = r
		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.WarnContext(ctx, "retrying request",
			slog.String("url", req.URL.Redacted()),
			slog.String("reason", err.Error()),
			slog.Duration("wait", wait),
		)
	}

	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, err
	}
	return resp, nil
}

// drain discards and closes a body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}
