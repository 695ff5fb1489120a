package api

import (
	"context"
	"time"
)

// RetryOptions bounds the retry loop. Zero values take the defaults below,
// matching how the transport layer treats unset config.
type RetryOptions struct {
	Retries int           // additional attempts after the first
	Delay   time.Duration // linear back-off base
}

const (
	defaultRetries = 2
	defaultDelay   = 200 * time.Millisecond
)

// WithRetry runs fn with bounded retry and linear back-off. A *Error in the
// 4xx range is returned immediately: client errors are not transient. Only
// read-style operations should go through here; mutations rely on
// idempotency keys plus caller-level retry instead.
func WithRetry[T any](ctx context.Context, opts RetryOptions, fn func(context.Context) (T, error)) (T, error) {
	retries := opts.Retries
	if retries == 0 {
		retries = defaultRetries
	}
	delay := opts.Delay
	if delay == 0 {
		delay = defaultDelay
	}

	var zero T
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay * time.Duration(attempt)):
			}
		}

		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		if apiErr, ok := AsError(err); ok && apiErr.IsClientError() {
			return zero, err
		}
		lastErr = err
	}
	return zero, lastErr
}
