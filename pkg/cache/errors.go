package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks failures talking to a remote cache.
var ErrNetwork = errors.New("network error")

// RetryableError marks a transient failure. Only these are retried by
// RetryWithBackoff; everything else is returned at once.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. It returns nil for nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const retryAttempts = 3

// retryDelay is the first backoff interval. Tests shorten it.
var retryDelay = 100 * time.Millisecond

// RetryWithBackoff calls fn until it succeeds, fails permanently, or
// retryAttempts calls have been made. The wait doubles after each failure.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	err := fn()
	for attempt, delay := 1, retryDelay; attempt < retryAttempts && IsRetryable(err); attempt, delay = attempt+1, delay*2 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		err = fn()
	}
	return err
}
