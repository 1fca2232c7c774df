package retry

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// Retry executes fn with exponential backoff until it succeeds or maxAttempts is reached.
// The backoff doubles after each failed attempt starting from initialBackoff.
// Non-retryable errors return immediately, and a done ctx stops the loop.
func Retry(ctx context.Context, fn func(ctx context.Context) error, maxAttempts int, initialBackoff time.Duration) error {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !IsRetryable(lastErr) {
			return lastErr
		}

		// Don't sleep after the last attempt
		if attempt < maxAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return lastErr
			}
			backoff *= 2
		}
	}

	return lastErr
}

// IsRetryable returns true if the error is a transient error that should be retried.
// This covers per-attempt timeouts and a binary that is momentarily busy or
// short of resources. A process that ran and exited non-zero is not retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.ETXTBSY) || errors.Is(err, syscall.ENOMEM) {
		return true
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// killed by the per-attempt timeout
		return !exitErr.Exited()
	}

	errStr := err.Error()
	return strings.Contains(errStr, "resource temporarily unavailable") ||
		strings.Contains(errStr, "text file busy")
}
