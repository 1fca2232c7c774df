package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("thumbnail: %w", context.DeadlineExceeded)
		}
		return nil
	}, 5, time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("invalid data found when processing input")
	calls := 0
	err := Retry(context.Background(), func(ctx context.Context) error {
		calls++
		return permanent
	}, 5, time.Millisecond)

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), func(ctx context.Context) error {
		calls++
		return syscall.EAGAIN
	}, 3, time.Millisecond)

	assert.ErrorIs(t, err, syscall.EAGAIN)
	assert.Equal(t, 3, calls)
}

func TestRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Retry(context.Background(), func(ctx context.Context) error {
		calls++
		return syscall.EAGAIN
	}, 0, time.Millisecond)

	assert.Equal(t, 1, calls)
}

func TestRetry_CancelledContextStopsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return syscall.EAGAIN
	}, 5, time.Hour)

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	testCases := []struct {
		err      error
		expected bool
	}{
		{nil, false},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), true},
		{context.Canceled, false},
		{syscall.ETXTBSY, true},
		{errors.New("fork/exec ffmpeg: resource temporarily unavailable"), true},
		{errors.New("exit status 1"), false},
	}

	for _, tc := range testCases {
		if got := IsRetryable(tc.err); got != tc.expected {
			t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.expected)
		}
	}
}
