package indexing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff_Success(t *testing.T) {
	attempts := 0
	operation := func(int) error {
		attempts++
		return nil
	}

	err := RetryWithBackoff(context.Background(), nil, 3, 10*time.Millisecond, operation)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts, "should succeed on first try")
}

func TestRetryWithBackoff_EventualSuccess(t *testing.T) {
	var seen []int
	operation := func(attempt int) error {
		seen = append(seen, attempt)
		if attempt < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	err := RetryWithBackoff(context.Background(), nil, 5, time.Millisecond, operation)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestRetryWithBackoff_AllAttemptsFail(t *testing.T) {
	attempts := 0
	expectedErr := errors.New("persistent error")
	operation := func(int) error {
		attempts++
		return expectedErr
	}

	err := RetryWithBackoff(context.Background(), nil, 3, time.Millisecond, operation)
	require.Error(t, err)
	assert.Equal(t, expectedErr, err, "should return the original error")
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_ExponentialDelay(t *testing.T) {
	start := time.Now()
	err := RetryWithBackoff(context.Background(), nil, 3, 10*time.Millisecond, func(int) error {
		return errors.New("fail")
	})
	require.Error(t, err)
	// 10ms + 20ms
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestRetryWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	operation := func(int) error {
		attempts++
		cancel()
		return errors.New("fail")
	}

	err := RetryWithBackoff(ctx, nil, 5, time.Second, operation)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_InvalidMaxAttempts(t *testing.T) {
	err := RetryWithBackoff(context.Background(), nil, 0, time.Millisecond, func(int) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}
