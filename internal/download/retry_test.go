package download

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/spotdl-bulk/internal/model"
)

// recordingSleep returns a Sleep func that records requested delays without waiting.
func recordingSleep(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return ctx.Err()
	}
}

// scripted returns an attempt func that yields statuses in order, then 0.
func scripted(calls *int, statuses ...int) func(int) (int, error) {
	return func(int) (int, error) {
		idx := *calls
		*calls++
		if idx < len(statuses) {
			return statuses[idx], nil
		}
		return 0, nil
	}
}

func TestRetryWithBackoff_LinearBackoff(t *testing.T) {
	var delays []time.Duration
	calls := 0
	cfg := RetryConfig{MaxAttempts: 5, Sleep: recordingSleep(&delays)}

	res, err := RetryWithBackoff(context.Background(), cfg, scripted(&calls, 1, 1, 1, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, model.Failed, res.Outcome)
	assert.Equal(t, 5, calls)
	assert.Equal(t, 5, res.Attempts)
	assert.Equal(t, []time.Duration{
		5 * time.Second, 10 * time.Second, 15 * time.Second, 20 * time.Second,
	}, delays, "no backoff after the final attempt")
}

func TestRetryWithBackoff_AlwaysFailsUsesExactlyMaxAttempts(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		var delays []time.Duration
		calls := 0
		cfg := RetryConfig{MaxAttempts: n, Sleep: recordingSleep(&delays)}

		always := make([]int, 100)
		for i := range always {
			always[i] = 1
		}
		res, err := RetryWithBackoff(context.Background(), cfg, scripted(&calls, always...))
		require.NoError(t, err)
		assert.Equal(t, model.Failed, res.Outcome)
		assert.Equal(t, n, calls, "attempts for MaxAttempts=%d", n)
		assert.Len(t, delays, n-1)
	}
}

func TestRetryWithBackoff_SucceedsOnAttemptK(t *testing.T) {
	var delays []time.Duration
	calls := 0
	cfg := RetryConfig{MaxAttempts: 4, Sleep: recordingSleep(&delays)}

	res, err := RetryWithBackoff(context.Background(), cfg, scripted(&calls, 2, 2))
	require.NoError(t, err)

	assert.Equal(t, model.Succeeded, res.Outcome)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 0, res.LastStatus)
	assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second}, delays)
}

func TestRetryWithBackoff_FirstAttemptSuccessNoSleep(t *testing.T) {
	var delays []time.Duration
	calls := 0
	cfg := RetryConfig{MaxAttempts: 3, Sleep: recordingSleep(&delays)}

	res, err := RetryWithBackoff(context.Background(), cfg, scripted(&calls))
	require.NoError(t, err)
	assert.Equal(t, model.Succeeded, res.Outcome)
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays)
}

func TestRetryWithBackoff_CustomBaseDelay(t *testing.T) {
	var delays []time.Duration
	calls := 0
	cfg := RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Sleep: recordingSleep(&delays)}

	_, err := RetryWithBackoff(context.Background(), cfg, scripted(&calls, 1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, delays)
}

func TestRetryWithBackoff_Callbacks(t *testing.T) {
	var failed [][2]int
	var retried []int
	calls := 0
	cfg := RetryConfig{
		MaxAttempts: 3,
		Sleep:       recordingSleep(new([]time.Duration)),
		OnAttemptFailed: func(attempt, status int) {
			failed = append(failed, [2]int{attempt, status})
		},
		OnRetry: func(attempt int, delay time.Duration) {
			retried = append(retried, attempt)
		},
	}

	res, err := RetryWithBackoff(context.Background(), cfg, scripted(&calls, 4, 9, 1))
	require.NoError(t, err)
	assert.Equal(t, model.Failed, res.Outcome)
	assert.Equal(t, 1, res.LastStatus)
	assert.Equal(t, [][2]int{{1, 4}, {2, 9}, {3, 1}}, failed)
	assert.Equal(t, []int{1, 2}, retried, "OnRetry is not called after the last attempt")
}

func TestRetryWithBackoff_FatalErrorPropagatesImmediately(t *testing.T) {
	var delays []time.Duration
	calls := 0
	fatal := &ToolUnavailableError{Tool: "spotdl", Err: errors.New("not found")}
	cfg := RetryConfig{MaxAttempts: 5, Sleep: recordingSleep(&delays)}

	res, err := RetryWithBackoff(context.Background(), cfg, func(int) (int, error) {
		calls++
		return -1, fatal
	})

	var toolErr *ToolUnavailableError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, res.Attempts, "fatal error does not consume a retry")
	assert.Empty(t, delays)
}

func TestRetryWithBackoff_CancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	cfg := RetryConfig{
		MaxAttempts: 5,
		Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	_, err := RetryWithBackoff(ctx, cfg, scripted(&calls, 1, 1, 1, 1, 1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "no further attempts after cancellation")
}

func TestRetryWithBackoff_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0

	_, err := RetryWithBackoff(ctx, RetryConfig{MaxAttempts: 3}, scripted(&calls))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestRetryWithBackoff_ZeroMaxAttemptsMeansOne(t *testing.T) {
	calls := 0
	res, err := RetryWithBackoff(context.Background(), RetryConfig{}, scripted(&calls, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, model.Failed, res.Outcome)
}

func TestSleepContext(t *testing.T) {
	t.Run("waits for duration", func(t *testing.T) {
		start := time.Now()
		require.NoError(t, SleepContext(context.Background(), 50*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
	})

	t.Run("returns early on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()
		start := time.Now()
		err := SleepContext(ctx, 10*time.Second)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("zero duration", func(t *testing.T) {
		assert.NoError(t, SleepContext(context.Background(), 0))
	})
}
