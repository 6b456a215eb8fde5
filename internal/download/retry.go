package download

import (
	"context"
	"time"

	"github.com/CodexForgeBR/spotdl-bulk/internal/model"
)

// DefaultBaseDelay is the backoff unit: attempt k waits k*DefaultBaseDelay.
const DefaultBaseDelay = 5 * time.Second

// RetryConfig configures linear backoff retry behavior.
type RetryConfig struct {
	MaxAttempts     int           // total attempts per item, at least 1
	BaseDelay       time.Duration // default 5s
	OnAttemptFailed func(attempt int, status int)
	OnRetry         func(attempt int, delay time.Duration)
	Sleep           func(ctx context.Context, d time.Duration) error // default SleepContext
}

// Result describes how an item ended up after retries.
type Result struct {
	Outcome    model.Outcome
	Attempts   int
	LastStatus int
}

// RetryWithBackoff calls fn until it reports status 0 or MaxAttempts attempts
// have failed. After failed attempt k (k < MaxAttempts) it waits BaseDelay*k:
// 5s, 10s, 15s, ... There is no wait after the last attempt.
//
// An error from fn (tool unavailable, cancellation) is returned immediately
// without consuming a retry. A cancelled backoff wait returns ctx.Err().
func RetryWithBackoff(ctx context.Context, cfg RetryConfig, fn func(attempt int) (int, error)) (Result, error) {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.Sleep == nil {
		cfg.Sleep = SleepContext
	}

	res := Result{Outcome: model.Failed}

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		status, err := fn(attempt)
		if err != nil {
			return res, err
		}
		res.Attempts = attempt
		res.LastStatus = status

		if status == 0 {
			res.Outcome = model.Succeeded
			return res, nil
		}

		if cfg.OnAttemptFailed != nil {
			cfg.OnAttemptFailed(attempt, status)
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := cfg.BaseDelay * time.Duration(attempt)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, delay)
		}
		if err := cfg.Sleep(ctx, delay); err != nil {
			return res, err
		}
	}

	return res, nil
}

// SleepContext blocks for d or until ctx is done, whichever comes first.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
