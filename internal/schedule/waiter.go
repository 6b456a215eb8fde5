package schedule

import (
	"context"
	"time"
)

// Waiter blocks until a target time, reporting progress at an interval
// that shrinks as the target approaches.
type Waiter struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// After defaults to time.After.
	After func(d time.Duration) <-chan time.Time
	// OnStart is called once before waiting with the initial remaining time.
	OnStart func(target time.Time, remaining time.Duration)
	// OnTick is called after each interval while time remains.
	OnTick func(remaining time.Duration)
}

// Until waits for target. It returns at once when target is not in the
// future, and ctx.Err() if ctx is cancelled first.
func (w *Waiter) Until(ctx context.Context, target time.Time) error {
	now := w.Now
	if now == nil {
		now = time.Now
	}
	after := w.After
	if after == nil {
		after = time.After
	}

	remaining := target.Sub(now())
	if remaining <= 0 {
		return ctx.Err()
	}
	if w.OnStart != nil {
		w.OnStart(target, remaining)
	}

	for {
		interval := min(Interval(remaining), remaining)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-after(interval):
		}

		remaining = target.Sub(now())
		if remaining <= 0 {
			return nil
		}
		if w.OnTick != nil {
			w.OnTick(remaining)
		}
	}
}

// Interval is the progress interval for a given remaining time.
func Interval(remaining time.Duration) time.Duration {
	switch {
	case remaining > time.Hour:
		return time.Minute
	case remaining > 10*time.Minute:
		return 30 * time.Second
	case remaining > time.Minute:
		return 10 * time.Second
	default:
		return time.Second
	}
}
