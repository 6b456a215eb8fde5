package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances its time by the requested duration on every After call.
type fakeClock struct {
	now   time.Time
	waits []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func TestWaiter_PastTargetReturnsImmediately(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	started := false
	w := &Waiter{Now: clock.Now, After: clock.After, OnStart: func(time.Time, time.Duration) { started = true }}

	err := w.Until(context.Background(), clock.now.Add(-time.Minute))

	require.NoError(t, err)
	assert.False(t, started)
	assert.Empty(t, clock.waits)
}

func TestWaiter_AdaptiveIntervals(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	target := clock.now.Add(90 * time.Second)

	var ticks []time.Duration
	var initial time.Duration
	w := &Waiter{
		Now:     clock.Now,
		After:   clock.After,
		OnStart: func(_ time.Time, remaining time.Duration) { initial = remaining },
		OnTick:  func(remaining time.Duration) { ticks = append(ticks, remaining) },
	}

	err := w.Until(context.Background(), target)

	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, initial)
	// 10s steps down to one minute, then 1s steps.
	require.Len(t, clock.waits, 3+60)
	assert.Equal(t, 10*time.Second, clock.waits[0])
	assert.Equal(t, 10*time.Second, clock.waits[2])
	assert.Equal(t, time.Second, clock.waits[3])
	assert.Equal(t, 80*time.Second, ticks[0])
	assert.True(t, clock.now.Equal(target))
}

func TestWaiter_NeverOvershootsTarget(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	target := clock.now.Add(1500 * time.Millisecond)
	w := &Waiter{Now: clock.Now, After: clock.After}

	require.NoError(t, w.Until(context.Background(), target))
	assert.Equal(t, []time.Duration{time.Second, 500 * time.Millisecond}, clock.waits)
}

func TestWaiter_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &Waiter{After: func(time.Duration) <-chan time.Time { return nil }}
	err := w.Until(ctx, time.Now().Add(time.Hour))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaiter_CancelledWithPastTarget(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &Waiter{}
	assert.ErrorIs(t, w.Until(ctx, time.Now().Add(-time.Hour)), context.Canceled)
}

func TestWaiter_RealClock(t *testing.T) {
	w := &Waiter{}
	start := time.Now()

	require.NoError(t, w.Until(context.Background(), start.Add(150*time.Millisecond)))
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestInterval(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      time.Duration
	}{
		{2 * time.Hour, time.Minute},
		{30 * time.Minute, 30 * time.Second},
		{5 * time.Minute, 10 * time.Second},
		{30 * time.Second, time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Interval(tt.remaining), tt.remaining.String())
	}
}
