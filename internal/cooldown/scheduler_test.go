package cooldown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConvertsSeconds(t *testing.T) {
	s := New(20, 2.5, nil)
	assert.Equal(t, 20*time.Second, s.Base)
	assert.Equal(t, 2500*time.Millisecond, s.Jitter)
}

func TestDuration_WithinBounds(t *testing.T) {
	tests := []struct {
		name         string
		base, jitter float64
	}{
		{"default bulk", 20, 2},
		{"no jitter", 10, 0},
		{"jitter larger than base", 1, 5},
		{"zero", 0, 0},
		{"zero base with jitter", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.base, tt.jitter, NewRand(42))
			lo := time.Duration(max(0, tt.base-tt.jitter) * float64(time.Second))
			hi := time.Duration((tt.base + tt.jitter) * float64(time.Second))

			for i := 0; i < 1000; i++ {
				d := s.Duration()
				require.GreaterOrEqual(t, d, lo)
				require.LessOrEqual(t, d, hi)
			}
		})
	}
}

func TestDuration_NoJitterIsExact(t *testing.T) {
	s := New(7, 0, NewRand(1))
	for i := 0; i < 10; i++ {
		assert.Equal(t, 7*time.Second, s.Duration())
	}
}

func TestDuration_SeededIsDeterministic(t *testing.T) {
	a := New(20, 2, NewRand(99))
	b := New(20, 2, NewRand(99))
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Duration(), b.Duration())
	}
}

func TestDuration_JitterVaries(t *testing.T) {
	s := New(20, 2, NewRand(7))
	seen := make(map[time.Duration]bool)
	for i := 0; i < 50; i++ {
		seen[s.Duration()] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestWait_UsesInjectedSleep(t *testing.T) {
	var slept []time.Duration
	var started time.Duration
	s := New(3, 0, nil)
	s.OnStart = func(d time.Duration) { started = d }
	s.Sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	d, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, d)
	assert.Equal(t, 3*time.Second, started)
	assert.Equal(t, []time.Duration{3 * time.Second}, slept)
}

func TestWait_Countdown(t *testing.T) {
	var ticks []time.Duration
	s := &Scheduler{
		Base:     250 * time.Millisecond,
		Interval: 50 * time.Millisecond,
		OnTick:   func(r time.Duration) { ticks = append(ticks, r) },
	}

	start := time.Now()
	_, err := s.Wait(context.Background())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, 240*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
	assert.GreaterOrEqual(t, len(ticks), 3)
	for i := 1; i < len(ticks); i++ {
		assert.Less(t, ticks[i], ticks[i-1], "remaining time decreases")
	}
}

func TestCountdown_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := Countdown(ctx, 10*time.Second, time.Second, nil)

	assert.Equal(t, context.Canceled, err)
	assert.Less(t, time.Since(start), time.Second, "should cancel quickly")
}

func TestCountdown_ZeroDurationReturnsImmediately(t *testing.T) {
	called := false
	err := Countdown(context.Background(), 0, time.Second, func(time.Duration) { called = true })
	require.NoError(t, err)
	assert.False(t, called)
}

func TestCountdown_DefaultInterval(t *testing.T) {
	ticks := 0
	err := Countdown(context.Background(), 20*time.Millisecond, 0, func(time.Duration) { ticks++ })
	require.NoError(t, err)
	assert.Equal(t, 1, ticks, "a 20ms wait fits in one default 1s step")
}

func TestWait_OnDoneOnlyAfterFullWait(t *testing.T) {
	done := 0
	s := New(1, 0, nil)
	s.OnDone = func() { done++ }
	s.Sleep = func(ctx context.Context, d time.Duration) error { return nil }

	_, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	s.Sleep = func(ctx context.Context, d time.Duration) error { return context.Canceled }
	_, err = s.Wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, done, "OnDone is skipped when the wait is cancelled")
}
