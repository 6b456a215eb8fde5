// Package cooldown implements the randomized pause inserted between items in
// bulk mode.
package cooldown

import (
	"context"
	"math/rand/v2"
	"time"
)

// DefaultInterval is how often Countdown reports the remaining time.
const DefaultInterval = time.Second

// Scheduler computes and waits out jittered cooldowns.
type Scheduler struct {
	Base   time.Duration
	Jitter time.Duration

	// Rand supplies the jitter. nil uses the global math/rand/v2 source.
	Rand *rand.Rand

	// OnStart is called with the chosen duration before waiting.
	OnStart func(d time.Duration)
	// OnTick is called with the remaining time roughly every Interval.
	OnTick func(remaining time.Duration)
	// OnDone is called after a wait that ran to completion.
	OnDone func()
	// Interval between OnTick calls, default DefaultInterval.
	Interval time.Duration

	// Sleep replaces the countdown wait when set (tests).
	Sleep func(ctx context.Context, d time.Duration) error
}

// New builds a Scheduler from base and jitter expressed in seconds.
func New(baseSeconds, jitterSeconds float64, rng *rand.Rand) *Scheduler {
	return &Scheduler{
		Base:   seconds(baseSeconds),
		Jitter: seconds(jitterSeconds),
		Rand:   rng,
	}
}

// NewRand returns a seeded generator for deterministic jitter.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Duration returns Base plus a uniform offset in [-Jitter, +Jitter],
// floored at zero.
func (s *Scheduler) Duration() time.Duration {
	var u float64
	if s.Rand != nil {
		u = s.Rand.Float64()
	} else {
		u = rand.Float64()
	}
	offset := time.Duration((u*2 - 1) * float64(s.Jitter))
	d := s.Base + offset
	if d < 0 {
		return 0
	}
	return d
}

// Wait picks a duration and blocks for it. It returns the chosen duration,
// and ctx.Err() if ctx is cancelled first.
func (s *Scheduler) Wait(ctx context.Context) (time.Duration, error) {
	d := s.Duration()
	if s.OnStart != nil {
		s.OnStart(d)
	}
	var err error
	if s.Sleep != nil {
		err = s.Sleep(ctx, d)
	} else {
		err = Countdown(ctx, d, s.Interval, s.OnTick)
	}
	if err == nil && s.OnDone != nil {
		s.OnDone()
	}
	return d, err
}

// Countdown waits for d, calling onTick with the remaining time before each
// step of at most interval. Respects context cancellation.
func Countdown(ctx context.Context, d, interval time.Duration, onTick func(remaining time.Duration)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	end := time.Now().Add(d)

	for {
		remaining := time.Until(end)
		if remaining <= 0 {
			return nil
		}
		if onTick != nil {
			onTick(remaining)
		}

		step := interval
		if step > remaining {
			step = remaining
		}

		timer := time.NewTimer(step)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
