package poller

import (
	"context"
	"time"
)

// throttle spaces tick starts by a fixed interval, with an initial warm-up
// budget of ticks that run back-to-back so a consumer folding over the
// stream gets its first readings immediately.
type throttle struct {
	interval time.Duration
	skips    int
	next     time.Time

	// Injected for tests.
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

func newThrottle(interval time.Duration, skips int) *throttle {
	return &throttle{
		interval: interval,
		skips:    skips,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// wait blocks until the next tick may start.
func (t *throttle) wait(ctx context.Context) error {
	if t.skips > 0 {
		t.skips--
		t.arm()
		return nil
	}
	if d := t.next.Sub(t.now()); d > 0 {
		if err := t.sleep(ctx, d); err != nil {
			return err
		}
	}
	t.arm()
	return nil
}

// arm sets the earliest start of the following tick.
func (t *throttle) arm() {
	t.next = t.now().Add(t.interval)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
