package devicegw

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy retries transient gateway failures with doubling backoff
// and jitter. Command handling on the gateway side is idempotent per
// order, so a retry after an ambiguous failure is safe.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    5 * time.Second,
		sleep:       sleepContext,
	}
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

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay << attempt
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	// up to 25% jitter so concurrent retries spread out
	return d + time.Duration(rand.Int63n(int64(d)/4+1))
}

// Do runs fn until it succeeds, attempts run out or the context ends.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			if serr := sleep(ctx, p.delay(attempt-1)); serr != nil {
				return serr
			}
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}
