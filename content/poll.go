package content

import (
	"context"
	"errors"
	"time"
)

// ErrPollTimeout is returned by Poll when the timeout elapses before the
// condition holds.
var ErrPollTimeout = errors.New("poll timed out")

// Sleep pauses for d. It returns early with the context's error if ctx is
// done first.
func Sleep(ctx context.Context, d time.Duration) error {
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

// CondFunc is a condition checked by Poll.
type CondFunc func(ctx context.Context) (bool, error)

// Poll checks cond immediately and then every interval until it returns
// true, returns an error, the timeout elapses, or ctx is done.
func Poll(ctx context.Context, interval, timeout time.Duration, cond CondFunc) error {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := cond(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return ErrPollTimeout
		}
		if err := Sleep(ctx, interval); err != nil {
			return err
		}
	}
}
