package runtime

import (
	"context"
	"time"
)

// Sleeper abstracts the inter-round delay so tests can drive the polling
// loop without real time passing.
type Sleeper interface {
	// Sleep blocks for d or until ctx is canceled, returning ctx.Err() in
	// the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper is the production Sleeper, backed by time.Timer.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
