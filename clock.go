package keywatch

import (
	"context"
	"runtime"
	"time"
)

// clock abstracts the run loop's notion of time so tests can drive the
// release-inference thresholds with a virtual clock instead of
// wall-clock waits.
type clock interface {
	Now() time.Time
	// Sleep pauses for d or until ctx is done. A non-positive d still
	// yields the processor so a busy loop stays preemptible.
	Sleep(ctx context.Context, d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		runtime.Gosched()
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
