package backend

import (
	"context"
	"time"
)

// maxSettleRounds bounds how long a file that never stops changing can
// hold back an event.
const maxSettleRounds = 10

// debounce holds a detected change back until the file has stopped
// changing, so a spec saved in several writes is read once, whole.
type debounce struct {
	quiet time.Duration
}

func newDebounce(quiet time.Duration) *debounce {
	if quiet <= 0 {
		return nil
	}
	return &debounce{quiet: quiet}
}

// settle re-stats until two reads a quiet period apart agree. It returns
// the last state seen and false if ctx ended first.
func (d *debounce) settle(ctx context.Context, cur fileState, stat func() fileState) (fileState, bool) {
	if d == nil {
		return cur, ctx.Err() == nil
	}
	timer := time.NewTimer(d.quiet)
	defer timer.Stop()
	for round := 0; round < maxSettleRounds; round++ {
		select {
		case <-ctx.Done():
			return cur, false
		case <-timer.C:
		}
		next := stat()
		if next == cur {
			return cur, true
		}
		cur = next
		timer.Reset(d.quiet)
	}
	return cur, true
}
