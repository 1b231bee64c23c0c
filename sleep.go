package suspendtime

import (
	"context"
	"time"
)

// schedulerWait parks the caller for roughly d according to the runtime's
// own timers, which may be suspend-unaware. It is a variable so tests can
// inject early wakeups and drive the re-arm loop deterministically.
var schedulerWait = timerWait

// timerWait blocks on a runtime timer until d elapses or ctx is done.
func timerWait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Sleep blocks until at least d of suspend-excluding time has passed, or
// until ctx is done, whichever comes first. It returns nil in the first case
// and ctx.Err() in the second.
//
// The runtime's timers measure a different timeline: one that, depending on
// the platform, may keep counting while the machine is asleep. A single
// timer wait would therefore return early by however long the machine was
// suspended. Sleep instead re-arms in a loop: it recomputes the remaining
// suspend-excluding time, waits that long on a runtime timer, and re-samples
// on wakeup. It only returns once the suspend-excluding clock itself
// confirms the deadline. An early timer fire is a self-transition back into
// the wait, not a completion.
//
// There is no upper bound on how late Sleep returns past its deadline; that
// is limited only by scheduler fairness, as with time.Sleep.
func Sleep(ctx context.Context, d time.Duration) error {
	deadline := Now().Add(d)
	for {
		now := Now()
		if !now.Before(deadline) {
			return nil
		}
		if err := schedulerWait(ctx, deadline.Sub(now)); err != nil {
			return err
		}
	}
}

type opResult[T any] struct {
	value T
	err   error
}

// Timeout runs op and fails it with ErrTimedOut if it has not completed
// within d of suspend-excluding time.
//
// Exactly one outcome is produced: op's (value, error) if it finishes first,
// or the zero value and ErrTimedOut if the deadline wins. On timeout op is
// abandoned, not cancelled: its goroutine keeps running with the caller's
// ctx and its eventual result is discarded. Callers that need prompt
// teardown of op should pass a ctx they cancel themselves once Timeout
// returns.
//
// If ctx is done before either side finishes, Timeout returns ctx.Err().
func Timeout[T any](ctx context.Context, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	results := make(chan opResult[T], 1)
	go func() {
		value, err := op(ctx)
		results <- opResult[T]{value: value, err: err}
	}()

	// The sleeper gets a derived context so it is torn down as soon as op
	// wins; the buffered channel lets it exit either way.
	sleepCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	expired := make(chan error, 1)
	go func() {
		expired <- Sleep(sleepCtx, d)
	}()

	var zero T
	select {
	case r := <-results:
		return r.value, r.err
	case err := <-expired:
		if err != nil {
			// The caller's context ended before the deadline did.
			return zero, err
		}
		return zero, ErrTimedOut
	}
}
