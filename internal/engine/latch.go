package engine

import (
	"context"
	"sync"
)

type latchState int

const (
	latchUninitialized latchState = iota
	latchInitializing
	latchReady
	latchFailed
)

// bootstrapLatch coordinates one-time engine initialization. Concurrent
// callers attach to the same in-flight attempt instead of triggering a second
// bootstrap. A failed attempt does not poison the latch: the next caller
// starts a fresh attempt.
type bootstrapLatch struct {
	mu      sync.Mutex
	state   latchState
	pending chan struct{}
	err     error
}

// run ensures bootstrap has completed successfully, executing it at most once
// concurrently. Waiters observe the shared attempt's outcome; ctx cancellation
// releases a waiter without affecting the attempt itself.
func (l *bootstrapLatch) run(ctx context.Context, bootstrap func(context.Context) error) error {
	l.mu.Lock()
	switch l.state {
	case latchReady:
		l.mu.Unlock()
		return nil
	case latchInitializing:
		pending := l.pending
		l.mu.Unlock()
		select {
		case <-pending:
		case <-ctx.Done():
			return ctx.Err()
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.state == latchReady {
			return nil
		}
		return l.err
	default: // uninitialized or failed: start a fresh attempt
		pending := make(chan struct{})
		l.pending = pending
		l.state = latchInitializing
		l.mu.Unlock()

		err := bootstrap(ctx)

		l.mu.Lock()
		if err != nil {
			l.state = latchFailed
			l.err = err
		} else {
			l.state = latchReady
			l.err = nil
		}
		close(pending)
		l.mu.Unlock()
		return err
	}
}

func (l *bootstrapLatch) ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == latchReady
}
