package anim

import (
	"context"
	"time"
)

// Loop is a single-goroutine run loop. Every function posted to it runs
// to completion before the next one starts, which is what lets the
// scheduler mutate its queues without locks. It implements Clock.
type Loop struct {
	work chan func()
	done chan struct{}
}

// NewLoop creates a loop. Call Run on exactly one goroutine.
func NewLoop() *Loop {
	return &Loop{
		work: make(chan func(), 64),
		done: make(chan struct{}),
	}
}

// Run processes posted functions until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case fn := <-l.work:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// Post queues fn to run on the loop goroutine. Safe from any goroutine;
// a no-op after the loop has stopped.
func (l *Loop) Post(fn func()) {
	select {
	case l.work <- fn:
	case <-l.done:
	}
}

// After implements Clock: fn runs on the loop goroutine once d has
// passed. Callable from inside a running callback.
func (l *Loop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}
