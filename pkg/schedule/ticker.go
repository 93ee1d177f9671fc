// Package schedule owns the planner's periodic work: the now-marker refresh
// and the focus countdown. Every timer has an explicit stop handle.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Ticker runs a function on an interval until stopped.
type Ticker struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every calls fn every interval until Stop is called or ctx is done. fn runs
// on the ticker goroutine; calls never overlap.
func Every(ctx context.Context, interval time.Duration, fn func(time.Time)) *Ticker {
	ctx, cancel := context.WithCancel(ctx)
	t := &Ticker{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-tick.C:
				fn(now)
			}
		}
	}()
	return t
}

// Stop cancels the ticker and waits for an in-flight call to return. It is
// safe to call more than once.
func (t *Ticker) Stop() {
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed once the ticker has stopped.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
