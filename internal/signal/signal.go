// Package signal provides a coalescing wakeup primitive for handing control
// from driver worker threads back to a single awaiting consumer goroutine.
//
// Signal is the bridge between the two scheduling worlds asyncql straddles:
// driver callbacks fire on arbitrary OS threads, while the consumer suspends
// in a goroutine. Notify never touches consumer state directly; it only
// performs a non-blocking send on a buffered channel, which the Go runtime
// marshals to the waiter safely. Signal-then-wait and wait-then-signal both
// work, and any number of concurrent Notify calls coalesce into a single
// wakeup.
package signal

import "context"

// Signal wakes a single waiting goroutine from any thread.
//
// The zero value is not usable; construct with New. A Signal must have at
// most one concurrent waiter; it never fails, only blocks or returns.
type Signal struct {
	ch chan struct{}
}

// New creates a Signal in the un-notified state.
func New() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Notify wakes the waiter, or arms the signal if no waiter is present yet.
//
// Safe to call from any goroutine, including driver worker threads.
// Concurrent and repeated notifications coalesce; none are lost and the
// waiter observes at most one wakeup per Reset cycle.
func (s *Signal) Notify() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Wait suspends the calling goroutine until Notify has been called at least
// once since the last Reset, or returns immediately if it already has.
//
// Parameters:
//   - ctx: Bounds the wait; cancellation aborts it
//
// Returns:
//   - error: nil on wakeup, or ctx.Err() if the context ended first
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reset clears any pending notification so the Signal can be reused for the
// next page cycle. Must only be called by the consumer goroutine while no
// wakeup it still needs is in flight.
func (s *Signal) Reset() {
	select {
	case <-s.ch:
	default:
	}
}
