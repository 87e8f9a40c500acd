// Package lifecycle provides the idempotent single-close guard shared by
// sessions and streams.
package lifecycle

import "sync/atomic"

// Guard enforces single-close semantics: close happens exactly once no
// matter how many goroutines race to trigger it, and interested parties can
// observe the transition through Done.
type Guard struct {
	closed atomic.Bool
	done   chan struct{}
}

// NewGuard creates an open Guard.
func NewGuard() *Guard {
	return &Guard{done: make(chan struct{})}
}

// Close transitions the guard to closed.
//
// Returns:
//   - bool: true for the single caller that performed the transition,
//     false for every subsequent call
func (g *Guard) Close() bool {
	if g.closed.CompareAndSwap(false, true) {
		close(g.done)
		return true
	}

	return false
}

// Closed reports whether Close has been called.
func (g *Guard) Closed() bool {
	return g.closed.Load()
}

// Done returns a channel that is closed once the guard is closed.
func (g *Guard) Done() <-chan struct{} {
	return g.done
}
