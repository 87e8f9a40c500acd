package asyncql

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/axonops/async-python-cassandra-sub000/adapter/cql"
	"github.com/axonops/async-python-cassandra-sub000/types"
)

// ResultBridge converts a callback-driven driver operation into a one-shot
// future the consumer can await.
//
// The driver's page callback accumulates rows and requests further pages
// until the handle reports none remain; the error callback resolves the
// future immediately, discarding any partial accumulation. Resolution is
// exactly-once: whichever callback fires first wins, and duplicate or
// out-of-order invocations afterwards are silent no-ops. The driver
// contract guarantees at most one terminal outcome, but the bridge
// tolerates violations rather than crashing on them.
type ResultBridge struct {
	handle cql.Handle

	// mu guards the row accumulator, which driver worker threads append to.
	mu   sync.Mutex
	rows []types.Row

	resolved atomic.Bool
	done     chan struct{}
	result   *ResultSet
	err      error
}

// NewResultBridge wraps an operation handle and registers its callbacks,
// which triggers delivery of the first page.
//
// Parameters:
//   - handle: The in-flight operation to bridge (required)
//
// Returns:
//   - *ResultBridge: The bridge; call Await to collect the outcome
//   - error: types.ErrNilHandle, or a callback registration failure
func NewResultBridge(handle cql.Handle) (*ResultBridge, error) {
	if handle == nil {
		return nil, types.ErrNilHandle
	}

	rb := &ResultBridge{
		handle: handle,
		done:   make(chan struct{}),
	}
	if err := handle.RegisterCallbacks(rb.handlePage, rb.handleError); err != nil {
		return nil, err
	}

	return rb, nil
}

// handlePage runs on a driver worker thread for each arriving page.
func (rb *ResultBridge) handlePage(rows []cql.Row) {
	if rb.resolved.Load() {
		return
	}

	rb.mu.Lock()
	// The driver may reuse its buffer after the callback returns; keep our
	// own copy of the batch.
	rb.rows = append(rb.rows, rows...)
	accumulated := rb.rows
	rb.mu.Unlock()

	if rb.handle.HasMorePages() {
		rb.handle.FetchNextPage()
		return
	}

	rb.resolve(&ResultSet{rows: accumulated}, nil)
}

// handleError runs on a driver worker thread. Partial accumulation is
// discarded; only the error reaches the consumer.
func (rb *ResultBridge) handleError(err error) {
	rb.resolve(nil, err)
}

// resolve writes the completion slot exactly once. First writer wins;
// later calls are no-ops.
func (rb *ResultBridge) resolve(rs *ResultSet, err error) {
	if !rb.resolved.CompareAndSwap(false, true) {
		return
	}
	rb.result = rs
	rb.err = err
	close(rb.done)
	rb.handle.Release()
}

// Await suspends the caller until the operation resolves.
//
// A failed operation yields the original driver error unchanged; asyncql
// never wraps it. Await may be called from exactly one consumer.
//
// Parameters:
//   - ctx: Bounds the wait; cancellation abandons the operation
//
// Returns:
//   - *ResultSet: The accumulated rows on success
//   - error: The driver's terminal error, or ctx.Err() if ctx ended first
func (rb *ResultBridge) Await(ctx context.Context) (*ResultSet, error) {
	select {
	case <-rb.done:
		return rb.result, rb.err
	case <-ctx.Done():
		rb.handle.Release()
		return nil, ctx.Err()
	}
}

// ResultSet holds the fully accumulated rows of a bridged operation.
type ResultSet struct {
	rows []types.Row
}

// All returns all rows.
func (rs *ResultSet) All() []types.Row {
	return rs.rows
}

// One returns the first row, or nil if the result set is empty.
func (rs *ResultSet) One() types.Row {
	if len(rs.rows) == 0 {
		return nil
	}

	return rs.rows[0]
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	return len(rs.rows)
}
