// Package cql defines the driver-facing interfaces the asyncql bridge
// consumes.
//
// The bridge never talks to a driver directly; it reacts to an Executor that
// produces operation Handles, and to the page/error callbacks those handles
// invoke from driver worker threads. Adapters for concrete drivers live in
// subpackages (v1 for github.com/gocql/gocql, v2 for the Apache
// cassandra-gocql-driver).
package cql

import (
	"context"

	"github.com/axonops/async-python-cassandra-sub000/types"
)

// Type aliases for convenience - re-export from types package.
type (
	Consistency = types.Consistency
	Idempotency = types.Idempotency
	Row         = types.Row
)

// Re-export consistency level constants for convenience.
const (
	Any         = types.Any
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	Quorum      = types.Quorum
	All         = types.All
	LocalQuorum = types.LocalQuorum
	EachQuorum  = types.EachQuorum
	Serial      = types.Serial
	LocalSerial = types.LocalSerial
	LocalOne    = types.LocalOne
)

// Re-export idempotency constants for convenience.
const (
	IdempotencyUnspecified = types.IdempotencyUnspecified
	Idempotent             = types.Idempotent
	NotIdempotent          = types.NotIdempotent
)

// PageFunc receives one page of rows. It is invoked from a driver worker
// thread; the rows slice is only valid for the duration of the call.
type PageFunc func(rows []Row)

// ErrorFunc receives the terminal error for an operation. It is invoked from
// a driver worker thread.
type ErrorFunc func(err error)

// Handle represents one in-flight driver operation.
//
// A Handle has exactly one owner: the bridge type that registered its
// callbacks. Only that owner may request further pages. The driver delivers
// at most one page or error callback per outstanding request, from an
// unspecified worker thread.
type Handle interface {
	// RegisterCallbacks installs the page and error callbacks and triggers
	// delivery of the first page. It must be called exactly once, before
	// the first page is awaited.
	//
	// Parameters:
	//   - onPage: Invoked with each arriving page
	//   - onError: Invoked with the terminal error, if any
	//
	// Returns:
	//   - error: types.ErrCallbacksRegistered if called twice
	RegisterCallbacks(onPage PageFunc, onError ErrorFunc) error

	// HasMorePages reports whether the driver can deliver another page
	// after the most recently delivered one.
	HasMorePages() bool

	// FetchNextPage asks the driver for the next page. Fire-and-forget:
	// the page (or an error) arrives later via the registered callbacks.
	// Calling it while a fetch is already outstanding is a no-op.
	FetchNextPage()

	// Release detaches the handle's callbacks and frees driver-side
	// resources. After Release returns, no further callbacks are
	// delivered. Idempotent; owners call it on every exit path.
	Release()
}

// QueryOptions carries per-operation settings from the caller to the driver.
type QueryOptions struct {
	// Consistency is the consistency level. Zero means the driver default.
	Consistency Consistency

	// SerialConsistency is the serial phase consistency for lightweight
	// transactions. Zero means unset.
	SerialConsistency Consistency

	// PageSize is the maximum rows per page. Zero means the driver default.
	PageSize int

	// Idempotency is the caller's three-valued idempotency declaration,
	// consulted by the retry policy on write timeouts.
	Idempotency Idempotency

	// MaxAttempts caps retries for this operation. Zero means the
	// decider's default.
	MaxAttempts int

	// Timestamp is the write timestamp in microseconds since epoch. Zero
	// means server-assigned.
	Timestamp int64
}

// Executor issues queries against an underlying driver session and returns
// operation handles.
//
// Implementations own the driver session and any worker goroutines used to
// deliver callbacks; Close releases them.
type Executor interface {
	// ExecuteAsync starts a query and returns its handle.
	//
	// Parameters:
	//   - ctx: Bounds the whole operation including later page fetches
	//   - stmt: CQL statement with ? placeholders
	//   - opts: Per-operation settings
	//   - values: Values to bind to placeholders
	//
	// Returns:
	//   - Handle: The in-flight operation
	//   - error: Immediate submission failure, if any
	ExecuteAsync(ctx context.Context, stmt string, opts QueryOptions, values ...any) (Handle, error)

	// Close terminates the underlying session.
	Close()
}
