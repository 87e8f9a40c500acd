// Package cql provides driver adapter interfaces for the asyncql bridge.
//
// # Layout
//
// This package defines the interfaces; concrete adapters live in
// subpackages:
//
//   - adapter/cql/v1: github.com/gocql/gocql (classic gocql)
//   - adapter/cql/v2: github.com/apache/cassandra-gocql-driver/v2
//
// # Completion model
//
// An Executor turns a statement into a Handle. The adapter runs a worker
// goroutine per operation that plays the role of the driver's completion
// thread: it fetches one page at a time and invokes the registered PageFunc
// or ErrorFunc from outside the consumer's goroutine. The consumer-facing
// bridge types (ResultBridge, PagedStream in the root package) convert those
// callbacks back into blocking, context-aware calls.
//
// The contract mirrors a callback-based driver exactly:
//
//   - RegisterCallbacks arms the operation and triggers the first page.
//   - Exactly one terminal outcome (final page or error) is delivered.
//   - FetchNextPage is fire-and-forget and only valid while HasMorePages
//     reports true.
package cql
