// Package types provides shared types and error definitions for the asyncql
// library.
//
// This is a leaf package with zero asyncql imports to prevent import cycles.
// All packages in asyncql can safely import this package.
//
// # Types
//
// Row is a driver result row keyed by column name. Consistency levels mirror
// gocql consistency levels and are passed through to the driver unchanged:
//
//	const (
//	    Any         Consistency = 0x00
//	    One         Consistency = 0x01
//	    Two         Consistency = 0x02
//	    Three       Consistency = 0x03
//	    Quorum      Consistency = 0x04
//	    All         Consistency = 0x05
//	    LocalQuorum Consistency = 0x06
//	    EachQuorum  Consistency = 0x07
//	    LocalOne    Consistency = 0x0A
//	)
//
// Idempotency is the three-valued declaration governing whether timed-out
// writes may be retried; WriteKind classifies the write reported in a
// write-timeout error.
//
// # Errors
//
// Sentinel errors are provided for locally synthesized failure scenarios:
//
//   - ErrSessionClosed: An operation was attempted on a closed session
//   - ErrStreamClosed: A stream was used after Close
//   - ErrEndOfStream: The stream is fully drained (not a failure)
//   - ErrNilExecutor / ErrNilSession / ErrNilHandle: Nil collaborators
//
// Driver-originated errors are never wrapped; callers receive the driver's
// own error values and can type-switch on them directly.
package types
