// Package types provides shared types and errors for the asyncql library.
//
// This is a "leaf" package with no imports from other asyncql packages,
// allowing it to be imported by any package without causing import cycles.
package types

import (
	"errors"
	"strings"
)

// Row is a single result row delivered by the driver, keyed by column name.
//
// Row batches handed to driver callbacks are owned by the driver and may be
// reused after the callback returns. Bridge types copy batches defensively
// before retaining them.
type Row map[string]any

// Consistency represents the Cassandra consistency level.
//
// Consistency levels are passed through to the underlying driver unchanged;
// asyncql never adjusts them on retry.
type Consistency uint16

// Common consistency levels matching gocql.
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	Serial      Consistency = 0x08
	LocalSerial Consistency = 0x09
	LocalOne    Consistency = 0x0A
)

// Idempotency is a three-valued declaration of whether an operation is safe
// to execute more than once with the same observable end-state.
//
// The zero value is IdempotencyUnspecified: the caller set no explicit
// marker. Unspecified operations are treated as retryable for
// backward-compatible permissiveness, except counter writes which are never
// retried (see the policy package). Callers that want strict safety must
// explicitly mark operations NotIdempotent.
type Idempotency int

const (
	// IdempotencyUnspecified means the caller declared nothing.
	IdempotencyUnspecified Idempotency = iota
	// Idempotent means the operation is explicitly safe to apply twice.
	Idempotent
	// NotIdempotent means the operation must never be blindly resent.
	NotIdempotent
)

// String returns the string representation of the idempotency declaration.
func (i Idempotency) String() string {
	switch i {
	case Idempotent:
		return "idempotent"
	case NotIdempotent:
		return "not_idempotent"
	default:
		return "unspecified"
	}
}

// WriteKind classifies the write operation reported in a write-timeout error.
//
// WARNING: counter mutations (e.g., "UPDATE ... SET c = c + 1") are additive
// and never safe to retry blindly, regardless of any idempotency declaration.
type WriteKind int

const (
	// WriteUnknown is any write kind not recognized below.
	WriteUnknown WriteKind = iota
	// WriteSimple is a single non-batch mutation.
	WriteSimple
	// WriteBatch is a logged or unlogged batch mutation.
	WriteBatch
	// WriteCounter is a counter mutation.
	WriteCounter
)

// String returns the string representation of the write kind.
func (w WriteKind) String() string {
	switch w {
	case WriteSimple:
		return "simple"
	case WriteBatch:
		return "batch"
	case WriteCounter:
		return "counter"
	default:
		return "unknown"
	}
}

// ParseWriteKind maps a driver write-type string to a WriteKind.
//
// Recognized values follow the native protocol write_type field:
// "SIMPLE", "BATCH", "UNLOGGED_BATCH", "BATCH_LOG" and "COUNTER".
// Anything else maps to WriteUnknown.
//
// Parameters:
//   - s: Driver-reported write type, case-insensitive
//
// Returns:
//   - WriteKind: The classified write kind
func ParseWriteKind(s string) WriteKind {
	switch strings.ToUpper(s) {
	case "SIMPLE":
		return WriteSimple
	case "BATCH", "UNLOGGED_BATCH", "BATCH_LOG":
		return WriteBatch
	case "COUNTER":
		return WriteCounter
	default:
		return WriteUnknown
	}
}

// Logger defines the structured logging interface used throughout asyncql.
//
// The interface is compatible with zap.SugaredLogger; keysAndValues are
// alternating keys and values. A no-op implementation is used when no logger
// is configured.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at info level.
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at warning level.
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at error level.
	Error(msg string, keysAndValues ...any)
}

// Sentinel errors for common failure scenarios.
//
// Driver-originated errors (read timeout, write timeout, unavailable,
// invalid request, transport failures) are always surfaced to callers
// unwrapped; the sentinels below are the only errors asyncql synthesizes
// itself.
var (
	// ErrSessionClosed indicates an operation was attempted on a closed session.
	ErrSessionClosed = errors.New("asyncql: session is closed")

	// ErrStreamClosed indicates a stream was used after Close, or a waiter
	// was unblocked by a concurrent Close.
	ErrStreamClosed = errors.New("asyncql: stream is closed")

	// ErrEndOfStream indicates the stream is fully drained. It plays the
	// role io.EOF plays for readers and is not a failure.
	ErrEndOfStream = errors.New("asyncql: end of stream")

	// ErrNilExecutor indicates a nil executor was provided.
	ErrNilExecutor = errors.New("asyncql: executor cannot be nil")

	// ErrNilSession indicates a nil driver session was provided.
	ErrNilSession = errors.New("asyncql: session cannot be nil")

	// ErrNilHandle indicates a nil operation handle was provided.
	ErrNilHandle = errors.New("asyncql: operation handle cannot be nil")

	// ErrCallbacksRegistered indicates callbacks were registered twice on
	// the same operation handle. A handle has exactly one owner.
	ErrCallbacksRegistered = errors.New("asyncql: callbacks already registered")

	// ErrInvalidKeyspace indicates a keyspace name failed validation.
	ErrInvalidKeyspace = errors.New("asyncql: invalid keyspace name")
)
