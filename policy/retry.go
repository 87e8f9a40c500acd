package policy

import "github.com/axonops/async-python-cassandra-sub000/types"

// Verdict is the outcome of a retry decision.
type Verdict int

const (
	// Rethrow surfaces the original driver error to the caller unchanged.
	Rethrow Verdict = iota
	// RetrySameTarget retries the operation against the same coordinator.
	RetrySameTarget
	// RetryNextTarget retries the operation against a different coordinator.
	RetryNextTarget
)

// String returns the string representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case RetrySameTarget:
		return "retry_same_target"
	case RetryNextTarget:
		return "retry_next_target"
	default:
		return "rethrow"
	}
}

// FailureKind classifies the failure presented to the retry decider.
type FailureKind int

const (
	// ReadTimeout is a coordinator-reported read timeout.
	ReadTimeout FailureKind = iota
	// WriteTimeout is a coordinator-reported write timeout.
	WriteTimeout
	// Unavailable means too few replicas were alive to satisfy the
	// consistency level.
	Unavailable
	// RequestError is a connection-level or otherwise unclassified failure.
	RequestError
	// InvalidOperation is a request the server rejected as malformed or
	// forbidden (syntax error, unauthorized, invalid). Resending it to
	// another coordinator cannot succeed.
	InvalidOperation
)

// String returns the string representation of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case ReadTimeout:
		return "read_timeout"
	case WriteTimeout:
		return "write_timeout"
	case Unavailable:
		return "unavailable"
	case InvalidOperation:
		return "invalid_operation"
	default:
		return "request_error"
	}
}

// RetryContext carries everything a retry decision depends on.
//
// It has no identity and is never mutated; each decision is a pure function
// of this struct. The driver's retry hook populates it at the point of
// failure.
type RetryContext struct {
	// FailureKind is the classified failure.
	FailureKind FailureKind

	// Consistency is the consistency level of the failed operation.
	// Decisions pass it through unchanged.
	Consistency types.Consistency

	// Idempotency is the caller's declaration for the failed operation.
	Idempotency types.Idempotency

	// WriteKind is the write classification from a write-timeout error.
	// Only meaningful when FailureKind is WriteTimeout.
	WriteKind types.WriteKind

	// AttemptNumber is the zero-based count of attempts already made.
	AttemptNumber int

	// MaxAttempts caps retries for this operation. Zero means "use the
	// decider's default".
	MaxAttempts int

	// RequiredResponses is the number of replica responses the consistency
	// level required. Only meaningful for read timeouts.
	RequiredResponses int

	// ReceivedResponses is the number of replica responses received before
	// the timeout. Only meaningful for read timeouts.
	ReceivedResponses int

	// DataPartiallyRetrieved reports whether any data came back before the
	// read timed out.
	DataPartiallyRetrieved bool
}

// DefaultMaxAttempts is the retry cap used when neither the decider nor the
// RetryContext specifies one.
const DefaultMaxAttempts = 3

// RetryDecider decides whether a failed operation should be retried,
// rerouted to another replica, or surfaced.
//
// The decider is a pure function of RetryContext: it holds no mutable state,
// touches no concurrency primitives, and never returns an error. Inject an
// instance wherever queries are issued; there is no process-wide default.
type RetryDecider struct {
	maxAttempts int
}

// RetryOption configures a RetryDecider.
type RetryOption func(*RetryDecider)

// WithMaxAttempts sets the default retry cap applied when a RetryContext
// does not carry its own.
//
// Parameters:
//   - n: Maximum number of attempts (must be positive to take effect)
//
// Returns:
//   - RetryOption: Configuration option
func WithMaxAttempts(n int) RetryOption {
	return func(d *RetryDecider) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

// NewRetryDecider creates a retry decider.
//
// Parameters:
//   - opts: Optional configuration (e.g., WithMaxAttempts)
//
// Returns:
//   - *RetryDecider: A decider with DefaultMaxAttempts unless overridden
func NewRetryDecider(opts ...RetryOption) *RetryDecider {
	d := &RetryDecider{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Decide maps a failure to a retry verdict.
//
// Rules, in priority order:
//
//  1. Attempts exhausted: Rethrow.
//  2. Read timeout: retry on the same target if any data was already
//     retrieved or enough replicas responded; otherwise Rethrow.
//  3. Write timeout: counter writes always Rethrow. Simple and batch writes
//     retry on the same target unless the operation was explicitly declared
//     NotIdempotent; an unspecified declaration is treated as retryable.
//     A write that may have applied server-side must not be blindly resent
//     unless the caller asserted it is safe to apply twice.
//  4. Unavailable: try a different coordinator on the first attempt, the
//     same one afterwards (the cluster may have recovered).
//  5. Request error: the target is presumed unreachable; try elsewhere.
//  6. Invalid operation: the request itself was rejected by the server;
//     no coordinator can ever accept it, so Rethrow.
//
// The returned consistency level is always the input level unchanged.
//
// Parameters:
//   - rc: The failure context supplied by the driver's retry hook
//
// Returns:
//   - Verdict: The retry decision
//   - types.Consistency: The consistency level to use (pass-through)
func (d *RetryDecider) Decide(rc RetryContext) (Verdict, types.Consistency) {
	maxAttempts := rc.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = d.maxAttempts
	}
	if rc.AttemptNumber >= maxAttempts {
		return Rethrow, rc.Consistency
	}

	switch rc.FailureKind {
	case ReadTimeout:
		if rc.DataPartiallyRetrieved {
			return RetrySameTarget, rc.Consistency
		}
		if rc.ReceivedResponses >= rc.RequiredResponses {
			return RetrySameTarget, rc.Consistency
		}

		return Rethrow, rc.Consistency

	case WriteTimeout:
		// Counter mutations are additive: replaying one double-counts,
		// so no idempotency declaration can make them retryable.
		if rc.WriteKind == types.WriteCounter {
			return Rethrow, rc.Consistency
		}
		if rc.Idempotency == types.NotIdempotent {
			return Rethrow, rc.Consistency
		}
		if rc.WriteKind == types.WriteSimple || rc.WriteKind == types.WriteBatch {
			return RetrySameTarget, rc.Consistency
		}

		return Rethrow, rc.Consistency

	case Unavailable:
		if rc.AttemptNumber == 0 {
			return RetryNextTarget, rc.Consistency
		}

		return RetrySameTarget, rc.Consistency

	case RequestError:
		return RetryNextTarget, rc.Consistency

	case InvalidOperation:
		return Rethrow, rc.Consistency
	}

	return Rethrow, rc.Consistency
}

// MaxAttempts returns the decider's default retry cap.
func (d *RetryDecider) MaxAttempts() int {
	return d.maxAttempts
}
