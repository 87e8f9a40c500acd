// Package policy provides the idempotency-aware retry decision logic.
//
// RetryDecider maps a failure (read timeout, write timeout, unavailable,
// request error) plus the operation's declared idempotency and attempt count
// to a verdict: rethrow, retry the same coordinator, or retry a different
// one. It is a pure decision function with no concurrency and no
// dependencies beyond the shared types package; the driver adapters (see
// adapter/cql/v1 and adapter/cql/v2) wire it into the driver's own retry
// hook.
//
// # Idempotency default
//
// Operations with no explicit idempotency declaration are treated as
// retryable on write timeout. This permissive default matches long-standing
// observed behavior and keeps existing callers working, but it is the unsafe
// direction: a write that already applied server-side may be applied again.
// Mark operations types.NotIdempotent to opt into strict safety. Counter
// writes are excluded from retry unconditionally.
//
// # Usage
//
//	decider := policy.NewRetryDecider(policy.WithMaxAttempts(3))
//	verdict, cl := decider.Decide(policy.RetryContext{
//	    FailureKind:   policy.WriteTimeout,
//	    WriteKind:     types.WriteSimple,
//	    Idempotency:   types.Idempotent,
//	    Consistency:   types.Quorum,
//	    AttemptNumber: 0,
//	})
//	// verdict == policy.RetrySameTarget, cl == types.Quorum
package policy
