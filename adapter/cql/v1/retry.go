package v1

import (
	"sync/atomic"

	"github.com/gocql/gocql"

	"github.com/axonops/async-python-cassandra-sub000/adapter/cql"
	"github.com/axonops/async-python-cassandra-sub000/internal/metrics"
	"github.com/axonops/async-python-cassandra-sub000/policy"
	"github.com/axonops/async-python-cassandra-sub000/types"
)

// RetryPolicy adapts a policy.RetryDecider to gocql's retry hook.
//
// gocql does not pass the attempt count to GetRetryType, so the policy
// tracks it from Attempt calls. One instance serves exactly one query; do
// not share instances across queries.
type RetryPolicy struct {
	decider     *policy.RetryDecider
	idempotency types.Idempotency
	maxAttempts int
	metrics     types.MetricsCollector
	attempts    atomic.Int32
}

// Compile-time assertion that RetryPolicy implements gocql.RetryPolicy.
var _ gocql.RetryPolicy = (*RetryPolicy)(nil)

// NewRetryPolicy creates a per-query retry policy around a decider.
//
// Parameters:
//   - decider: The decision function (a default decider is used if nil)
//   - opts: The query options carrying idempotency and attempt cap
//   - collector: Metrics collector for verdict counters (nop if nil)
//
// Returns:
//   - *RetryPolicy: A policy for exactly one query
func NewRetryPolicy(decider *policy.RetryDecider, opts cql.QueryOptions, collector types.MetricsCollector) *RetryPolicy {
	if decider == nil {
		decider = policy.NewRetryDecider()
	}
	if collector == nil {
		collector = metrics.NewNopMetrics()
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = decider.MaxAttempts()
	}

	return &RetryPolicy{
		decider:     decider,
		idempotency: opts.Idempotency,
		maxAttempts: maxAttempts,
		metrics:     collector,
	}
}

// Attempt reports whether the query may be executed again.
//
// gocql calls this after GetRetryType allowed a retry; it also records the
// driver's attempt counter for the next decision.
func (p *RetryPolicy) Attempt(q gocql.RetryableQuery) bool {
	p.attempts.Store(int32(q.Attempts()))

	return q.Attempts() < p.maxAttempts
}

// GetRetryType maps a driver error to gocql's retry type via the decider.
func (p *RetryPolicy) GetRetryType(err error) gocql.RetryType {
	rc := p.retryContext(err)
	verdict, _ := p.decider.Decide(rc)
	p.metrics.IncRetryVerdict(rc.FailureKind.String(), verdict.String())

	switch verdict {
	case policy.RetrySameTarget:
		return gocql.Retry
	case policy.RetryNextTarget:
		return gocql.RetryNextHost
	default:
		return gocql.Rethrow
	}
}

// retryContext classifies a gocql error into the decider's input.
// Unrecognized errors are treated as connection-level request errors.
func (p *RetryPolicy) retryContext(err error) policy.RetryContext {
	rc := policy.RetryContext{
		FailureKind:   policy.RequestError,
		Idempotency:   p.idempotency,
		AttemptNumber: int(p.attempts.Load()),
		MaxAttempts:   p.maxAttempts,
	}

	switch e := err.(type) {
	case *gocql.RequestErrReadTimeout:
		rc.FailureKind = policy.ReadTimeout
		rc.Consistency = types.Consistency(e.Consistency)
		rc.RequiredResponses = int(e.BlockFor)
		rc.ReceivedResponses = int(e.Received)
		rc.DataPartiallyRetrieved = e.DataPresent != 0
	case *gocql.RequestErrWriteTimeout:
		rc.FailureKind = policy.WriteTimeout
		rc.Consistency = types.Consistency(e.Consistency)
		rc.WriteKind = types.ParseWriteKind(e.WriteType)
	case *gocql.RequestErrUnavailable:
		rc.FailureKind = policy.Unavailable
		rc.Consistency = types.Consistency(e.Consistency)
	case gocql.RequestError:
		// The driver routes every server error through this hook,
		// including rejections of the request itself. Those cannot
		// succeed on another coordinator.
		switch e.Code() {
		case gocql.ErrCodeSyntax, gocql.ErrCodeUnauthorized, gocql.ErrCodeInvalid,
			gocql.ErrCodeConfig, gocql.ErrCodeAlreadyExists, gocql.ErrCodeCredentials:
			rc.FailureKind = policy.InvalidOperation
		}
	}

	return rc
}
