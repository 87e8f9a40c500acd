package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonops/async-python-cassandra-sub000/types"
)

func TestDecideRetryMatrix(t *testing.T) {
	decider := NewRetryDecider()

	tests := []struct {
		name string
		rc   RetryContext
		want Verdict
	}{
		{
			name: "write timeout simple idempotent retries",
			rc: RetryContext{
				FailureKind: WriteTimeout,
				WriteKind:   types.WriteSimple,
				Idempotency: types.Idempotent,
			},
			want: RetrySameTarget,
		},
		{
			name: "write timeout simple not idempotent rethrows",
			rc: RetryContext{
				FailureKind: WriteTimeout,
				WriteKind:   types.WriteSimple,
				Idempotency: types.NotIdempotent,
			},
			want: Rethrow,
		},
		{
			name: "write timeout counter rethrows even when idempotent",
			rc: RetryContext{
				FailureKind: WriteTimeout,
				WriteKind:   types.WriteCounter,
				Idempotency: types.Idempotent,
			},
			want: Rethrow,
		},
		{
			name: "write timeout counter unspecified rethrows",
			rc: RetryContext{
				FailureKind: WriteTimeout,
				WriteKind:   types.WriteCounter,
			},
			want: Rethrow,
		},
		{
			name: "write timeout batch unspecified is permissive",
			rc: RetryContext{
				FailureKind: WriteTimeout,
				WriteKind:   types.WriteBatch,
			},
			want: RetrySameTarget,
		},
		{
			name: "write timeout unknown kind rethrows",
			rc: RetryContext{
				FailureKind: WriteTimeout,
				WriteKind:   types.WriteUnknown,
				Idempotency: types.Idempotent,
			},
			want: Rethrow,
		},
		{
			name: "read timeout without data or responses rethrows",
			rc: RetryContext{
				FailureKind:       ReadTimeout,
				RequiredResponses: 1,
				ReceivedResponses: 0,
			},
			want: Rethrow,
		},
		{
			name: "read timeout with partial data retries",
			rc: RetryContext{
				FailureKind:            ReadTimeout,
				DataPartiallyRetrieved: true,
			},
			want: RetrySameTarget,
		},
		{
			name: "read timeout with enough responses retries",
			rc: RetryContext{
				FailureKind:       ReadTimeout,
				RequiredResponses: 2,
				ReceivedResponses: 2,
			},
			want: RetrySameTarget,
		},
		{
			name: "unavailable first attempt goes to next target",
			rc: RetryContext{
				FailureKind:   Unavailable,
				AttemptNumber: 0,
			},
			want: RetryNextTarget,
		},
		{
			name: "unavailable second attempt stays on same target",
			rc: RetryContext{
				FailureKind:   Unavailable,
				AttemptNumber: 1,
			},
			want: RetrySameTarget,
		},
		{
			name: "request error goes to next target",
			rc: RetryContext{
				FailureKind: RequestError,
			},
			want: RetryNextTarget,
		},
		{
			name: "invalid operation rethrows",
			rc: RetryContext{
				FailureKind: InvalidOperation,
			},
			want: Rethrow,
		},
		{
			name: "invalid operation rethrows even when idempotent",
			rc: RetryContext{
				FailureKind: InvalidOperation,
				Idempotency: types.Idempotent,
			},
			want: Rethrow,
		},
		{
			name: "attempts exhausted always rethrows",
			rc: RetryContext{
				FailureKind:            ReadTimeout,
				DataPartiallyRetrieved: true,
				AttemptNumber:          3,
				MaxAttempts:            3,
			},
			want: Rethrow,
		},
		{
			name: "request error exhausted rethrows",
			rc: RetryContext{
				FailureKind:   RequestError,
				AttemptNumber: 3,
			},
			want: Rethrow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, _ := decider.Decide(tt.rc)
			require.Equal(t, tt.want, verdict)
		})
	}
}

func TestDecideConsistencyPassThrough(t *testing.T) {
	decider := NewRetryDecider()

	levels := []types.Consistency{types.One, types.Quorum, types.LocalQuorum, types.All}
	kinds := []FailureKind{ReadTimeout, WriteTimeout, Unavailable, RequestError}

	for _, cl := range levels {
		for _, kind := range kinds {
			_, got := decider.Decide(RetryContext{
				FailureKind: kind,
				Consistency: cl,
				WriteKind:   types.WriteSimple,
			})
			require.Equal(t, cl, got, "consistency must pass through for %v", kind)
		}
	}
}

func TestDecideMaxAttemptsFromContext(t *testing.T) {
	decider := NewRetryDecider(WithMaxAttempts(10))

	// Per-operation cap wins over the decider default.
	verdict, _ := decider.Decide(RetryContext{
		FailureKind:   Unavailable,
		AttemptNumber: 1,
		MaxAttempts:   1,
	})
	require.Equal(t, Rethrow, verdict)

	// Below the per-operation cap, normal rules apply.
	verdict, _ = decider.Decide(RetryContext{
		FailureKind:   Unavailable,
		AttemptNumber: 1,
		MaxAttempts:   5,
	})
	require.Equal(t, RetrySameTarget, verdict)
}

func TestNewRetryDeciderDefaults(t *testing.T) {
	require.Equal(t, DefaultMaxAttempts, NewRetryDecider().MaxAttempts())
	require.Equal(t, 7, NewRetryDecider(WithMaxAttempts(7)).MaxAttempts())
	// Non-positive values keep the default.
	require.Equal(t, DefaultMaxAttempts, NewRetryDecider(WithMaxAttempts(0)).MaxAttempts())
}

func TestVerdictAndFailureKindStrings(t *testing.T) {
	require.Equal(t, "rethrow", Rethrow.String())
	require.Equal(t, "retry_same_target", RetrySameTarget.String())
	require.Equal(t, "retry_next_target", RetryNextTarget.String())

	require.Equal(t, "read_timeout", ReadTimeout.String())
	require.Equal(t, "write_timeout", WriteTimeout.String())
	require.Equal(t, "unavailable", Unavailable.String())
	require.Equal(t, "request_error", RequestError.String())
	require.Equal(t, "invalid_operation", InvalidOperation.String())
}
