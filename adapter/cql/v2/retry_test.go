package v2

import (
	"testing"

	gocql "github.com/apache/cassandra-gocql-driver/v2"
	"github.com/stretchr/testify/require"

	"github.com/axonops/async-python-cassandra-sub000/adapter/cql"
	"github.com/axonops/async-python-cassandra-sub000/policy"
)

// fakeRequestError carries a bare server error code, the way the driver
// surfaces rejections that have no dedicated error type.
type fakeRequestError struct {
	code int
}

func (e *fakeRequestError) Code() int       { return e.code }
func (e *fakeRequestError) Message() string { return "rejected" }
func (e *fakeRequestError) Error() string   { return "rejected" }

func TestRetryPolicyInvalidOperationRethrows(t *testing.T) {
	p := NewRetryPolicy(policy.NewRetryDecider(), cql.QueryOptions{}, nil)

	// A request the server rejected as malformed or forbidden must not
	// travel to other coordinators.
	for _, code := range []int{
		gocql.ErrCodeSyntax,
		gocql.ErrCodeUnauthorized,
		gocql.ErrCodeInvalid,
		gocql.ErrCodeConfig,
		gocql.ErrCodeAlreadyExists,
		gocql.ErrCodeCredentials,
	} {
		require.Equal(t, gocql.Rethrow, p.GetRetryType(&fakeRequestError{code: code}), "code 0x%04x", code)
	}
}

func TestRetryPolicyTimeoutMapping(t *testing.T) {
	p := NewRetryPolicy(policy.NewRetryDecider(), cql.QueryOptions{}, nil)

	// Read timeout with data already present retries the same coordinator.
	require.Equal(t, gocql.Retry, p.GetRetryType(&gocql.RequestErrReadTimeout{
		Received: 1, BlockFor: 2, DataPresent: 1,
	}))

	// Unavailable tries a different coordinator on the first attempt.
	require.Equal(t, gocql.RetryNextHost, p.GetRetryType(&gocql.RequestErrUnavailable{}))
}
