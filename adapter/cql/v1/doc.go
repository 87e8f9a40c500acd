// Package v1 provides an adapter for gocql v1 (github.com/gocql/gocql).
//
// The adapter turns gocql's synchronous, iterator-based API into the
// callback-driven Handle contract the asyncql bridge consumes. Each
// operation gets a worker goroutine that fetches one page per cycle using
// explicit page state (which disables gocql's transparent paging) and
// invokes the registered callbacks from that worker, never from the
// consumer's goroutine.
//
// The adapter also wires the policy.RetryDecider into gocql's retry hook:
// every query carries a fresh RetryPolicy instance that classifies gocql
// errors into policy.RetryContext values and maps verdicts back to gocql
// retry types.
//
// # Usage
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Keyspace = "my_keyspace"
//	session, err := cluster.CreateSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	executor, err := v1.WrapSession(session,
//	    v1.WithRetryDecider(policy.NewRetryDecider(policy.WithMaxAttempts(3))),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	async, err := asyncql.NewAsyncSession(executor)
package v1
