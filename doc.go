// Package asyncql bridges a callback-driven Cassandra driver completion
// model into blocking, context-aware Go calls.
//
// The underlying driver completes operations by invoking success/error
// callbacks from its own worker threads. asyncql converts those callbacks
// into two consumer-facing shapes:
//
//   - ResultBridge: a one-shot future. The driver's page callbacks
//     accumulate rows; Await suspends the caller until the terminal
//     outcome (full result set or error) arrives. Resolution is
//     exactly-once even if callbacks race or fire twice.
//
//   - PagedStream: a lazy, cancellable stream holding at most one page of
//     rows in memory. The next page is requested only after the consumer
//     drains the current one, so the driver is never asked for more data
//     than the consumer has consumed.
//
// Retry decisions live in the policy package as a pure, injectable
// RetryDecider; the adapter packages wire it into the driver's own retry
// hook.
//
// # Quick start
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Keyspace = "my_keyspace"
//	raw, _ := cluster.CreateSession()
//
//	executor, _ := v1.WrapSession(raw)
//	session, _ := asyncql.NewAsyncSession(executor)
//	defer session.Close()
//
//	// Bridged: accumulate all pages, then return.
//	rs, err := session.Execute(ctx, "SELECT * FROM users WHERE id = ?", id)
//
//	// Streamed: one page resident at a time.
//	stream, err := session.ExecuteStream(ctx,
//	    "SELECT * FROM events", asyncql.StreamConfig{PageSize: 1000})
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//	for {
//	    row, err := stream.Next(ctx)
//	    if errors.Is(err, types.ErrEndOfStream) {
//	        break
//	    }
//	    if err != nil {
//	        return err // original driver error, unwrapped
//	    }
//	    process(row)
//	}
//
// # Error handling
//
// Driver-originated errors are surfaced unwrapped so callers can distinguish
// timeout from unavailable from invalid-request by type-switching on the
// driver's own error values. The only locally synthesized errors are the
// sentinels in the types package (ErrEndOfStream, ErrStreamClosed,
// ErrSessionClosed, ...).
//
// # Thread safety
//
// AsyncSession is safe for concurrent use. A ResultBridge or PagedStream
// has a single consumer: concurrent Next calls on one stream are not
// supported, but Close and Cancel may be called from any goroutine at any
// time and always unblock a suspended consumer.
package asyncql
