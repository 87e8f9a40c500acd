package types

// MetricsCollector defines methods for collecting operational metrics.
//
// Implementations must be thread-safe: query methods are called from caller
// goroutines, stream page methods from driver worker threads, and retry
// verdict methods from inside the driver's retry hook.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	import vmmetrics "github.com/axonops/async-python-cassandra-sub000/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	session, _ := asyncql.NewAsyncSession(executor,
//	    asyncql.WithMetrics(collector),
//	)
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// ----------------------
	// Query Operations
	// ----------------------

	// IncQueryTotal increments the total query counter.
	IncQueryTotal()

	// IncQueryError increments the query error counter for the given
	// error kind (e.g., "read_timeout", "unavailable").
	IncQueryError(errorKind string)

	// ObserveQueryDuration records a query duration in seconds.
	ObserveQueryDuration(seconds float64)

	// ObserveQueryRows records the number of rows returned by a
	// bridged (fully accumulated) query.
	ObserveQueryRows(count int)

	// ----------------------
	// Streaming
	// ----------------------

	// IncStreamStarted increments the counter of streams opened.
	IncStreamStarted()

	// IncStreamClosed increments the counter of streams closed.
	IncStreamClosed()

	// IncStreamCancelled increments the counter of consumer-cancelled streams.
	IncStreamCancelled()

	// IncStreamPage records the arrival of one page with the given row count.
	IncStreamPage(rowCount int)

	// ----------------------
	// Retry Decisions
	// ----------------------

	// IncRetryVerdict increments the counter for a retry decision,
	// labeled by failure kind and verdict.
	IncRetryVerdict(failureKind, verdict string)
}
