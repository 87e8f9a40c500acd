// Package vm provides a VictoriaMetrics-based implementation of the MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// high-performance Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with default prefix "asyncql":
//
//	collector := vm.New()
//	session, _ := asyncql.NewAsyncSession(executor,
//	    asyncql.WithMetrics(collector),
//	)
//
// # Custom Prefix
//
// Use WithPrefix to customize the metric name prefix:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//
// This produces metrics like:
//   - myapp_query_total
//   - myapp_stream_page_rows
//
// # Exposing Metrics
//
// Use the Handler method to expose metrics via HTTP:
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// Or use WritePrometheus to write metrics to a custom writer:
//
//	collector.WritePrometheus(w)
//
// # Metrics Provided
//
// Queries:
//   - {prefix}_query_total - Counter of executed queries
//   - {prefix}_query_errors_total{kind} - Counter of query errors by kind
//   - {prefix}_query_duration_seconds - Histogram of query latencies
//   - {prefix}_query_rows - Histogram of result set sizes
//
// Streams:
//   - {prefix}_stream_started_total - Counter of streams created
//   - {prefix}_stream_closed_total - Counter of streams closed
//   - {prefix}_stream_cancelled_total - Counter of streams cancelled
//   - {prefix}_stream_pages_total - Counter of pages delivered
//   - {prefix}_stream_page_rows - Histogram of rows per page
//
// Retries:
//   - {prefix}_retry_verdicts_total{kind,verdict} - Counter of retry
//     decisions by failure kind and verdict
//
// # Performance Notes
//
// Unlabeled metrics are pre-created at initialization time using the
// NewXXX pattern for optimal performance in hot paths, as recommended by
// the VictoriaMetrics documentation. Labeled counters are created on
// first use and cached under a lock; the label cardinality is small and
// bounded (error kinds and retry verdicts).
//
// The metrics are registered with a dedicated Set that is registered
// globally, allowing standard Prometheus scraping.
package vm
