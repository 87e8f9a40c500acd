package vm

import (
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/VictoriaMetrics/metrics"

	"github.com/axonops/async-python-cassandra-sub000/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "asyncql"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead of
// creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// Unlabeled metrics are pre-created at initialization time. Labeled
// counters (error kind, retry verdict) are created on first use and
// cached. Thread-safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	// Query metrics
	queryTotal    *metrics.Counter
	queryDuration *metrics.Histogram
	queryRows     *metrics.Histogram

	// Stream metrics
	streamStarted   *metrics.Counter
	streamClosed    *metrics.Counter
	streamCancelled *metrics.Counter
	streamPages     *metrics.Counter
	streamPageRows  *metrics.Histogram

	// Labeled counters, keyed by the rendered metric name.
	mu      sync.Mutex
	labeled map[string]*metrics.Counter
}

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally
// unless WithMetricsSet provides one.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	session, _ := asyncql.NewAsyncSession(executor,
//	    asyncql.WithMetrics(collector),
//	)
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix:  "asyncql",
		labeled: make(map[string]*metrics.Counter),
	}

	for _, opt := range opts {
		opt(c)
	}

	// If no set is provided, create a new one and register it globally.
	// If a set is provided, we assume the caller manages it.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

// initMetrics pre-creates the unlabeled metrics with the configured prefix.
func (c *Collector) initMetrics() {
	p := c.prefix

	c.queryTotal = c.set.NewCounter(p + "_query_total")
	c.queryDuration = c.set.NewHistogram(p + "_query_duration_seconds")
	c.queryRows = c.set.NewHistogram(p + "_query_rows")

	c.streamStarted = c.set.NewCounter(p + "_stream_started_total")
	c.streamClosed = c.set.NewCounter(p + "_stream_closed_total")
	c.streamCancelled = c.set.NewCounter(p + "_stream_cancelled_total")
	c.streamPages = c.set.NewCounter(p + "_stream_pages_total")
	c.streamPageRows = c.set.NewHistogram(p + "_stream_page_rows")
}

// labeledCounter returns the counter for a rendered metric name, creating
// it on first use.
func (c *Collector) labeledCounter(name string) *metrics.Counter {
	c.mu.Lock()
	defer c.mu.Unlock()

	counter, ok := c.labeled[name]
	if !ok {
		counter = c.set.GetOrCreateCounter(name)
		c.labeled[name] = counter
	}

	return counter
}

func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
//
// Parameters:
//   - w: The writer to write metrics to
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// ----------------------
// Queries
// ----------------------

// IncQueryTotal increments the total query counter.
func (c *Collector) IncQueryTotal() {
	c.queryTotal.Inc()
}

// IncQueryError increments the query error counter for an error kind.
func (c *Collector) IncQueryError(errorKind string) {
	c.labeledCounter(fmt.Sprintf(`%s_query_errors_total{kind=%q}`, c.prefix, errorKind)).Inc()
}

// ObserveQueryDuration records a query duration in seconds.
func (c *Collector) ObserveQueryDuration(seconds float64) {
	c.queryDuration.Update(seconds)
}

// ObserveQueryRows records the number of rows a query returned.
func (c *Collector) ObserveQueryRows(count int) {
	c.queryRows.Update(float64(count))
}

// ----------------------
// Streams
// ----------------------

// IncStreamStarted increments the counter when a stream is created.
func (c *Collector) IncStreamStarted() {
	c.streamStarted.Inc()
}

// IncStreamClosed increments the counter when a stream is closed.
func (c *Collector) IncStreamClosed() {
	c.streamClosed.Inc()
}

// IncStreamCancelled increments the counter when a stream is cancelled.
func (c *Collector) IncStreamCancelled() {
	c.streamCancelled.Inc()
}

// IncStreamPage records a delivered page and its row count.
func (c *Collector) IncStreamPage(rowCount int) {
	c.streamPages.Inc()
	c.streamPageRows.Update(float64(rowCount))
}

// ----------------------
// Retries
// ----------------------

// IncRetryVerdict increments the retry verdict counter for a failure kind.
func (c *Collector) IncRetryVerdict(failureKind, verdict string) {
	c.labeledCounter(fmt.Sprintf(`%s_retry_verdicts_total{kind=%q,verdict=%q}`, c.prefix, failureKind, verdict)).Inc()
}

// Compile-time interface check.
var _ types.MetricsCollector = (*Collector)(nil)
