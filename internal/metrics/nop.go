// Package metrics provides internal metrics utilities for asyncql.
package metrics

import "github.com/axonops/async-python-cassandra-sub000/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// This is used as the default metrics collector when no collector is
// configured, avoiding nil checks throughout the codebase.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A collector that discards all metrics
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// ----------------------
// Query Operations
// ----------------------

// IncQueryTotal discards the metric.
func (m *NopMetrics) IncQueryTotal() {}

// IncQueryError discards the metric.
func (m *NopMetrics) IncQueryError(_ string) {}

// ObserveQueryDuration discards the metric.
func (m *NopMetrics) ObserveQueryDuration(_ float64) {}

// ObserveQueryRows discards the metric.
func (m *NopMetrics) ObserveQueryRows(_ int) {}

// ----------------------
// Streaming
// ----------------------

// IncStreamStarted discards the metric.
func (m *NopMetrics) IncStreamStarted() {}

// IncStreamClosed discards the metric.
func (m *NopMetrics) IncStreamClosed() {}

// IncStreamCancelled discards the metric.
func (m *NopMetrics) IncStreamCancelled() {}

// IncStreamPage discards the metric.
func (m *NopMetrics) IncStreamPage(_ int) {}

// ----------------------
// Retry Decisions
// ----------------------

// IncRetryVerdict discards the metric.
func (m *NopMetrics) IncRetryVerdict(_, _ string) {}
