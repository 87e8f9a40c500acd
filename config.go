package asyncql

import (
	"github.com/axonops/async-python-cassandra-sub000/internal/logging"
	"github.com/axonops/async-python-cassandra-sub000/internal/metrics"
	"github.com/axonops/async-python-cassandra-sub000/types"
)

// SessionConfig holds configuration for an AsyncSession.
type SessionConfig struct {
	// Logger receives structured log messages. Never nil after
	// NewAsyncSession; defaults to a no-op logger.
	Logger types.Logger

	// Metrics receives operational metrics. Never nil after
	// NewAsyncSession; defaults to a no-op collector.
	Metrics types.MetricsCollector

	// DefaultConsistency is applied to operations that do not set their
	// own. Zero leaves the driver default in place.
	DefaultConsistency types.Consistency

	// DefaultPageSize is applied to operations that do not set their own.
	// Zero leaves the driver default in place.
	DefaultPageSize int
}

// DefaultSessionConfig returns a SessionConfig with no-op logging and
// metrics and driver-default consistency and page size.
//
// Returns:
//   - *SessionConfig: Configuration with default settings
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		Logger:  logging.NewNopLogger(),
		Metrics: metrics.NewNopMetrics(),
	}
}

// Option configures a SessionConfig.
type Option func(*SessionConfig)

// WithLogger sets the structured logger.
//
// If not set, a no-op logger is used that discards all messages.
// The logger interface is compatible with zap.SugaredLogger.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - Option: Configuration option
//
// Example:
//
//	logger, _ := zap.NewProduction()
//	session, _ := asyncql.NewAsyncSession(executor,
//	    asyncql.WithLogger(logger.Sugar()),
//	)
func WithLogger(logger types.Logger) Option {
	return func(c *SessionConfig) {
		c.Logger = logger
	}
}

// WithMetrics sets the metrics collector.
//
// If not set, a no-op collector is used that discards all metrics.
// Use contrib/metrics/vm.New() for VictoriaMetrics integration.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - Option: Configuration option
func WithMetrics(collector types.MetricsCollector) Option {
	return func(c *SessionConfig) {
		c.Metrics = collector
	}
}

// WithDefaultConsistency sets the consistency level applied to operations
// that do not specify their own.
//
// Parameters:
//   - consistency: The consistency level
//
// Returns:
//   - Option: Configuration option
func WithDefaultConsistency(consistency types.Consistency) Option {
	return func(c *SessionConfig) {
		c.DefaultConsistency = consistency
	}
}

// WithDefaultPageSize sets the page size applied to operations that do not
// specify their own.
//
// Parameters:
//   - n: Maximum rows per page
//
// Returns:
//   - Option: Configuration option
func WithDefaultPageSize(n int) Option {
	return func(c *SessionConfig) {
		if n > 0 {
			c.DefaultPageSize = n
		}
	}
}
