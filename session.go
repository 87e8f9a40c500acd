package asyncql

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/axonops/async-python-cassandra-sub000/adapter/cql"
	"github.com/axonops/async-python-cassandra-sub000/internal/lifecycle"
	"github.com/axonops/async-python-cassandra-sub000/types"
)

// Convenience aliases so common call sites need only the root package.
type (
	// Row is a single result row keyed by column name.
	Row = types.Row
	// QueryOptions carries per-query execution options.
	QueryOptions = cql.QueryOptions
)

// keyspaceNamePattern matches valid CQL keyspace identifiers. Validation
// happens before any statement is built, so a hostile name never reaches
// the driver.
var keyspaceNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{0,47}$`)

// AsyncSession executes CQL statements against a driver session and
// bridges the driver's callback completion model into blocking,
// context-aware calls and lazy streams.
//
// All methods are safe for concurrent use. The session does not own the
// underlying driver session's connections; Close releases only the
// bridge's resources and marks the session unusable.
type AsyncSession struct {
	executor cql.Executor
	config   *SessionConfig
	guard    *lifecycle.Guard
}

// NewAsyncSession creates a session over an operation executor.
//
// Parameters:
//   - executor: The driver-backed executor (required)
//   - opts: Optional session configuration
//
// Returns:
//   - *AsyncSession: The session
//   - error: types.ErrNilExecutor if executor is nil
func NewAsyncSession(executor cql.Executor, opts ...Option) (*AsyncSession, error) {
	if executor == nil {
		return nil, types.ErrNilExecutor
	}

	config := DefaultSessionConfig()
	for _, opt := range opts {
		opt(config)
	}

	return &AsyncSession{
		executor: executor,
		config:   config,
		guard:    lifecycle.NewGuard(),
	}, nil
}

// Execute runs a statement with the session defaults and gathers every row
// of the result into memory.
//
// For result sets too large to hold at once, use ExecuteStream instead.
//
// Parameters:
//   - ctx: Bounds the whole operation including paging
//   - stmt: The CQL statement
//   - values: Bind values for the statement's placeholders
//
// Returns:
//   - *ResultSet: The fully gathered result
//   - error: types.ErrSessionClosed, ctx.Err(), or the driver error unwrapped
func (s *AsyncSession) Execute(ctx context.Context, stmt string, values ...any) (*ResultSet, error) {
	return s.ExecuteWithOptions(ctx, stmt, cql.QueryOptions{}, values...)
}

// ExecuteWithOptions runs a statement with per-query options and gathers
// every row of the result into memory.
//
// Parameters:
//   - ctx: Bounds the whole operation including paging
//   - stmt: The CQL statement
//   - opts: Per-query options; zero values fall back to session defaults
//   - values: Bind values for the statement's placeholders
//
// Returns:
//   - *ResultSet: The fully gathered result
//   - error: types.ErrSessionClosed, ctx.Err(), or the driver error unwrapped
func (s *AsyncSession) ExecuteWithOptions(ctx context.Context, stmt string, opts cql.QueryOptions, values ...any) (*ResultSet, error) {
	if s.guard.Closed() {
		return nil, types.ErrSessionClosed
	}
	s.applyDefaults(&opts)

	start := time.Now()
	s.config.Metrics.IncQueryTotal()

	handle, err := s.executor.ExecuteAsync(ctx, stmt, opts, values...)
	if err != nil {
		s.config.Metrics.IncQueryError("execute")
		return nil, err
	}

	bridge, err := NewResultBridge(handle)
	if err != nil {
		handle.Release()
		return nil, err
	}

	result, err := bridge.Await(ctx)
	if err != nil {
		s.config.Metrics.IncQueryError("await")
		s.config.Logger.Debug("query failed", "error", err)
		return nil, err
	}

	s.config.Metrics.ObserveQueryDuration(time.Since(start).Seconds())
	s.config.Metrics.ObserveQueryRows(result.Len())

	return result, nil
}

// ExecuteStream runs a statement and returns its rows as a lazy stream
// with at most one page resident in memory.
//
// The caller must Close the returned stream on every exit path.
//
// Parameters:
//   - ctx: Bounds the statement start and each page wait
//   - stmt: The CQL statement
//   - config: Streaming configuration
//   - values: Bind values for the statement's placeholders
//
// Returns:
//   - *PagedStream: The row stream
//   - error: types.ErrSessionClosed or the driver error unwrapped
func (s *AsyncSession) ExecuteStream(ctx context.Context, stmt string, config StreamConfig, values ...any) (*PagedStream, error) {
	if s.guard.Closed() {
		return nil, types.ErrSessionClosed
	}

	opts := cql.QueryOptions{PageSize: config.PageSize}
	s.applyDefaults(&opts)

	s.config.Metrics.IncQueryTotal()

	handle, err := s.executor.ExecuteAsync(ctx, stmt, opts, values...)
	if err != nil {
		s.config.Metrics.IncQueryError("execute")
		return nil, err
	}

	streamID := uuid.NewString()
	stream, err := newPagedStream(handle, config, streamID, s.config.Logger, s.config.Metrics)
	if err != nil {
		handle.Release()
		return nil, err
	}

	s.config.Metrics.IncStreamStarted()
	s.config.Logger.Debug("stream started", "stream_id", streamID, "page_size", opts.PageSize)

	return stream, nil
}

// SetKeyspace switches the session's default keyspace.
//
// The name is validated before a statement is built; an invalid name is
// rejected locally and never sent to the cluster.
//
// Parameters:
//   - ctx: Bounds the USE statement
//   - keyspace: The keyspace name, a bare CQL identifier
//
// Returns:
//   - error: types.ErrInvalidKeyspace, types.ErrSessionClosed, or the
//     driver error unwrapped
func (s *AsyncSession) SetKeyspace(ctx context.Context, keyspace string) error {
	if !keyspaceNamePattern.MatchString(keyspace) {
		return fmt.Errorf("%w: %q", types.ErrInvalidKeyspace, keyspace)
	}

	_, err := s.Execute(ctx, "USE "+keyspace)

	return err
}

// Close marks the session closed and releases the executor. Idempotent.
//
// In-flight operations are not interrupted; new operations fail with
// types.ErrSessionClosed.
//
// Returns:
//   - error: Always nil; the signature satisfies io.Closer
func (s *AsyncSession) Close() error {
	if !s.guard.Close() {
		return nil
	}

	s.executor.Close()
	s.config.Logger.Debug("session closed")

	return nil
}

// IsClosed reports whether Close has been called.
func (s *AsyncSession) IsClosed() bool {
	return s.guard.Closed()
}

func (s *AsyncSession) applyDefaults(opts *cql.QueryOptions) {
	if opts.Consistency == 0 {
		opts.Consistency = s.config.DefaultConsistency
	}
	if opts.PageSize <= 0 {
		opts.PageSize = s.config.DefaultPageSize
	}
}
