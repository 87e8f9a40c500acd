package v2

import (
	"context"
	"sync"
	"sync/atomic"

	gocql "github.com/apache/cassandra-gocql-driver/v2"

	"github.com/axonops/async-python-cassandra-sub000/adapter/cql"
	"github.com/axonops/async-python-cassandra-sub000/internal/logging"
	"github.com/axonops/async-python-cassandra-sub000/internal/metrics"
	"github.com/axonops/async-python-cassandra-sub000/policy"
	"github.com/axonops/async-python-cassandra-sub000/types"
)

// Executor implements cql.Executor over a gocql v2 session
// (github.com/apache/cassandra-gocql-driver).
//
// Behavior matches the v1 adapter: a worker goroutine per operation fetches
// one page per cycle and invokes callbacks from outside the consumer's
// goroutine. The v2 driver's context-first iterator API is used directly.
type Executor struct {
	session *gocql.Session
	decider *policy.RetryDecider
	logger  types.Logger
	metrics types.MetricsCollector
}

// Compile-time assertion that Executor implements cql.Executor.
var _ cql.Executor = (*Executor)(nil)

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithRetryDecider sets the retry decider wired into each query's retry
// policy.
//
// Parameters:
//   - d: The decider to consult on failures
//
// Returns:
//   - ExecutorOption: Configuration option
func WithRetryDecider(d *policy.RetryDecider) ExecutorOption {
	return func(e *Executor) {
		e.decider = d
	}
}

// WithLogger sets the structured logger.
//
// Parameters:
//   - l: The logger implementation
//
// Returns:
//   - ExecutorOption: Configuration option
func WithLogger(l types.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithMetrics sets the metrics collector used for retry verdict counters.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - ExecutorOption: Configuration option
func WithMetrics(collector types.MetricsCollector) ExecutorOption {
	return func(e *Executor) {
		e.metrics = collector
	}
}

// NewExecutor creates an executor over a gocql v2 session.
//
// Parameters:
//   - session: A connected gocql.Session from the Apache driver (required)
//   - opts: Optional configuration options
//
// Returns:
//   - *Executor: A new executor
//   - error: types.ErrNilSession if session is nil
func NewExecutor(session *gocql.Session, opts ...ExecutorOption) (*Executor, error) {
	if session == nil {
		return nil, types.ErrNilSession
	}

	e := &Executor{
		session: session,
		decider: policy.NewRetryDecider(),
		logger:  logging.NewNopLogger(),
		metrics: metrics.NewNopMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// WrapSession wraps a gocql v2 session as a cql.Executor.
//
// Parameters:
//   - session: A connected gocql.Session from the Apache driver
//   - opts: Optional configuration options
//
// Returns:
//   - cql.Executor: The wrapped session
//   - error: types.ErrNilSession if session is nil
func WrapSession(session *gocql.Session, opts ...ExecutorOption) (cql.Executor, error) {
	return NewExecutor(session, opts...)
}

// ExecuteAsync starts a query and returns its operation handle.
//
// Parameters:
//   - ctx: Bounds the whole operation including later page fetches
//   - stmt: CQL statement with ? placeholders
//   - opts: Per-operation settings
//   - values: Values to bind to placeholders
//
// Returns:
//   - cql.Handle: The in-flight operation
//   - error: Immediate submission failure, if any
func (e *Executor) ExecuteAsync(ctx context.Context, stmt string, opts cql.QueryOptions, values ...any) (cql.Handle, error) {
	q := e.session.Query(stmt, values...)
	if opts.PageSize > 0 {
		q = q.PageSize(opts.PageSize)
	}
	if opts.Consistency != 0 {
		q = q.Consistency(gocql.Consistency(opts.Consistency))
	}
	if opts.SerialConsistency != 0 {
		// v2 folds serial consistency into the Consistency type.
		q = q.SerialConsistency(gocql.Consistency(opts.SerialConsistency))
	}
	if opts.Timestamp != 0 {
		q = q.WithTimestamp(opts.Timestamp)
	}
	q = q.Idempotent(opts.Idempotency != types.NotIdempotent)
	q = q.RetryPolicy(NewRetryPolicy(e.decider, opts, e.metrics))

	e.logger.Debug("query submitted", "statement", stmt, "page_size", opts.PageSize)

	return newHandle(ctx, q), nil
}

// Close terminates the underlying gocql session.
func (e *Executor) Close() {
	e.session.Close()
}

// handle is one in-flight paged query, paced by the consumer via
// FetchNextPage.
type handle struct {
	query *gocql.Query
	ctx   context.Context

	mu      sync.Mutex
	onPage  cql.PageFunc
	onError cql.ErrorFunc

	registered chan struct{}
	regOnce    sync.Once
	released   chan struct{}
	relOnce    sync.Once

	fetch   chan struct{}
	hasMore atomic.Bool
}

// Compile-time assertion that handle implements cql.Handle.
var _ cql.Handle = (*handle)(nil)

func newHandle(ctx context.Context, query *gocql.Query) *handle {
	h := &handle{
		query:      query,
		ctx:        ctx,
		registered: make(chan struct{}),
		released:   make(chan struct{}),
		fetch:      make(chan struct{}, 1),
	}
	h.hasMore.Store(true)
	go h.run()

	return h
}

// RegisterCallbacks installs the callbacks and triggers the first page.
func (h *handle) RegisterCallbacks(onPage cql.PageFunc, onError cql.ErrorFunc) error {
	err := types.ErrCallbacksRegistered
	h.regOnce.Do(func() {
		h.mu.Lock()
		h.onPage = onPage
		h.onError = onError
		h.mu.Unlock()
		close(h.registered)
		err = nil
	})

	return err
}

// HasMorePages reports whether another page can follow the last delivered one.
func (h *handle) HasMorePages() bool {
	return h.hasMore.Load()
}

// FetchNextPage asks the worker for the next page. Fire-and-forget.
func (h *handle) FetchNextPage() {
	select {
	case h.fetch <- struct{}{}:
	default:
	}
}

// Release detaches the callbacks and stops the worker. Idempotent.
func (h *handle) Release() {
	h.relOnce.Do(func() {
		close(h.released)
	})
}

func (h *handle) run() {
	select {
	case <-h.registered:
	case <-h.released:
		return
	case <-h.ctx.Done():
		return
	}

	var pageState []byte
	for {
		// Explicit page state disables transparent paging: one page per Iter.
		iter := h.query.PageState(pageState).IterContext(h.ctx)
		rows, err := iter.SliceMap()
		pageState = iter.PageState()
		if cerr := iter.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			h.deliverError(err)
			return
		}

		h.hasMore.Store(len(pageState) > 0)
		h.deliverPage(rows)
		if len(pageState) == 0 {
			return
		}

		select {
		case <-h.fetch:
		case <-h.released:
			return
		case <-h.ctx.Done():
			h.deliverError(h.ctx.Err())
			return
		}
	}
}

func (h *handle) deliverPage(rows []map[string]any) {
	select {
	case <-h.released:
		return
	default:
	}

	page := make([]cql.Row, len(rows))
	for i, r := range rows {
		page[i] = cql.Row(r)
	}

	h.mu.Lock()
	onPage := h.onPage
	h.mu.Unlock()
	onPage(page)
}

func (h *handle) deliverError(err error) {
	select {
	case <-h.released:
		return
	default:
	}

	h.mu.Lock()
	onError := h.onError
	h.mu.Unlock()
	onError(err)
}
