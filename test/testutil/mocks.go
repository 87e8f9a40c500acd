package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/axonops/async-python-cassandra-sub000/adapter/cql"
	"github.com/axonops/async-python-cassandra-sub000/types"
)

// MockHandle is a mock implementation of cql.Handle for testing.
//
// Pages are scripted up front with AddPage and delivered from a background
// goroutine, one page per fetch request, mirroring how a driver worker
// thread delivers completions. The first page is delivered right after
// RegisterCallbacks without a fetch request.
type MockHandle struct {
	mu         sync.Mutex
	pages      [][]cql.Row
	nextPage   int
	err        error
	errAfter   int
	registered bool
	released   bool
	onPage     cql.PageFunc
	onError    cql.ErrorFunc

	fetchCalls atomic.Int64
	fetchCh    chan struct{}
	releaseCh  chan struct{}

	// Hooks for custom behavior
	OnFetch   func()
	OnRelease func()
}

// Compile-time assertion that MockHandle implements cql.Handle.
var _ cql.Handle = (*MockHandle)(nil)

// NewMockHandle creates a new mock handle.
func NewMockHandle() *MockHandle {
	return &MockHandle{
		fetchCh:   make(chan struct{}, 16),
		releaseCh: make(chan struct{}),
	}
}

// AddPage appends a scripted page. Must be called before RegisterCallbacks.
func (m *MockHandle) AddPage(rows ...cql.Row) *MockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages = append(m.pages, rows)

	return m
}

// SetError configures an error to be delivered after afterPages pages.
// With afterPages zero the error is delivered instead of the first page.
func (m *MockHandle) SetError(err error, afterPages int) *MockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.err = err
	m.errAfter = afterPages

	return m
}

// RegisterCallbacks records the callbacks, spawns the delivery goroutine,
// and delivers the first page.
func (m *MockHandle) RegisterCallbacks(onPage cql.PageFunc, onError cql.ErrorFunc) error {
	m.mu.Lock()
	if m.registered {
		m.mu.Unlock()
		return types.ErrCallbacksRegistered
	}
	m.registered = true
	m.onPage = onPage
	m.onError = onError
	m.mu.Unlock()

	go m.run()

	return nil
}

// run delivers one page per fetch request, starting with an unrequested
// first page. It stands in for the driver's worker thread.
func (m *MockHandle) run() {
	m.deliver()

	for {
		select {
		case <-m.fetchCh:
			m.deliver()
		case <-m.releaseCh:
			return
		}
	}
}

// deliver sends the next scripted page or the scripted error.
func (m *MockHandle) deliver() {
	m.mu.Lock()
	if m.released {
		m.mu.Unlock()
		return
	}

	if m.err != nil && m.nextPage >= m.errAfter {
		onError := m.onError
		err := m.err
		m.mu.Unlock()

		onError(err)

		return
	}

	if m.nextPage >= len(m.pages) {
		m.mu.Unlock()
		return
	}

	page := m.pages[m.nextPage]
	m.nextPage++
	onPage := m.onPage
	m.mu.Unlock()

	onPage(page)
}

// HasMorePages reports whether scripted pages (or a scripted error) remain.
func (m *MockHandle) HasMorePages() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil && m.nextPage >= m.errAfter {
		return true
	}

	return m.nextPage < len(m.pages)
}

// FetchNextPage requests delivery of the next scripted page.
func (m *MockHandle) FetchNextPage() {
	m.fetchCalls.Add(1)

	if m.OnFetch != nil {
		m.OnFetch()
	}

	select {
	case m.fetchCh <- struct{}{}:
	default:
	}
}

// Release stops the delivery goroutine. Idempotent.
func (m *MockHandle) Release() {
	m.mu.Lock()
	if m.released {
		m.mu.Unlock()
		return
	}
	m.released = true
	m.mu.Unlock()

	close(m.releaseCh)

	if m.OnRelease != nil {
		m.OnRelease()
	}
}

// FetchCalls returns how many times FetchNextPage was called.
func (m *MockHandle) FetchCalls() int64 {
	return m.fetchCalls.Load()
}

// Released reports whether Release has been called.
func (m *MockHandle) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.released
}

// ManualHandle is a cql.Handle whose callbacks are invoked directly by the
// test. It has no delivery goroutine; use EmitPage and EmitError to drive
// it, which makes callback races and duplicate deliveries reproducible.
type ManualHandle struct {
	mu       sync.Mutex
	onPage   cql.PageFunc
	onError  cql.ErrorFunc
	hasMore  bool
	released atomic.Bool

	fetchCalls atomic.Int64
}

// Compile-time assertion that ManualHandle implements cql.Handle.
var _ cql.Handle = (*ManualHandle)(nil)

// NewManualHandle creates a manual handle.
func NewManualHandle() *ManualHandle {
	return &ManualHandle{}
}

// RegisterCallbacks records the callbacks.
func (m *ManualHandle) RegisterCallbacks(onPage cql.PageFunc, onError cql.ErrorFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.onPage != nil || m.onError != nil {
		return types.ErrCallbacksRegistered
	}
	m.onPage = onPage
	m.onError = onError

	return nil
}

// SetHasMorePages configures the HasMorePages result.
func (m *ManualHandle) SetHasMorePages(hasMore bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hasMore = hasMore
}

// HasMorePages returns the configured value.
func (m *ManualHandle) HasMorePages() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.hasMore
}

// FetchNextPage records the request; the test delivers pages explicitly.
func (m *ManualHandle) FetchNextPage() {
	m.fetchCalls.Add(1)
}

// Release marks the handle released.
func (m *ManualHandle) Release() {
	m.released.Store(true)
}

// Released reports whether Release has been called.
func (m *ManualHandle) Released() bool {
	return m.released.Load()
}

// FetchCalls returns how many times FetchNextPage was called.
func (m *ManualHandle) FetchCalls() int64 {
	return m.fetchCalls.Load()
}

// EmitPage invokes the registered page callback from the caller's
// goroutine.
func (m *ManualHandle) EmitPage(rows []cql.Row) {
	m.mu.Lock()
	onPage := m.onPage
	m.mu.Unlock()

	if onPage != nil {
		onPage(rows)
	}
}

// EmitError invokes the registered error callback from the caller's
// goroutine.
func (m *ManualHandle) EmitError(err error) {
	m.mu.Lock()
	onError := m.onError
	m.mu.Unlock()

	if onError != nil {
		onError(err)
	}
}

// MockExecutor is a mock implementation of cql.Executor for testing.
type MockExecutor struct {
	mu      sync.Mutex
	closed  bool
	handles []*MockHandle
	stmts   []string
	execErr error

	// Hooks for custom behavior
	OnExecute func(ctx context.Context, stmt string, opts cql.QueryOptions, values ...any) (cql.Handle, error)
	OnClose   func()
}

// Compile-time assertion that MockExecutor implements cql.Executor.
var _ cql.Executor = (*MockExecutor)(nil)

// NewMockExecutor creates a new mock executor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// QueueHandle enqueues a handle to be returned by the next ExecuteAsync.
func (m *MockExecutor) QueueHandle(h *MockHandle) *MockExecutor {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handles = append(m.handles, h)

	return m
}

// SetExecuteError configures ExecuteAsync to fail.
func (m *MockExecutor) SetExecuteError(err error) *MockExecutor {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.execErr = err

	return m
}

// ExecuteAsync returns the next queued handle, or an empty handle when the
// queue is drained.
func (m *MockExecutor) ExecuteAsync(ctx context.Context, stmt string, opts cql.QueryOptions, values ...any) (cql.Handle, error) {
	m.mu.Lock()

	if m.OnExecute != nil {
		hook := m.OnExecute
		m.mu.Unlock()

		return hook(ctx, stmt, opts, values...)
	}

	m.stmts = append(m.stmts, stmt)

	if m.execErr != nil {
		err := m.execErr
		m.mu.Unlock()

		return nil, err
	}

	var h *MockHandle
	if len(m.handles) > 0 {
		h = m.handles[0]
		m.handles = m.handles[1:]
	} else {
		h = NewMockHandle().AddPage()
	}
	m.mu.Unlock()

	return h, nil
}

// Close marks the executor closed.
func (m *MockExecutor) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	if m.OnClose != nil {
		m.OnClose()
	}
}

// IsClosed reports whether Close has been called.
func (m *MockExecutor) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}

// Statements returns the statements passed to ExecuteAsync.
func (m *MockExecutor) Statements() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]string, len(m.stmts))
	copy(result, m.stmts)

	return result
}
