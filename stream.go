package asyncql

import (
	"context"
	"sync"

	"github.com/axonops/async-python-cassandra-sub000/adapter/cql"
	"github.com/axonops/async-python-cassandra-sub000/internal/lifecycle"
	"github.com/axonops/async-python-cassandra-sub000/internal/logging"
	"github.com/axonops/async-python-cassandra-sub000/internal/metrics"
	"github.com/axonops/async-python-cassandra-sub000/internal/signal"
	"github.com/axonops/async-python-cassandra-sub000/types"
)

// PageCallback receives progress notifications, one per arriving page.
//
// It fires synchronously on the delivering driver thread after the page has
// replaced its predecessor and before the consumer is unblocked, so it
// always observes the page it reports. It must not call back into the
// stream.
type PageCallback func(pageNumber, rowCount int)

// StreamConfig configures a PagedStream.
type StreamConfig struct {
	// PageSize is the maximum rows per page. Zero means the session or
	// driver default.
	PageSize int

	// MaxPages caps the number of pages fetched. Zero means unbounded.
	// The cap is hard: once reached the stream is exhausted even if the
	// driver has more data, and no further fetch is issued.
	MaxPages int

	// PageCallback, if set, receives one progress notification per page.
	PageCallback PageCallback
}

// PagedStream converts a sequence of driver page callbacks into a lazy,
// cancellable stream of rows.
//
// At most one page is resident in memory: an arriving page replaces, never
// extends, the prior page's storage. The next page is requested only after
// the consumer drains the current one, never eagerly, so the driver is
// never asked for more data than the consumer has consumed.
//
// A stream has a single consumer. Close must be called on every exit path;
// it is idempotent and always unblocks a consumer suspended in Next.
type PagedStream struct {
	handle  cql.Handle
	config  StreamConfig
	logger  types.Logger
	metrics types.MetricsCollector
	id      string

	guard     *lifecycle.Guard
	pageReady *signal.Signal

	// mu guards all state below; it is taken by driver worker threads
	// (page/error delivery) and by the consumer (advance calls).
	mu           sync.Mutex
	currentPage  []types.Row
	currentIndex int
	pageNumber   int
	totalRows    int64
	exhausted    bool
	cancelled    bool
	pendingErr   error

	// generation is bumped by Close and Cancel; a delivery armed under an
	// older generation is recognized as stale and dropped in O(1).
	generation uint64
	armedGen   uint64
}

// NewPagedStream wraps an operation handle in a paged stream and registers
// its callbacks, which triggers delivery of the first page.
//
// Parameters:
//   - handle: The in-flight operation to stream (required)
//   - config: Streaming configuration
//
// Returns:
//   - *PagedStream: The stream; the caller must Close it on every exit path
//   - error: types.ErrNilHandle, or a callback registration failure
func NewPagedStream(handle cql.Handle, config StreamConfig) (*PagedStream, error) {
	return newPagedStream(handle, config, "", logging.NewNopLogger(), metrics.NewNopMetrics())
}

func newPagedStream(handle cql.Handle, config StreamConfig, id string, logger types.Logger, collector types.MetricsCollector) (*PagedStream, error) {
	if handle == nil {
		return nil, types.ErrNilHandle
	}

	ps := &PagedStream{
		handle:    handle,
		config:    config,
		logger:    logger,
		metrics:   collector,
		id:        id,
		guard:     lifecycle.NewGuard(),
		pageReady: signal.New(),
	}
	if err := handle.RegisterCallbacks(ps.handlePage, ps.handleError); err != nil {
		return nil, err
	}

	return ps, nil
}

// handlePage runs on a driver worker thread for each arriving page.
func (ps *PagedStream) handlePage(rows []cql.Row) {
	ps.mu.Lock()
	// A fetch requested before Close or Cancel may still complete; a
	// stale generation identifies such late arrivals so they cannot
	// resurrect a torn-down stream.
	if ps.guard.Closed() || ps.generation != ps.armedGen {
		ps.mu.Unlock()
		ps.logger.Debug("late page dropped", "stream_id", ps.id, "rows", len(rows))
		return
	}

	// Defensive copy: the driver owns the delivered batch and may reuse
	// it after this callback returns.
	page := make([]types.Row, len(rows))
	copy(page, rows)

	// The new page replaces the prior one; this is the memory bound.
	ps.currentPage = page
	ps.currentIndex = 0
	ps.pageNumber++
	ps.totalRows += int64(len(rows))

	if ps.config.MaxPages > 0 && ps.pageNumber >= ps.config.MaxPages {
		// Hard cap: exhaust without consulting HasMorePages.
		ps.exhausted = true
	}

	pageNumber := ps.pageNumber
	callback := ps.config.PageCallback
	ps.mu.Unlock()

	ps.metrics.IncStreamPage(len(rows))
	if callback != nil {
		// Progress fires before the waiter is unblocked.
		callback(pageNumber, len(rows))
	}
	ps.pageReady.Notify()
}

// handleError runs on a driver worker thread. Rows already resident stay
// consumable; the error surfaces once they are drained.
func (ps *PagedStream) handleError(err error) {
	ps.mu.Lock()
	if ps.guard.Closed() || ps.generation != ps.armedGen {
		ps.mu.Unlock()
		ps.logger.Debug("late error dropped", "stream_id", ps.id, "error", err)
		return
	}
	ps.pendingErr = err
	ps.exhausted = true
	ps.mu.Unlock()

	ps.pageReady.Notify()
}

// Next returns the next row.
//
// When the current page is drained, Next requests the following page and
// suspends until it (or a terminal error, or Close) arrives. Rows fetched
// before a mid-stream failure are always delivered before the failure
// surfaces.
//
// Parameters:
//   - ctx: Bounds the wait for the next page
//
// Returns:
//   - types.Row: The next row, nil at end of stream
//   - error: types.ErrEndOfStream once drained, types.ErrStreamClosed after
//     Close, ctx.Err() on context end, or the original driver error
func (ps *PagedStream) Next(ctx context.Context) (types.Row, error) {
	for {
		ps.mu.Lock()
		if ps.guard.Closed() {
			ps.mu.Unlock()
			return nil, types.ErrStreamClosed
		}

		if ps.currentIndex < len(ps.currentPage) {
			row := ps.currentPage[ps.currentIndex]
			ps.currentIndex++
			ps.mu.Unlock()

			return row, nil
		}

		if ps.pendingErr != nil {
			err := ps.pendingErr
			ps.mu.Unlock()

			return nil, err
		}

		if ps.exhausted {
			ps.mu.Unlock()

			return nil, types.ErrEndOfStream
		}

		if ps.pageNumber > 0 {
			if !ps.handle.HasMorePages() {
				ps.exhausted = true
				ps.currentPage = nil
				ps.mu.Unlock()

				return nil, types.ErrEndOfStream
			}

			// Drained and more remains: release the spent page and
			// arm the next fetch. The reset-before-fetch ordering,
			// both under mu, is what makes Close's wakeup race-free.
			ps.currentPage = nil
			ps.currentIndex = 0
			ps.pageReady.Reset()
			ps.armedGen = ps.generation
			ps.mu.Unlock()

			ps.handle.FetchNextPage()
		} else {
			// First page is still in flight from the initiating call;
			// it needs no fetch request.
			ps.mu.Unlock()
		}

		if err := ps.pageReady.Wait(ctx); err != nil {
			return nil, err
		}
	}
}

// NextPage returns all remaining rows of the current page, fetching the
// next page if the current one is drained.
//
// The returned slice is handed off to the caller: the stream drops its own
// reference, preserving the one-page memory bound.
//
// Parameters:
//   - ctx: Bounds the wait for the next page
//
// Returns:
//   - []types.Row: The next page of rows
//   - error: Same contract as Next
func (ps *PagedStream) NextPage(ctx context.Context) ([]types.Row, error) {
	for {
		ps.mu.Lock()
		if ps.guard.Closed() {
			ps.mu.Unlock()
			return nil, types.ErrStreamClosed
		}

		if ps.currentIndex < len(ps.currentPage) {
			page := ps.currentPage[ps.currentIndex:]
			ps.currentPage = nil
			ps.currentIndex = 0
			ps.mu.Unlock()

			return page, nil
		}

		if ps.pendingErr != nil {
			err := ps.pendingErr
			ps.mu.Unlock()

			return nil, err
		}

		if ps.exhausted {
			ps.mu.Unlock()

			return nil, types.ErrEndOfStream
		}

		if ps.pageNumber > 0 {
			if !ps.handle.HasMorePages() {
				ps.exhausted = true
				ps.mu.Unlock()

				return nil, types.ErrEndOfStream
			}

			ps.currentPage = nil
			ps.currentIndex = 0
			ps.pageReady.Reset()
			ps.armedGen = ps.generation
			ps.mu.Unlock()

			ps.handle.FetchNextPage()
		} else {
			ps.mu.Unlock()
		}

		if err := ps.pageReady.Wait(ctx); err != nil {
			return nil, err
		}
	}
}

// Cancel stops further page fetches. Idempotent.
//
// Rows already fetched remain consumable; once they are drained, Next
// returns types.ErrEndOfStream. A fetch already in flight at cancellation
// time is dropped on arrival.
func (ps *PagedStream) Cancel() {
	ps.mu.Lock()
	if ps.cancelled || ps.guard.Closed() {
		ps.mu.Unlock()
		return
	}
	ps.cancelled = true
	ps.exhausted = true
	ps.generation++
	ps.mu.Unlock()

	// Wake a waiter parked in Next; it observes exhausted and returns
	// types.ErrEndOfStream.
	ps.pageReady.Notify()

	ps.metrics.IncStreamCancelled()
	ps.logger.Debug("stream cancelled", "stream_id", ps.id)
}

// Close releases the stream's resources. Idempotent; must be called on
// every exit path.
//
// Close releases the resident page, detaches the driver callbacks, and
// wakes any consumer suspended in Next, which then returns
// types.ErrStreamClosed rather than hanging.
//
// Returns:
//   - error: Always nil; the signature satisfies io.Closer
func (ps *PagedStream) Close() error {
	if !ps.guard.Close() {
		return nil
	}

	ps.mu.Lock()
	ps.generation++
	ps.currentPage = nil
	ps.currentIndex = 0
	ps.exhausted = true
	pages := ps.pageNumber
	rows := ps.totalRows
	ps.mu.Unlock()

	ps.handle.Release()
	// Wake a waiter parked in Next; it observes the closed guard.
	ps.pageReady.Notify()

	ps.metrics.IncStreamClosed()
	ps.logger.Debug("stream closed", "stream_id", ps.id, "pages", pages, "rows", rows)

	return nil
}

// PageNumber returns the number of pages delivered so far.
func (ps *PagedStream) PageNumber() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	return ps.pageNumber
}

// TotalRowsFetched returns the total number of rows delivered so far.
func (ps *PagedStream) TotalRowsFetched() int64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	return ps.totalRows
}
