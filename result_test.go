package asyncql

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/axonops/async-python-cassandra-sub000/adapter/cql"
	"github.com/axonops/async-python-cassandra-sub000/test/testutil"
	"github.com/axonops/async-python-cassandra-sub000/types"
)

func TestNewResultBridge_NilHandle(t *testing.T) {
	bridge, err := NewResultBridge(nil)
	require.ErrorIs(t, err, types.ErrNilHandle)
	require.Nil(t, bridge)
}

func TestResultBridge_SinglePage(t *testing.T) {
	handle := testutil.NewMockHandle().
		AddPage(cql.Row{"id": 1}, cql.Row{"id": 2})

	bridge, err := NewResultBridge(handle)
	require.NoError(t, err)

	result, err := bridge.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, result.Len())
	require.Equal(t, 1, result.All()[0]["id"])
}

func TestResultBridge_MultiPageAccumulation(t *testing.T) {
	handle := testutil.NewMockHandle().
		AddPage(cql.Row{"id": 1}, cql.Row{"id": 2}).
		AddPage(cql.Row{"id": 3}).
		AddPage(cql.Row{"id": 4}, cql.Row{"id": 5})

	bridge, err := NewResultBridge(handle)
	require.NoError(t, err)

	result, err := bridge.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, result.Len())

	ids := make([]int, 0, result.Len())
	for _, row := range result.All() {
		ids = append(ids, row["id"].(int))
	}
	require.Equal(t, []int{1, 2, 3, 4, 5}, ids)

	// Every follow-up page was requested, first page was not.
	require.Equal(t, int64(2), handle.FetchCalls())
}

func TestResultBridge_EmptyResult(t *testing.T) {
	handle := testutil.NewMockHandle().AddPage()

	bridge, err := NewResultBridge(handle)
	require.NoError(t, err)

	result, err := bridge.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, result.Len())
	require.Nil(t, result.One())
}

func TestResultBridge_ErrorDiscardsPartialRows(t *testing.T) {
	driverErr := errors.New("read timeout")
	handle := testutil.NewMockHandle().
		AddPage(cql.Row{"id": 1}).
		SetError(driverErr, 1)

	bridge, err := NewResultBridge(handle)
	require.NoError(t, err)

	result, err := bridge.Await(context.Background())
	require.ErrorIs(t, err, driverErr)
	require.Nil(t, result)
}

func TestResultBridge_ErrorOnFirstDelivery(t *testing.T) {
	driverErr := errors.New("unavailable")
	handle := testutil.NewMockHandle().SetError(driverErr, 0)

	bridge, err := NewResultBridge(handle)
	require.NoError(t, err)

	result, err := bridge.Await(context.Background())
	require.ErrorIs(t, err, driverErr)
	require.Nil(t, result)
}

func TestResultBridge_ContextCancelled(t *testing.T) {
	// No pages scripted on a manual handle, so the result never resolves.
	handle := testutil.NewManualHandle()

	bridge, err := NewResultBridge(handle)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := bridge.Await(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, result)
	require.True(t, handle.Released())
}

func TestResultBridge_ExactlyOnceResolution(t *testing.T) {
	handle := testutil.NewManualHandle()

	bridge, err := NewResultBridge(handle)
	require.NoError(t, err)

	handle.EmitPage([]cql.Row{{"id": 1}})

	// Late deliveries after resolution are dropped without effect.
	handle.EmitPage([]cql.Row{{"id": 99}})
	handle.EmitError(errors.New("late failure"))

	result, err := bridge.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	require.Equal(t, 1, result.All()[0]["id"])
}

func TestResultBridge_RacingResolution(t *testing.T) {
	handle := testutil.NewManualHandle()

	bridge, err := NewResultBridge(handle)
	require.NoError(t, err)

	driverErr := errors.New("racing failure")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		handle.EmitPage([]cql.Row{{"id": 1}})
	}()
	go func() {
		defer wg.Done()
		handle.EmitError(driverErr)
	}()
	wg.Wait()

	// Exactly one of the two outcomes wins; never a torn mix.
	result, err := bridge.Await(context.Background())
	if err != nil {
		require.ErrorIs(t, err, driverErr)
		require.Nil(t, result)
	} else {
		require.Equal(t, 1, result.Len())
	}
}

func TestResultBridge_DoubleRegistration(t *testing.T) {
	handle := testutil.NewManualHandle()

	_, err := NewResultBridge(handle)
	require.NoError(t, err)

	_, err = NewResultBridge(handle)
	require.ErrorIs(t, err, types.ErrCallbacksRegistered)
}

func TestResultBridge_ReleasesHandleOnResolve(t *testing.T) {
	handle := testutil.NewMockHandle().AddPage(cql.Row{"id": 1})

	bridge, err := NewResultBridge(handle)
	require.NoError(t, err)

	_, err = bridge.Await(context.Background())
	require.NoError(t, err)

	require.Eventually(t, handle.Released, time.Second, 10*time.Millisecond)
}

func TestResultSet_One(t *testing.T) {
	handle := testutil.NewMockHandle().
		AddPage(cql.Row{"name": "alpha"}, cql.Row{"name": "beta"})

	bridge, err := NewResultBridge(handle)
	require.NoError(t, err)

	result, err := bridge.Await(context.Background())
	require.NoError(t, err)

	row := result.One()
	require.NotNil(t, row)
	require.Equal(t, "alpha", row["name"])
}
