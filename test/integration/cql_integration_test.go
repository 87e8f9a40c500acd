package integration_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"

	asyncql "github.com/axonops/async-python-cassandra-sub000"
	v1 "github.com/axonops/async-python-cassandra-sub000/adapter/cql/v1"
	"github.com/axonops/async-python-cassandra-sub000/types"
)

func newTestSession(t *testing.T, opts ...asyncql.Option) *asyncql.AsyncSession {
	t.Helper()

	executor, err := v1.NewExecutor(getSharedSession(t))
	require.NoError(t, err)

	session, err := asyncql.NewAsyncSession(executor, opts...)
	require.NoError(t, err)

	return session
}

func insertRows(t *testing.T, table string, count int) {
	t.Helper()

	session := getSharedSession(t)
	for i := 0; i < count; i++ {
		err := session.Query(
			fmt.Sprintf("INSERT INTO %s (id, seq, payload) VALUES (?, ?, ?)", table),
			gocql.TimeUUID(), i, fmt.Sprintf("payload-%d", i),
		).Exec()
		require.NoError(t, err)
	}
}

func TestIntegration_ExecuteRoundTrip(t *testing.T) {
	table := createTestTable(t, "exec", eventsTableSchema)
	session := newTestSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id := gocql.TimeUUID()
	_, err := session.Execute(ctx,
		fmt.Sprintf("INSERT INTO %s (id, seq, payload) VALUES (?, ?, ?)", table),
		id, 1, "hello",
	)
	require.NoError(t, err)

	result, err := session.Execute(ctx,
		fmt.Sprintf("SELECT seq, payload FROM %s WHERE id = ?", table), id,
	)
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	require.Equal(t, "hello", result.One()["payload"])
}

func TestIntegration_ExecuteGathersAllPages(t *testing.T) {
	table := createTestTable(t, "exec_pages", eventsTableSchema)
	insertRows(t, table, 250)

	session := newTestSession(t, asyncql.WithDefaultPageSize(50))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := session.Execute(ctx, fmt.Sprintf("SELECT id FROM %s", table))
	require.NoError(t, err)
	require.Equal(t, 250, result.Len())
}

func TestIntegration_StreamDeliversAllRows(t *testing.T) {
	table := createTestTable(t, "stream", eventsTableSchema)
	insertRows(t, table, 300)

	session := newTestSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var pages int
	stream, err := session.ExecuteStream(ctx,
		fmt.Sprintf("SELECT id, seq FROM %s", table),
		asyncql.StreamConfig{
			PageSize:     40,
			PageCallback: func(_, _ int) { pages++ },
		},
	)
	require.NoError(t, err)
	defer stream.Close()

	count := 0
	for {
		_, err := stream.Next(ctx)
		if errors.Is(err, types.ErrEndOfStream) {
			break
		}
		require.NoError(t, err)
		count++
	}

	require.Equal(t, 300, count)
	require.GreaterOrEqual(t, pages, 8)
	require.Equal(t, int64(300), stream.TotalRowsFetched())
}

func TestIntegration_StreamMaxPages(t *testing.T) {
	table := createTestTable(t, "stream_cap", eventsTableSchema)
	insertRows(t, table, 200)

	session := newTestSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stream, err := session.ExecuteStream(ctx,
		fmt.Sprintf("SELECT id FROM %s", table),
		asyncql.StreamConfig{PageSize: 30, MaxPages: 2},
	)
	require.NoError(t, err)
	defer stream.Close()

	count := 0
	for {
		_, err := stream.Next(ctx)
		if errors.Is(err, types.ErrEndOfStream) {
			break
		}
		require.NoError(t, err)
		count++
	}

	require.Equal(t, 60, count)
}

func TestIntegration_StreamNextPage(t *testing.T) {
	table := createTestTable(t, "stream_page", eventsTableSchema)
	insertRows(t, table, 100)

	session := newTestSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stream, err := session.ExecuteStream(ctx,
		fmt.Sprintf("SELECT id FROM %s", table),
		asyncql.StreamConfig{PageSize: 25},
	)
	require.NoError(t, err)
	defer stream.Close()

	total := 0
	for {
		page, err := stream.NextPage(ctx)
		if errors.Is(err, types.ErrEndOfStream) {
			break
		}
		require.NoError(t, err)
		require.LessOrEqual(t, len(page), 25)
		total += len(page)
	}

	require.Equal(t, 100, total)
}

func TestIntegration_SetKeyspace(t *testing.T) {
	session := newTestSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, session.SetKeyspace(ctx, testKeyspace))

	err := session.SetKeyspace(ctx, "no such keyspace")
	require.ErrorIs(t, err, types.ErrInvalidKeyspace)
}

func TestIntegration_QueryErrorSurfacesUnwrapped(t *testing.T) {
	session := newTestSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := session.Execute(ctx, "SELECT * FROM table_that_does_not_exist")
	require.Error(t, err)
}
