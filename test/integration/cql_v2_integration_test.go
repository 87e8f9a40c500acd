package integration_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	gocqlv2 "github.com/apache/cassandra-gocql-driver/v2"
	"github.com/stretchr/testify/require"

	asyncql "github.com/axonops/async-python-cassandra-sub000"
	v2 "github.com/axonops/async-python-cassandra-sub000/adapter/cql/v2"
	"github.com/axonops/async-python-cassandra-sub000/types"
)

// newV2Session dials the same cluster through the Apache v2 driver.
func newV2Session(t *testing.T) (*gocqlv2.Session, *asyncql.AsyncSession) {
	t.Helper()

	// Reuse the env gate; the shared v1 session proves the cluster is up.
	getSharedSession(t)

	cluster := gocqlv2.NewCluster(strings.Split(os.Getenv("CASSANDRA_CONTACT_POINTS"), ",")...)
	cluster.Keyspace = testKeyspace
	cluster.Consistency = gocqlv2.Quorum
	cluster.Timeout = 10 * time.Second

	driverSession, err := cluster.CreateSession()
	require.NoError(t, err)
	t.Cleanup(driverSession.Close)

	executor, err := v2.NewExecutor(driverSession)
	require.NoError(t, err)

	session, err := asyncql.NewAsyncSession(executor)
	require.NoError(t, err)

	return driverSession, session
}

func TestIntegrationV2_ExecuteRoundTrip(t *testing.T) {
	table := createTestTable(t, "v2_exec", eventsTableSchema)
	_, session := newV2Session(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id := gocqlv2.TimeUUID()
	_, err := session.Execute(ctx,
		fmt.Sprintf("INSERT INTO %s (id, seq, payload) VALUES (?, ?, ?)", table),
		id, 7, "v2-hello",
	)
	require.NoError(t, err)

	result, err := session.Execute(ctx,
		fmt.Sprintf("SELECT payload FROM %s WHERE id = ?", table), id,
	)
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	require.Equal(t, "v2-hello", result.One()["payload"])
}

func TestIntegrationV2_StreamDeliversAllRows(t *testing.T) {
	table := createTestTable(t, "v2_stream", eventsTableSchema)
	insertRows(t, table, 120)

	_, session := newV2Session(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stream, err := session.ExecuteStream(ctx,
		fmt.Sprintf("SELECT id FROM %s", table),
		asyncql.StreamConfig{PageSize: 50},
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

	require.Equal(t, 120, count)
}
