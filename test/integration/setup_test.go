package integration_test

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gocql/gocql"
)

// Integration tests run against an externally provided cluster. Set
// CASSANDRA_CONTACT_POINTS (comma separated host:port) to enable them;
// without it every test skips.

const testKeyspace = "asyncql_it"

var sharedSession *gocql.Session

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		return
	}

	contactPoints := os.Getenv("CASSANDRA_CONTACT_POINTS")
	if contactPoints == "" {
		fmt.Println("Skipping integration tests (CASSANDRA_CONTACT_POINTS not set)")
		return
	}

	if err := setupSharedSession(strings.Split(contactPoints, ",")); err != nil {
		fmt.Printf("Failed to set up shared session: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	sharedSession.Close()
	os.Exit(code)
}

func setupSharedSession(hosts []string) error {
	cluster := gocql.NewCluster(hosts...)
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 10 * time.Second

	session, err := cluster.CreateSession()
	if err != nil {
		return err
	}

	err = session.Query(fmt.Sprintf(
		`CREATE KEYSPACE IF NOT EXISTS %s
		 WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}`,
		testKeyspace,
	)).Exec()
	if err != nil {
		session.Close()
		return err
	}
	session.Close()

	cluster.Keyspace = testKeyspace
	sharedSession, err = cluster.CreateSession()

	return err
}

// getSharedSession returns the shared gocql session.
// Do not call Close on it; TestMain owns its lifecycle.
func getSharedSession(t *testing.T) *gocql.Session {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if sharedSession == nil {
		t.Skip("shared session not available (set CASSANDRA_CONTACT_POINTS)")
	}

	return sharedSession
}

// createTestTable creates a table with a unique name and registers cleanup.
// The schema template must contain a %s placeholder for the table name.
func createTestTable(t *testing.T, nameSuffix, schema string) string {
	t.Helper()

	session := getSharedSession(t)
	tableName := fmt.Sprintf("test_%s_%d", nameSuffix, time.Now().UnixNano())

	if err := session.Query(fmt.Sprintf(schema, tableName)).Exec(); err != nil {
		t.Fatalf("failed to create table %s: %v", tableName, err)
	}

	t.Cleanup(func() {
		_ = session.Query(fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)).Exec()
	})

	return tableName
}

const eventsTableSchema = `
	CREATE TABLE IF NOT EXISTS %s (
		id UUID PRIMARY KEY,
		seq INT,
		payload TEXT
	)
`
