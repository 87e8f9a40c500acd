// Package v2 provides an adapter for gocql v2
// (github.com/apache/cassandra-gocql-driver).
//
// Behavior and layout mirror adapter/cql/v1; the differences are confined
// to the v2 driver's context-first iterator API and its consolidated
// consistency type for the serial phase of lightweight transactions.
//
// # Usage
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Keyspace = "my_keyspace"
//	session, err := cluster.CreateSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	executor, err := v2.WrapSession(session)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	async, err := asyncql.NewAsyncSession(executor)
package v2
