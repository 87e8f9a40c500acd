package v1

import (
	"github.com/gocql/gocql"

	"github.com/axonops/async-python-cassandra-sub000/adapter/cql"
)

// ToGocqlConsistency converts an asyncql Consistency to gocql.Consistency.
//
// This is useful when you need to interact with the underlying gocql driver
// directly while using asyncql consistency constants.
//
// Parameters:
//   - c: asyncql consistency level
//
// Returns:
//   - gocql.Consistency: The equivalent gocql consistency level
//
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Consistency = v1.ToGocqlConsistency(cql.Quorum)
func ToGocqlConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// FromGocqlConsistency converts a gocql.Consistency to an asyncql
// Consistency.
//
// Parameters:
//   - c: gocql consistency level
//
// Returns:
//   - cql.Consistency: The equivalent asyncql consistency level
func FromGocqlConsistency(c gocql.Consistency) cql.Consistency {
	return cql.Consistency(c)
}

// UnwrapSession returns the underlying gocql.Session from an Executor.
//
// This is useful when you need direct access to the underlying gocql session
// for operations not exposed by the asyncql interface.
//
// Parameters:
//   - e: asyncql v1 Executor
//
// Returns:
//   - *gocql.Session: The underlying gocql session
//
// Example:
//
//	gocqlSession := v1.UnwrapSession(executor)
//	keyspaceMeta, _ := gocqlSession.KeyspaceMetadata("my_keyspace")
func UnwrapSession(e *Executor) *gocql.Session {
	return e.session
}
