// Package testutil provides mock implementations of the adapter contracts
// for unit testing without a live Cassandra cluster.
//
// MockHandle delivers scripted pages from a background goroutine, one page
// per fetch request, mirroring a driver worker thread. ManualHandle lets a
// test invoke the callbacks directly to reproduce races and duplicate
// deliveries. MockExecutor hands out queued handles.
package testutil
