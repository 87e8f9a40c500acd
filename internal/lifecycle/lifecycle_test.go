package lifecycle

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCloseIsIdempotent(t *testing.T) {
	g := NewGuard()

	require.False(t, g.Closed())
	require.True(t, g.Close())
	require.True(t, g.Closed())
	require.False(t, g.Close())
}

func TestDoneObservesClose(t *testing.T) {
	g := NewGuard()

	select {
	case <-g.Done():
		t.Fatal("done channel closed before Close")
	default:
	}

	g.Close()

	select {
	case <-g.Done():
	default:
		t.Fatal("done channel not closed after Close")
	}
}

func TestConcurrentCloseSingleWinner(t *testing.T) {
	g := NewGuard()

	const closers = 64
	var winners atomic.Int32
	var wg sync.WaitGroup
	wg.Add(closers)
	for i := 0; i < closers; i++ {
		go func() {
			defer wg.Done()
			if g.Close() {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), winners.Load())
	require.True(t, g.Closed())
}
