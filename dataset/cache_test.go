package dataset

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

// ============================================================================
// CACHE TESTS
// ============================================================================

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCacheReadThrough(t *testing.T) {
	cache := NewCache(NewLoader(fixturePaths(t), zaptest.NewLogger(t)))
	assert.False(t, cache.Loaded())

	first, err := cache.Tables(context.Background())
	require.NoError(t, err)
	assert.True(t, cache.Loaded())

	// Second read returns the same snapshot, not a reload.
	second, err := cache.Tables(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCacheClear(t *testing.T) {
	cache := NewCache(NewLoader(fixturePaths(t), zaptest.NewLogger(t)))

	first, err := cache.Tables(context.Background())
	require.NoError(t, err)

	cache.Clear()
	assert.False(t, cache.Loaded())

	second, err := cache.Tables(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestCacheLoadFailureNotCached(t *testing.T) {
	paths := fixturePaths(t)
	paths.StateYear = "/nonexistent/state.csv"
	cache := NewCache(NewLoader(paths, zaptest.NewLogger(t)))

	_, err := cache.Tables(context.Background())
	require.Error(t, err)
	assert.False(t, cache.Loaded())
}

func TestCacheConcurrentFirstRead(t *testing.T) {
	cache := NewCache(NewLoader(fixturePaths(t), zaptest.NewLogger(t)))

	const readers = 16
	snapshots := make([]*Tables, readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables, err := cache.Tables(context.Background())
			if err != nil {
				t.Error(err)
				return
			}
			snapshots[i] = tables
		}(i)
	}
	wg.Wait()

	// Every reader observes the same snapshot pointer.
	for i := 1; i < readers; i++ {
		assert.Same(t, snapshots[0], snapshots[i])
	}
}
