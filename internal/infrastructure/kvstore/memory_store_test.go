package kvstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetSetDelete(t *testing.T) {
	store, err := NewMemoryStore(16)
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))
	val, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", val)

	require.NoError(t, store.Delete(ctx, "k"))
	_, ok, _ = store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store, err := NewMemoryStore(16)
	require.NoError(t, err)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", "1", 10*time.Second))
	require.NoError(t, store.Set(ctx, "forever", "2", 0))

	now = now.Add(11 * time.Second)

	_, ok, _ := store.Get(ctx, "short")
	assert.False(t, ok)
	val, ok, _ := store.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, "2", val)
}

func TestMemoryStoreEvictsOldest(t *testing.T) {
	store, err := NewMemoryStore(2)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", "1", 0))
	require.NoError(t, store.Set(ctx, "b", "2", 0))
	require.NoError(t, store.Set(ctx, "c", "3", 0))

	_, ok, _ := store.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "c")
	assert.True(t, ok)
}

func TestMemoryStoreWithLockSerialises(t *testing.T) {
	store, err := NewMemoryStore(16)
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		running int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.WithLock(context.Background(), "token", time.Second, func() error {
				mu.Lock()
				running++
				if running > maxSeen {
					maxSeen = running
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				running--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Zero(t, lockCount(store))
}

func TestMemoryStoreWithLockForgetsReleasedNames(t *testing.T) {
	store, err := NewMemoryStore(16)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("session-%d:vertex-token", i)
		require.NoError(t, store.WithLock(context.Background(), name, time.Second, func() error {
			assert.Equal(t, 1, lockCount(store))
			return nil
		}))
	}
	assert.Zero(t, lockCount(store))

	boom := assert.AnError
	err = store.WithLock(context.Background(), "failing", time.Second, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, lockCount(store))
}

func lockCount(s *MemoryStore) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

func TestBuildUniversalOptions(t *testing.T) {
	opts, err := buildUniversalOptions("redis://:secret@cache:6379/2")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache:6379"}, opts.Addrs)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	opts, err = buildUniversalOptions("node-a:6379, node-b:6379")
	require.NoError(t, err)
	assert.Len(t, opts.Addrs, 2)

	_, err = buildUniversalOptions(" , ")
	assert.Error(t, err)
}
