package kvstore

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"moodcanvas-server/internal/domain/session"
)

// MemoryStore is a process-local session store backed by a bounded LRU.
type MemoryStore struct {
	cache *lru.Cache
	mu    sync.Mutex
	locks map[string]*namedLock
	now   func() time.Time
}

// namedLock is dropped from the map once no caller holds or waits on it.
type namedLock struct {
	sync.Mutex
	refs int
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemoryStore(maxSize int) (*MemoryStore, error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{
		cache: cache,
		locks: make(map[string]*namedLock),
		now:   time.Now,
	}, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	val, found := s.cache.Get(key)
	if !found {
		return "", false, nil
	}
	entry := val.(memoryEntry)
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.cache.Remove(key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.cache.Add(key, entry)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Remove(key)
	return nil
}

// WithLock serialises fn per lock name within this process.
func (s *MemoryStore) WithLock(_ context.Context, name string, _ time.Duration, fn func() error) error {
	s.mu.Lock()
	lock, ok := s.locks[name]
	if !ok {
		lock = &namedLock{}
		s.locks[name] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.Lock()
	defer func() {
		lock.Unlock()
		s.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.locks, name)
		}
		s.mu.Unlock()
	}()
	return fn()
}

var (
	_ session.Store  = (*MemoryStore)(nil)
	_ session.Locker = (*MemoryStore)(nil)
)
