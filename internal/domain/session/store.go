package session

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// Store is a string key/value store with per-key expiry.
// A zero ttl means the key never expires on its own.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Locker is implemented by stores that can serialise work across processes.
type Locker interface {
	WithLock(ctx context.Context, name string, ttl time.Duration, fn func() error) error
}

// Scoped confines every key to one login session.
type Scoped struct {
	store  Store
	prefix string
}

// Scope returns a view of store whose keys live under the given session id.
func Scope(store Store, sessionID string) *Scoped {
	return &Scoped{store: store, prefix: "session:" + sessionID + ":"}
}

func (s *Scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.store.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.store.Set(ctx, s.prefix+key, value, ttl)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.prefix+key)
}

// WithLock runs fn under the backing store's lock when it has one, otherwise directly.
func (s *Scoped) WithLock(ctx context.Context, name string, ttl time.Duration, fn func() error) error {
	if locker, ok := s.store.(Locker); ok {
		return locker.WithLock(ctx, s.prefix+name, ttl, fn)
	}
	return fn()
}

var _ Store = (*Scoped)(nil)
