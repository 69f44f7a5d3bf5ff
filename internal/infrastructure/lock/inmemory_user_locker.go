package lock

import (
	"context"
	"sync"

	"github.com/marketplace/backend/internal/domain/shared"
)

// InMemoryUserLocker implements UserLocker with process-local mutexes.
// Suitable for single-instance deployments and testing.
// WARNING: In-memory locks do not serialize requests across process
// instances; distributed deployments must use the Redis locker.
type InMemoryUserLocker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	ch   chan struct{} // capacity 1, holding the token means holding the lock
	refs int
}

// NewInMemoryUserLocker creates a new in-memory user locker
func NewInMemoryUserLocker() *InMemoryUserLocker {
	return &InMemoryUserLocker{
		locks: make(map[string]*lockEntry),
	}
}

// Acquire blocks until the lock for the key is held or ctx is done
func (l *InMemoryUserLocker) Acquire(ctx context.Context, key string) (func(), error) {
	entry := l.retain(key)

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		l.put(key)
		return nil, ctx.Err()
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			<-entry.ch
			l.put(key)
		})
	}

	return release, nil
}

// retain returns the entry for the key, creating it if needed, and bumps
// its refcount so concurrent waiters share one channel.
func (l *InMemoryUserLocker) retain(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[key]
	if !ok {
		entry = &lockEntry{ch: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

// put drops one reference to the key's entry and removes it once unused,
// keeping the map from growing with every user ever seen.
func (l *InMemoryUserLocker) put(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[key]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, key)
	}
}

// Ensure InMemoryUserLocker implements UserLocker
var _ shared.UserLocker = (*InMemoryUserLocker)(nil)
