package shared

import "context"

// UserLocker serializes mutations of per-user resources (the cart and the
// delivery address list) across concurrent requests. Implementations may be
// process-local or distributed.
type UserLocker interface {
	// Acquire blocks until the lock for the key is held or ctx is done.
	// The returned release function frees the lock and must always be
	// called, typically via defer.
	Acquire(ctx context.Context, key string) (release func(), err error)
}
