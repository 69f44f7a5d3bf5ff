// Package lock provides UserLocker implementations. The Redis locker
// serializes per-user mutations across instances; the in-memory locker
// covers single-instance deployments and tests.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// releaseScript deletes the lock key only if it still holds our token, so a
// lock that expired and was re-acquired by another owner is never released
// by the previous one.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisUserLocker implements UserLocker on top of Redis SET NX PX.
type RedisUserLocker struct {
	client        *redis.Client
	keyPrefix     string
	ttl           time.Duration
	retryInterval time.Duration
	logger        *zap.Logger
}

// RedisUserLockerOption is a functional option for configuring the locker
type RedisUserLockerOption func(*RedisUserLocker)

// WithLogger sets the logger for the locker
func WithLogger(logger *zap.Logger) RedisUserLockerOption {
	return func(l *RedisUserLocker) {
		l.logger = logger
	}
}

// WithTTL sets how long a held lock survives a crashed owner
func WithTTL(ttl time.Duration) RedisUserLockerOption {
	return func(l *RedisUserLocker) {
		l.ttl = ttl
	}
}

// WithRetryInterval sets the polling interval while waiting for a held lock
func WithRetryInterval(interval time.Duration) RedisUserLockerOption {
	return func(l *RedisUserLocker) {
		l.retryInterval = interval
	}
}

// NewRedisUserLocker creates a Redis-backed user locker and verifies the
// connection before returning.
func NewRedisUserLocker(client *redis.Client, opts ...RedisUserLockerOption) (*RedisUserLocker, error) {
	l := &RedisUserLocker{
		client:        client,
		keyPrefix:     "lock:",
		ttl:           10 * time.Second,
		retryInterval: 20 * time.Millisecond,
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return l, nil
}

// Acquire blocks until the lock for the key is held or ctx is done
func (l *RedisUserLocker) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := l.keyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}

	release := func() {
		// Release must not inherit a canceled request context.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, l.client, []string{lockKey}, token).Err(); err != nil {
			l.logger.Warn("failed to release lock",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	return release, nil
}

// Close closes the underlying Redis client
func (l *RedisUserLocker) Close() error {
	return l.client.Close()
}

// Ensure RedisUserLocker implements UserLocker
var _ shared.UserLocker = (*RedisUserLocker)(nil)
