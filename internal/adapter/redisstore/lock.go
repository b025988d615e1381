// Package redisstore implements the Redis-backed collaborators: the
// per-newsletter dispatch lock and the dashboard stats cache.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bookpress/internal/core/port"
)

// DispatchLock serialises dispatch runs per newsletter across processes
// with SET NX. The TTL bounds how long a crashed holder can block
// subsequent dispatches.
type DispatchLock struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDispatchLock creates a lock with the given expiry.
func NewDispatchLock(rdb *redis.Client, ttl time.Duration) *DispatchLock {
	return &DispatchLock{rdb: rdb, ttl: ttl}
}

// Acquire takes the lock for key. It returns port.ErrDispatchRunning
// when another holder owns it. The returned release func deletes the
// lock only if this call still owns it.
func (l *DispatchLock) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := "dispatch:lock:" + key
	owner := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, redisKey, owner, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire dispatch lock: %w", err)
	}
	if !ok {
		return nil, port.ErrDispatchRunning
	}

	release := func() {
		// Release must not inherit the (possibly cancelled) dispatch
		// context: the lock has to go away even after an aborted run.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// Delete only our own lock; an expired lock may have been
		// re-acquired by another run.
		const script = `
            if redis.call("get", KEYS[1]) == ARGV[1] then
                return redis.call("del", KEYS[1])
            end
            return 0`
		_ = l.rdb.Eval(ctx, script, []string{redisKey}, owner).Err()
	}
	return release, nil
}
