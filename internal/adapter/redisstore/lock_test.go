package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"bookpress/internal/core/port"
)

func testClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func TestAcquireBlocksSecondHolder(t *testing.T) {
	rdb, _ := testClient(t)
	lock := NewDispatchLock(rdb, time.Minute)
	ctx := context.Background()

	release, err := lock.Acquire(ctx, "nl-1")
	require.NoError(t, err)

	_, err = lock.Acquire(ctx, "nl-1")
	require.ErrorIs(t, err, port.ErrDispatchRunning)

	// A different newsletter is unaffected.
	release2, err := lock.Acquire(ctx, "nl-2")
	require.NoError(t, err)
	release2()

	release()
	release3, err := lock.Acquire(ctx, "nl-1")
	require.NoError(t, err)
	release3()
}

func TestReleaseDoesNotStealReacquiredLock(t *testing.T) {
	rdb, mr := testClient(t)
	lock := NewDispatchLock(rdb, time.Minute)
	ctx := context.Background()

	release1, err := lock.Acquire(ctx, "nl-1")
	require.NoError(t, err)

	// Simulate the first holder's TTL expiring and a second run taking
	// over.
	mr.FastForward(2 * time.Minute)
	release2, err := lock.Acquire(ctx, "nl-1")
	require.NoError(t, err)

	// The stale holder's release must not remove the new lock.
	release1()
	_, err = lock.Acquire(ctx, "nl-1")
	require.ErrorIs(t, err, port.ErrDispatchRunning)

	release2()
}

func TestStatsCacheRoundTrip(t *testing.T) {
	rdb, mr := testClient(t)
	cache := NewStatsCache(rdb, 30*time.Second)
	ctx := context.Background()

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, got)

	want := &port.DashboardStats{
		ActiveSubscribers: 42,
		Orders:            7,
		RevenueCents:      12300,
		Newsletters:       map[string]int64{"draft": 2, "sent": 5},
	}
	require.NoError(t, cache.Set(ctx, want))

	got, err = cache.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	mr.FastForward(time.Minute)
	got, err = cache.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, got)
}
