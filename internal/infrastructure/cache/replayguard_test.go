package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisReplayGuard_Acquire(t *testing.T) {
	client := setupTestRedis(t)
	guard := NewRedisReplayGuard(client)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "ninepay:notification:ABC", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "first delivery should be accepted")

	ok, err = guard.Acquire(ctx, "ninepay:notification:ABC", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "replay should be rejected")

	ttl, err := client.TTL(ctx, replayKeyPrefix+"ninepay:notification:ABC").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRedisReplayGuard_Release(t *testing.T) {
	client := setupTestRedis(t)
	guard := NewRedisReplayGuard(client)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "key", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, guard.Release(ctx, "key"))

	ok, err = guard.Acquire(ctx, "key", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "released key should be acquirable again")
}

func TestRedisReplayGuard_ReleaseMissingKey(t *testing.T) {
	client := setupTestRedis(t)
	guard := NewRedisReplayGuard(client)

	assert.NoError(t, guard.Release(context.Background(), "missing"))
}
