package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ninepay-go/ninepay/internal/shared/config"
)

// replayKeyPrefix namespaces notification keys in a shared Redis database.
const replayKeyPrefix = "replay_guard:"

// RedisReplayGuard records processed notifications in Redis so that replays
// are rejected across every instance of a merchant backend.
type RedisReplayGuard struct {
	client *redis.Client
}

// NewRedisClient builds a client from configuration and checks connectivity.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetAddr(), err)
	}
	return client, nil
}

func NewRedisReplayGuard(client *redis.Client) *RedisReplayGuard {
	return &RedisReplayGuard{client: client}
}

func (g *RedisReplayGuard) buildKey(key string) string {
	return replayKeyPrefix + key
}

// Acquire atomically records key with SetNX. It returns false when the key is
// already held, which marks the notification as a replay.
func (g *RedisReplayGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := g.client.SetNX(ctx, g.buildKey(key), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire replay key: %w", err)
	}
	return acquired, nil
}

// Release forgets a key so the notification can be processed again.
func (g *RedisReplayGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.buildKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to release replay key: %w", err)
	}
	return nil
}
