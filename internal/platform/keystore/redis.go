package keystore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"thesis-gallery/internal/config"
)

// Redis is a Store backed by Redis (or Valkey, which is wire-compatible).
// Used by the server so preferences survive across devices, unlike the
// per-browser stores.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store with the provided configuration and
// verifies connectivity.
func NewRedis(cfg config.CacheConfig) (*Redis, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("cache is disabled")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.Database,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis/Valkey: %w", err)
	}

	return &Redis{client: rdb, ttl: cfg.DefaultTTL}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Health checks if the Redis/Valkey connection is healthy.
func (r *Redis) Health(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis/Valkey health check failed: %w", err)
	}
	return nil
}

// Close closes the Redis/Valkey connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
