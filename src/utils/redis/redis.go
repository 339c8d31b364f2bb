package redis_utils

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fittrack/src/config"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("key does not exist")

// RedisHandler wraps the shared Redis client used for rate limiting and
// response caching.
type RedisHandler struct {
	client *redis.Client
}

// NewRedisHandler connects to the configured Redis server.
func NewRedisHandler(ctx context.Context, cfg config.RedisConfig) (*RedisHandler, error) {
	opts := &redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Database,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	handler := NewRedisHandlerFromClient(redis.NewClient(opts))

	if err := handler.Ping(ctx); err != nil {
		handler.Close()
		return nil, err
	}
	return handler, nil
}

func NewRedisHandlerFromClient(client *redis.Client) *RedisHandler {
	return &RedisHandler{client: client}
}

func (r *RedisHandler) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// Set stores value as JSON with an optional expiration.
func (r *RedisHandler) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

// Get decodes the JSON stored at key into result.
func (r *RedisHandler) Get(ctx context.Context, key string, result interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	} else if err != nil {
		return fmt.Errorf("failed to get key: %w", err)
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to deserialize value: %w", err)
	}
	return nil
}

func (r *RedisHandler) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// IncrWindow increments the counter at key, starting a window of the given
// length on the first hit, and returns the new count and the time left in
// the window.
func (r *RedisHandler) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	if count == 1 {
		if err := r.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("failed to set expiry on %s: %w", key, err)
		}
		return count, window, nil
	}

	ttl, err := r.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read ttl of %s: %w", key, err)
	}
	// A key left without expiry by a crashed writer would block forever.
	if ttl < 0 {
		if err := r.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		ttl = window
	}
	return count, ttl, nil
}

func (r *RedisHandler) Close() error {
	return r.client.Close()
}
