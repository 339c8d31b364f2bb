// Package ratelimit implements the fixed-window request limiter guarding the
// public API. Every key gets Limit requests per Window, counted from the
// first request of the window.
package ratelimit

import (
	"context"
	"sync"
	"time"

	redis_utils "fittrack/src/utils/redis"
)

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is how long the caller should wait before the window resets.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if d := r.ResetAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

type window struct {
	start time.Time
	count int
}

// MemoryLimiter keeps the windows in process memory.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	windows map[string]*window
	sweptAt time.Time
}

func NewMemoryLimiter(limit int, length time.Duration) *MemoryLimiter {
	return NewMemoryLimiterWithClock(limit, length, time.Now)
}

func NewMemoryLimiterWithClock(limit int, length time.Duration, now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  length,
		now:     now,
		windows: make(map[string]*window),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++

	return newResult(l.limit, w.count, w.start.Add(l.window)), nil
}

// sweep drops expired windows at most once per window length.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.sweptAt) < l.window {
		return
	}
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
		}
	}
	l.sweptAt = now
}

// RedisLimiter shares the windows between API replicas.
type RedisLimiter struct {
	redis  *redis_utils.RedisHandler
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(handler *redis_utils.RedisHandler, limit int, length time.Duration) *RedisLimiter {
	return &RedisLimiter{
		redis:  handler,
		limit:  limit,
		window: length,
		prefix: "ratelimit:",
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	count, ttl, err := l.redis.IncrWindow(ctx, l.prefix+key, l.window)
	if err != nil {
		return Result{}, err
	}
	return newResult(l.limit, int(count), l.now().Add(ttl)), nil
}

func newResult(limit, count int, resetAt time.Time) Result {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
