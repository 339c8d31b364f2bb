package redis_utils_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/src/config"
	redis_utils "fittrack/src/utils/redis"
)

type SampleData struct {
	Name  string
	Count int
}

func TestRedisHandler(t *testing.T) {
	mr := miniredis.RunT(t)
	handler := redis_utils.NewRedisHandlerFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer handler.Close()
	ctx := context.Background()

	t.Run("Set and Get with struct", func(t *testing.T) {
		value := SampleData{Name: "oats", Count: 3}
		require.NoError(t, handler.Set(ctx, "sample", value, time.Minute))

		var got SampleData
		require.NoError(t, handler.Get(ctx, "sample", &got))
		assert.Equal(t, value, got)
	})

	t.Run("Get missing key", func(t *testing.T) {
		var got SampleData
		assert.ErrorIs(t, handler.Get(ctx, "missing", &got), redis_utils.ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, handler.Set(ctx, "gone", 1, 0))
		require.NoError(t, handler.Delete(ctx, "gone"))
		var got int
		assert.ErrorIs(t, handler.Get(ctx, "gone", &got), redis_utils.ErrCacheMiss)
	})

	t.Run("IncrWindow", func(t *testing.T) {
		count, ttl, err := handler.IncrWindow(ctx, "window", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, time.Minute, ttl)

		count, ttl, err = handler.IncrWindow(ctx, "window", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.LessOrEqual(t, ttl, time.Minute)
		assert.Greater(t, ttl, time.Duration(0))
	})
}

func TestNewRedisHandler(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.RedisConfig{Host: mr.Host(), Port: mr.Port()}

	handler, err := redis_utils.NewRedisHandler(context.Background(), cfg)
	require.NoError(t, err)
	defer handler.Close()
	assert.NoError(t, handler.Ping(context.Background()))

	mr.Close()
	_, err = redis_utils.NewRedisHandler(context.Background(), cfg)
	assert.Error(t, err)
}
