package cache

import (
	"context"
	"room-matching-service/internal/domain"
	"room-matching-service/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.ResultCache = (*RedisResultCache)(nil)
	_ ports.ResultCache = (*MemoryResultCache)(nil)
)

func sampleResult() domain.Result {
	return domain.Result{
		Status:     domain.StatusOptimal,
		Direction:  domain.Maximize,
		Strategy:   domain.StrategyLP,
		Assignment: domain.Assignment{1, 0, 2},
		Objective:  17,
	}
}

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisResultCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisResultCache(client, ttl), mr
}

func TestRedisResultCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", sampleResult()))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleResult(), got)
}

func TestRedisResultCacheExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Second)

	require.NoError(t, c.Set(ctx, "k", sampleResult()))
	mr.FastForward(2 * time.Second)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisResultCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, 0)

	require.NoError(t, mr.Set("k", "{not json"))
	_, ok, err := c.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisResultCacheServerDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, 0)
	mr.Close()

	_, _, err := c.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, c.Set(ctx, "k", sampleResult()))
}

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(ctx, mr.Addr())
	require.NoError(t, err)
	client.Close()

	_, err = NewRedisClient(ctx, "")
	assert.Error(t, err)
}

func TestMemoryResultCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryResultCache()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	r := sampleResult()
	require.NoError(t, c.Set(ctx, "k", r))
	r.Assignment[0] = 9

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleResult(), got)
	assert.Equal(t, 1, c.Len())
}

func TestDecodeResultEmptyAssignment(t *testing.T) {
	b, err := encodeResult(domain.Result{Status: domain.StatusOptimal, Assignment: domain.Assignment{}})
	require.NoError(t, err)

	got, err := decodeResult(b)
	require.NoError(t, err)
	assert.NotNil(t, got.Assignment)
	assert.Empty(t, got.Assignment)
	assert.Equal(t, domain.Minimize, got.Direction)
	assert.Equal(t, domain.StrategyHungarian, got.Strategy)
}
