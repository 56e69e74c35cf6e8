package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(client), mr
}

func TestRedisCacheSetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := samplePayload{Name: "경복궁", Rating: 4.7}
	require.NoError(t, c.Set(ctx, "places:seoul", want, time.Hour))

	var got samplePayload
	found, err := c.Get(ctx, "places:seoul", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestRedisCacheMissIsNotAnError(t *testing.T) {
	c, _ := newTestCache(t)

	var got samplePayload
	found, err := c.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheRespectsTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short-lived", samplePayload{Name: "남산타워"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got samplePayload
	found, err := c.Get(ctx, "short-lived", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "doomed", samplePayload{Name: "명동"}, time.Hour))
	require.NoError(t, c.Delete(ctx, "doomed"))

	var got samplePayload
	found, err := c.Get(ctx, "doomed", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
