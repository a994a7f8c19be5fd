package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := NewRedis(context.Background(), "redis://"+mr.Addr()+"/0", "test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestSetAndGetJSON(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "a", payload{Name: "x", Count: 2}, time.Minute))
	assert.True(t, mr.Exists("test:a"))

	var got payload
	require.NoError(t, c.GetJSON(ctx, "a", &got))
	assert.Equal(t, payload{Name: "x", Count: 2}, got)
}

func TestGetJSONMissAndExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got payload
	assert.ErrorIs(t, c.GetJSON(ctx, "missing", &got), ErrMiss)

	require.NoError(t, c.SetJSON(ctx, "b", payload{Name: "y"}, time.Second))
	mr.FastForward(2 * time.Second)
	assert.ErrorIs(t, c.GetJSON(ctx, "b", &got), ErrMiss)
}

func TestSetJSONZeroTTLSkipsWrite(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, c.SetJSON(context.Background(), "c", payload{}, 0))
	assert.False(t, mr.Exists("test:c"))
}

func TestDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "d", payload{}, time.Minute))
	require.NoError(t, c.Delete(ctx, "d"))
	assert.False(t, mr.Exists("test:d"))
}

func TestPingContext(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, c.PingContext(context.Background()))

	mr.Close()
	assert.Error(t, c.PingContext(context.Background()))
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "://nope", "")
	assert.Error(t, err)
}
