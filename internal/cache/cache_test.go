package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopNeverHits(t *testing.T) {
	c := NewNoop()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryExpiresAfterTTL(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "articles", []byte(`{"data":[]}`), time.Minute))
	got, ok, err := c.Get(ctx, "articles")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"data":[]}`, string(got))

	now = now.Add(59 * time.Second)
	_, ok, _ = c.Get(ctx, "articles")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, "articles")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemoryCopiesValues(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, 0))
	buf[0] = 'z'
	got, ok, _ := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))

	require.NoError(t, c.Delete(ctx, "k"))
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	c, err := NewRedis("redis://" + srv.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "teams?locale=fr", []byte("payload"), time.Minute))
	assert.True(t, srv.Exists(redisKeyPrefix+"teams?locale=fr"))
	got, ok, err := c.Get(ctx, "teams?locale=fr")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "payload", string(got))

	srv.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "teams?locale=fr")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis("http://nope")
	assert.Error(t, err)
}
