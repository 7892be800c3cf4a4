package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestClient_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	got, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	got, _ = c.Get(ctx, "k")
	assert.Nil(t, got)
}

func TestClient_Incr(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)

	for i := int64(1); i <= 3; i++ {
		n, err := c.Incr(ctx, "counter", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	n, err := c.Count(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, time.Minute, mr.TTL("counter"))

	mr.FastForward(2 * time.Minute)
	n, _ = c.Count(ctx, "counter")
	assert.Zero(t, n)
}

func TestClient_FailsSafe(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)
	mr.Close()

	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	n, err := c.Incr(ctx, "k", time.Minute)
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Error(t, c.Ping(ctx))
}

func TestClient_Nil(t *testing.T) {
	var c *Client
	ctx := context.Background()

	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	n, err := c.Incr(ctx, "k", time.Minute)
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, c.Close())
}
