package cache_test

import (
	"context"
	"testing"
	"time"

	"loanchecker/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*cache.Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := cache.NewRedis(context.Background(), cache.RedisOptions{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestRedis_SetGet(t *testing.T) {
	c, _ := newRedis(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestRedis_TTL(t *testing.T) {
	c, mr := newRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedis_ServerDown(t *testing.T) {
	c, mr := newRedis(t)
	mr.Close()

	_, _, err := c.Get(context.Background(), "k")
	require.Error(t, err)
	require.Error(t, c.Set(context.Background(), "k", "v", 0))
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := cache.NewRedis(context.Background(), cache.RedisOptions{Addr: addr})
	require.ErrorContains(t, err, "could not ping redis")
}

func TestNoop(t *testing.T) {
	var c cache.Cache = cache.Noop{}
	require.NoError(t, c.Set(context.Background(), "k", "v", time.Minute))

	_, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, c.Close())
}

func TestKey(t *testing.T) {
	a := cache.Key("prediction", []byte("v1"), []byte("applicant"))
	require.Equal(t, a, cache.Key("prediction", []byte("v1"), []byte("applicant")))
	require.NotEqual(t, a, cache.Key("prediction", []byte("v2"), []byte("applicant")))
	// part boundaries are significant
	require.NotEqual(t, cache.Key("p", []byte("ab"), []byte("c")), cache.Key("p", []byte("a"), []byte("bc")))
	require.Regexp(t, `^prediction:[0-9a-f]+$`, a)
}
