package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, prefix string) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := NewRedisCache(WithRedisAddr(mr.Addr()), WithRedisPrefix(prefix))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return rc, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestRedis(t, "mp")

	require.NoError(t, rc.Set(ctx, "quote:SPY", quote{"SPY", 501.25}, time.Minute))
	require.True(t, mr.Exists("mp:quote:SPY"))

	var got quote
	require.NoError(t, rc.Get(ctx, "quote:SPY", &got))
	require.Equal(t, quote{"SPY", 501.25}, got)

	mr.FastForward(61 * time.Second)
	require.ErrorIs(t, rc.Get(ctx, "quote:SPY", &got), ErrCacheMiss)
}

func TestRedisCacheClearOnlyOwnPrefix(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestRedis(t, "mp")
	require.NoError(t, mr.Set("other:key", "keep"))

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, rc.Set(ctx, k, k, time.Minute))
	}
	require.NoError(t, rc.Clear(ctx))

	require.False(t, mr.Exists("mp:a"))
	require.False(t, mr.Exists("mp:c"))
	require.True(t, mr.Exists("other:key"))
}

func TestRedisCacheDelete(t *testing.T) {
	ctx := context.Background()
	rc, _ := newTestRedis(t, "mp")
	require.NoError(t, rc.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, rc.Delete(ctx, "a"))

	var s string
	require.ErrorIs(t, rc.Get(ctx, "a", &s), ErrCacheMiss)
	require.NoError(t, rc.Delete(ctx))
}

func TestNewRedisCacheFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(WithRedisAddr(addr))
	require.Error(t, err)
}

func TestLayeredCachePromotesFromRedis(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestRedis(t, "mp")
	lc := NewLayeredCache(rc)

	require.NoError(t, rc.Set(ctx, "sector:XLK", quote{"XLK", 210}, time.Minute))

	var got quote
	require.NoError(t, lc.Get(ctx, "sector:XLK", &got))
	require.Equal(t, "XLK", got.Symbol)

	// served from L1 once Redis loses the key
	mr.Del("mp:sector:XLK")
	got = quote{}
	require.NoError(t, lc.Get(ctx, "sector:XLK", &got))
	require.Equal(t, 210.0, got.Price)

	require.NoError(t, lc.Clear(ctx))
	require.ErrorIs(t, lc.Get(ctx, "sector:XLK", &got), ErrCacheMiss)
}

func TestLayeredCacheWriteThrough(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestRedis(t, "mp")
	lc := NewLayeredCache(rc)

	require.NoError(t, lc.Set(ctx, "k", "v", time.Minute))
	require.True(t, mr.Exists("mp:k"))

	require.NoError(t, lc.Delete(ctx, "k"))
	var s string
	require.ErrorIs(t, lc.Get(ctx, "k", &s), ErrCacheMiss)
}
