package localcache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avatarctic/film-catalog-api/internal/infrastructure/localcache"
	"github.com/avatarctic/film-catalog-api/test/mocks"
)

func mustNewLocal(t *testing.T) *localcache.Local {
	t.Helper()
	l, err := localcache.NewLocal(1000)
	require.NoError(t, err)
	t.Cleanup(l.Close)
	return l
}

func TestLocal_SetGetDelete(t *testing.T) {
	l := mustNewLocal(t)
	ctx := context.Background()

	_, ok, err := l.Get(ctx, "movies:tt1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, l.Set(ctx, "movies:tt1", []byte("v1"), time.Minute))
	v, ok, err := l.Get(ctx, "movies:tt1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v1", string(v))

	require.NoError(t, l.Delete(ctx, "movies:tt1"))
	_, ok, _ = l.Get(ctx, "movies:tt1")
	require.False(t, ok)
}

func TestLocal_TTLExpires(t *testing.T) {
	l := mustNewLocal(t)
	ctx := context.Background()

	require.NoError(t, l.Set(ctx, "genres:g1", []byte("temp"), 50*time.Millisecond))
	_, ok, _ := l.Get(ctx, "genres:g1")
	require.True(t, ok)

	require.Eventually(t, func() bool {
		_, ok, _ := l.Get(ctx, "genres:g1")
		return !ok
	}, 2*time.Second, 20*time.Millisecond)
}

func TestTiered_PromotesSharedHits(t *testing.T) {
	ctx := context.Background()
	local := mocks.NewMemoryCache()
	shared := mocks.NewMemoryCache()
	require.NoError(t, shared.Set(ctx, "persons:p1", []byte("p"), time.Minute))

	tc := localcache.NewTiered(local, shared, 10*time.Second)
	v, ok, err := tc.Get(ctx, "persons:p1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "p", string(v))

	v, ok, _ = local.Get(ctx, "persons:p1")
	require.True(t, ok)
	require.Equal(t, "p", string(v))
	require.Equal(t, 10*time.Second, local.TTLOf("persons:p1"))
}

func TestTiered_SetCapsLocalTTL(t *testing.T) {
	ctx := context.Background()
	local := mocks.NewMemoryCache()
	shared := mocks.NewMemoryCache()
	tc := localcache.NewTiered(local, shared, 30*time.Second)

	require.NoError(t, tc.Set(ctx, "movies:tt1", []byte("f"), 5*time.Minute))
	require.Equal(t, 5*time.Minute, shared.TTLOf("movies:tt1"))
	require.Equal(t, 30*time.Second, local.TTLOf("movies:tt1"))

	require.NoError(t, tc.Set(ctx, "movies:tt2", []byte("f"), 10*time.Second))
	require.Equal(t, 10*time.Second, local.TTLOf("movies:tt2"))
}

func TestTiered_SharedFailureStillFillsLocal(t *testing.T) {
	ctx := context.Background()
	local := mocks.NewMemoryCache()
	shared := mocks.NewMemoryCache()
	shared.SetErr = errors.New("redis down")
	tc := localcache.NewTiered(local, shared, 30*time.Second)

	require.Error(t, tc.Set(ctx, "movies:tt1", []byte("f"), time.Minute))
	v, ok, err := tc.Get(ctx, "movies:tt1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "f", string(v))
}

func TestLocal_NonPositiveTTLIsNotStored(t *testing.T) {
	l := mustNewLocal(t)
	ctx := context.Background()

	require.NoError(t, l.Set(ctx, "movies:tt1", []byte("f"), 0))
	_, ok, _ := l.Get(ctx, "movies:tt1")
	require.False(t, ok)
}

func TestTiered_NonPositiveLocalTTLFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	local := mocks.NewMemoryCache()
	shared := mocks.NewMemoryCache()
	tc := localcache.NewTiered(local, shared, 0)
	require.Equal(t, localcache.DefaultLocalTTL, tc.LocalTTL())

	require.NoError(t, tc.Set(ctx, "movies:tt1", []byte("f"), 5*time.Minute))
	require.Equal(t, localcache.DefaultLocalTTL, local.TTLOf("movies:tt1"))

	require.NoError(t, tc.Set(ctx, "movies:tt2", []byte("f"), 50*time.Millisecond))
	require.Equal(t, 50*time.Millisecond, local.TTLOf("movies:tt2"))
}

func TestTiered_ShortWriteTTLExpiresLocally(t *testing.T) {
	ctx := context.Background()
	local := mustNewLocal(t)
	shared := mocks.NewMemoryCache()
	tc := localcache.NewTiered(local, shared, 0)

	require.NoError(t, tc.Set(ctx, "movies:tt1", []byte("f"), 50*time.Millisecond))
	require.Eventually(t, func() bool {
		_, ok, _ := local.Get(ctx, "movies:tt1")
		return !ok
	}, 2*time.Second, 20*time.Millisecond)
}
