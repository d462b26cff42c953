package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedBook struct {
	Titre    string `json:"titre"`
	Quantite int    `json:"quantite"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	rc := NewRedisCache(srv.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })

	require.NoError(t, rc.Connect(context.Background()))
	return rc, srv
}

func TestRedisCache_SetGet(t *testing.T) {
	rc, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "livre:1", cachedBook{Titre: "Germinal", Quantite: 3}, time.Minute))

	var got cachedBook
	found, err := rc.Get(ctx, "livre:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Germinal", got.Titre)
	assert.Equal(t, 3, got.Quantite)
}

func TestRedisCache_Miss(t *testing.T) {
	rc, _ := newTestCache(t)

	var got cachedBook
	found, err := rc.Get(context.Background(), "livre:absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, got.Titre)
}

func TestRedisCache_Delete(t *testing.T) {
	rc, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "livre:1", cachedBook{Titre: "Nana"}, time.Minute))
	require.NoError(t, rc.Set(ctx, "livre:2", cachedBook{Titre: "L'Oeuvre"}, time.Minute))

	require.NoError(t, rc.Delete(ctx, "livre:1", "livre:2"))
	assert.False(t, srv.Exists("livre:1"))
	assert.False(t, srv.Exists("livre:2"))

	assert.NoError(t, rc.Delete(ctx))
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	rc, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "livre:ttl", cachedBook{Titre: "Thérèse Raquin"}, 10*time.Second))
	srv.FastForward(11 * time.Second)

	var got cachedBook
	found, err := rc.Get(ctx, "livre:ttl", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	rc, srv := newTestCache(t)

	require.NoError(t, srv.Set("livre:bad", "{not json"))

	var got cachedBook
	found, err := rc.Get(context.Background(), "livre:bad", &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedisCache_PingAfterServerClose(t *testing.T) {
	rc, srv := newTestCache(t)

	require.NoError(t, rc.Ping(context.Background()))
	srv.Close()
	assert.Error(t, rc.Ping(context.Background()))
}
