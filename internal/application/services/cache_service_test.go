package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/gitfolio/gitfolio/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(store ports.CacheEntryStore, enabled bool) ports.Cache {
	cfg := &configs.Config{}
	cfg.Cache.Enabled = enabled
	cfg.Cache.DefaultTTL = time.Hour
	cfg.Screenshot.FailureTTL = 24 * time.Hour
	return NewCacheService(store, nil, cfg, nil)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "github_profile:octocat", CacheKey("github_profile", "octocat"))
	assert.Equal(t, "screenshot:https://a.com:1280:800", CacheKey("screenshot", "https://a.com", "1280", "800"))
}

func TestCacheService_RoundTrip(t *testing.T) {
	store := mocks.NewMemoryEntryStore()
	cache := newTestCache(store, true)
	ctx := context.Background()

	ok := cache.Set(ctx, "k", []byte("v"), ports.CacheOptions{TTL: time.Minute})
	require.True(t, ok)

	value, hit := cache.Get(ctx, "k")
	require.True(t, hit)
	assert.Equal(t, []byte("v"), value)
}

func TestCacheService_SetTwiceUpserts(t *testing.T) {
	store := mocks.NewMemoryEntryStore()
	cache := newTestCache(store, true)
	ctx := context.Background()

	require.True(t, cache.Set(ctx, "k", []byte("first"), ports.CacheOptions{TTL: time.Minute}))
	require.True(t, cache.Set(ctx, "k", []byte("second"), ports.CacheOptions{TTL: time.Hour}))

	value, hit := cache.Get(ctx, "k")
	require.True(t, hit)
	assert.Equal(t, []byte("second"), value)
	assert.Equal(t, 1, store.Len(), "one key keeps one row")
}

func TestCacheService_ExpiredEntryIsMissAndDeleted(t *testing.T) {
	store := mocks.NewMemoryEntryStore()
	cache := newTestCache(store, true)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "stale", []byte("v"), nil, time.Now().Add(-time.Minute)))

	_, hit := cache.Get(ctx, "stale")
	assert.False(t, hit)
	assert.Equal(t, 0, store.Len(), "expired entry should be lazily deleted")
}

func TestCacheService_Disabled(t *testing.T) {
	store := mocks.NewMemoryEntryStore()
	cache := newTestCache(store, false)
	ctx := context.Background()

	assert.False(t, cache.Enabled())
	assert.False(t, cache.Set(ctx, "k", []byte("v"), ports.CacheOptions{}))
	_, hit := cache.Get(ctx, "k")
	assert.False(t, hit)
	assert.Equal(t, 0, store.Len())
}

func TestCacheService_CachedMemoizes(t *testing.T) {
	store := mocks.NewMemoryEntryStore()
	cache := newTestCache(store, true)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) ([]byte, error) {
		calls++
		return []byte("computed"), nil
	}

	value, hit, err := cache.Cached(ctx, []string{"p", "octocat"}, ports.CacheOptions{TTL: time.Minute}, compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []byte("computed"), value)

	value, hit, err = cache.Cached(ctx, []string{"p", "octocat"}, ports.CacheOptions{TTL: time.Minute}, compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("computed"), value)
	assert.Equal(t, 1, calls)
}

func TestCacheService_CachedComputeError(t *testing.T) {
	store := mocks.NewMemoryEntryStore()
	cache := newTestCache(store, true)

	wantErr := errors.New("upstream down")
	_, hit, err := cache.Cached(context.Background(), []string{"p", "x"}, ports.CacheOptions{}, func(context.Context) ([]byte, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, hit)
	assert.Equal(t, 0, store.Len(), "errors must not be cached")
}

func TestCacheService_DeleteByTag(t *testing.T) {
	store := mocks.NewMemoryEntryStore()
	cache := newTestCache(store, true)
	ctx := context.Background()

	cache.Set(ctx, "a", []byte("1"), ports.CacheOptions{TTL: time.Minute, Tags: []string{"user:octocat"}})
	cache.Set(ctx, "b", []byte("2"), ports.CacheOptions{TTL: time.Minute, Tags: []string{"user:octocat"}})
	cache.Set(ctx, "c", []byte("3"), ports.CacheOptions{TTL: time.Minute, Tags: []string{"user:other"}})

	require.NoError(t, cache.DeleteByTag(ctx, "user:octocat"))

	_, hit := cache.Get(ctx, "a")
	assert.False(t, hit)
	_, hit = cache.Get(ctx, "b")
	assert.False(t, hit)
	_, hit = cache.Get(ctx, "c")
	assert.True(t, hit)
}

func TestCacheService_FailureCounter(t *testing.T) {
	store := mocks.NewMemoryEntryStore()
	cache := newTestCache(store, true)
	ctx := context.Background()

	assert.Equal(t, 0, cache.FailureCount(ctx, "https://broken.example"))

	cache.RecordFailure(ctx, "https://broken.example")
	cache.RecordFailure(ctx, "https://broken.example")
	cache.RecordFailure(ctx, "https://broken.example")

	assert.Equal(t, 3, cache.FailureCount(ctx, "https://broken.example"))
	assert.Equal(t, 0, cache.FailureCount(ctx, "https://fine.example"))
}
