package services

import (
	"context"
	"testing"
	"time"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/domain/profile"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/gitfolio/gitfolio/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(gateway *mocks.GitHubGatewayMock) (ports.ProfileService, *mocks.MemoryEntryStore) {
	store := mocks.NewMemoryEntryStore()
	cfg := &configs.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.DefaultTTL = time.Hour
	cfg.Cache.AboutTTL = 30 * 24 * time.Hour
	cache := NewCacheService(store, nil, cfg, nil)
	generator := NewGeneratorService(nil, nil)
	return NewProfileService(gateway, generator, cache, cfg, nil), store
}

func TestProfileService_SecondResolveIsCached(t *testing.T) {
	fetches := 0
	gateway := &mocks.GitHubGatewayMock{
		FetchProfileFn: func(ctx context.Context, username, token string) (*profile.NormalizedProfile, error) {
			fetches++
			return &profile.NormalizedProfile{Username: username, Bio: "fresh", PublicRepos: 3}, nil
		},
	}
	svc, _ := newProfileService(gateway)
	ctx := context.Background()

	first, err := svc.Resolve(ctx, "octocat", ports.ResolveOptions{})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	require.NotNil(t, first.About)
	require.NotNil(t, first.SEO)

	second, err := svc.Resolve(ctx, "octocat", ports.ResolveOptions{})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "fresh", second.Bio)
	require.NotNil(t, second.About, "generated blocks survive the cache round trip")

	assert.Equal(t, 1, fetches)
}

func TestProfileService_OwnerBypassesCacheAndUsesToken(t *testing.T) {
	var seenTokens []string
	gateway := &mocks.GitHubGatewayMock{
		FetchProfileFn: func(ctx context.Context, username, token string) (*profile.NormalizedProfile, error) {
			seenTokens = append(seenTokens, token)
			return &profile.NormalizedProfile{Username: username}, nil
		},
	}
	svc, _ := newProfileService(gateway)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "octocat", ports.ResolveOptions{})
	require.NoError(t, err)

	owner, err := svc.Resolve(ctx, "octocat", ports.ResolveOptions{Token: "gho_secret", IsOwner: true})
	require.NoError(t, err)
	assert.False(t, owner.Cached, "owner reads bypass the cache")

	require.Len(t, seenTokens, 2)
	assert.Equal(t, "", seenTokens[0])
	assert.Equal(t, "gho_secret", seenTokens[1])
}

func TestProfileService_NonOwnerNeverForwardsToken(t *testing.T) {
	gateway := &mocks.GitHubGatewayMock{
		FetchProfileFn: func(ctx context.Context, username, token string) (*profile.NormalizedProfile, error) {
			assert.Empty(t, token)
			return &profile.NormalizedProfile{Username: username}, nil
		},
	}
	svc, _ := newProfileService(gateway)

	_, err := svc.Resolve(context.Background(), "octocat", ports.ResolveOptions{Token: "viewer-token", IsOwner: false})
	require.NoError(t, err)
}

func TestProfileService_FetchErrorPropagates(t *testing.T) {
	gateway := &mocks.GitHubGatewayMock{
		FetchProfileFn: func(ctx context.Context, username, token string) (*profile.NormalizedProfile, error) {
			return nil, ports.ErrNotFound
		},
	}
	svc, store := newProfileService(gateway)

	_, err := svc.Resolve(context.Background(), "ghost", ports.ResolveOptions{})
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestProfileService_GeneratedBlocksCachedSeparately(t *testing.T) {
	gateway := &mocks.GitHubGatewayMock{
		FetchProfileFn: func(ctx context.Context, username, token string) (*profile.NormalizedProfile, error) {
			return &profile.NormalizedProfile{Username: username, PublicRepos: 2}, nil
		},
	}
	svc, store := newProfileService(gateway)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "octocat", ports.ResolveOptions{})
	require.NoError(t, err)

	for _, key := range []string{"github_profile:octocat", "ai_about:octocat", "ai_seo:octocat"} {
		entry, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.NotNil(t, entry, "expected cache entry for %s", key)
	}
}
