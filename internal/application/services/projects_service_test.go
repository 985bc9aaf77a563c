package services

import (
	"context"
	"testing"
	"time"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/domain/project"
	"github.com/gitfolio/gitfolio/internal/core/domain/pullrequest"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/gitfolio/gitfolio/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceConfig() *configs.Config {
	cfg := &configs.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.DefaultTTL = time.Hour
	cfg.Cache.ProjectTTL = 2 * time.Hour
	return cfg
}

func TestProjectsService_BuildsPayload(t *testing.T) {
	now := time.Now()
	gateway := &mocks.GitHubGatewayMock{
		FetchRepositoriesFn: func(ctx context.Context, username, token string) ([]project.Repository, error) {
			return []project.Repository{
				{Name: "big", Stars: 500, Forks: 40, Language: "Go", CreatedAt: now.AddDate(-2, 0, 0), UpdatedAt: now},
				{Name: "small", Stars: 2, Language: "Go", CreatedAt: now.AddDate(-1, 0, 0), UpdatedAt: now},
				{Name: "forked", Stars: 900, Fork: true, CreatedAt: now.AddDate(-3, 0, 0), UpdatedAt: now},
			}, nil
		},
		FetchPinnedFn: func(ctx context.Context, username string) []string {
			return []string{"small"}
		},
		FetchRepoDetailsFn: func(ctx context.Context, username, token string) map[string]project.Details {
			return map[string]project.Details{
				"big": {Name: "big", Stars: 500, Homepage: "//big.example", Languages: map[string]int{"Go": 12345}},
			}
		},
	}
	cfg := serviceConfig()
	cache := NewCacheService(mocks.NewMemoryEntryStore(), nil, cfg, nil)
	svc := NewProjectsService(gateway, cache, cfg, nil)

	data, err := svc.Projects(context.Background(), "octocat", "")
	require.NoError(t, err)

	require.Len(t, data.Featured, 2, "forked repo is ineligible")
	assert.Equal(t, "big", data.Featured[0].Name)
	assert.Equal(t, "https://big.example", data.Featured[0].Homepage, "protocol-relative homepage gets https")
	assert.Equal(t, map[string]int{"Go": 12345}, data.Featured[0].Languages)
	assert.NotNil(t, data.Featured[1].Topics, "topics serialize as arrays, never null")

	assert.Equal(t, 502, data.TotalStars)
	assert.Equal(t, 2, data.TotalRepos)
	assert.Equal(t, map[string]int{"Go": 2}, data.Languages)
	require.Len(t, data.TopLanguages, 1)
	assert.Equal(t, project.RankedLanguage{Language: "Go", Count: 2}, data.TopLanguages[0])
}

func TestProjectsService_SecondCallHitsCache(t *testing.T) {
	fetches := 0
	gateway := &mocks.GitHubGatewayMock{
		FetchRepositoriesFn: func(ctx context.Context, username, token string) ([]project.Repository, error) {
			fetches++
			return nil, nil
		},
		FetchPinnedFn: func(ctx context.Context, username string) []string { return nil },
		FetchRepoDetailsFn: func(ctx context.Context, username, token string) map[string]project.Details {
			return nil
		},
	}
	cfg := serviceConfig()
	cache := NewCacheService(mocks.NewMemoryEntryStore(), nil, cfg, nil)
	svc := NewProjectsService(gateway, cache, cfg, nil)
	ctx := context.Background()

	_, err := svc.Projects(ctx, "octocat", "")
	require.NoError(t, err)
	_, err = svc.Projects(ctx, "octocat", "")
	require.NoError(t, err)

	assert.Equal(t, 1, fetches)
}

func TestPullRequestService_GroupsAndCaches(t *testing.T) {
	fetches := 0
	gateway := &mocks.GitHubGatewayMock{
		FetchMergedPRsFn: func(ctx context.Context, username string) ([]pullrequest.MergedPR, error) {
			fetches++
			return []pullrequest.MergedPR{
				{Number: 1, MergedAt: "2026-01-01T00:00:00Z", OwnerLogin: "acme", OwnerName: "Acme"},
				{Number: 2, MergedAt: "2026-01-02T00:00:00Z", OwnerLogin: "octocat", OwnerName: "Octocat"},
			}, nil
		},
	}
	cfg := serviceConfig()
	cache := NewCacheService(mocks.NewMemoryEntryStore(), nil, cfg, nil)
	svc := NewPullRequestService(gateway, cache, cfg)
	ctx := context.Background()

	groups, err := svc.PRsByOrg(ctx, "octocat")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "acme", groups[0].OrgLogin)

	groups, err = svc.PRsByOrg(ctx, "octocat")
	require.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, 1, fetches)
}

func TestPullRequestService_EmptyIsArray(t *testing.T) {
	gateway := &mocks.GitHubGatewayMock{
		FetchMergedPRsFn: func(ctx context.Context, username string) ([]pullrequest.MergedPR, error) {
			return nil, nil
		},
	}
	cfg := serviceConfig()
	cache := NewCacheService(mocks.NewMemoryEntryStore(), nil, cfg, nil)
	svc := NewPullRequestService(gateway, cache, cfg)

	groups, err := svc.PRsByOrg(context.Background(), "octocat")
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestPullRequestService_FetchErrorPropagates(t *testing.T) {
	gateway := &mocks.GitHubGatewayMock{
		FetchMergedPRsFn: func(ctx context.Context, username string) ([]pullrequest.MergedPR, error) {
			return nil, ports.ErrRateLimited
		},
	}
	cfg := serviceConfig()
	cache := NewCacheService(mocks.NewMemoryEntryStore(), nil, cfg, nil)
	svc := NewPullRequestService(gateway, cache, cfg)

	_, err := svc.PRsByOrg(context.Background(), "octocat")
	assert.ErrorIs(t, err, ports.ErrRateLimited)
}
