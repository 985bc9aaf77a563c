package services

import (
	"context"
	"testing"

	"github.com/gitfolio/gitfolio/internal/core/domain/contribution"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/gitfolio/gitfolio/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContributionsService_RoundTripAndCache(t *testing.T) {
	fetches := 0
	gateway := &mocks.GitHubGatewayMock{
		FetchContributionsFn: func(ctx context.Context, username string) (*contribution.Data, error) {
			fetches++
			return &contribution.Data{
				TotalContributions: 42,
				Weeks: []contribution.Week{
					{Days: []contribution.Day{{Date: "2026-08-24", Count: 7, Level: 3}}},
				},
			}, nil
		},
	}
	cfg := serviceConfig()
	cache := NewCacheService(mocks.NewMemoryEntryStore(), nil, cfg, nil)
	svc := NewContributionsService(gateway, cache, cfg)
	ctx := context.Background()

	data, err := svc.Contributions(ctx, "octocat")
	require.NoError(t, err)
	assert.Equal(t, 42, data.TotalContributions)
	require.Len(t, data.Weeks, 1)
	assert.Equal(t, 3, data.Weeks[0].Days[0].Level)

	_, err = svc.Contributions(ctx, "octocat")
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
}

func TestContributionsService_RequiresCredentials(t *testing.T) {
	gateway := &mocks.GitHubGatewayMock{
		FetchContributionsFn: func(ctx context.Context, username string) (*contribution.Data, error) {
			return nil, ports.ErrInvalidCredentials
		},
	}
	cfg := serviceConfig()
	cache := NewCacheService(mocks.NewMemoryEntryStore(), nil, cfg, nil)
	svc := NewContributionsService(gateway, cache, cfg)

	_, err := svc.Contributions(context.Background(), "octocat")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)
}
