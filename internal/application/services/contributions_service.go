package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/domain/contribution"
	"github.com/gitfolio/gitfolio/internal/core/ports"
)

const contributionsCachePrefix = "github_contributions"

// ContributionsService serves the cached contribution calendar.
type ContributionsService struct {
	github ports.GitHubGateway
	cache  ports.Cache
	ttl    time.Duration
}

// NewContributionsService creates the contributions service.
func NewContributionsService(github ports.GitHubGateway, cache ports.Cache, cfg *configs.Config) ports.ContributionsService {
	return &ContributionsService{
		github: github,
		cache:  cache,
		ttl:    cfg.Cache.DefaultTTL,
	}
}

// Contributions returns the cached or freshly fetched calendar.
func (s *ContributionsService) Contributions(ctx context.Context, username string) (*contribution.Data, error) {
	value, _, err := s.cache.Cached(ctx,
		[]string{contributionsCachePrefix, username},
		ports.CacheOptions{TTL: s.ttl, Tags: []string{contributionsCachePrefix, "user:" + username}},
		func(ctx context.Context) ([]byte, error) {
			data, err := s.github.FetchContributions(ctx, username)
			if err != nil {
				return nil, err
			}
			return json.Marshal(data)
		})
	if err != nil {
		return nil, err
	}

	var data contribution.Data
	if err := json.Unmarshal(value, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
