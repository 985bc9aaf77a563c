package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/domain/pullrequest"
	"github.com/gitfolio/gitfolio/internal/core/ports"
)

const prsCachePrefix = "prs-by-org"

// PullRequestService serves merged pull requests grouped by organization.
type PullRequestService struct {
	github ports.GitHubGateway
	cache  ports.Cache
	ttl    time.Duration
}

// NewPullRequestService creates the pull request service.
func NewPullRequestService(github ports.GitHubGateway, cache ports.Cache, cfg *configs.Config) ports.PullRequestService {
	return &PullRequestService{
		github: github,
		cache:  cache,
		ttl:    cfg.Cache.DefaultTTL,
	}
}

// PRsByOrg returns the cached or freshly computed grouping. An empty result
// serializes as an empty array, never null.
func (s *PullRequestService) PRsByOrg(ctx context.Context, username string) ([]pullrequest.OrgGroup, error) {
	value, _, err := s.cache.Cached(ctx,
		[]string{prsCachePrefix, username},
		ports.CacheOptions{TTL: s.ttl, Tags: []string{"prs", "user:" + username}},
		func(ctx context.Context) ([]byte, error) {
			prs, err := s.github.FetchMergedPRs(ctx, username)
			if err != nil {
				return nil, err
			}
			groups := pullrequest.GroupByOrg(username, prs)
			if groups == nil {
				groups = []pullrequest.OrgGroup{}
			}
			return json.Marshal(groups)
		})
	if err != nil {
		return nil, err
	}

	var groups []pullrequest.OrgGroup
	if err := json.Unmarshal(value, &groups); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []pullrequest.OrgGroup{}
	}
	return groups, nil
}
