package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/domain/profile"
	"github.com/gitfolio/gitfolio/internal/core/domain/project"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/sirupsen/logrus"
)

const projectsCachePrefix = "github_projects"

// ProjectsService builds the featured-projects payload: repositories are
// scored, the top slice is enriched with GraphQL detail, and language totals
// are tallied over the eligible set.
type ProjectsService struct {
	github ports.GitHubGateway
	cache  ports.Cache
	ttl    time.Duration
	logger *logrus.Logger
}

// NewProjectsService creates the projects service.
func NewProjectsService(github ports.GitHubGateway, cache ports.Cache, cfg *configs.Config, logger *logrus.Logger) ports.ProjectsService {
	return &ProjectsService{
		github: github,
		cache:  cache,
		ttl:    cfg.Cache.ProjectTTL,
		logger: logger,
	}
}

// Projects returns the cached or freshly computed projects payload.
func (s *ProjectsService) Projects(ctx context.Context, username, token string) (*project.ProjectsData, error) {
	value, _, err := s.cache.Cached(ctx,
		[]string{projectsCachePrefix, username},
		ports.CacheOptions{TTL: s.ttl, Tags: []string{projectsCachePrefix, "user:" + username}},
		func(ctx context.Context) ([]byte, error) {
			data, err := s.build(ctx, username, token)
			if err != nil {
				return nil, err
			}
			return json.Marshal(data)
		})
	if err != nil {
		return nil, err
	}

	var data project.ProjectsData
	if err := json.Unmarshal(value, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *ProjectsService) build(ctx context.Context, username, token string) (*project.ProjectsData, error) {
	var repos []project.Repository
	var pinned []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		repos, err = s.github.FetchRepositories(gctx, username, token)
		return err
	})
	g.Go(func() error {
		pinned = s.github.FetchPinned(gctx, username)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	top := project.TopProjects(repos, pinned, project.DefaultFeaturedCount, time.Now())
	details := s.github.FetchRepoDetails(ctx, username, token)

	featured := make([]project.FeaturedProject, 0, len(top))
	for _, scored := range top {
		featured = append(featured, toFeatured(scored.Repository, details))
	}

	eligible := project.FilterEligible(repos)
	totalStars := 0
	for _, r := range eligible {
		totalStars += r.Stars
	}

	return &project.ProjectsData{
		Featured:     featured,
		TopLanguages: project.TopLanguages(eligible, project.DefaultTopLanguages),
		Languages:    project.CountLanguages(eligible),
		TotalStars:   totalStars,
		TotalRepos:   len(eligible),
	}, nil
}

// toFeatured converts a repository to its card shape, preferring the GraphQL
// detail record when one exists for the name.
func toFeatured(r project.Repository, details map[string]project.Details) project.FeaturedProject {
	if d, ok := details[r.Name]; ok {
		return project.FeaturedProject{
			Name:        d.Name,
			Description: d.Description,
			URL:         d.URL,
			Homepage:    normalizeHomepage(d.Homepage),
			Stars:       d.Stars,
			Forks:       d.Forks,
			Language:    d.Language,
			Topics:      orEmpty(d.Topics),
			Languages:   d.Languages,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		}
	}

	return project.FeaturedProject{
		Name:        r.Name,
		Description: r.Description,
		URL:         r.URL,
		Homepage:    normalizeHomepage(r.Homepage),
		Stars:       r.Stars,
		Forks:       r.Forks,
		Language:    r.Language,
		Topics:      orEmpty(r.Topics),
		Languages:   map[string]int{},
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// normalizeHomepage mirrors website normalization but also accepts
// protocol-relative URLs.
func normalizeHomepage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "//") {
		return "https:" + trimmed
	}
	return profile.NormalizeWebsiteURL(trimmed)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
