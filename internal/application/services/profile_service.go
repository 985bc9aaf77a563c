package services

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/domain/profile"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/sirupsen/logrus"
)

const (
	profileCachePrefix = "github_profile"
	aboutCachePrefix   = "ai_about"
	seoCachePrefix     = "ai_seo"
)

// ProfileService resolves a username into a full portfolio profile. Non-owner
// requests are served from cache when possible; the owner always gets a fresh
// fetch (using their own token) that still writes through for other viewers.
type ProfileService struct {
	github    ports.GitHubGateway
	generator ports.DescriptionGenerator
	cache     ports.Cache
	cfg       *configs.Config
	logger    *logrus.Logger
}

// NewProfileService creates the profile resolution service.
func NewProfileService(github ports.GitHubGateway, generator ports.DescriptionGenerator, cache ports.Cache, cfg *configs.Config, logger *logrus.Logger) ports.ProfileService {
	return &ProfileService{
		github:    github,
		generator: generator,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
	}
}

// Resolve returns the profile for username, serving the cached copy (with
// cached=true) to non-owners and refreshing otherwise.
func (s *ProfileService) Resolve(ctx context.Context, username string, opts ports.ResolveOptions) (*profile.NormalizedProfile, error) {
	cacheKey := CacheKey(profileCachePrefix, username)

	if !opts.IsOwner {
		if value, ok := s.cache.Get(ctx, cacheKey); ok {
			var cached profile.NormalizedProfile
			if err := json.Unmarshal(value, &cached); err == nil {
				cached.Cached = true
				return &cached, nil
			}
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"username": username}).Warn("profile: corrupt cache entry, refetching")
			}
		}
	}

	token := ""
	if opts.IsOwner {
		token = opts.Token
	}

	fresh, err := s.github.FetchProfile(ctx, username, token)
	if err != nil {
		return nil, err
	}
	fresh.Cached = false

	s.attachGenerated(ctx, fresh)

	if value, err := json.Marshal(fresh); err == nil {
		s.cache.Set(ctx, cacheKey, value, ports.CacheOptions{
			TTL:  opts.TTL,
			Tags: profileTags(username, opts.Tags),
		})
	}

	return fresh, nil
}

// attachGenerated fills the about and SEO blocks, each under its own
// long-lived cache so regeneration is rare. Missing blocks are generated
// concurrently; the generator itself never fails.
func (s *ProfileService) attachGenerated(ctx context.Context, p *profile.NormalizedProfile) {
	aboutKey := CacheKey(aboutCachePrefix, p.Username)
	seoKey := CacheKey(seoCachePrefix, p.Username)

	if value, ok := s.cache.Get(ctx, aboutKey); ok {
		var about profile.AboutData
		if err := json.Unmarshal(value, &about); err == nil {
			p.About = &about
		}
	}
	if value, ok := s.cache.Get(ctx, seoKey); ok {
		var seo profile.SEOData
		if err := json.Unmarshal(value, &seo); err == nil {
			p.SEO = &seo
		}
	}
	if p.About != nil && p.SEO != nil {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	if p.About == nil {
		g.Go(func() error {
			p.About = s.generator.GenerateAbout(gctx, p)
			if value, err := json.Marshal(p.About); err == nil {
				s.cache.Set(gctx, aboutKey, value, ports.CacheOptions{
					TTL:  s.cfg.Cache.AboutTTL,
					Tags: []string{aboutCachePrefix, "user:" + p.Username},
				})
			}
			return nil
		})
	}
	if p.SEO == nil {
		g.Go(func() error {
			p.SEO = s.generator.GenerateSEO(gctx, p)
			if value, err := json.Marshal(p.SEO); err == nil {
				s.cache.Set(gctx, seoKey, value, ports.CacheOptions{
					TTL:  s.cfg.Cache.AboutTTL,
					Tags: []string{seoCachePrefix, "user:" + p.Username},
				})
			}
			return nil
		})
	}
	_ = g.Wait()
}

// profileTags merges the base profile tags with extras, deduplicated while
// preserving order.
func profileTags(username string, extra []string) []string {
	tags := []string{profileCachePrefix, "user:" + username}
	seen := map[string]struct{}{tags[0]: {}, tags[1]: {}}
	for _, t := range extra {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}
