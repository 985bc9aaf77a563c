package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gitfolio/gitfolio/internal/core/domain/contribution"
	"github.com/gitfolio/gitfolio/internal/core/domain/profile"
	"github.com/gitfolio/gitfolio/internal/core/domain/project"
	"github.com/gitfolio/gitfolio/internal/core/domain/pullrequest"
	"github.com/gitfolio/gitfolio/internal/core/ports"
)

// GitHubGatewayMock is a lightweight mock for GitHubGateway
type GitHubGatewayMock struct {
	FetchProfileFn       func(ctx context.Context, username, token string) (*profile.NormalizedProfile, error)
	FetchRepositoriesFn  func(ctx context.Context, username, token string) ([]project.Repository, error)
	FetchPinnedFn        func(ctx context.Context, username string) []string
	FetchRepoDetailsFn   func(ctx context.Context, username, token string) map[string]project.Details
	FetchContributionsFn func(ctx context.Context, username string) (*contribution.Data, error)
	FetchMergedPRsFn     func(ctx context.Context, username string) ([]pullrequest.MergedPR, error)
	ResolveViewerFn      func(ctx context.Context, token string) (string, error)
}

func (m *GitHubGatewayMock) FetchProfile(ctx context.Context, username, token string) (*profile.NormalizedProfile, error) {
	if m.FetchProfileFn != nil {
		return m.FetchProfileFn(ctx, username, token)
	}
	return nil, ports.ErrNotFound
}
func (m *GitHubGatewayMock) FetchRepositories(ctx context.Context, username, token string) ([]project.Repository, error) {
	if m.FetchRepositoriesFn != nil {
		return m.FetchRepositoriesFn(ctx, username, token)
	}
	return nil, nil
}
func (m *GitHubGatewayMock) FetchPinned(ctx context.Context, username string) []string {
	if m.FetchPinnedFn != nil {
		return m.FetchPinnedFn(ctx, username)
	}
	return nil
}
func (m *GitHubGatewayMock) FetchRepoDetails(ctx context.Context, username, token string) map[string]project.Details {
	if m.FetchRepoDetailsFn != nil {
		return m.FetchRepoDetailsFn(ctx, username, token)
	}
	return nil
}
func (m *GitHubGatewayMock) FetchContributions(ctx context.Context, username string) (*contribution.Data, error) {
	if m.FetchContributionsFn != nil {
		return m.FetchContributionsFn(ctx, username)
	}
	return nil, ports.ErrNotFound
}
func (m *GitHubGatewayMock) FetchMergedPRs(ctx context.Context, username string) ([]pullrequest.MergedPR, error) {
	if m.FetchMergedPRsFn != nil {
		return m.FetchMergedPRsFn(ctx, username)
	}
	return nil, nil
}
func (m *GitHubGatewayMock) ResolveViewer(ctx context.Context, token string) (string, error) {
	if m.ResolveViewerFn != nil {
		return m.ResolveViewerFn(ctx, token)
	}
	return "", ports.ErrInvalidCredentials
}

// MemoryEntryStore is an in-memory CacheEntryStore for service tests.
type MemoryEntryStore struct {
	mu      sync.Mutex
	entries map[string]*ports.CacheEntry
}

func NewMemoryEntryStore() *MemoryEntryStore {
	return &MemoryEntryStore{entries: make(map[string]*ports.CacheEntry)}
}

func (s *MemoryEntryStore) Get(ctx context.Context, key string) (*ports.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

func (s *MemoryEntryStore) Upsert(ctx context.Context, key string, value []byte, tags []string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if existing, ok := s.entries[key]; ok {
		existing.Value = value
		existing.Tags = tags
		existing.ExpiresAt = expiresAt
		existing.UpdatedAt = now
		return nil
	}
	s.entries[key] = &ports.CacheEntry{
		ID:        fmt.Sprintf("entry-%d", len(s.entries)+1),
		Key:       key,
		Value:     value,
		Tags:      tags,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (s *MemoryEntryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryEntryStore) DeleteByTag(ctx context.Context, tag string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for key, entry := range s.entries {
		for _, t := range entry.Tags {
			if t == tag {
				keys = append(keys, key)
				delete(s.entries, key)
				break
			}
		}
	}
	return keys, nil
}

func (s *MemoryEntryStore) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	now := time.Now()
	for key, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored entries.
func (s *MemoryEntryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// CompletionClientMock is a lightweight mock for CompletionClient
type CompletionClientMock struct {
	CompleteFn func(ctx context.Context, system, prompt string, opts ports.CompletionOptions) (string, error)
}

func (m *CompletionClientMock) Complete(ctx context.Context, system, prompt string, opts ports.CompletionOptions) (string, error) {
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, system, prompt, opts)
	}
	return "", fmt.Errorf("no completion configured")
}

// DescriptionGeneratorMock is a lightweight mock for DescriptionGenerator
type DescriptionGeneratorMock struct {
	GenerateAboutFn func(ctx context.Context, p *profile.NormalizedProfile) *profile.AboutData
	GenerateSEOFn   func(ctx context.Context, p *profile.NormalizedProfile) *profile.SEOData
}

func (m *DescriptionGeneratorMock) GenerateAbout(ctx context.Context, p *profile.NormalizedProfile) *profile.AboutData {
	if m.GenerateAboutFn != nil {
		return m.GenerateAboutFn(ctx, p)
	}
	return &profile.AboutData{Summary: "mock summary", Highlights: []string{}, Skills: []string{}}
}
func (m *DescriptionGeneratorMock) GenerateSEO(ctx context.Context, p *profile.NormalizedProfile) *profile.SEOData {
	if m.GenerateSEOFn != nil {
		return m.GenerateSEOFn(ctx, p)
	}
	return &profile.SEOData{Title: "mock title", Description: "mock description", Keywords: []string{}}
}

// ScreenshotRendererMock is a lightweight mock for ScreenshotRenderer
type ScreenshotRendererMock struct {
	RenderFn func(ctx context.Context, params ports.ScreenshotParams) ([]byte, string, error)
}

func (m *ScreenshotRendererMock) Render(ctx context.Context, params ports.ScreenshotParams) ([]byte, string, error) {
	if m.RenderFn != nil {
		return m.RenderFn(ctx, params)
	}
	return []byte("image-bytes"), "image/png", nil
}

// ProfileServiceMock is a lightweight mock for ProfileService
type ProfileServiceMock struct {
	ResolveFn func(ctx context.Context, username string, opts ports.ResolveOptions) (*profile.NormalizedProfile, error)
}

func (m *ProfileServiceMock) Resolve(ctx context.Context, username string, opts ports.ResolveOptions) (*profile.NormalizedProfile, error) {
	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, username, opts)
	}
	return nil, ports.ErrNotFound
}

// ProjectsServiceMock is a lightweight mock for ProjectsService
type ProjectsServiceMock struct {
	ProjectsFn func(ctx context.Context, username, token string) (*project.ProjectsData, error)
}

func (m *ProjectsServiceMock) Projects(ctx context.Context, username, token string) (*project.ProjectsData, error) {
	if m.ProjectsFn != nil {
		return m.ProjectsFn(ctx, username, token)
	}
	return nil, ports.ErrNotFound
}

// ContributionsServiceMock is a lightweight mock for ContributionsService
type ContributionsServiceMock struct {
	ContributionsFn func(ctx context.Context, username string) (*contribution.Data, error)
}

func (m *ContributionsServiceMock) Contributions(ctx context.Context, username string) (*contribution.Data, error) {
	if m.ContributionsFn != nil {
		return m.ContributionsFn(ctx, username)
	}
	return nil, ports.ErrNotFound
}

// PullRequestServiceMock is a lightweight mock for PullRequestService
type PullRequestServiceMock struct {
	PRsByOrgFn func(ctx context.Context, username string) ([]pullrequest.OrgGroup, error)
}

func (m *PullRequestServiceMock) PRsByOrg(ctx context.Context, username string) ([]pullrequest.OrgGroup, error) {
	if m.PRsByOrgFn != nil {
		return m.PRsByOrgFn(ctx, username)
	}
	return []pullrequest.OrgGroup{}, nil
}

// ScreenshotServiceMock is a lightweight mock for ScreenshotService
type ScreenshotServiceMock struct {
	CaptureFn func(ctx context.Context, params ports.ScreenshotParams) (*ports.ScreenshotResult, error)
}

func (m *ScreenshotServiceMock) Capture(ctx context.Context, params ports.ScreenshotParams) (*ports.ScreenshotResult, error) {
	if m.CaptureFn != nil {
		return m.CaptureFn(ctx, params)
	}
	return &ports.ScreenshotResult{Data: []byte("image-bytes"), ContentType: "image/png"}, nil
}

// IdentityResolverMock is a lightweight mock for IdentityResolver
type IdentityResolverMock struct {
	ResolveViewerFn func(ctx context.Context, token string) (string, error)
}

func (m *IdentityResolverMock) ResolveViewer(ctx context.Context, token string) (string, error) {
	if m.ResolveViewerFn != nil {
		return m.ResolveViewerFn(ctx, token)
	}
	return "", ports.ErrInvalidCredentials
}
