package ports

import (
	"context"

	"github.com/gitfolio/gitfolio/internal/core/domain/contribution"
	"github.com/gitfolio/gitfolio/internal/core/domain/profile"
	"github.com/gitfolio/gitfolio/internal/core/domain/project"
	"github.com/gitfolio/gitfolio/internal/core/domain/pullrequest"
)

// GitHubGateway translates GitHub's query APIs into normalized domain
// shapes. token is the viewer's OAuth token; empty means the shared
// read-only path returning only public data. Upstream failures are mapped
// onto the taxonomy in errors.go at this boundary.
type GitHubGateway interface {
	// FetchProfile returns the normalized profile with metrics populated by
	// a second statistics query, and social links extracted from the bio
	// and profile README.
	FetchProfile(ctx context.Context, username, token string) (*profile.NormalizedProfile, error)

	// FetchRepositories pages through all repositories. When token belongs
	// to username themselves it uses the private-inclusive owner listing.
	FetchRepositories(ctx context.Context, username, token string) ([]project.Repository, error)

	// FetchPinned returns pinned repository names; empty on any failure.
	FetchPinned(ctx context.Context, username string) []string

	// FetchRepoDetails returns GraphQL-only per-repo enrichment keyed by
	// repository name; empty on any failure.
	FetchRepoDetails(ctx context.Context, username, token string) map[string]project.Details

	// FetchContributions returns the rolling 365-day contribution calendar.
	FetchContributions(ctx context.Context, username string) (*contribution.Data, error)

	// FetchMergedPRs returns the user's most recent merged pull requests
	// with repository owner attribution.
	FetchMergedPRs(ctx context.Context, username string) ([]pullrequest.MergedPR, error)

	// ResolveViewer resolves the login that token authenticates as.
	ResolveViewer(ctx context.Context, token string) (string, error)
}
