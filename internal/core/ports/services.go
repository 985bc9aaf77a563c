package ports

import (
	"context"
	"time"

	"github.com/gitfolio/gitfolio/internal/core/domain/contribution"
	"github.com/gitfolio/gitfolio/internal/core/domain/profile"
	"github.com/gitfolio/gitfolio/internal/core/domain/project"
	"github.com/gitfolio/gitfolio/internal/core/domain/pullrequest"
)

// ResolveOptions carries the per-request inputs of a profile resolution.
type ResolveOptions struct {
	// Token is the viewer's own OAuth token; only used when IsOwner.
	Token string
	// IsOwner means the viewer is the profile's owner: bypass the profile
	// cache on read (but still write through) and use Token upstream.
	IsOwner bool
	// TTL overrides the default profile cache TTL when positive.
	TTL time.Duration
	// Tags are appended to the profile cache entry's base tags.
	Tags []string
}

// ProfileService resolves a username into a full portfolio profile,
// mediating between the cache and the expensive fetch+generate path.
type ProfileService interface {
	Resolve(ctx context.Context, username string, opts ResolveOptions) (*profile.NormalizedProfile, error)
}

// ProjectsService produces the cached featured-projects payload.
type ProjectsService interface {
	Projects(ctx context.Context, username, token string) (*project.ProjectsData, error)
}

// ContributionsService produces the cached contribution calendar.
type ContributionsService interface {
	Contributions(ctx context.Context, username string) (*contribution.Data, error)
}

// PullRequestService produces the cached PRs-by-organization grouping.
type PullRequestService interface {
	PRsByOrg(ctx context.Context, username string) ([]pullrequest.OrgGroup, error)
}

// ScreenshotService renders (or serves from cache) a page screenshot with
// per-URL failure circuit breaking.
type ScreenshotService interface {
	Capture(ctx context.Context, params ScreenshotParams) (*ScreenshotResult, error)
}

// IdentityResolver resolves a viewer token into a GitHub login. An empty
// token or a failed resolution yields the anonymous variant ("" login, no
// error for empty token; resolution failures return the error so callers
// can decide to treat the viewer as anonymous).
type IdentityResolver interface {
	ResolveViewer(ctx context.Context, token string) (string, error)
}
