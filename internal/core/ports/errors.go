package ports

import "errors"

// Upstream error taxonomy. Infrastructure adapters translate provider
// specific failures into these sentinels at the boundary; handlers map them
// onto HTTP status codes with errors.Is.
var (
	// ErrNotFound means the requested GitHub user does not exist.
	ErrNotFound = errors.New("github user not found")
	// ErrInvalidCredentials means the supplied token was rejected upstream.
	ErrInvalidCredentials = errors.New("invalid github credentials")
	// ErrRateLimited means the upstream quota is exhausted.
	ErrRateLimited = errors.New("github rate limit exceeded")

	// ErrRenderTimeout means the screenshot renderer exceeded its deadline.
	ErrRenderTimeout = errors.New("screenshot render timed out")
	// ErrRenderUnavailable means no screenshot renderer is configured.
	ErrRenderUnavailable = errors.New("screenshot service is not available")
	// ErrRenderPermanentFailure means the target URL has failed too many
	// times and is circuit-broken until the failure record expires.
	ErrRenderPermanentFailure = errors.New("screenshot permanently failed")
)
