package ports

import (
	"context"

	"github.com/gitfolio/gitfolio/internal/core/domain/profile"
)

// CompletionOptions tunes one text-completion call.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

// CompletionClient is the text-completion capability. The response is free
// text with no guarantee of valid JSON; callers must parse defensively.
type CompletionClient interface {
	Complete(ctx context.Context, system, prompt string, opts CompletionOptions) (string, error)
}

// DescriptionGenerator produces the about/SEO blocks for a profile. It never
// returns an error to its callers: generation or parse failures degrade to a
// deterministic fallback built only from the profile's own fields.
type DescriptionGenerator interface {
	GenerateAbout(ctx context.Context, p *profile.NormalizedProfile) *profile.AboutData
	GenerateSEO(ctx context.Context, p *profile.NormalizedProfile) *profile.SEOData
}
