package project

import "time"

// Repository is a normalized repo record as fetched per request. It is never
// persisted beyond the cache TTL window.
type Repository struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name,omitempty"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"html_url"`
	Homepage    string    `json:"homepage,omitempty"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Language    string    `json:"language,omitempty"`
	Topics      []string  `json:"topics,omitempty"`
	Fork        bool      `json:"fork"`
	Archived    bool      `json:"archived"`
	Disabled    bool      `json:"disabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ScoredRepository is a Repository plus its derived featured-projects score.
// Recomputed on every cache miss, never persisted on its own.
type ScoredRepository struct {
	Repository
	Score    float64 `json:"score"`
	IsPinned bool    `json:"is_pinned"`
}

// FeaturedProject is the presentation shape for a project card, optionally
// enriched with per-language byte sizes and topics from the GraphQL detail
// query.
type FeaturedProject struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	URL         string         `json:"url"`
	Homepage    string         `json:"homepage,omitempty"`
	Stars       int            `json:"stars"`
	Forks       int            `json:"forks"`
	Language    string         `json:"language,omitempty"`
	Topics      []string       `json:"topics"`
	Languages   map[string]int `json:"languages"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Details carries the extra per-repo fields only the GraphQL API exposes.
type Details struct {
	Name        string
	Description string
	URL         string
	Homepage    string
	Stars       int
	Forks       int
	Language    string
	Topics      []string
	Languages   map[string]int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectsData is the full projects endpoint payload. TopLanguages is the
// ranked summary; Languages is the raw per-language count map.
type ProjectsData struct {
	Featured     []FeaturedProject `json:"featured"`
	TopLanguages []RankedLanguage  `json:"top_languages"`
	Languages    map[string]int    `json:"languages"`
	TotalStars   int               `json:"total_stars"`
	TotalRepos   int               `json:"total_repos"`
}

// Eligible reports whether a repository participates in scoring and
// language tallies: forks, archived and disabled repos are excluded.
func Eligible(r Repository) bool {
	return !r.Fork && !r.Archived && !r.Disabled
}

// FilterEligible returns the eligible subset preserving input order.
func FilterEligible(repos []Repository) []Repository {
	out := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if Eligible(r) {
			out = append(out, r)
		}
	}
	return out
}
