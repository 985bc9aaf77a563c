package profile

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// NormalizedProfile is the canonical representation of a GitHub user as served
// by the portfolio API. Once written to the cache it is treated as immutable
// data transferred by value.
type NormalizedProfile struct {
	Username        string     `json:"username"`
	Name            string     `json:"name,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	AvatarURL       string     `json:"avatar_url,omitempty"`
	Location        string     `json:"location,omitempty"`
	Email           string     `json:"email,omitempty"`
	Website         string     `json:"website,omitempty"`
	TwitterUsername string     `json:"twitter_username,omitempty"`
	LinkedInURL     string     `json:"linkedin_url,omitempty"`
	InstagramURL    string     `json:"instagram_url,omitempty"`
	Company         string     `json:"company,omitempty"`
	Followers       int        `json:"followers"`
	Following       int        `json:"following"`
	PublicRepos     int        `json:"public_repos"`
	CreatedAt       string     `json:"created_at"`
	Cached          bool       `json:"cached"`
	Metrics         *Metrics   `json:"metrics,omitempty"`
	About           *AboutData `json:"about,omitempty"`
	SEO             *SEOData   `json:"seo,omitempty"`
}

// Metrics holds the quantitative signals gathered from a second query
// against the contributions collection.
type Metrics struct {
	PRsMerged          int `json:"prs_merged"`
	PRsOpen            int `json:"prs_open"`
	TotalContributions int `json:"total_contributions"`
	IssuesOpened       int `json:"issues_opened"`
	IssuesClosed       int `json:"issues_closed"`
}

// AboutData is the generated (or fallback) narrative block.
type AboutData struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Skills     []string `json:"skills"`
}

// SEOData is the generated (or fallback) page metadata block.
type SEOData struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// DisplayName prefers the human name and falls back to the login.
func (p *NormalizedProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

// usernamePattern follows the GitHub login grammar: alphanumeric segments
// joined by single hyphens, at most 39 characters. Consecutive hyphens are
// rejected separately since RE2 has no lookahead.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,37}[a-zA-Z0-9])?$`)

// ValidateUsername checks the GitHub login grammar and returns the trimmed
// username or an error describing why it is invalid.
func ValidateUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if username == "" {
		return "", fmt.Errorf("invalid username: empty")
	}
	if len(username) > 39 {
		return "", fmt.Errorf("invalid username %q: longer than 39 characters", username)
	}
	if strings.Contains(username, "--") || !usernamePattern.MatchString(username) {
		return "", fmt.Errorf("invalid username %q", username)
	}
	return username, nil
}

// NormalizeWebsiteURL trims the URL, prepends https:// to bare domains and
// rejects strings that do not parse. Empty input stays empty.
func NormalizeWebsiteURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if _, err := url.ParseRequestURI(trimmed); err != nil {
			return ""
		}
		return trimmed
	}
	return "https://" + trimmed
}
