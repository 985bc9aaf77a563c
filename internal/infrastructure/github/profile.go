package github

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/gitfolio/gitfolio/internal/core/domain/profile"
	"github.com/gitfolio/gitfolio/internal/core/domain/social"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/sirupsen/logrus"
)

type graphqlUser struct {
	Login           string `json:"login"`
	Name            string `json:"name"`
	Bio             string `json:"bio"`
	AvatarURL       string `json:"avatarUrl"`
	Location        string `json:"location"`
	Email           string `json:"email"`
	WebsiteURL      string `json:"websiteUrl"`
	TwitterUsername string `json:"twitterUsername"`
	Company         string `json:"company"`
	Followers       struct {
		TotalCount int `json:"totalCount"`
	} `json:"followers"`
	Following struct {
		TotalCount int `json:"totalCount"`
	} `json:"following"`
	Repositories struct {
		TotalCount int `json:"totalCount"`
	} `json:"repositories"`
	CreatedAt string `json:"createdAt"`
}

// FetchProfile fetches and normalizes the user's profile. Social links are
// recovered from the bio first, then the profile README fills the gaps; PR
// and contribution metrics come from a second best-effort query.
func (c *Client) FetchProfile(ctx context.Context, username, token string) (*profile.NormalizedProfile, error) {
	tok := c.effectiveToken(token)
	query := userProfileQuery
	if token != "" {
		query = userProfileAllQuery
	}

	var data struct {
		User *graphqlUser `json:"user"`
	}
	if err := c.doGraphQL(ctx, tok, query, map[string]any{"username": username}, &data); err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, ports.ErrNotFound
	}
	user := data.User

	links := social.ExtractLinks(user.Bio, username)
	if readme := c.fetchProfileReadme(ctx, username, tok); readme != "" {
		readmeLinks := social.ExtractLinks(readme, username)
		if links.LinkedIn == "" {
			links.LinkedIn = readmeLinks.LinkedIn
		}
		if links.Twitter == "" && links.X == "" {
			links.Twitter = readmeLinks.Twitter
			links.X = readmeLinks.X
		}
		if links.Instagram == "" {
			links.Instagram = readmeLinks.Instagram
		}
	}

	twitterURL := links.Twitter
	if twitterURL == "" {
		twitterURL = links.X
	}
	twitterUsername := user.TwitterUsername
	if twitterUsername == "" {
		twitterUsername = extractTwitterUsername(twitterURL)
	}

	p := &profile.NormalizedProfile{
		Username:        user.Login,
		Name:            user.Name,
		Bio:             user.Bio,
		AvatarURL:       user.AvatarURL,
		Location:        user.Location,
		Email:           user.Email,
		Website:         profile.NormalizeWebsiteURL(user.WebsiteURL),
		TwitterUsername: twitterUsername,
		LinkedInURL:     links.LinkedIn,
		InstagramURL:    links.Instagram,
		Company:         user.Company,
		Followers:       user.Followers.TotalCount,
		Following:       user.Following.TotalCount,
		PublicRepos:     user.Repositories.TotalCount,
		CreatedAt:       user.CreatedAt,
		Cached:          false,
		Metrics:         c.fetchMetrics(ctx, username, tok),
	}

	return p, nil
}

// fetchMetrics gathers PR and contribution counters. Failures degrade to
// zeroed metrics rather than failing the profile.
func (c *Client) fetchMetrics(ctx context.Context, username, token string) *profile.Metrics {
	metrics := &profile.Metrics{}
	if token == "" {
		return metrics
	}

	var data struct {
		User *struct {
			MergedPRs struct {
				TotalCount int `json:"totalCount"`
			} `json:"mergedPRs"`
			OpenPRs struct {
				TotalCount int `json:"totalCount"`
			} `json:"openPRs"`
			ContributionsCollection struct {
				TotalCommitContributions            int `json:"totalCommitContributions"`
				TotalIssueContributions             int `json:"totalIssueContributions"`
				TotalPullRequestContributions       int `json:"totalPullRequestContributions"`
				TotalPullRequestReviewContributions int `json:"totalPullRequestReviewContributions"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}
	if err := c.doGraphQL(ctx, token, prStatsQuery, map[string]any{"username": username}, &data); err != nil {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"username": username}).WithError(err).Warn("github: failed to fetch profile metrics")
		}
		return metrics
	}
	if data.User == nil {
		return metrics
	}

	cc := data.User.ContributionsCollection
	metrics.PRsMerged = data.User.MergedPRs.TotalCount
	metrics.PRsOpen = data.User.OpenPRs.TotalCount
	metrics.TotalContributions = cc.TotalCommitContributions +
		cc.TotalIssueContributions +
		cc.TotalPullRequestContributions +
		cc.TotalPullRequestReviewContributions
	metrics.IssuesOpened = cc.TotalIssueContributions

	return metrics
}

// fetchProfileReadme reads the README of the user's profile repository
// (the repo named after the login). The GraphQL blob lookup is tried first,
// then the raw content host on the main and master branches. Empty on any
// failure.
func (c *Client) fetchProfileReadme(ctx context.Context, username, token string) string {
	if token != "" {
		var data struct {
			User *struct {
				Repository *struct {
					Object *struct {
						Text string `json:"text"`
					} `json:"object"`
				} `json:"repository"`
			} `json:"user"`
		}
		err := c.doGraphQL(ctx, token, profileReadmeQuery, map[string]any{"username": username}, &data)
		if err == nil && data.User != nil && data.User.Repository != nil && data.User.Repository.Object != nil {
			return data.User.Repository.Object.Text
		}
	}

	for _, branch := range []string{"main", "master"} {
		rawURL := "https://raw.githubusercontent.com/" + username + "/" + username + "/" + branch + "/README.md"
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			continue
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			continue
		}
		if resp.StatusCode == http.StatusOK {
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err == nil {
				return string(body)
			}
			continue
		}
		resp.Body.Close()
	}

	return ""
}

var twitterURLPattern = regexp.MustCompile(`(?:twitter\.com|x\.com)/([a-zA-Z0-9_]+)`)

// extractTwitterUsername pulls the handle out of a twitter/x profile URL.
func extractTwitterUsername(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		for _, segment := range strings.Split(u.Path, "/") {
			if segment != "" {
				return segment
			}
		}
	}
	if m := twitterURLPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}
