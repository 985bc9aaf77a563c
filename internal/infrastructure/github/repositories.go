package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gitfolio/gitfolio/internal/core/domain/project"
	"github.com/gitfolio/gitfolio/internal/core/domain/pullrequest"
	"github.com/sirupsen/logrus"
)

type restRepository struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Homepage    string    `json:"homepage"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Language    string    `json:"language"`
	Topics      []string  `json:"topics"`
	Fork        bool      `json:"fork"`
	Archived    bool      `json:"archived"`
	Disabled    bool      `json:"disabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r restRepository) toDomain() project.Repository {
	return project.Repository{
		Name:        r.Name,
		FullName:    r.FullName,
		Description: r.Description,
		URL:         r.HTMLURL,
		Homepage:    r.Homepage,
		Stars:       r.Stars,
		Forks:       r.Forks,
		Language:    r.Language,
		Topics:      r.Topics,
		Fork:        r.Fork,
		Archived:    r.Archived,
		Disabled:    r.Disabled,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FetchRepositories pages through the user's repositories over REST. When
// the token authenticates as the requested user, the owner-affiliated
// listing is used so private repositories are included.
func (c *Client) FetchRepositories(ctx context.Context, username, token string) ([]project.Repository, error) {
	tok := c.effectiveToken(token)

	path := fmt.Sprintf("/users/%s/repos", username)
	if tok != "" {
		if viewer, err := c.ResolveViewer(ctx, tok); err == nil && strings.EqualFold(viewer, username) {
			path = "/user/repos"
		}
	}

	var repos []project.Repository
	for page := 1; ; page++ {
		query := fmt.Sprintf("?page=%d&per_page=%d&sort=updated&direction=desc", page, c.pageSize)
		if path == "/user/repos" {
			query += "&affiliation=owner"
		}

		var pageRepos []restRepository
		if err := c.doREST(ctx, tok, path+query, &pageRepos); err != nil {
			return nil, err
		}
		if len(pageRepos) == 0 {
			break
		}
		for _, r := range pageRepos {
			repos = append(repos, r.toDomain())
		}
		if len(pageRepos) < c.pageSize {
			break
		}
	}

	return repos, nil
}

// FetchPinned returns the names of the user's pinned repositories. Pins are
// decorative for scoring, so any failure degrades to none.
func (c *Client) FetchPinned(ctx context.Context, username string) []string {
	var data struct {
		User *struct {
			PinnedItems struct {
				Nodes []struct {
					Name string `json:"name"`
				} `json:"nodes"`
			} `json:"pinnedItems"`
		} `json:"user"`
	}
	if err := c.doGraphQL(ctx, c.sharedToken, pinnedReposQuery, map[string]any{"username": username}, &data); err != nil {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"username": username}).WithError(err).Debug("github: failed to fetch pinned repositories")
		}
		return nil
	}
	if data.User == nil {
		return nil
	}

	names := make([]string, 0, len(data.User.PinnedItems.Nodes))
	for _, node := range data.User.PinnedItems.Nodes {
		names = append(names, node.Name)
	}
	return names
}

type graphqlRepoDetails struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	URL             string `json:"url"`
	HomepageURL     string `json:"homepageUrl"`
	StargazerCount  int    `json:"stargazerCount"`
	ForkCount       int    `json:"forkCount"`
	PrimaryLanguage *struct {
		Name string `json:"name"`
	} `json:"primaryLanguage"`
	Languages struct {
		Edges []struct {
			Size int `json:"size"`
			Node struct {
				Name string `json:"name"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"languages"`
	RepositoryTopics struct {
		Nodes []struct {
			Topic struct {
				Name string `json:"name"`
			} `json:"topic"`
		} `json:"nodes"`
	} `json:"repositoryTopics"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// FetchRepoDetails returns GraphQL-only enrichment (language byte sizes,
// topics) keyed by repository name. Enrichment is optional, so any failure
// degrades to an empty map.
func (c *Client) FetchRepoDetails(ctx context.Context, username, token string) map[string]project.Details {
	tok := c.effectiveToken(token)
	if tok == "" {
		return nil
	}
	query := repoDetailsQuery
	if token != "" {
		query = repoDetailsAllQuery
	}

	var data struct {
		User *struct {
			Repositories struct {
				Nodes []graphqlRepoDetails `json:"nodes"`
			} `json:"repositories"`
		} `json:"user"`
	}
	if err := c.doGraphQL(ctx, tok, query, map[string]any{"username": username}, &data); err != nil {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"username": username}).WithError(err).Debug("github: failed to fetch repository details")
		}
		return nil
	}
	if data.User == nil {
		return nil
	}

	details := make(map[string]project.Details, len(data.User.Repositories.Nodes))
	for _, node := range data.User.Repositories.Nodes {
		d := project.Details{
			Name:        node.Name,
			Description: node.Description,
			URL:         node.URL,
			Homepage:    node.HomepageURL,
			Stars:       node.StargazerCount,
			Forks:       node.ForkCount,
			Languages:   make(map[string]int, len(node.Languages.Edges)),
			CreatedAt:   node.CreatedAt,
			UpdatedAt:   node.UpdatedAt,
		}
		if node.PrimaryLanguage != nil {
			d.Language = node.PrimaryLanguage.Name
		}
		for _, edge := range node.Languages.Edges {
			d.Languages[edge.Node.Name] = edge.Size
		}
		for _, t := range node.RepositoryTopics.Nodes {
			d.Topics = append(d.Topics, t.Topic.Name)
		}
		details[node.Name] = d
	}

	return details
}

// FetchMergedPRs returns the user's most recent merged pull requests with
// repository owner attribution for organization grouping.
func (c *Client) FetchMergedPRs(ctx context.Context, username string) ([]pullrequest.MergedPR, error) {
	if c.sharedToken == "" {
		return nil, nil
	}

	var data struct {
		User *struct {
			PullRequests struct {
				Nodes []struct {
					Number     int    `json:"number"`
					Title      string `json:"title"`
					URL        string `json:"url"`
					State      string `json:"state"`
					MergedAt   string `json:"mergedAt"`
					CreatedAt  string `json:"createdAt"`
					UpdatedAt  string `json:"updatedAt"`
					Repository struct {
						Name  string `json:"name"`
						Owner struct {
							Login     string `json:"login"`
							AvatarURL string `json:"avatarUrl"`
							Name      string `json:"name"`
						} `json:"owner"`
					} `json:"repository"`
					BaseRefName string `json:"baseRefName"`
					HeadRefName string `json:"headRefName"`
				} `json:"nodes"`
			} `json:"pullRequests"`
		} `json:"user"`
	}
	vars := map[string]any{"username": username, "first": c.pageSize}
	if err := c.doGraphQL(ctx, c.sharedToken, mergedPRsQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, nil
	}

	prs := make([]pullrequest.MergedPR, 0, len(data.User.PullRequests.Nodes))
	for _, node := range data.User.PullRequests.Nodes {
		prs = append(prs, pullrequest.MergedPR{
			Number:      node.Number,
			Title:       node.Title,
			URL:         node.URL,
			State:       node.State,
			MergedAt:    node.MergedAt,
			CreatedAt:   node.CreatedAt,
			UpdatedAt:   node.UpdatedAt,
			Repository:  node.Repository.Name,
			BaseRef:     node.BaseRefName,
			HeadRef:     node.HeadRefName,
			OwnerLogin:  node.Repository.Owner.Login,
			OwnerName:   node.Repository.Owner.Name,
			OwnerAvatar: node.Repository.Owner.AvatarURL,
		})
	}

	return prs, nil
}
