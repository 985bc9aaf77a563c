// Package pullrequest groups a user's merged pull requests by the owning
// organization, surfacing external open-source work.
package pullrequest

import (
	"sort"
	"strings"
)

// MergedPR is one merged pull request as fetched from GitHub.
type MergedPR struct {
	Number     int    `json:"number"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	State      string `json:"state"`
	MergedAt   string `json:"mergedAt,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
	Repository string `json:"repository"`
	BaseRef    string `json:"baseRef"`
	HeadRef    string `json:"headRef"`
	OwnerLogin string `json:"ownerLogin"`
	// OwnerName is the display name of the repo owner; empty falls back to
	// the login during grouping.
	OwnerName   string `json:"-"`
	OwnerAvatar string `json:"-"`
}

// OrgGroup is the per-organization grouping served by the prs-by-org
// endpoint.
type OrgGroup struct {
	OrgName   string     `json:"orgName"`
	OrgAvatar string     `json:"orgAvatar"`
	OrgLogin  string     `json:"orgLogin"`
	PRs       []MergedPR `json:"prs"`
}

// GroupByOrg groups merged PRs by the owner of the target repository,
// excluding any group owned by the subject user (case-insensitive): a user's
// PRs into their own repositories are not external contributions. Groups are
// ordered by descending PR count, ties by first encounter.
func GroupByOrg(username string, prs []MergedPR) []OrgGroup {
	subject := strings.ToLower(username)

	index := make(map[string]int)
	var groups []OrgGroup

	for _, pr := range prs {
		// The query already restricts to merged PRs, but guard anyway.
		if pr.MergedAt == "" {
			continue
		}
		if strings.ToLower(pr.OwnerLogin) == subject {
			continue
		}

		name := pr.OwnerName
		if name == "" {
			name = pr.OwnerLogin
		}

		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, OrgGroup{
				OrgName:   name,
				OrgAvatar: pr.OwnerAvatar,
				OrgLogin:  pr.OwnerLogin,
			})
		}
		groups[i].PRs = append(groups[i].PRs, pr)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].PRs) > len(groups[j].PRs)
	})
	return groups
}
