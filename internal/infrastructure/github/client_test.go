package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/ports"
)

// fakeGitHub serves both the GraphQL and REST endpoints, dispatching GraphQL
// queries by distinctive substrings.
type fakeGitHub struct {
	viewerLogin string
	restPages   map[int]string
}

func (f *fakeGitHub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			f.serveREST(t, w, r)
			return
		}

		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(req.Query, "viewer"):
			fmt.Fprintf(w, `{"data": {"viewer": {"login": %q}}}`, f.viewerLogin)
		case strings.Contains(req.Query, "websiteUrl"):
			fmt.Fprint(w, `{"data": {"user": {
				"login": "octocat",
				"name": "The Octocat",
				"bio": "Building things. https://twitter.com/octocat",
				"avatarUrl": "https://avatars.example/octocat",
				"location": "San Francisco",
				"websiteUrl": "octocat.dev",
				"company": "GitHub",
				"followers": {"totalCount": 4000},
				"following": {"totalCount": 9},
				"repositories": {"totalCount": 8},
				"createdAt": "2011-01-25T18:44:36Z"
			}}}`)
		case strings.Contains(req.Query, "mergedPRs:"):
			fmt.Fprint(w, `{"data": {"user": {
				"mergedPRs": {"totalCount": 12},
				"openPRs": {"totalCount": 3},
				"contributionsCollection": {
					"totalCommitContributions": 100,
					"totalIssueContributions": 10,
					"totalPullRequestContributions": 20,
					"totalPullRequestReviewContributions": 5
				}
			}}}`)
		case strings.Contains(req.Query, "HEAD:README.md"):
			fmt.Fprint(w, `{"data": {"user": {"repository": {"object": {"text": "hello, find me on linkedin.com/in/octocat"}}}}}`)
		case strings.Contains(req.Query, "contributionCalendar"):
			fmt.Fprint(w, `{"data": {"user": {"contributionsCollection": {"contributionCalendar": {
				"totalContributions": 11,
				"weeks": [{"contributionDays": [
					{"date": "2026-08-24", "contributionCount": 0},
					{"date": "2026-08-25", "contributionCount": 4},
					{"date": "2026-08-26", "contributionCount": 7}
				]}]
			}}}}}`)
		case strings.Contains(req.Query, "pinnedItems"):
			fmt.Fprint(w, `{"data": {"user": {"pinnedItems": {"nodes": [{"name": "dotfiles"}]}}}}`)
		default:
			t.Errorf("unexpected graphql query: %s", req.Query)
			fmt.Fprint(w, `{"data": {}}`)
		}
	}
}

func (f *fakeGitHub) serveREST(t *testing.T, w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")
	body, ok := f.restPages[atoiOr(page, 1)]
	if !ok {
		body = "[]"
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func atoiOr(s string, fallback int) int {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return fallback
	}
	return n
}

func newTestClient(serverURL string, pageSize int) *Client {
	return NewClient(&configs.GitHubConfig{
		Token:          "shared-token",
		APIBaseURL:     serverURL,
		GraphQLURL:     serverURL,
		RequestTimeout: 5 * time.Second,
		PageSize:       pageSize,
	}, nil)
}

func TestResolveViewer(t *testing.T) {
	fake := &fakeGitHub{viewerLogin: "octocat"}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := newTestClient(srv.URL, 100)

	login, err := client.ResolveViewer(context.Background(), "gho_token")
	require.NoError(t, err)
	assert.Equal(t, "octocat", login)

	_, err = client.ResolveViewer(context.Background(), "")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestFetchProfile_Normalizes(t *testing.T) {
	fake := &fakeGitHub{viewerLogin: "octocat"}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := newTestClient(srv.URL, 100)

	p, err := client.FetchProfile(context.Background(), "octocat", "")
	require.NoError(t, err)

	assert.Equal(t, "octocat", p.Username)
	assert.Equal(t, "The Octocat", p.Name)
	assert.Equal(t, "https://octocat.dev", p.Website, "bare website domain gets a scheme")
	assert.Equal(t, "octocat", p.TwitterUsername, "handle recovered from the bio link")
	assert.Equal(t, "https://www.linkedin.com/in/octocat", p.LinkedInURL, "link recovered from the profile readme")
	assert.False(t, p.Cached)

	require.NotNil(t, p.Metrics)
	assert.Equal(t, 12, p.Metrics.PRsMerged)
	assert.Equal(t, 3, p.Metrics.PRsOpen)
	assert.Equal(t, 135, p.Metrics.TotalContributions)
	assert.Equal(t, 10, p.Metrics.IssuesOpened)
}

func TestFetchProfile_QueryVariesWithCallerToken(t *testing.T) {
	var profileQueries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(req.Query, "websiteUrl"):
			profileQueries = append(profileQueries, req.Query)
			fmt.Fprint(w, `{"data": {"user": {"login": "octocat"}}}`)
		case strings.Contains(req.Query, "HEAD:README.md"):
			fmt.Fprint(w, `{"data": {"user": {"repository": {"object": {"text": ""}}}}}`)
		default:
			fmt.Fprint(w, `{"data": {}}`)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 100)

	_, err := client.FetchProfile(context.Background(), "octocat", "")
	require.NoError(t, err)
	_, err = client.FetchProfile(context.Background(), "octocat", "gho_owner")
	require.NoError(t, err)

	require.Len(t, profileQueries, 2)
	assert.Contains(t, profileQueries[0], "privacy: PUBLIC", "anonymous reads list only public repositories")
	assert.NotContains(t, profileQueries[1], "privacy: PUBLIC", "an authenticated read lists all repositories")
}

func TestFetchProfile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": null, "errors": [{"type": "NOT_FOUND", "message": "Could not resolve to a User with the login of 'ghost'."}]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 100)

	_, err := client.FetchProfile(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestFetchProfile_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 100)

	_, err := client.FetchProfile(context.Background(), "octocat", "bad")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestFetchRepositories_Paginates(t *testing.T) {
	fake := &fakeGitHub{
		viewerLogin: "someoneelse",
		restPages: map[int]string{
			1: `[{"name": "a", "stargazers_count": 5}, {"name": "b", "fork": true}]`,
			2: `[{"name": "c", "language": "Go"}]`,
		},
	}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := newTestClient(srv.URL, 2)

	repos, err := client.FetchRepositories(context.Background(), "octocat", "")
	require.NoError(t, err)

	require.Len(t, repos, 3, "short final page ends pagination")
	assert.Equal(t, "a", repos[0].Name)
	assert.Equal(t, 5, repos[0].Stars)
	assert.True(t, repos[1].Fork)
	assert.Equal(t, "Go", repos[2].Language)
}

func TestFetchRepositories_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"data": {"viewer": {"login": "someoneelse"}}}`)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 100)

	_, err := client.FetchRepositories(context.Background(), "octocat", "")
	assert.ErrorIs(t, err, ports.ErrRateLimited)
}

func TestFetchContributions_MapsLevels(t *testing.T) {
	fake := &fakeGitHub{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := newTestClient(srv.URL, 100)

	data, err := client.FetchContributions(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, 11, data.TotalContributions)
	require.Len(t, data.Weeks, 1)
	days := data.Weeks[0].Days
	require.Len(t, days, 3)
	assert.Equal(t, 0, days[0].Level)
	assert.Equal(t, 2, days[1].Level)
	assert.Equal(t, 3, days[2].Level)
}

func TestFetchContributions_NoSharedToken(t *testing.T) {
	client := NewClient(&configs.GitHubConfig{RequestTimeout: time.Second, PageSize: 100}, nil)

	_, err := client.FetchContributions(context.Background(), "octocat")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestFetchPinned(t *testing.T) {
	fake := &fakeGitHub{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := newTestClient(srv.URL, 100)

	assert.Equal(t, []string{"dotfiles"}, client.FetchPinned(context.Background(), "octocat"))
}

func TestMapGraphQLErrors(t *testing.T) {
	assert.ErrorIs(t, mapGraphQLErrors([]graphqlError{{Type: "NOT_FOUND"}}), ports.ErrNotFound)
	assert.ErrorIs(t, mapGraphQLErrors([]graphqlError{{Message: "Bad credentials"}}), ports.ErrInvalidCredentials)
	assert.ErrorIs(t, mapGraphQLErrors([]graphqlError{{Type: "RATE_LIMITED"}}), ports.ErrRateLimited)
	assert.NoError(t, mapGraphQLErrors([]graphqlError{{Type: "SOMETHING_ELSE", Message: "shrug"}}))
}

func TestExtractTwitterUsername(t *testing.T) {
	assert.Equal(t, "octocat", extractTwitterUsername("https://twitter.com/octocat"))
	assert.Equal(t, "octocat", extractTwitterUsername("https://x.com/octocat"))
	assert.Equal(t, "", extractTwitterUsername(""))
}
