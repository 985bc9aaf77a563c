// Package github implements the GitHub gateway over the GraphQL and REST
// APIs using plain net/http. Upstream failures are translated into the
// ports error taxonomy here so callers never see provider specifics.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// Client talks to the GitHub APIs. A zero token on a call falls back to the
// shared read-only token from configuration; both empty means unauthenticated
// REST access with its reduced rate limits.
type Client struct {
	httpClient  *http.Client
	graphqlURL  string
	apiBaseURL  string
	sharedToken string
	pageSize    int
	logger      *logrus.Logger
}

// NewClient creates a gateway client from configuration.
func NewClient(cfg *configs.GitHubConfig, logger *logrus.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		graphqlURL:  cfg.GraphQLURL,
		apiBaseURL:  strings.TrimRight(cfg.APIBaseURL, "/"),
		sharedToken: cfg.Token,
		pageSize:    cfg.PageSize,
		logger:      logger,
	}
}

// effectiveToken prefers the viewer's own token over the shared one.
func (c *Client) effectiveToken(token string) string {
	if token != "" {
		return token
	}
	return c.sharedToken
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// doGraphQL posts a query and decodes the data envelope into out. GraphQL
// level errors and HTTP status failures are both mapped onto the ports
// taxonomy.
func (c *Client) doGraphQL(ctx context.Context, token, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graphql request failed with status %d", resp.StatusCode)
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		if err := mapGraphQLErrors(envelope.Errors); err != nil {
			return err
		}
		return fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode graphql data: %w", err)
		}
	}

	return nil
}

// doREST issues a GET against the REST API and decodes the JSON body.
func (c *Client) doREST(ctx context.Context, token, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.ErrNotFound
	}
	if err := mapStatus(resp.StatusCode); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func mapStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ports.ErrInvalidCredentials
	case http.StatusForbidden:
		return ports.ErrRateLimited
	}
	return nil
}

func mapGraphQLErrors(errs []graphqlError) error {
	for _, e := range errs {
		switch {
		case e.Type == "NOT_FOUND" || strings.Contains(e.Message, "Could not resolve to a User"):
			return ports.ErrNotFound
		case strings.Contains(e.Message, "Bad credentials"):
			return ports.ErrInvalidCredentials
		case e.Type == "RATE_LIMITED":
			return ports.ErrRateLimited
		}
	}
	return nil
}

// ResolveViewer returns the login the token authenticates as.
func (c *Client) ResolveViewer(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ports.ErrInvalidCredentials
	}

	var data struct {
		Viewer struct {
			Login string `json:"login"`
		} `json:"viewer"`
	}
	if err := c.doGraphQL(ctx, token, viewerQuery, nil, &data); err != nil {
		return "", err
	}
	if data.Viewer.Login == "" {
		return "", ports.ErrInvalidCredentials
	}

	return data.Viewer.Login, nil
}
