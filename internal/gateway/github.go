// Package gateway provides a gateway to the GitHub GraphQL API,
// abstracting away the HTTP exchange and response classification.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const graphqlEndpoint = "https://api.github.com/graphql"

// requestTimeout bounds every exchange; there are no retries.
const requestTimeout = 30 * time.Second

// PageInfo mirrors the pageInfo block of a paginated connection.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// Account identifies the owner a repository listing was resolved for.
type Account struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

// LanguageNode describes one language as reported by the API.
type LanguageNode struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LanguageEdge pairs a language with the byte size it occupies in one
// repository. Size stays raw so the aggregation layer can discard
// non-numeric values without failing the whole page.
type LanguageEdge struct {
	Size json.RawMessage `json:"size"`
	Node LanguageNode    `json:"node"`
}

// LanguageBlock is the language connection embedded in a repository node.
type LanguageBlock struct {
	PageInfo PageInfo       `json:"pageInfo"`
	Edges    []LanguageEdge `json:"edges"`
}

// Repository is one node of the repository listing.
type Repository struct {
	Name           string        `json:"name"`
	NameWithOwner  string        `json:"nameWithOwner"`
	StargazerCount int           `json:"stargazerCount"`
	ForkCount      int           `json:"forkCount"`
	IsFork         bool          `json:"isFork"`
	Languages      LanguageBlock `json:"languages"`
}

// RepositoryPage is one page of an account's repository listing. Owner is
// nil when the requested login does not resolve to a user or organization.
type RepositoryPage struct {
	Owner        *Account
	Repositories []Repository
	PageInfo     PageInfo
}

// LanguagePage is one continuation page of a repository's language listing.
type LanguagePage struct {
	Edges    []LanguageEdge
	PageInfo PageInfo
}

// Fetcher defines the behavior of a gateway for fetching statistics from GitHub.
type Fetcher interface {
	FetchRepositoryPage(ctx context.Context, login string, cursor *string, forkFilter *bool) (*RepositoryPage, error)
	FetchLanguagePage(ctx context.Context, owner, name, cursor string) (*LanguagePage, error)
	FetchContributions(ctx context.Context, login string) (int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	endpoint   string
	httpClient *http.Client
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// Every request it sends carries the given token as a bearer credential.
func NewGitHubGateway(token string, logger *log.Logger) *GitHubGateway {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: ts},
		Timeout:   requestTimeout,
	}
	return &GitHubGateway{
		endpoint:   graphqlEndpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Execute performs a single GraphQL exchange and returns the raw data
// payload. Failures come back as *TransportError when the HTTP exchange
// itself failed, or *ProtocolError when the response body is unusable.
func (g *GitHubGateway) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build GraphQL request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var payload graphqlResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, &ProtocolError{Reason: "GitHub API returned invalid JSON.", Err: err}
	}
	if len(payload.Errors) > 0 {
		messages := make([]string, len(payload.Errors))
		for i, apiErr := range payload.Errors {
			if apiErr.Message == "" {
				messages[i] = "unknown error"
				continue
			}
			messages[i] = apiErr.Message
		}
		return nil, &ProtocolError{Reason: "GitHub API error: " + strings.Join(messages, ", ")}
	}
	if len(payload.Data) == 0 || bytes.Equal(payload.Data, []byte("null")) {
		return nil, &ProtocolError{Reason: "GitHub API response missing data field."}
	}
	return payload.Data, nil
}

type repositoryOwnerPayload struct {
	RepositoryOwner *struct {
		Account
		Repositories struct {
			Nodes    []Repository `json:"nodes"`
			PageInfo PageInfo     `json:"pageInfo"`
		} `json:"repositories"`
	} `json:"repositoryOwner"`
}

// FetchRepositoryPage fetches one page of the account's repository
// listing, most-starred first. A nil cursor requests the first page; a
// nil forkFilter requests forks and sources alike.
func (g *GitHubGateway) FetchRepositoryPage(ctx context.Context, login string, cursor *string, forkFilter *bool) (*RepositoryPage, error) {
	if cursor == nil {
		g.logger.Printf("Fetching first repository page for %s...", login)
	} else {
		g.logger.Printf("  Fetching next repository page for %s...", login)
	}
	data, err := g.Execute(ctx, repositoriesQuery, map[string]any{
		"login":  login,
		"cursor": cursor,
		"isFork": forkFilter,
	})
	if err != nil {
		return nil, err
	}

	var payload repositoryOwnerPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &ProtocolError{Reason: "GitHub API returned an unexpected repository payload", Err: err}
	}
	if payload.RepositoryOwner == nil {
		return &RepositoryPage{}, nil
	}
	return &RepositoryPage{
		Owner:        &payload.RepositoryOwner.Account,
		Repositories: payload.RepositoryOwner.Repositories.Nodes,
		PageInfo:     payload.RepositoryOwner.Repositories.PageInfo,
	}, nil
}

type languagesPayload struct {
	Repository *struct {
		Languages LanguageBlock `json:"languages"`
	} `json:"repository"`
}

// FetchLanguagePage fetches one continuation page of a repository's
// language listing. An unknown repository yields an empty page.
func (g *GitHubGateway) FetchLanguagePage(ctx context.Context, owner, name, cursor string) (*LanguagePage, error) {
	g.logger.Printf("  Fetching additional languages for %s/%s...", owner, name)
	data, err := g.Execute(ctx, languagesPageQuery, map[string]any{
		"owner":  owner,
		"name":   name,
		"cursor": cursor,
	})
	if err != nil {
		return nil, err
	}

	var payload languagesPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &ProtocolError{Reason: "GitHub API returned an unexpected language payload", Err: err}
	}
	if payload.Repository == nil {
		return &LanguagePage{}, nil
	}
	return &LanguagePage{
		Edges:    payload.Repository.Languages.Edges,
		PageInfo: payload.Repository.Languages.PageInfo,
	}, nil
}

type contributionsPayload struct {
	User *struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions json.RawMessage `json:"totalContributions"`
			} `json:"contributionCalendar"`
		} `json:"contributionsCollection"`
	} `json:"user"`
}

// FetchContributions fetches the account's contribution calendar total.
// An absent user or a non-numeric total counts as zero.
func (g *GitHubGateway) FetchContributions(ctx context.Context, login string) (int, error) {
	g.logger.Printf("Fetching contribution calendar for %s...", login)
	data, err := g.Execute(ctx, contributionsQuery, map[string]any{"login": login})
	if err != nil {
		return 0, err
	}

	var payload contributionsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, &ProtocolError{Reason: "GitHub API returned an unexpected contributions payload", Err: err}
	}
	if payload.User == nil {
		return 0, nil
	}

	var total json.Number
	if err := json.Unmarshal(payload.User.ContributionsCollection.ContributionCalendar.TotalContributions, &total); err != nil {
		return 0, nil
	}
	n, err := total.Int64()
	if err != nil {
		return 0, nil
	}
	return int(n), nil
}
