// Package github fetches raw repository facts from the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/schema"
	"golang.org/x/sync/errgroup"
)

const (
	userAgent      = "repograde"
	defaultTimeout = 30 * time.Second
)

// Client implements contract.RepoFetcher against the GitHub REST API.
type Client struct {
	httpClient    *http.Client
	logger        *slog.Logger
	baseURL       string
	token         string
	retryDelay    time.Duration
	retryAttempts uint
}

var _ contract.RepoFetcher = &Client{} // Compile-time check

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the structured logger for request and retry events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRetry overrides the number of attempts and the initial backoff delay.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.retryAttempts = max(attempts, 1)
		c.retryDelay = delay
	}
}

// NewClient creates a client for the API at baseURL. An empty token makes
// unauthenticated requests, which GitHub limits to 60 per hour.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: defaultTimeout},
		logger:        discardLogger(),
		baseURL:       strings.TrimRight(baseURL, "/"),
		token:         token,
		retryDelay:    defaultRetryDelay,
		retryAttempts: defaultRetryAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchRepository gathers metadata, languages and recent commits concurrently,
// then the recursive tree of the default branch and finally the README.
// A missing or undecodable README yields an empty string.
func (c *Client) FetchRepository(ctx context.Context, ref schema.RepoRef, commitLimit int) (*schema.RawRepositoryData, error) {
	if ref.Owner == "" || ref.Name == "" {
		return nil, fmt.Errorf("%w: owner and name are required", contract.ErrInvalidReference)
	}
	commitLimit = min(max(commitLimit, 1), contract.MaxCommitLimit)

	var (
		repo      repoResponse
		languages map[string]int64
		commits   []commitResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(gctx, repoPath(ref.Owner, ref.Name), &repo)
	})
	g.Go(func() error {
		return c.getJSON(gctx, repoPath(ref.Owner, ref.Name, "/languages"), &languages)
	})
	g.Go(func() error {
		err := c.getJSON(gctx, repoPath(ref.Owner, ref.Name, fmt.Sprintf("/commits?per_page=%d", commitLimit)), &commits)
		if isEmptyRepository(err) {
			commits = nil
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tree, err := c.fetchTree(ctx, ref, repo.DefaultBranch)
	if err != nil {
		return nil, err
	}

	raw := &schema.RawRepositoryData{
		Metadata:  repo.toMetadata(),
		Languages: languages,
		Commits:   toCommits(commits),
		FileTree:  tree,
		Readme:    c.fetchReadme(ctx, ref),
	}
	if raw.Languages == nil {
		raw.Languages = map[string]int64{}
	}
	c.logger.Info("Fetched repository", "component", "github", "repo", ref.String(),
		"commits", len(raw.Commits), "entries", len(raw.FileTree), "readme_bytes", len(raw.Readme))
	return raw, nil
}

// fetchTree lists the default branch recursively. Empty repositories have no tree.
func (c *Client) fetchTree(ctx context.Context, ref schema.RepoRef, branch string) ([]schema.TreeEntry, error) {
	if branch == "" {
		return nil, nil
	}
	var tree treeResponse
	err := c.getJSON(ctx, repoPath(ref.Owner, ref.Name, "/git/trees/", url.PathEscape(branch), "?recursive=1"), &tree)
	switch {
	case isEmptyRepository(err) || errors.Is(err, contract.ErrRepositoryNotFound):
		c.logger.Warn("No file tree for default branch", "component", "github", "repo", ref.String(), "branch", branch)
		return nil, nil
	case err != nil:
		return nil, err
	}
	if tree.Truncated {
		c.logger.Warn("File tree truncated by GitHub", "component", "github", "repo", ref.String(), "entries", len(tree.Tree))
	}
	return toEntries(tree.Tree), nil
}

// fetchReadme returns the decoded README, or "" on any failure.
func (c *Client) fetchReadme(ctx context.Context, ref schema.RepoRef) string {
	var readme readmeResponse
	if err := c.getJSON(ctx, repoPath(ref.Owner, ref.Name, "/readme"), &readme); err != nil {
		c.logger.Warn("No README found", "component", "github", "repo", ref.String(), "error", err)
		return ""
	}
	text, err := readme.decode()
	if err != nil {
		c.logger.Warn("Unreadable README", "component", "github", "repo", ref.String(), "error", err)
		return ""
	}
	return text
}

// isEmptyRepository matches GitHub's 409 Conflict for repositories without commits.
func isEmptyRepository(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == http.StatusConflict
}
