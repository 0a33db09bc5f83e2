package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpin/pkg/domain/interfaces"
)

const (
	// mediaTypeText asks GitHub to render comment bodies as plain text (body_text)
	mediaTypeText = "application/vnd.github.text+json"

	commentsPerPage = 100
)

type client struct {
	githubClient *github.Client
}

// config holds optional client settings
type config struct {
	baseURL   string
	transport http.RoundTripper
}

// Option is a functional option for the GitHub client
type Option func(*config)

// WithBaseURL points the client to a GitHub Enterprise or test API endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithTransport replaces the underlying HTTP transport
func WithTransport(tr http.RoundTripper) Option {
	return func(c *config) {
		c.transport = tr
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// NewClient creates a new GitHub client authenticated with a personal or workflow token.
// An empty token gives an anonymous client, which is enough for public repositories.
func NewClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	cfg := newConfig(opts)

	githubClient := github.NewClient(&http.Client{Transport: cfg.transport})
	if token != "" {
		githubClient = githubClient.WithAuthToken(token)
	}

	return newClient(githubClient, cfg)
}

// NewAppClient creates a new GitHub client with App authentication
func NewAppClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.GitHubClient, error) {
	cfg := newConfig(opts)

	// Create GitHub App transport
	itr, err := ghinstallation.New(cfg.transport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
		)
	}
	if cfg.baseURL != "" {
		itr.BaseURL = strings.TrimSuffix(cfg.baseURL, "/")
	}

	return newClient(github.NewClient(&http.Client{Transport: itr}), cfg)
}

func newClient(githubClient *github.Client, cfg *config) (interfaces.GitHubClient, error) {
	if cfg.baseURL != "" {
		base := cfg.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("base_url", cfg.baseURL))
		}
		githubClient.BaseURL = u
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// issueComment is the subset of the issue comment resource returned with the text media type
type issueComment struct {
	Body     string `json:"body"`
	BodyText string `json:"body_text"`
}

func (c *issueComment) text() string {
	if c.BodyText != "" {
		return c.BodyText
	}
	return c.Body
}

// ListIssueComments returns the plain text bodies of all comments on an issue
func (c *client) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var bodies []string

	for page := 1; page != 0; {
		u := fmt.Sprintf("repos/%s/%s/issues/%d/comments?per_page=%d&page=%d", owner, repo, number, commentsPerPage, page)
		req, err := c.githubClient.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create issue comments request")
		}
		req.Header.Set("Accept", mediaTypeText)

		var comments []*issueComment
		resp, err := c.githubClient.Do(ctx, req, &comments)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list issue comments",
				goerr.V("owner", owner),
				goerr.V("repo", repo),
				goerr.V("number", number),
				goerr.V("page", page),
			)
		}

		for _, comment := range comments {
			bodies = append(bodies, comment.text())
		}
		page = resp.NextPage
	}

	return bodies, nil
}

// GetCommitSHA resolves a branch or tag to a commit SHA
func (c *client) GetCommitSHA(ctx context.Context, owner, repo, ref string) (string, error) {
	commit, _, err := c.githubClient.Repositories.GetCommit(ctx, owner, repo, ref, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get commit",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("ref", ref),
		)
	}

	sha := commit.GetSHA()
	if sha == "" {
		return "", goerr.New("commit has no SHA",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("ref", ref),
		)
	}

	return sha, nil
}
