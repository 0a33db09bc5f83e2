package interfaces

import "context"

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// ListIssueComments returns the plain text bodies of all comments on an issue, oldest first
	ListIssueComments(ctx context.Context, owner, repo string, number int) ([]string, error)

	// GetCommitSHA resolves a branch or tag to the SHA of the commit it points to
	GetCommitSHA(ctx context.Context, owner, repo, ref string) (string, error)
}
