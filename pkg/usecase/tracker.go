package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpin/pkg/domain/interfaces"
	"github.com/m-mizutani/relpin/pkg/domain/model"
	"github.com/m-mizutani/relpin/pkg/domain/types"
)

type trackerUseCase struct {
	githubClient interfaces.GitHubClient
	marker       string
}

// TrackerOption is a functional option for the tracker use case
type TrackerOption func(*trackerUseCase)

// WithMarker sets the line that opens the component table
func WithMarker(marker string) TrackerOption {
	return func(uc *trackerUseCase) {
		uc.marker = marker
	}
}

// NewTracker creates a new instance of TrackerUseCase
func NewTracker(githubClient interfaces.GitHubClient, opts ...TrackerOption) interfaces.TrackerUseCase {
	uc := &trackerUseCase{
		githubClient: githubClient,
		marker:       types.DefaultMarker,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Collect reads the tracker issue comments and resolves the commit of every component.
// Comment retrieval failures abort the collection; commit lookup failures only leave
// the component without SHA.
func (uc *trackerUseCase) Collect(ctx context.Context, trackerURL string) (*model.Release, error) {
	logger := ctxlog.From(ctx)

	issue, err := model.ParseTrackerURL(trackerURL)
	if err != nil {
		return nil, err
	}
	logger.Info("Reading tracker issue", "url", trackerURL, "issue", issue.String())

	bodies, err := uc.githubClient.ListIssueComments(ctx, issue.Owner, issue.Repo, issue.Number)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read tracker comments", goerr.V("issue", issue.String()))
	}

	release := &model.Release{Issue: issue}
	for _, body := range bodies {
		release.Components = append(release.Components, model.ExtractComponents(body, uc.marker)...)
	}
	logger.Info("Found components in tracker issue",
		"comment_count", len(bodies),
		"component_count", len(release.Components),
	)

	for _, c := range release.Components {
		logger.Info("Processing component",
			"component", c.Name,
			"org", c.Org,
			"repo", c.Repo,
			"ref", c.Ref,
		)

		sha, err := uc.githubClient.GetCommitSHA(ctx, c.Org, c.Repo, c.Ref)
		if err != nil {
			logger.Warn("Failed to fetch commit SHA",
				"component", c.Name,
				"org", c.Org,
				"repo", c.Repo,
				"ref", c.Ref,
				"error", err,
			)
			continue
		}

		c.CommitSHA = sha
		logger.Info("Resolved commit SHA", "component", c.Name, "sha", shortSHA(sha))
	}

	return release, nil
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
