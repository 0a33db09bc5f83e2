package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/relpin/pkg/domain/interfaces"
	"github.com/m-mizutani/relpin/pkg/domain/model"
	"github.com/m-mizutani/relpin/pkg/domain/types"
	"github.com/m-mizutani/relpin/pkg/utils/async"
)

// DispatchFunc runs a job in the background and returns its ID
type DispatchFunc func(ctx context.Context, handler func(ctx context.Context) error) string

type webhookUseCase struct {
	syncUC       interfaces.SyncUseCase
	trackerURL   string
	manifestPath string
	marker       string
	dispatch     DispatchFunc

	// Syncs rewrite the same manifest file, one at a time
	mutex sync.Mutex
}

// WebhookOption is a functional option for the webhook use case
type WebhookOption func(*webhookUseCase)

// WithTrackerURL restricts syncs to comments on one tracker issue. When unset,
// the issue that received the comment is used as tracker.
func WithTrackerURL(url string) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.trackerURL = url
	}
}

// WithManifestPath sets the manifest rewritten by webhook triggered syncs
func WithManifestPath(path string) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.manifestPath = path
	}
}

// WithWebhookMarker sets the marker a comment must contain to trigger a sync
func WithWebhookMarker(marker string) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.marker = marker
	}
}

// WithDispatcher replaces the background job runner
func WithDispatcher(dispatch DispatchFunc) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.dispatch = dispatch
	}
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(syncUC interfaces.SyncUseCase, opts ...WebhookOption) interfaces.WebhookUseCase {
	uc := &webhookUseCase{
		syncUC:       syncUC,
		manifestPath: types.DefaultManifestPath,
		marker:       types.DefaultMarker,
		dispatch:     async.Dispatch,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProcessEvent starts a sync for release table comments. Any other event is
// logged and acknowledged.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
		"supported", event.IsSupportedEvent(),
	)

	if !event.IsSupportedEvent() {
		logger.Debug("Unsupported event received",
			"type", event.Type,
			"action", event.Action,
		)
		return nil
	}

	if !strings.Contains(event.CommentBody, uc.marker) {
		logger.Debug("Comment has no release marker", "issue", event.IssueURL)
		return nil
	}

	trackerURL := event.IssueURL
	if uc.trackerURL != "" {
		if !sameIssueURL(uc.trackerURL, event.IssueURL) {
			logger.Info("Comment is not on the tracker issue, skipping",
				"issue", event.IssueURL,
				"tracker", uc.trackerURL,
			)
			return nil
		}
		trackerURL = uc.trackerURL
	}

	jobID := uc.dispatch(ctx, func(ctx context.Context) error {
		uc.mutex.Lock()
		defer uc.mutex.Unlock()

		_, err := uc.syncUC.Sync(ctx, trackerURL, uc.manifestPath)
		return err
	})

	logger.Info("Sync job dispatched",
		"job_id", jobID,
		"tracker", trackerURL,
		"manifest", uc.manifestPath,
	)
	return nil
}

func sameIssueURL(a, b string) bool {
	return strings.TrimSuffix(a, "/") == strings.TrimSuffix(b, "/")
}
