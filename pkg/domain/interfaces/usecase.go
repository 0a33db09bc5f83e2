package interfaces

import (
	"context"

	"github.com/m-mizutani/relpin/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// TrackerUseCase collects component references from a tracker issue
type TrackerUseCase interface {
	// Collect reads the tracker issue comments and resolves the commit of every component
	Collect(ctx context.Context, trackerURL string) (*model.Release, error)
}

// ManifestUseCase rewrites a manifest file from exported component references
type ManifestUseCase interface {
	// Apply rewrites the manifest at path with the given exports
	Apply(ctx context.Context, path string, exports model.Exports) (*model.SyncResult, error)
}

// SyncUseCase runs the tracker and manifest stages back to back
type SyncUseCase interface {
	// Sync collects the tracker release and applies it to the manifest
	Sync(ctx context.Context, trackerURL, manifestPath string) (*model.SyncResult, error)
}

// Notifier reports a finished sync to a human channel
type Notifier interface {
	Notify(ctx context.Context, result *model.SyncResult) error
}
