package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/relpin/pkg/domain/interfaces"
	"github.com/m-mizutani/relpin/pkg/domain/model"
)

type syncUseCase struct {
	tracker  interfaces.TrackerUseCase
	manifest interfaces.ManifestUseCase
	aliases  model.Aliases
	notifier interfaces.Notifier
}

// SyncOption is a functional option for the sync use case
type SyncOption func(*syncUseCase)

// WithAliases replaces the default component alias table
func WithAliases(aliases model.Aliases) SyncOption {
	return func(uc *syncUseCase) {
		uc.aliases = aliases
	}
}

// WithNotifier reports every finished sync to notifier
func WithNotifier(notifier interfaces.Notifier) SyncOption {
	return func(uc *syncUseCase) {
		uc.notifier = notifier
	}
}

// NewSync creates a new instance of SyncUseCase
func NewSync(tracker interfaces.TrackerUseCase, manifest interfaces.ManifestUseCase, opts ...SyncOption) interfaces.SyncUseCase {
	uc := &syncUseCase{
		tracker:  tracker,
		manifest: manifest,
		aliases:  model.DefaultAliases(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Sync collects the tracker release and applies its exports to the manifest
func (uc *syncUseCase) Sync(ctx context.Context, trackerURL, manifestPath string) (*model.SyncResult, error) {
	logger := ctxlog.From(ctx)

	release, err := uc.tracker.Collect(ctx, trackerURL)
	if err != nil {
		return nil, err
	}

	exports := release.Exports(uc.aliases)
	logger.Debug("Built component exports", "keys", exports.Keys())

	result, err := uc.manifest.Apply(ctx, manifestPath, exports)
	if err != nil {
		return nil, err
	}
	result.Tracker = release.Issue.String()
	result.Components = len(release.Components)
	result.Resolved = release.ResolvedCount()

	logger.Info("Sync completed",
		"tracker", result.Tracker,
		"components", result.Components,
		"resolved", result.Resolved,
		"refs_updated", len(result.RefsUpdated),
		"orgs_updated", len(result.OrgsUpdated),
		"not_found", len(result.NotFound),
		"written", result.Written,
		"dry_run", result.DryRun,
	)

	if uc.notifier != nil {
		if err := uc.notifier.Notify(ctx, result); err != nil {
			logger.Warn("Failed to send sync notification", "error", err)
		}
	}

	return result, nil
}
