package cli

import (
	"github.com/m-mizutani/relpin/pkg/cli/config"
	"github.com/m-mizutani/relpin/pkg/domain/interfaces"
	"github.com/m-mizutani/relpin/pkg/usecase"
)

func newSyncUseCase(client interfaces.GitHubClient, settings *config.Settings, manifestCfg *config.Manifest, slackCfg *config.Slack) interfaces.SyncUseCase {
	opts := []usecase.SyncOption{usecase.WithAliases(settings.Aliases)}
	if notifier := slackCfg.Notifier(); notifier != nil {
		opts = append(opts, usecase.WithNotifier(notifier))
	}

	return usecase.NewSync(
		usecase.NewTracker(client, usecase.WithMarker(settings.Marker)),
		usecase.NewManifest(usecase.WithDryRun(manifestCfg.DryRun)),
		opts...,
	)
}
