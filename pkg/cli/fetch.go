package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/relpin/pkg/cli/config"
	"github.com/m-mizutani/relpin/pkg/infra/envfile"
	"github.com/m-mizutani/relpin/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdFetch(fileCfg *config.File) *cli.Command {
	var (
		trackerCfg config.Tracker
		githubCfg  config.GitHub
		exportsCfg config.Exports
	)

	flags := append(trackerCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, exportsCfg.OutputFlags()...)

	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"f"},
		Usage:   "Read the release table from the tracker issue and export component references",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := trackerCfg.Validate(); err != nil {
				return err
			}
			settings, err := fileCfg.Load()
			if err != nil {
				return err
			}
			client, err := githubCfg.NewClient()
			if err != nil {
				return err
			}

			tracker := usecase.NewTracker(client, usecase.WithMarker(settings.Marker))
			release, err := tracker.Collect(ctx, trackerCfg.URL)
			if err != nil {
				return err
			}
			exports := release.Exports(settings.Aliases)

			if exportsCfg.EnvFile == "" {
				return envfile.Encode(os.Stdout, exports)
			}
			if err := envfile.Write(exportsCfg.EnvFile, exports); err != nil {
				return err
			}

			logger.Info("Exported component references",
				"env_file", exportsCfg.EnvFile,
				"components", len(release.Components),
				"resolved", release.ResolvedCount(),
				"keys", len(exports),
			)
			return nil
		},
	}
}
