package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/relpin/pkg/cli/config"
	"github.com/m-mizutani/relpin/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdSync(fileCfg *config.File) *cli.Command {
	var (
		trackerCfg  config.Tracker
		githubCfg   config.GitHub
		manifestCfg config.Manifest
		slackCfg    config.Slack
	)

	flags := append(trackerCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, manifestCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:  "sync",
		Usage: "Fetch the tracker release table and rewrite the manifest in one step",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
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

			syncUC := newSyncUseCase(client, settings, &manifestCfg, &slackCfg)
			result, err := syncUC.Sync(ctx, trackerCfg.URL, manifestCfg.Path)
			if err != nil {
				return err
			}

			if result.DryRun {
				printChanges(os.Stdout, manifestCfg.Path, result)
			}
			return nil
		},
	}
}
