package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpin/pkg/cli/config"
	controller "github.com/m-mizutani/relpin/pkg/controller/http"
	"github.com/m-mizutani/relpin/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe(fileCfg *config.File) *cli.Command {
	var (
		serverCfg   config.Server
		webhookCfg  config.Webhook
		trackerCfg  config.Tracker
		githubCfg   config.GitHub
		manifestCfg config.Manifest
		slackCfg    config.Slack
	)

	flags := append(serverCfg.Flags(), webhookCfg.Flags()...)
	flags = append(flags, trackerCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, manifestCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server syncing the manifest on tracker comments",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting relpin server",
				slog.String("addr", serverCfg.Addr),
				slog.String("tracker", trackerCfg.URL),
				slog.String("manifest", manifestCfg.Path),
				slog.Bool("dry_run", manifestCfg.DryRun),
			)

			settings, err := fileCfg.Load()
			if err != nil {
				return err
			}
			client, err := githubCfg.NewClient()
			if err != nil {
				return err
			}

			// Create use cases
			syncUC := newSyncUseCase(client, settings, &manifestCfg, &slackCfg)
			webhookUC := usecase.NewWebhook(syncUC,
				usecase.WithTrackerURL(trackerCfg.URL),
				usecase.WithManifestPath(manifestCfg.Path),
				usecase.WithWebhookMarker(settings.Marker),
			)

			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(webhookCfg.Secret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
