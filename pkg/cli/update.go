package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/relpin/pkg/cli/config"
	"github.com/m-mizutani/relpin/pkg/domain/model"
	"github.com/m-mizutani/relpin/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdUpdate() *cli.Command {
	var (
		manifestCfg config.Manifest
		exportsCfg  config.Exports
	)

	flags := append(manifestCfg.Flags(), exportsCfg.InputFlags()...)

	return &cli.Command{
		Name:    "update",
		Aliases: []string{"u"},
		Usage:   "Rewrite manifest entries from exported component references",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			exports, err := exportsCfg.Load()
			if err != nil {
				return err
			}

			uc := usecase.NewManifest(usecase.WithDryRun(manifestCfg.DryRun))
			result, err := uc.Apply(ctx, manifestCfg.Path, exports)
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

// printChanges writes the rewritten lines as a colored diff
func printChanges(w io.Writer, path string, result *model.SyncResult) {
	header := color.New(color.Bold)
	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)

	_, _ = header.Fprintf(w, "--- %s\n+++ %s (dry run)\n", path, path)
	if !result.Changed() {
		_, _ = fmt.Fprintln(w, "no changes")
		return
	}
	for _, c := range result.Changes {
		_, _ = header.Fprintf(w, "@@ line %d @@\n", c.Line)
		_, _ = removed.Fprintf(w, "-%s\n", c.Before)
		_, _ = added.Fprintf(w, "+%s\n", c.After)
	}
	for _, name := range result.NotFound {
		_, _ = fmt.Fprintf(w, "not found: %s\n", name)
	}
}
