package config

import (
	"github.com/m-mizutani/relpin/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Manifest holds manifest file configuration
type Manifest struct {
	Path   string
	DryRun bool
}

// Flags returns CLI flags for manifest configuration
func (c *Manifest) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "manifest",
			Aliases:     []string{"m"},
			Usage:       "Path to the manifest script to rewrite",
			Value:       types.DefaultManifestPath,
			Destination: &c.Path,
			Sources:     cli.EnvVars("RELPIN_MANIFEST"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Show the rewritten lines without writing the manifest",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("RELPIN_DRY_RUN"),
		},
	}
}
