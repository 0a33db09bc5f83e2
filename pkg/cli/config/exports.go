package config

import (
	"os"

	"github.com/m-mizutani/relpin/pkg/domain/model"
	"github.com/m-mizutani/relpin/pkg/infra/envfile"
	"github.com/urfave/cli/v3"
)

// Exports holds where component exports are written to or read from
type Exports struct {
	EnvFile  string // fetch: file to append exports to
	FromFile string // update: file to read exports from
}

// OutputFlags returns CLI flags for the fetch command
func (c *Exports) OutputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "File to append KEY=value exports to; stdout when empty",
			Destination: &c.EnvFile,
			Sources:     cli.EnvVars("RELPIN_ENV_FILE", "GITHUB_ENV"),
		},
	}
}

// InputFlags returns CLI flags for the update command
func (c *Exports) InputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "exports-file",
			Usage:       "File to read KEY=value exports from; process environment when empty",
			Destination: &c.FromFile,
			Sources:     cli.EnvVars("RELPIN_EXPORTS_FILE"),
		},
	}
}

// Load returns the exports from the configured file, or from the process
// environment when no file is set
func (c *Exports) Load() (model.Exports, error) {
	if c.FromFile == "" {
		return model.ExportsFromEnviron(os.Environ()), nil
	}
	return envfile.Read(c.FromFile)
}
