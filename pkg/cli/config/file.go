package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpin/pkg/domain/model"
	"github.com/m-mizutani/relpin/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// File holds the path of the optional configuration file
type File struct {
	Path string
}

// Flags returns CLI flags for the configuration file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Configuration file (.toml, .yaml or .yml)",
			Destination: &c.Path,
			Sources:     cli.EnvVars("RELPIN_CONFIG"),
		},
	}
}

// Settings is the content of the configuration file
type Settings struct {
	// Marker is the line that opens the release table in tracker comments
	Marker string `toml:"marker" yaml:"marker"`

	// Aliases maps a tracker component name to manifest component names. When set,
	// it replaces the built-in table.
	Aliases model.Aliases `toml:"aliases" yaml:"aliases"`
}

// Load reads the configuration file. Without a path, defaults are returned.
func (c *File) Load() (*Settings, error) {
	settings := &Settings{}

	if c.Path != "" {
		data, err := os.ReadFile(c.Path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
		}

		switch ext := strings.ToLower(filepath.Ext(c.Path)); ext {
		case ".toml":
			if err := toml.Unmarshal(data, settings); err != nil {
				return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", c.Path))
			}
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, settings); err != nil {
				return nil, goerr.Wrap(err, "failed to parse YAML config", goerr.V("path", c.Path))
			}
		default:
			return nil, goerr.New("unsupported config file extension",
				goerr.V("path", c.Path),
				goerr.V("ext", ext),
			)
		}
	}

	if settings.Marker == "" {
		settings.Marker = types.DefaultMarker
	}
	if settings.Aliases == nil {
		settings.Aliases = model.DefaultAliases()
	}

	return settings, nil
}
