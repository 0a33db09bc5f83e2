package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpin/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Tracker holds the tracker issue location
type Tracker struct {
	URL string
}

// Flags returns CLI flags for tracker configuration
func (c *Tracker) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "tracker-url",
			Usage:       "Tracker issue URL, e.g. https://github.com/<owner>/<repo>/issues/<number>",
			Destination: &c.URL,
			Sources:     cli.EnvVars("RELPIN_TRACKER_URL", "TRACKER_URL"),
			Validator: func(s string) error {
				_, err := model.ParseTrackerURL(s)
				return err
			},
		},
	}
}

// Validate ensures a tracker URL is set
func (c *Tracker) Validate() error {
	if c.URL == "" {
		return goerr.New("tracker URL is required, set --tracker-url or TRACKER_URL")
	}
	return nil
}
