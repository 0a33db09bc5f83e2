package config

import (
	"github.com/m-mizutani/relpin/pkg/domain/interfaces"
	"github.com/m-mizutani/relpin/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL to report sync results",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("RELPIN_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel overriding the webhook default",
			Destination: &c.Channel,
			Sources:     cli.EnvVars("RELPIN_SLACK_CHANNEL"),
		},
	}
}

// Notifier returns the Slack notifier, or nil when Slack is not configured
func (c *Slack) Notifier() interfaces.Notifier {
	if c.WebhookURL == "" {
		return nil
	}
	return slack.NewNotifier(c.WebhookURL, c.Channel)
}
