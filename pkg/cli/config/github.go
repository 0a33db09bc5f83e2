package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpin/pkg/domain/interfaces"
	"github.com/m-mizutani/relpin/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API credentials. Either a token or a GitHub App
// installation is used; the App wins when both are set.
type GitHub struct {
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	PrivateKeyFile string
	BaseURL        string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELPIN_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("RELPIN_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("RELPIN_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("RELPIN_GITHUB_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-private-key-file",
			Usage:       "Path to the GitHub App private key (PEM)",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("RELPIN_GITHUB_PRIVATE_KEY_FILE"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL (GitHub Enterprise)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("RELPIN_GITHUB_BASE_URL", "GITHUB_API_URL"),
		},
	}
}

// IsApp reports whether GitHub App credentials are configured
func (c *GitHub) IsApp() bool {
	return c.AppID != 0 && c.InstallationID != 0
}

// NewClient builds a GitHub API client from the configured credentials.
// Without any credentials it falls back to unauthenticated access, which is
// enough for public trackers within the anonymous rate limit.
func (c *GitHub) NewClient() (interfaces.GitHubClient, error) {
	var opts []github.Option
	if c.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(c.BaseURL))
	}

	if !c.IsApp() {
		return github.NewClient(c.Token, opts...)
	}

	key := []byte(c.PrivateKey)
	if c.PrivateKeyFile != "" {
		data, err := os.ReadFile(c.PrivateKeyFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read GitHub App private key", goerr.V("path", c.PrivateKeyFile))
		}
		key = data
	}
	if len(key) == 0 {
		return nil, goerr.New("GitHub App private key is required",
			goerr.V("app_id", c.AppID),
			goerr.V("installation_id", c.InstallationID),
		)
	}

	return github.NewAppClient(c.AppID, c.InstallationID, key, opts...)
}

// Webhook holds webhook receiver configuration
type Webhook struct {
	Secret string `masq:"secret"`
}

// Flags returns CLI flags for webhook configuration
func (c *Webhook) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.Secret,
			Sources:     cli.EnvVars("RELPIN_GITHUB_WEBHOOK_SECRET"),
		},
	}
}
