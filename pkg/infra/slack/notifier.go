package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpin/pkg/domain/interfaces"
	"github.com/m-mizutani/relpin/pkg/domain/model"
	"github.com/slack-go/slack"
)

type notifier struct {
	webhookURL string
	channel    string
}

// NewNotifier creates a Notifier posting to a Slack incoming webhook
func NewNotifier(webhookURL, channel string) interfaces.Notifier {
	return &notifier{
		webhookURL: webhookURL,
		channel:    channel,
	}
}

// Notify posts the sync summary
func (n *notifier) Notify(ctx context.Context, result *model.SyncResult) error {
	msg := &slack.WebhookMessage{
		Channel: n.channel,
		Text:    FormatResult(result),
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack message")
	}
	return nil
}

// FormatResult renders a sync summary as Slack mrkdwn
func FormatResult(result *model.SyncResult) string {
	var sb strings.Builder

	title := "Manifest updated"
	switch {
	case result.DryRun:
		title = "Manifest dry run"
	case !result.Changed():
		title = "Manifest already up to date"
	}
	if result.Tracker != "" {
		sb.WriteString(fmt.Sprintf("*%s* from %s\n", title, result.Tracker))
	} else {
		sb.WriteString(fmt.Sprintf("*%s*\n", title))
	}

	sb.WriteString(fmt.Sprintf("Components: %d, SHAs resolved: %d, refs updated: %d, orgs updated: %d\n",
		result.Components, result.Resolved, len(result.RefsUpdated), len(result.OrgsUpdated)))

	if len(result.NotFound) > 0 {
		sb.WriteString(fmt.Sprintf(":warning: Not found in manifest: `%s`\n", strings.Join(result.NotFound, "`, `")))
	}

	for _, change := range result.Changes {
		sb.WriteString(fmt.Sprintf("> `%s`\n", strings.TrimSpace(change.After)))
	}

	return sb.String()
}
