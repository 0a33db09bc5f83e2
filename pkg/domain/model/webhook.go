package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypeIssueComment WebhookEventType = "issue_comment"
	EventTypePing         WebhookEventType = "ping"
	EventTypeUnknown      WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID          string           // Retrieved from X-GitHub-Delivery header
	Type        WebhookEventType // Retrieved from X-GitHub-Event header
	Action      string           // Event action (e.g., created, edited)
	Repository  string           // Repository full name
	Sender      string           // Sender username
	IssueURL    string           // HTML URL of the commented issue
	CommentBody string           // Body of the comment
	ReceivedAt  time.Time        // Time when the event was received
}

// IsSupportedEvent checks if the event may carry a release table
func (e *WebhookEvent) IsSupportedEvent() bool {
	switch e.Type {
	case EventTypeIssueComment:
		return e.Action == "created" || e.Action == "edited"
	default:
		return false
	}
}
