package types

import (
	"encoding/json"
	"time"
)

// WebhookEvent represents a webhook event to be delivered
type WebhookEvent struct {
	ID            string          `json:"id"`
	EventName     string          `json:"event_name"`
	TenantID      string          `json:"tenant_id"`
	EnvironmentID string          `json:"environment_id"`
	UserID        string          `json:"user_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Payload       json.RawMessage `json:"payload"`
}

// status level event names
const (
	WebhookEventStatusLevelGranted   = "organization.status_level.granted"
	WebhookEventStatusLevelRenewed   = "organization.status_level.renewed"
	WebhookEventStatusLevelSuspended = "organization.status_level.suspended"
	WebhookEventStatusLevelRevoked   = "organization.status_level.revoked"
)

// subscription event names
const (
	WebhookEventSubscriptionActivated = "subscription.activated"
	WebhookEventSubscriptionPastDue   = "subscription.past_due"
	WebhookEventSubscriptionCancelled = "subscription.cancelled"
)
