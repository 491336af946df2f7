package subscription

import (
	"time"

	"github.com/chestno/chestno/internal/types"
)

// Subscription is the local record of an organization's billing subscription.
// It is created by the billing collaborator's sync; the lifecycle engine only
// mutates the billing status and the grace-period fields.
type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `db:"id" json:"id"`

	// OrganizationID is the identifier of the owning organization.
	// By convention an organization has one active subscription.
	OrganizationID string `db:"organization_id" json:"organization_id"`

	// SubscriptionStatus is the billing status of the subscription
	SubscriptionStatus types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`

	// GracePeriodDays is the length of the current grace window in days.
	// Nil when the subscription has not entered past_due since its last
	// active state.
	GracePeriodDays *int `db:"grace_period_days" json:"grace_period_days"`

	// GracePeriodEndsAt is the moment the current grace window expires.
	// Set on every past_due entry, cleared only by a return to active.
	GracePeriodEndsAt *time.Time `db:"grace_period_ends_at" json:"grace_period_ends_at"`

	// Version is the optimistic concurrency token for status and grace-field updates
	Version int `db:"version" json:"version"`

	types.BaseModel
}

// IsGracePeriodEnded reports whether the grace window has expired as of now.
// A subscription that never entered a grace period has not ended one.
func (s *Subscription) IsGracePeriodEnded(now time.Time) bool {
	if s.GracePeriodEndsAt == nil {
		return false
	}
	return !now.Before(*s.GracePeriodEndsAt)
}
