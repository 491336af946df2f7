package statuslevel

import (
	"time"

	"github.com/chestno/chestno/internal/types"
)

// Grant is a row in the status level ledger: one logical slot per
// (organization, level, subscription-binding). A nil SubscriptionID denotes
// a manually granted, subscription-independent badge. Revocation flips
// IsActive; rows are never physically deleted.
type Grant struct {
	// ID is the unique identifier for the grant
	ID string `db:"id" json:"id"`

	// OrganizationID is the identifier of the organization holding the badge
	OrganizationID string `db:"organization_id" json:"organization_id"`

	// Level is the badge tier this grant confers
	Level types.StatusLevel `db:"level" json:"level"`

	// SubscriptionID binds the grant to a subscription. Nil for manual grants.
	SubscriptionID *string `db:"subscription_id" json:"subscription_id"`

	// IsActive reports whether the grant currently confers the badge
	IsActive bool `db:"is_active" json:"is_active"`

	// GrantedAt is when the grant was last activated
	GrantedAt time.Time `db:"granted_at" json:"granted_at"`

	// ValidUntil is an optional hard expiry for the grant
	ValidUntil *time.Time `db:"valid_until" json:"valid_until"`

	// GrantedBy is the actor who activated the grant. Nil for system-automatic grants.
	GrantedBy *string `db:"granted_by" json:"granted_by"`

	// Version is the optimistic concurrency token for active-flag flips
	Version int `db:"version" json:"version"`

	types.BaseModel
}

// IsExpired reports whether the grant's hard expiry has passed at the
// given instant. Grants without an expiry never expire.
func (g *Grant) IsExpired(at time.Time) bool {
	return g.ValidUntil != nil && !at.Before(*g.ValidUntil)
}

// HistoryEntry is an immutable record of a single status level transition.
type HistoryEntry struct {
	// ID is the unique identifier for the entry
	ID string `db:"id" json:"id"`

	// OrganizationID is the identifier of the organization the transition applies to
	OrganizationID string `db:"organization_id" json:"organization_id"`

	// Level is the badge tier the transition applies to
	Level types.StatusLevel `db:"level" json:"level"`

	// Action is the kind of transition
	Action types.StatusHistoryAction `db:"action" json:"action"`

	// Reason is the human-readable explanation for the transition
	Reason string `db:"reason" json:"reason"`

	// PerformedBy is the actor behind the transition. Nil for system-automatic transitions.
	PerformedBy *string `db:"performed_by" json:"performed_by"`

	types.BaseModel
}
