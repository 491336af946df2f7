package dto

import (
	"context"
	"time"

	"github.com/chestno/chestno/internal/domain/statuslevel"
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/types"
	"github.com/chestno/chestno/internal/validator"
)

// LifecycleAction is the sub-action a lifecycle operation performed,
// returned for logging and webhook acknowledgment purposes.
type LifecycleAction string

const (
	ActionGranted             LifecycleAction = "granted"
	ActionAlreadyActive       LifecycleAction = "already_active"
	ActionRenewed             LifecycleAction = "renewed"
	ActionGracePeriodStarted  LifecycleAction = "grace_period_started"
	ActionNoSubscriptionFound LifecycleAction = "no_subscription_found"
	ActionRevoked             LifecycleAction = "revoked"
	ActionNotFound            LifecycleAction = "not_found"
	// ActionRetained is returned when a cancelled subscription keeps its
	// badge because the grace window has not expired yet.
	ActionRetained LifecycleAction = "retained"
	// ActionNoop is returned for transitions the lifecycle does not act on
	ActionNoop LifecycleAction = "noop"
)

// EnsureLevelAResponse reports the outcome of an idempotent grant attempt
type EnsureLevelAResponse struct {
	GrantID string          `json:"grant_id"`
	Action  LifecycleAction `json:"action"`
}

// StartGracePeriodResponse reports the grace window applied on past_due entry
type StartGracePeriodResponse struct {
	GracePeriodEndsAt *time.Time      `json:"grace_period_ends_at,omitempty"`
	Action            LifecycleAction `json:"action"`
}

// RevokeLevelAResponse reports the outcome of an idempotent revocation
type RevokeLevelAResponse struct {
	Action LifecycleAction `json:"action"`
}

// SubscriptionStatusChangeRequest drives the central transition table
type SubscriptionStatusChangeRequest struct {
	SubscriptionID string                   `json:"subscription_id" binding:"required"`
	OrganizationID string                   `json:"organization_id" binding:"required"`
	NewStatus      types.SubscriptionStatus `json:"new_status" binding:"required"`
	// GracePeriodDays optionally overrides the configured default
	GracePeriodDays *int `json:"grace_period_days,omitempty"`
	// Actor is the initiator of the change. Nil for billing-provider events.
	Actor *string `json:"actor,omitempty"`
}

func (r *SubscriptionStatusChangeRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.NewStatus.Validate()
}

// SubscriptionStatusChangeResponse reports the transition applied
type SubscriptionStatusChangeResponse struct {
	OrganizationID    string                   `json:"organization_id"`
	SubscriptionID    string                   `json:"subscription_id"`
	NewStatus         types.SubscriptionStatus `json:"new_status"`
	Action            LifecycleAction          `json:"action"`
	GrantID           string                   `json:"grant_id,omitempty"`
	GracePeriodEndsAt *time.Time               `json:"grace_period_ends_at,omitempty"`
}

// CreateManualGrantRequest creates a subscription-independent grant by an
// admin actor. Manual grants survive revocation of the organization's
// subscription-tied badge.
type CreateManualGrantRequest struct {
	Level      types.StatusLevel `json:"level" binding:"required"`
	ValidUntil *time.Time        `json:"valid_until,omitempty"`
	Reason     string            `json:"reason,omitempty"`
}

func (r *CreateManualGrantRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Level.Validate(); err != nil {
		return err
	}
	if r.ValidUntil != nil && r.ValidUntil.Before(time.Now().UTC()) {
		return ierr.NewError("valid_until must be in the future").
			WithHint("Grant expiry must be in the future").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateManualGrantRequest) ToGrant(ctx context.Context, organizationID string) *statuslevel.Grant {
	actor := types.GetUserID(ctx)
	return &statuslevel.Grant{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STATUS_LEVEL_GRANT),
		OrganizationID: organizationID,
		Level:          r.Level,
		SubscriptionID: nil,
		IsActive:       true,
		GrantedAt:      time.Now().UTC(),
		ValidUntil:     r.ValidUntil,
		GrantedBy:      &actor,
		Version:        1,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// RevokeManualGrantRequest revokes a manual grant by level
type RevokeManualGrantRequest struct {
	Level  types.StatusLevel `json:"level" binding:"required"`
	Reason string            `json:"reason" binding:"required"`
}

func (r *RevokeManualGrantRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Level.Validate()
}

// StatusLevelGrantResponse is the dashboard-facing projection of a ledger
// row. Internal row identifiers and audit columns are not exposed.
type StatusLevelGrantResponse struct {
	Level          types.StatusLevel `json:"level"`
	IsActive       bool              `json:"is_active"`
	GrantedAt      time.Time         `json:"granted_at"`
	ValidUntil     *time.Time        `json:"valid_until,omitempty"`
	SubscriptionID *string           `json:"subscription_id,omitempty"`
}

// SummarySubscription is the subscription slice of the status summary
type SummarySubscription struct {
	ID                string                   `json:"id"`
	Status            types.SubscriptionStatus `json:"status"`
	GracePeriodEndsAt *time.Time               `json:"grace_period_ends_at,omitempty"`
}

// OrganizationStatusSummaryResponse is the sole read contract consumed by
// dashboards and the trust-score collaborator.
type OrganizationStatusSummaryResponse struct {
	OrganizationID string            `json:"organization_id"`
	CurrentLevel   types.StatusLevel `json:"current_level"`
	// VerificationLevel mirrors CurrentLevel under the name the
	// trust-score computation consumes it as.
	VerificationLevel types.StatusLevel          `json:"verification_level"`
	Subscription      *SummarySubscription       `json:"subscription,omitempty"`
	Grants            []StatusLevelGrantResponse `json:"grants"`
}

// NewOrganizationStatusSummaryResponse projects active grants and the
// subscription record into the summary shape.
func NewOrganizationStatusSummaryResponse(organizationID string, grants []*statuslevel.Grant, sub *SummarySubscription) *OrganizationStatusSummaryResponse {
	levels := make([]types.StatusLevel, 0, len(grants))
	grantResponses := make([]StatusLevelGrantResponse, 0, len(grants))
	for _, g := range grants {
		levels = append(levels, g.Level)
		grantResponses = append(grantResponses, StatusLevelGrantResponse{
			Level:          g.Level,
			IsActive:       g.IsActive,
			GrantedAt:      g.GrantedAt,
			ValidUntil:     g.ValidUntil,
			SubscriptionID: g.SubscriptionID,
		})
	}

	current := types.HighestStatusLevel(levels)
	return &OrganizationStatusSummaryResponse{
		OrganizationID:    organizationID,
		CurrentLevel:      current,
		VerificationLevel: current,
		Subscription:      sub,
		Grants:            grantResponses,
	}
}

// StatusHistoryEntryResponse is a single audit trail entry
type StatusHistoryEntryResponse struct {
	OrganizationID string                    `json:"organization_id"`
	Level          types.StatusLevel         `json:"level"`
	Action         types.StatusHistoryAction `json:"action"`
	Reason         string                    `json:"reason"`
	PerformedBy    *string                   `json:"performed_by,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
}

// ListStatusHistoryResponse is the paginated audit trail
type ListStatusHistoryResponse = types.ListResponse[StatusHistoryEntryResponse]

// NewStatusHistoryEntryResponse projects a history entry
func NewStatusHistoryEntryResponse(entry *statuslevel.HistoryEntry) StatusHistoryEntryResponse {
	return StatusHistoryEntryResponse{
		OrganizationID: entry.OrganizationID,
		Level:          entry.Level,
		Action:         entry.Action,
		Reason:         entry.Reason,
		PerformedBy:    entry.PerformedBy,
		CreatedAt:      entry.CreatedAt,
	}
}

// SweepResponse reports a grace-period sweep run
type SweepResponse struct {
	Scanned int `json:"scanned"`
	Revoked int `json:"revoked"`
	Failed  int `json:"failed"`
}
