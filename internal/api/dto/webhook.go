package dto

import (
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/types"
	"github.com/chestno/chestno/internal/validator"
)

// BillingWebhookRequest is the payload delivered by the billing collaborator
// on every subscription status transition.
type BillingWebhookRequest struct {
	SubscriptionID string                   `json:"subscription_id" binding:"required"`
	OrganizationID string                   `json:"organization_id" binding:"required"`
	NewStatus      types.SubscriptionStatus `json:"new_status" binding:"required"`
	// GracePeriodDays optionally overrides the default grace window length
	GracePeriodDays *int `json:"grace_period_days,omitempty"`
}

func (r *BillingWebhookRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if err := r.NewStatus.Validate(); err != nil {
		return err
	}

	if r.GracePeriodDays != nil && *r.GracePeriodDays <= 0 {
		return ierr.NewError("grace_period_days must be positive").
			WithHint("Grace period override must be a positive number of days").
			WithReportableDetails(map[string]any{
				"grace_period_days": *r.GracePeriodDays,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// BillingWebhookResponse acknowledges a processed billing event
type BillingWebhookResponse struct {
	*SubscriptionStatusChangeResponse
}
