package subscription

import (
	"context"

	"github.com/chestno/chestno/internal/types"
)

type Repository interface {
	Create(ctx context.Context, subscription *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	// GetByOrganizationID returns the organization's subscription record.
	GetByOrganizationID(ctx context.Context, organizationID string) (*Subscription, error)
	// Update persists status and grace-period fields using an optimistic
	// version check and returns ierr.ErrVersionConflict on a lost race.
	Update(ctx context.Context, subscription *Subscription) error
	List(ctx context.Context, filter *types.SubscriptionFilter) ([]*Subscription, error)
	Count(ctx context.Context, filter *types.SubscriptionFilter) (int, error)
}
