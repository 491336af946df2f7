package testutil

import (
	"context"

	"github.com/samber/lo"

	"github.com/chestno/chestno/internal/domain/subscription"
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/types"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	*InMemoryStore[*subscription.Subscription]
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		InMemoryStore: NewInMemoryStore[*subscription.Subscription](),
	}
}

// copySubscription returns a detached copy so callers cannot mutate the
// stored row without going through Update
func copySubscription(sub *subscription.Subscription) *subscription.Subscription {
	if sub == nil {
		return nil
	}
	copied := *sub
	return &copied
}

// subscriptionFilterFn implements filtering logic for subscriptions
func subscriptionFilterFn(ctx context.Context, sub *subscription.Subscription, filter interface{}) bool {
	if sub == nil {
		return false
	}

	f, ok := filter.(*types.SubscriptionFilter)
	if !ok {
		return true // No filter applied
	}

	// Check tenant ID
	if tenantID, ok := ctx.Value(types.CtxTenantID).(string); ok {
		if sub.TenantID != tenantID {
			return false
		}
	}

	// Filter by organization ID
	if f.OrganizationID != "" && sub.OrganizationID != f.OrganizationID {
		return false
	}

	// Filter by subscription status
	if len(f.SubscriptionStatus) > 0 && !lo.Contains(f.SubscriptionStatus, sub.SubscriptionStatus) {
		return false
	}

	// Filter by grace period expiry
	if f.GraceEndedBefore != nil {
		if sub.GracePeriodEndsAt == nil || !sub.GracePeriodEndsAt.Before(*f.GraceEndedBefore) {
			return false
		}
	}

	// Filter by time range
	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && sub.CreatedAt.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && sub.CreatedAt.After(*f.EndTime) {
			return false
		}
	}

	return true
}

func subscriptionSortFn(i, j *subscription.Subscription) bool {
	if i != nil && j != nil {
		return i.CreatedAt.After(j.CreatedAt)
	}
	return true
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").
			WithHint("Subscription cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, sub.ID, copySubscription(sub))
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			WithReportableDetails(map[string]any{
				"subscription_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copySubscription(sub), nil
}

func (s *InMemorySubscriptionStore) GetByOrganizationID(ctx context.Context, organizationID string) (*subscription.Subscription, error) {
	filter := types.NewNoLimitSubscriptionFilter()
	filter.OrganizationID = organizationID

	subs, err := s.InMemoryStore.List(ctx, filter, subscriptionFilterFn, subscriptionSortFn)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, ierr.NewError("subscription not found").
			WithHint("No subscription exists for this organization").
			WithReportableDetails(map[string]any{
				"organization_id": organizationID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copySubscription(subs[0]), nil
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").
			WithHint("Subscription cannot be nil").
			Mark(ierr.ErrValidation)
	}

	existing, err := s.InMemoryStore.Get(ctx, sub.ID)
	if err != nil {
		return ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			Mark(ierr.ErrNotFound)
	}

	if existing.Version != sub.Version {
		return ierr.NewError("subscription version mismatch").
			WithHint("The subscription was modified concurrently").
			WithReportableDetails(map[string]any{
				"subscription_id":  sub.ID,
				"expected_version": sub.Version,
				"actual_version":   existing.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	updated := copySubscription(sub)
	updated.Version++
	if err := s.InMemoryStore.Update(ctx, sub.ID, updated); err != nil {
		return err
	}
	sub.Version++
	return nil
}

func (s *InMemorySubscriptionStore) List(ctx context.Context, filter *types.SubscriptionFilter) ([]*subscription.Subscription, error) {
	subs, err := s.InMemoryStore.List(ctx, filter, subscriptionFilterFn, subscriptionSortFn)
	if err != nil {
		return nil, err
	}
	result := make([]*subscription.Subscription, len(subs))
	for i, sub := range subs {
		result[i] = copySubscription(sub)
	}
	return result, nil
}

func (s *InMemorySubscriptionStore) Count(ctx context.Context, filter *types.SubscriptionFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, subscriptionFilterFn)
}
