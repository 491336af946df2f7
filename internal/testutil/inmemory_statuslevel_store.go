package testutil

import (
	"context"

	"github.com/samber/lo"

	"github.com/chestno/chestno/internal/domain/statuslevel"
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/types"
)

// InMemoryStatusLevelGrantStore implements statuslevel.Repository
type InMemoryStatusLevelGrantStore struct {
	*InMemoryStore[*statuslevel.Grant]
}

func NewInMemoryStatusLevelGrantStore() *InMemoryStatusLevelGrantStore {
	return &InMemoryStatusLevelGrantStore{
		InMemoryStore: NewInMemoryStore[*statuslevel.Grant](),
	}
}

func copyGrant(grant *statuslevel.Grant) *statuslevel.Grant {
	if grant == nil {
		return nil
	}
	copied := *grant
	return &copied
}

// grantFilterFn implements filtering logic for status level grants
func grantFilterFn(ctx context.Context, grant *statuslevel.Grant, filter interface{}) bool {
	if grant == nil {
		return false
	}

	f, ok := filter.(*types.StatusLevelGrantFilter)
	if !ok {
		return true // No filter applied
	}

	// Check tenant ID
	if tenantID, ok := ctx.Value(types.CtxTenantID).(string); ok {
		if grant.TenantID != tenantID {
			return false
		}
	}

	// Filter by organization ID
	if f.OrganizationID != "" && grant.OrganizationID != f.OrganizationID {
		return false
	}

	// Filter by level
	if f.Level != nil && grant.Level != *f.Level {
		return false
	}

	// Filter by active flag
	if f.IsActive != nil && grant.IsActive != *f.IsActive {
		return false
	}

	// Filter by subscription binding
	if f.SubscriptionID != nil {
		if grant.SubscriptionID == nil || *grant.SubscriptionID != *f.SubscriptionID {
			return false
		}
	}

	return true
}

func grantSortFn(i, j *statuslevel.Grant) bool {
	if i != nil && j != nil {
		return i.GrantedAt.After(j.GrantedAt)
	}
	return true
}

func (s *InMemoryStatusLevelGrantStore) Create(ctx context.Context, grant *statuslevel.Grant) error {
	if grant == nil {
		return ierr.NewError("grant cannot be nil").
			WithHint("Grant cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, grant.ID, copyGrant(grant))
}

func (s *InMemoryStatusLevelGrantStore) Get(ctx context.Context, id string) (*statuslevel.Grant, error) {
	grant, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("status level grant not found").
			WithHint("Status level grant not found").
			WithReportableDetails(map[string]any{
				"grant_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyGrant(grant), nil
}

func (s *InMemoryStatusLevelGrantStore) GetByKey(ctx context.Context, organizationID string, level types.StatusLevel, subscriptionID *string) (*statuslevel.Grant, error) {
	filter := types.NewNoLimitStatusLevelGrantFilter()
	filter.OrganizationID = organizationID
	filter.Level = lo.ToPtr(level)

	grants, err := s.InMemoryStore.List(ctx, filter, grantFilterFn, grantSortFn)
	if err != nil {
		return nil, err
	}

	// The subscription binding is part of the key: nil matches only the
	// manual-grant slot, never a subscription-tied one
	for _, grant := range grants {
		if subscriptionID == nil && grant.SubscriptionID == nil {
			return copyGrant(grant), nil
		}
		if subscriptionID != nil && grant.SubscriptionID != nil && *grant.SubscriptionID == *subscriptionID {
			return copyGrant(grant), nil
		}
	}

	return nil, ierr.NewError("status level grant not found").
		WithHint("No grant exists for this organization and level").
		WithReportableDetails(map[string]any{
			"organization_id": organizationID,
			"level":           level,
		}).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryStatusLevelGrantStore) Update(ctx context.Context, grant *statuslevel.Grant) error {
	if grant == nil {
		return ierr.NewError("grant cannot be nil").
			WithHint("Grant cannot be nil").
			Mark(ierr.ErrValidation)
	}

	existing, err := s.InMemoryStore.Get(ctx, grant.ID)
	if err != nil {
		return ierr.NewError("status level grant not found").
			WithHint("Status level grant not found").
			Mark(ierr.ErrNotFound)
	}

	if existing.Version != grant.Version {
		return ierr.NewError("status level grant version mismatch").
			WithHint("The grant was modified concurrently").
			WithReportableDetails(map[string]any{
				"grant_id":         grant.ID,
				"expected_version": grant.Version,
				"actual_version":   existing.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	updated := copyGrant(grant)
	updated.Version++
	if err := s.InMemoryStore.Update(ctx, grant.ID, updated); err != nil {
		return err
	}
	grant.Version++
	return nil
}

func (s *InMemoryStatusLevelGrantStore) List(ctx context.Context, filter *types.StatusLevelGrantFilter) ([]*statuslevel.Grant, error) {
	grants, err := s.InMemoryStore.List(ctx, filter, grantFilterFn, grantSortFn)
	if err != nil {
		return nil, err
	}
	result := make([]*statuslevel.Grant, len(grants))
	for i, grant := range grants {
		result[i] = copyGrant(grant)
	}
	return result, nil
}

func (s *InMemoryStatusLevelGrantStore) Count(ctx context.Context, filter *types.StatusLevelGrantFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, grantFilterFn)
}

func (s *InMemoryStatusLevelGrantStore) ListActiveByOrganization(ctx context.Context, organizationID string) ([]*statuslevel.Grant, error) {
	filter := types.NewNoLimitStatusLevelGrantFilter()
	filter.OrganizationID = organizationID
	filter.IsActive = lo.ToPtr(true)
	return s.List(ctx, filter)
}
