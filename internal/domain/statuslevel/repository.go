package statuslevel

import (
	"context"

	"github.com/chestno/chestno/internal/types"
)

// Repository provides access to the status level ledger. Implementations
// must preserve the "at most one active row per (organization, level,
// subscription-binding) key" invariant by reusing the slot row.
type Repository interface {
	Create(ctx context.Context, grant *Grant) error
	Get(ctx context.Context, id string) (*Grant, error)
	// GetByKey returns the slot row for (organizationID, level,
	// subscriptionID), active or not. subscriptionID nil matches the
	// manual-grant slot.
	GetByKey(ctx context.Context, organizationID string, level types.StatusLevel, subscriptionID *string) (*Grant, error)
	// Update persists the grant's active flag and audit fields with an
	// optimistic version check; ierr.ErrVersionConflict on a lost race.
	Update(ctx context.Context, grant *Grant) error
	List(ctx context.Context, filter *types.StatusLevelGrantFilter) ([]*Grant, error)
	Count(ctx context.Context, filter *types.StatusLevelGrantFilter) (int, error)
	// ListActiveByOrganization returns all currently active grants for the
	// organization across all levels.
	ListActiveByOrganization(ctx context.Context, organizationID string) ([]*Grant, error)
}

// HistoryRepository provides append-only access to the status audit trail.
type HistoryRepository interface {
	Create(ctx context.Context, entry *HistoryEntry) error
	List(ctx context.Context, filter *types.StatusHistoryFilter) ([]*HistoryEntry, error)
	Count(ctx context.Context, filter *types.StatusHistoryFilter) (int, error)
}
