package testutil

import (
	"context"

	"github.com/samber/lo"

	"github.com/chestno/chestno/internal/domain/statuslevel"
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/types"
)

// InMemoryStatusHistoryStore implements statuslevel.HistoryRepository
type InMemoryStatusHistoryStore struct {
	*InMemoryStore[*statuslevel.HistoryEntry]
}

func NewInMemoryStatusHistoryStore() *InMemoryStatusHistoryStore {
	return &InMemoryStatusHistoryStore{
		InMemoryStore: NewInMemoryStore[*statuslevel.HistoryEntry](),
	}
}

// historyFilterFn implements filtering logic for status history entries
func historyFilterFn(ctx context.Context, entry *statuslevel.HistoryEntry, filter interface{}) bool {
	if entry == nil {
		return false
	}

	f, ok := filter.(*types.StatusHistoryFilter)
	if !ok {
		return true // No filter applied
	}

	// Check tenant ID
	if tenantID, ok := ctx.Value(types.CtxTenantID).(string); ok {
		if entry.TenantID != tenantID {
			return false
		}
	}

	// Filter by organization ID
	if f.OrganizationID != "" && entry.OrganizationID != f.OrganizationID {
		return false
	}

	// Filter by level
	if f.Level != nil && entry.Level != *f.Level {
		return false
	}

	// Filter by actions
	if len(f.Actions) > 0 && !lo.Contains(f.Actions, entry.Action) {
		return false
	}

	return true
}

// newest first, matching the read contract ordering
func historySortFn(i, j *statuslevel.HistoryEntry) bool {
	if i != nil && j != nil {
		return i.CreatedAt.After(j.CreatedAt)
	}
	return true
}

func (s *InMemoryStatusHistoryStore) Create(ctx context.Context, entry *statuslevel.HistoryEntry) error {
	if entry == nil {
		return ierr.NewError("history entry cannot be nil").
			WithHint("History entry cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, entry.ID, entry)
}

func (s *InMemoryStatusHistoryStore) List(ctx context.Context, filter *types.StatusHistoryFilter) ([]*statuslevel.HistoryEntry, error) {
	return s.InMemoryStore.List(ctx, filter, historyFilterFn, historySortFn)
}

func (s *InMemoryStatusHistoryStore) Count(ctx context.Context, filter *types.StatusHistoryFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, historyFilterFn)
}
