package postgres

import (
	"context"

	"github.com/chestno/chestno/internal/domain/statuslevel"
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/postgres"
	"github.com/chestno/chestno/internal/types"
)

type statusHistoryRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewStatusHistoryRepository(db *postgres.DB, logger *logger.Logger) statuslevel.HistoryRepository {
	return &statusHistoryRepository{db: db, logger: logger}
}

func (r *statusHistoryRepository) Create(ctx context.Context, entry *statuslevel.HistoryEntry) error {
	query := `
		INSERT INTO status_history (
			id,
			organization_id,
			level,
			action,
			reason,
			performed_by,
			tenant_id,
			status,
			created_at,
			updated_at,
			created_by,
			updated_by
		) VALUES (
			:id,
			:organization_id,
			:level,
			:action,
			:reason,
			:performed_by,
			:tenant_id,
			:status,
			:created_at,
			:updated_at,
			:created_by,
			:updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to append status history entry").
			WithReportableDetails(map[string]any{
				"organization_id": entry.OrganizationID,
				"action":          entry.Action,
			}).
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *statusHistoryRepository) List(ctx context.Context, filter *types.StatusHistoryFilter) ([]*statuslevel.HistoryEntry, error) {
	if filter == nil {
		filter = types.NewStatusHistoryFilter()
	}

	query := `
		SELECT * FROM status_history
		WHERE tenant_id = :tenant_id
	`
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"limit":     filter.GetLimit(),
		"offset":    filter.GetOffset(),
	}

	if filter.OrganizationID != "" {
		query += " AND organization_id = :organization_id"
		params["organization_id"] = filter.OrganizationID
	}
	if filter.Level != nil {
		query += " AND level = :level"
		params["level"] = *filter.Level
	}
	if len(filter.Actions) > 0 {
		query += " AND action IN (:actions)"
		params["actions"] = filter.Actions
	}
	if filter.TimeRangeFilter != nil {
		if filter.StartTime != nil {
			query += " AND created_at >= :start_time"
			params["start_time"] = *filter.StartTime
		}
		if filter.EndTime != nil {
			query += " AND created_at <= :end_time"
			params["end_time"] = *filter.EndTime
		}
	}

	query += " ORDER BY created_at DESC"
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
	}

	rows, err := r.db.NamedInQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list status history").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var entries []*statuslevel.HistoryEntry
	for rows.Next() {
		var entry statuslevel.HistoryEntry
		if err := rows.StructScan(&entry); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan status history entry").
				Mark(ierr.ErrDatabase)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (r *statusHistoryRepository) Count(ctx context.Context, filter *types.StatusHistoryFilter) (int, error) {
	query := `
		SELECT COUNT(*) FROM status_history
		WHERE tenant_id = :tenant_id
	`
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
	}

	if filter != nil {
		if filter.OrganizationID != "" {
			query += " AND organization_id = :organization_id"
			params["organization_id"] = filter.OrganizationID
		}
		if filter.Level != nil {
			query += " AND level = :level"
			params["level"] = *filter.Level
		}
		if len(filter.Actions) > 0 {
			query += " AND action IN (:actions)"
			params["actions"] = filter.Actions
		}
	}

	rows, err := r.db.NamedInQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count status history").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan count").
				Mark(ierr.ErrDatabase)
		}
	}

	return count, nil
}
