package postgres

import (
	"context"
	"time"

	"github.com/chestno/chestno/internal/domain/statuslevel"
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/postgres"
	"github.com/chestno/chestno/internal/types"
)

type statusLevelGrantRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewStatusLevelGrantRepository(db *postgres.DB, logger *logger.Logger) statuslevel.Repository {
	return &statusLevelGrantRepository{db: db, logger: logger}
}

func (r *statusLevelGrantRepository) Create(ctx context.Context, grant *statuslevel.Grant) error {
	query := `
		INSERT INTO status_level_grants (
			id,
			organization_id,
			level,
			subscription_id,
			is_active,
			granted_at,
			valid_until,
			granted_by,
			version,
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
			:subscription_id,
			:is_active,
			:granted_at,
			:valid_until,
			:granted_by,
			:version,
			:tenant_id,
			:status,
			:created_at,
			:updated_at,
			:created_by,
			:updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, grant); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create status level grant").
			WithReportableDetails(map[string]any{
				"id":              grant.ID,
				"organization_id": grant.OrganizationID,
				"level":           grant.Level,
			}).
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *statusLevelGrantRepository) Get(ctx context.Context, id string) (*statuslevel.Grant, error) {
	query := `
		SELECT * FROM status_level_grants
		WHERE
			id = :id AND
			tenant_id = :tenant_id AND
			status != :deleted
	`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"id":        id,
		"tenant_id": types.GetTenantID(ctx),
		"deleted":   types.StatusDeleted,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get status level grant").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("status level grant not found").
			WithHint("Status level grant not found").
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var grant statuslevel.Grant
	if err := rows.StructScan(&grant); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan status level grant").
			Mark(ierr.ErrDatabase)
	}

	return &grant, nil
}

func (r *statusLevelGrantRepository) GetByKey(ctx context.Context, organizationID string, level types.StatusLevel, subscriptionID *string) (*statuslevel.Grant, error) {
	query := `
		SELECT * FROM status_level_grants
		WHERE
			organization_id = :organization_id AND
			level = :level AND
			tenant_id = :tenant_id AND
			status != :deleted
	`
	params := map[string]interface{}{
		"organization_id": organizationID,
		"level":           level,
		"tenant_id":       types.GetTenantID(ctx),
		"deleted":         types.StatusDeleted,
	}

	if subscriptionID == nil {
		query += " AND subscription_id IS NULL"
	} else {
		query += " AND subscription_id = :subscription_id"
		params["subscription_id"] = *subscriptionID
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get status level grant by key").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("status level grant not found").
			WithHint("No grant exists for this ledger key").
			WithReportableDetails(map[string]any{
				"organization_id": organizationID,
				"level":           level,
			}).
			Mark(ierr.ErrNotFound)
	}

	var grant statuslevel.Grant
	if err := rows.StructScan(&grant); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan status level grant").
			Mark(ierr.ErrDatabase)
	}

	return &grant, nil
}

// Update flips the active flag and audit fields guarded by the version
// column, the same optimistic scheme as subscription updates.
func (r *statusLevelGrantRepository) Update(ctx context.Context, grant *statuslevel.Grant) error {
	query := `
		UPDATE status_level_grants
		SET
			is_active = :is_active,
			granted_at = :granted_at,
			valid_until = :valid_until,
			granted_by = :granted_by,
			version = version + 1,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE
			id = :id AND
			tenant_id = :tenant_id AND
			version = :version
	`

	grant.UpdatedAt = time.Now().UTC()
	grant.UpdatedBy = types.GetUserID(ctx)

	result, err := r.db.NamedExecContext(ctx, query, grant)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update status level grant").
			WithReportableDetails(map[string]any{
				"id": grant.ID,
			}).
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read update result").
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewError("status level grant was modified concurrently").
			WithHint("The grant was updated by another request").
			WithReportableDetails(map[string]any{
				"id":      grant.ID,
				"version": grant.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	grant.Version++
	return nil
}

func (r *statusLevelGrantRepository) List(ctx context.Context, filter *types.StatusLevelGrantFilter) ([]*statuslevel.Grant, error) {
	if filter == nil {
		filter = &types.StatusLevelGrantFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}

	query := `
		SELECT * FROM status_level_grants
		WHERE tenant_id = :tenant_id AND status != :deleted
	`
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"deleted":   types.StatusDeleted,
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
	if filter.IsActive != nil {
		query += " AND is_active = :is_active"
		params["is_active"] = *filter.IsActive
	}
	if filter.SubscriptionID != nil {
		query += " AND subscription_id = :subscription_id"
		params["subscription_id"] = *filter.SubscriptionID
	}

	query += " ORDER BY created_at DESC"
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list status level grants").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var grants []*statuslevel.Grant
	for rows.Next() {
		var grant statuslevel.Grant
		if err := rows.StructScan(&grant); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan status level grant").
				Mark(ierr.ErrDatabase)
		}
		grants = append(grants, &grant)
	}

	return grants, nil
}

func (r *statusLevelGrantRepository) Count(ctx context.Context, filter *types.StatusLevelGrantFilter) (int, error) {
	query := `
		SELECT COUNT(*) FROM status_level_grants
		WHERE tenant_id = :tenant_id AND status != :deleted
	`
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"deleted":   types.StatusDeleted,
	}

	if filter != nil && filter.OrganizationID != "" {
		query += " AND organization_id = :organization_id"
		params["organization_id"] = filter.OrganizationID
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count status level grants").
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

func (r *statusLevelGrantRepository) ListActiveByOrganization(ctx context.Context, organizationID string) ([]*statuslevel.Grant, error) {
	filter := types.NewNoLimitStatusLevelGrantFilter()
	filter.OrganizationID = organizationID
	isActive := true
	filter.IsActive = &isActive
	return r.List(ctx, filter)
}
