package postgres

import (
	"context"
	"time"

	"github.com/chestno/chestno/internal/domain/subscription"
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/postgres"
	"github.com/chestno/chestno/internal/types"
)

type subscriptionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSubscriptionRepository(db *postgres.DB, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, logger: logger}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id,
			organization_id,
			subscription_status,
			grace_period_days,
			grace_period_ends_at,
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
			:subscription_status,
			:grace_period_days,
			:grace_period_ends_at,
			:version,
			:tenant_id,
			:status,
			:created_at,
			:updated_at,
			:created_by,
			:updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscription").
			WithReportableDetails(map[string]any{
				"id":              sub.ID,
				"organization_id": sub.OrganizationID,
			}).
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	query := `
		SELECT * FROM subscriptions
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
			WithHint("Failed to get subscription").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var sub subscription.Subscription
	if err := rows.StructScan(&sub); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan subscription").
			Mark(ierr.ErrDatabase)
	}

	return &sub, nil
}

func (r *subscriptionRepository) GetByOrganizationID(ctx context.Context, organizationID string) (*subscription.Subscription, error) {
	query := `
		SELECT * FROM subscriptions
		WHERE
			organization_id = :organization_id AND
			tenant_id = :tenant_id AND
			status != :deleted
		ORDER BY created_at DESC
		LIMIT 1
	`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"organization_id": organizationID,
		"tenant_id":       types.GetTenantID(ctx),
		"deleted":         types.StatusDeleted,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription by organization").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("subscription not found").
			WithHint("No subscription found for organization").
			WithReportableDetails(map[string]any{
				"organization_id": organizationID,
			}).
			Mark(ierr.ErrNotFound)
	}

	var sub subscription.Subscription
	if err := rows.StructScan(&sub); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan subscription").
			Mark(ierr.ErrDatabase)
	}

	return &sub, nil
}

// Update writes status and grace fields guarded by the version column.
// A row that was updated concurrently no longer matches the expected
// version and the caller gets ErrVersionConflict to retry against fresh
// state.
func (r *subscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	query := `
		UPDATE subscriptions
		SET
			subscription_status = :subscription_status,
			grace_period_days = :grace_period_days,
			grace_period_ends_at = :grace_period_ends_at,
			version = version + 1,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE
			id = :id AND
			tenant_id = :tenant_id AND
			version = :version
	`

	sub.UpdatedAt = time.Now().UTC()
	sub.UpdatedBy = types.GetUserID(ctx)

	result, err := r.db.NamedExecContext(ctx, query, sub)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update subscription").
			WithReportableDetails(map[string]any{
				"id": sub.ID,
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
		return ierr.NewError("subscription was modified concurrently").
			WithHint("The subscription was updated by another request").
			WithReportableDetails(map[string]any{
				"id":      sub.ID,
				"version": sub.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	sub.Version++
	return nil
}

func (r *subscriptionRepository) List(ctx context.Context, filter *types.SubscriptionFilter) ([]*subscription.Subscription, error) {
	if filter == nil {
		filter = types.NewSubscriptionFilter()
	}

	query := `
		SELECT * FROM subscriptions
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
	if len(filter.SubscriptionStatus) > 0 {
		query += " AND subscription_status IN (:subscription_status)"
		params["subscription_status"] = filter.SubscriptionStatus
	}
	if filter.GraceEndedBefore != nil {
		query += " AND grace_period_ends_at IS NOT NULL AND grace_period_ends_at < :grace_ended_before"
		params["grace_ended_before"] = *filter.GraceEndedBefore
	}

	query += " ORDER BY created_at DESC"
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
	}

	rows, err := r.db.NamedInQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var subscriptions []*subscription.Subscription
	for rows.Next() {
		var sub subscription.Subscription
		if err := rows.StructScan(&sub); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan subscription").
				Mark(ierr.ErrDatabase)
		}
		subscriptions = append(subscriptions, &sub)
	}

	return subscriptions, nil
}

func (r *subscriptionRepository) Count(ctx context.Context, filter *types.SubscriptionFilter) (int, error) {
	if filter == nil {
		filter = types.NewSubscriptionFilter()
	}

	query := `
		SELECT COUNT(*) FROM subscriptions
		WHERE tenant_id = :tenant_id AND status != :deleted
	`
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"deleted":   types.StatusDeleted,
	}

	if filter.OrganizationID != "" {
		query += " AND organization_id = :organization_id"
		params["organization_id"] = filter.OrganizationID
	}
	if len(filter.SubscriptionStatus) > 0 {
		query += " AND subscription_status IN (:subscription_status)"
		params["subscription_status"] = filter.SubscriptionStatus
	}
	if filter.GraceEndedBefore != nil {
		query += " AND grace_period_ends_at IS NOT NULL AND grace_period_ends_at < :grace_ended_before"
		params["grace_ended_before"] = *filter.GraceEndedBefore
	}

	rows, err := r.db.NamedInQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count subscriptions").
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
