package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/samber/lo"

	"github.com/chestno/chestno/internal/api/dto"
	"github.com/chestno/chestno/internal/cache"
	"github.com/chestno/chestno/internal/domain/statuslevel"
	"github.com/chestno/chestno/internal/domain/subscription"
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/types"
)

// Transition reasons recorded in the audit trail. The webhook and sweeper
// revocation paths use distinct reasons so the trail shows which mechanism
// caught the expiry.
const (
	ReasonAutoGranted            = "Auto-granted via subscription activation"
	ReasonGrantedByOperator      = "Granted by operator"
	ReasonGracePeriodStarted     = "Subscription past due — grace period started"
	ReasonPaymentRecovered       = "Subscription payment recovered, grace period cleared"
	ReasonCancelledAfterGrace    = "subscription_cancelled_after_grace"
	ReasonGracePeriodExpirySweep = "grace_period_expired_sweep"
)

// conflictRetryLimit bounds retries of a read-modify-write that lost a
// version race before the conflict is surfaced to the caller.
const conflictRetryLimit = 3

// StatusLevelService is the organization status level lifecycle engine. It
// owns every write to the grant ledger, the audit trail, and the
// subscription grace-period fields.
type StatusLevelService interface {
	// HandleSubscriptionStatusChange maps a billing status transition to
	// ledger and grace-period mutations. Total over the recognized
	// statuses and idempotent under redelivery.
	HandleSubscriptionStatusChange(ctx context.Context, req dto.SubscriptionStatusChangeRequest) (*dto.SubscriptionStatusChangeResponse, error)

	// EnsureLevelA activates the Level A slot for the given ledger key.
	// Safe to call on every activation event, including duplicates.
	EnsureLevelA(ctx context.Context, organizationID string, subscriptionID *string, grantedBy *string) (*dto.EnsureLevelAResponse, error)

	// StartGracePeriod opens (or resets) the grace window on the
	// organization's subscription. A missing local subscription is a
	// non-fatal no_subscription_found result.
	StartGracePeriod(ctx context.Context, organizationID string, days int) (*dto.StartGracePeriodResponse, error)

	// IsGracePeriodEnded reports whether the organization's grace window
	// has expired. A subscription that never entered one has not.
	IsGracePeriodEnded(ctx context.Context, organizationID string) (bool, error)

	// RevokeLevelAForSubscription deactivates the subscription-tied Level A
	// grant. Idempotent against double revocation.
	RevokeLevelAForSubscription(ctx context.Context, organizationID, subscriptionID, reason string, revokedBy *string) (*dto.RevokeLevelAResponse, error)

	// GetOrganizationStatusSummary is the read contract for dashboards and
	// the trust score computation.
	GetOrganizationStatusSummary(ctx context.Context, organizationID string) (*dto.OrganizationStatusSummaryResponse, error)

	// GetStatusHistory returns the organization's audit trail
	GetStatusHistory(ctx context.Context, organizationID string, filter *types.StatusHistoryFilter) (*dto.ListStatusHistoryResponse, error)

	// GrantManualLevel activates a subscription-independent grant on behalf
	// of an admin actor.
	GrantManualLevel(ctx context.Context, organizationID string, req dto.CreateManualGrantRequest) (*dto.EnsureLevelAResponse, error)

	// RevokeManualLevel deactivates a subscription-independent grant
	RevokeManualLevel(ctx context.Context, organizationID string, req dto.RevokeManualGrantRequest) (*dto.RevokeLevelAResponse, error)

	// ProcessExpiredGracePeriods revokes Level A for every cancelled
	// subscription whose grace window has lapsed. The correctness backstop
	// against missed or delayed webhook deliveries.
	ProcessExpiredGracePeriods(ctx context.Context) (*dto.SweepResponse, error)
}

type statusLevelService struct {
	ServiceParams
}

func NewStatusLevelService(params ServiceParams) StatusLevelService {
	return &statusLevelService{
		ServiceParams: params,
	}
}

// withConflictRetry reruns fn while it fails with a version conflict,
// backing off between attempts. Any other error aborts immediately.
func (s *statusLevelService) withConflictRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	operation := func() error {
		err := s.DB.WithTx(ctx, fn)
		if err == nil {
			return nil
		}
		if ierr.IsVersionConflict(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), conflictRetryLimit)
	return backoff.Retry(operation, backoff.WithContext(bo, ctx))
}

func (s *statusLevelService) HandleSubscriptionStatusChange(ctx context.Context, req dto.SubscriptionStatusChangeRequest) (*dto.SubscriptionStatusChangeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp := &dto.SubscriptionStatusChangeResponse{
		OrganizationID: req.OrganizationID,
		SubscriptionID: req.SubscriptionID,
		NewStatus:      req.NewStatus,
	}

	sub, err := s.SubRepo.GetByOrganizationID(ctx, req.OrganizationID)
	if err != nil {
		if ierr.IsNotFound(err) {
			// The billing collaborator can emit events before the local
			// record is synced. Acknowledge instead of triggering a
			// pointless provider retry.
			s.Logger.Warnw("billing event for unknown subscription",
				"organization_id", req.OrganizationID,
				"subscription_id", req.SubscriptionID,
				"new_status", req.NewStatus,
			)
			resp.Action = dto.ActionNoSubscriptionFound
			return resp, nil
		}
		return nil, err
	}

	switch req.NewStatus {
	case types.SubscriptionStatusActive:
		return s.handleActivated(ctx, sub, req, resp)
	case types.SubscriptionStatusPastDue:
		return s.handlePastDue(ctx, sub, req, resp)
	case types.SubscriptionStatusCancelled:
		return s.handleCancelled(ctx, sub, req, resp)
	case types.SubscriptionStatusTrialing:
		// Trial subscriptions are not wired to Level A
		if err := s.persistSubscriptionStatus(ctx, sub, types.SubscriptionStatusTrialing); err != nil {
			return nil, err
		}
		resp.Action = dto.ActionNoop
		return resp, nil
	default:
		// Validate above makes this unreachable; keep the switch total.
		return nil, ierr.NewError("unrecognized subscription status").
			WithHint("Unrecognized subscription status").
			WithReportableDetails(map[string]any{
				"status": req.NewStatus,
			}).
			Mark(ierr.ErrValidation)
	}
}

// handleActivated grants (or confirms) Level A and dissolves any running
// grace window. A recovery out of a grace period is recorded as renewed.
func (s *statusLevelService) handleActivated(ctx context.Context, sub *subscription.Subscription, req dto.SubscriptionStatusChangeRequest, resp *dto.SubscriptionStatusChangeResponse) (*dto.SubscriptionStatusChangeResponse, error) {
	recovering := sub.GracePeriodEndsAt != nil

	err := s.withConflictRetry(ctx, func(ctx context.Context) error {
		fresh, err := s.SubRepo.GetByOrganizationID(ctx, sub.OrganizationID)
		if err != nil {
			return err
		}
		fresh.SubscriptionStatus = types.SubscriptionStatusActive
		fresh.GracePeriodDays = nil
		fresh.GracePeriodEndsAt = nil
		return s.SubRepo.Update(ctx, fresh)
	})
	if err != nil {
		return nil, err
	}

	ensured, err := s.EnsureLevelA(ctx, req.OrganizationID, lo.ToPtr(req.SubscriptionID), req.Actor)
	if err != nil {
		return nil, err
	}

	resp.Action = ensured.Action
	resp.GrantID = ensured.GrantID

	if ensured.Action == dto.ActionAlreadyActive && recovering {
		// Payment resolved inside the grace window; the badge never went
		// away but the recovery belongs in the audit trail.
		s.appendHistory(ctx, req.OrganizationID, types.StatusLevelA, types.StatusHistoryActionRenewed, ReasonPaymentRecovered, req.Actor)
		s.publishStatusEvent(ctx, types.WebhookEventStatusLevelRenewed, req.OrganizationID, types.StatusLevelA, ReasonPaymentRecovered)
		resp.Action = dto.ActionRenewed
	}

	s.invalidateSummary(ctx, req.OrganizationID)
	return resp, nil
}

func (s *statusLevelService) handlePastDue(ctx context.Context, sub *subscription.Subscription, req dto.SubscriptionStatusChangeRequest, resp *dto.SubscriptionStatusChangeResponse) (*dto.SubscriptionStatusChangeResponse, error) {
	days := s.Config.StatusLevel.GracePeriodDays
	if req.GracePeriodDays != nil {
		days = *req.GracePeriodDays
	}

	started, err := s.StartGracePeriod(ctx, req.OrganizationID, days)
	if err != nil {
		return nil, err
	}

	resp.Action = started.Action
	resp.GracePeriodEndsAt = started.GracePeriodEndsAt
	return resp, nil
}

// handleCancelled applies the grace decision: a cancellation inside a
// running grace window keeps the badge, a cancellation after expiry (or
// with no grace window ever opened) revokes it.
func (s *statusLevelService) handleCancelled(ctx context.Context, sub *subscription.Subscription, req dto.SubscriptionStatusChangeRequest, resp *dto.SubscriptionStatusChangeResponse) (*dto.SubscriptionStatusChangeResponse, error) {
	// The grace decision is made against state read before this mutation
	graceRunning := sub.GracePeriodEndsAt != nil && !sub.IsGracePeriodEnded(time.Now().UTC())

	if err := s.persistSubscriptionStatus(ctx, sub, types.SubscriptionStatusCancelled); err != nil {
		return nil, err
	}

	if graceRunning {
		resp.Action = dto.ActionRetained
		resp.GracePeriodEndsAt = sub.GracePeriodEndsAt
		s.invalidateSummary(ctx, req.OrganizationID)
		return resp, nil
	}

	revoked, err := s.RevokeLevelAForSubscription(ctx, req.OrganizationID, req.SubscriptionID, ReasonCancelledAfterGrace, req.Actor)
	if err != nil {
		return nil, err
	}

	resp.Action = revoked.Action
	return resp, nil
}

func (s *statusLevelService) persistSubscriptionStatus(ctx context.Context, sub *subscription.Subscription, status types.SubscriptionStatus) error {
	return s.withConflictRetry(ctx, func(ctx context.Context) error {
		fresh, err := s.SubRepo.GetByOrganizationID(ctx, sub.OrganizationID)
		if err != nil {
			return err
		}
		fresh.SubscriptionStatus = status
		return s.SubRepo.Update(ctx, fresh)
	})
}

func (s *statusLevelService) EnsureLevelA(ctx context.Context, organizationID string, subscriptionID *string, grantedBy *string) (*dto.EnsureLevelAResponse, error) {
	resp := &dto.EnsureLevelAResponse{}

	reason := ReasonGrantedByOperator
	if grantedBy == nil {
		reason = ReasonAutoGranted
	}

	err := s.withConflictRetry(ctx, func(ctx context.Context) error {
		grant, err := s.GrantRepo.GetByKey(ctx, organizationID, types.StatusLevelA, subscriptionID)
		if err != nil && !ierr.IsNotFound(err) {
			return err
		}

		if grant != nil && grant.IsActive {
			resp.GrantID = grant.ID
			resp.Action = dto.ActionAlreadyActive
			return nil
		}

		action := types.StatusHistoryActionGranted
		if grantedBy == nil {
			action = types.StatusHistoryActionAutoGranted
		}

		now := time.Now().UTC()
		if grant == nil {
			grant = &statuslevel.Grant{
				ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STATUS_LEVEL_GRANT),
				OrganizationID: organizationID,
				Level:          types.StatusLevelA,
				SubscriptionID: subscriptionID,
				IsActive:       true,
				GrantedAt:      now,
				GrantedBy:      grantedBy,
				Version:        1,
				BaseModel:      types.GetDefaultBaseModel(ctx),
			}
			if err := s.GrantRepo.Create(ctx, grant); err != nil {
				return err
			}
		} else {
			grant.IsActive = true
			grant.GrantedAt = now
			grant.GrantedBy = grantedBy
			if err := s.GrantRepo.Update(ctx, grant); err != nil {
				return err
			}
		}

		resp.GrantID = grant.ID
		resp.Action = dto.ActionGranted

		return s.HistoryRepo.Create(ctx, &statuslevel.HistoryEntry{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STATUS_HISTORY_ENTRY),
			OrganizationID: organizationID,
			Level:          types.StatusLevelA,
			Action:         action,
			Reason:         reason,
			PerformedBy:    grantedBy,
			BaseModel:      types.GetDefaultBaseModel(ctx),
		})
	})
	if err != nil {
		return nil, err
	}

	if resp.Action == dto.ActionGranted {
		s.publishStatusEvent(ctx, types.WebhookEventStatusLevelGranted, organizationID, types.StatusLevelA, reason)
		s.invalidateSummary(ctx, organizationID)
	}

	return resp, nil
}

func (s *statusLevelService) StartGracePeriod(ctx context.Context, organizationID string, days int) (*dto.StartGracePeriodResponse, error) {
	if days <= 0 {
		days = s.Config.StatusLevel.GracePeriodDays
	}

	resp := &dto.StartGracePeriodResponse{}

	err := s.withConflictRetry(ctx, func(ctx context.Context) error {
		sub, err := s.SubRepo.GetByOrganizationID(ctx, organizationID)
		if err != nil {
			return err
		}

		// Every past_due entry opens a fresh window from this moment,
		// never an extension of a previous one.
		endsAt := time.Now().UTC().Add(time.Duration(days) * 24 * time.Hour)
		sub.SubscriptionStatus = types.SubscriptionStatusPastDue
		sub.GracePeriodDays = &days
		sub.GracePeriodEndsAt = &endsAt
		if err := s.SubRepo.Update(ctx, sub); err != nil {
			return err
		}

		resp.GracePeriodEndsAt = &endsAt
		resp.Action = dto.ActionGracePeriodStarted

		return s.HistoryRepo.Create(ctx, &statuslevel.HistoryEntry{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STATUS_HISTORY_ENTRY),
			OrganizationID: organizationID,
			Level:          types.StatusLevelA,
			Action:         types.StatusHistoryActionSuspended,
			Reason:         ReasonGracePeriodStarted,
			BaseModel:      types.GetDefaultBaseModel(ctx),
		})
	})
	if err != nil {
		if ierr.IsNotFound(err) {
			s.Logger.Warnw("grace period requested for unknown subscription",
				"organization_id", organizationID,
			)
			resp.Action = dto.ActionNoSubscriptionFound
			return resp, nil
		}
		return nil, err
	}

	s.publishStatusEvent(ctx, types.WebhookEventStatusLevelSuspended, organizationID, types.StatusLevelA, ReasonGracePeriodStarted)
	s.invalidateSummary(ctx, organizationID)
	return resp, nil
}

func (s *statusLevelService) IsGracePeriodEnded(ctx context.Context, organizationID string) (bool, error) {
	sub, err := s.SubRepo.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return sub.IsGracePeriodEnded(time.Now().UTC()), nil
}

func (s *statusLevelService) RevokeLevelAForSubscription(ctx context.Context, organizationID, subscriptionID, reason string, revokedBy *string) (*dto.RevokeLevelAResponse, error) {
	resp := &dto.RevokeLevelAResponse{}

	err := s.withConflictRetry(ctx, func(ctx context.Context) error {
		grant, err := s.GrantRepo.GetByKey(ctx, organizationID, types.StatusLevelA, &subscriptionID)
		if err != nil {
			if ierr.IsNotFound(err) {
				resp.Action = dto.ActionNotFound
				return nil
			}
			return err
		}

		if !grant.IsActive {
			resp.Action = dto.ActionNotFound
			return nil
		}

		grant.IsActive = false
		if err := s.GrantRepo.Update(ctx, grant); err != nil {
			return err
		}

		resp.Action = dto.ActionRevoked

		// Grace fields on the subscription are left untouched as the
		// forensic record of when revocation became eligible.
		return s.HistoryRepo.Create(ctx, &statuslevel.HistoryEntry{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STATUS_HISTORY_ENTRY),
			OrganizationID: organizationID,
			Level:          types.StatusLevelA,
			Action:         types.StatusHistoryActionRevoked,
			Reason:         reason,
			PerformedBy:    revokedBy,
			BaseModel:      types.GetDefaultBaseModel(ctx),
		})
	})
	if err != nil {
		return nil, err
	}

	if resp.Action == dto.ActionRevoked {
		s.publishStatusEvent(ctx, types.WebhookEventStatusLevelRevoked, organizationID, types.StatusLevelA, reason)
		s.invalidateSummary(ctx, organizationID)
	}

	return resp, nil
}

func (s *statusLevelService) GetOrganizationStatusSummary(ctx context.Context, organizationID string) (*dto.OrganizationStatusSummaryResponse, error) {
	cacheKey := cache.GenerateKey(cache.PrefixStatusSummary, types.GetTenantID(ctx), organizationID)
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if summary, ok := cached.(*dto.OrganizationStatusSummaryResponse); ok {
			return summary, nil
		}
	}

	grants, err := s.GrantRepo.ListActiveByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	// Grants past their hard expiry no longer contribute to the summary
	now := time.Now().UTC()
	grants = lo.Filter(grants, func(g *statuslevel.Grant, _ int) bool {
		return !g.IsExpired(now)
	})

	var summarySub *dto.SummarySubscription
	sub, err := s.SubRepo.GetByOrganizationID(ctx, organizationID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if sub != nil {
		summarySub = &dto.SummarySubscription{
			ID:                sub.ID,
			Status:            sub.SubscriptionStatus,
			GracePeriodEndsAt: sub.GracePeriodEndsAt,
		}
	}

	summary := dto.NewOrganizationStatusSummaryResponse(organizationID, grants, summarySub)
	s.Cache.Set(ctx, cacheKey, summary, cache.DefaultExpiration)
	return summary, nil
}

func (s *statusLevelService) GetStatusHistory(ctx context.Context, organizationID string, filter *types.StatusHistoryFilter) (*dto.ListStatusHistoryResponse, error) {
	if filter == nil {
		filter = types.NewStatusHistoryFilter()
	}
	filter.OrganizationID = organizationID

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.HistoryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.HistoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StatusHistoryEntryResponse, len(entries))
	for i, entry := range entries {
		items[i] = dto.NewStatusHistoryEntryResponse(entry)
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *statusLevelService) GrantManualLevel(ctx context.Context, organizationID string, req dto.CreateManualGrantRequest) (*dto.EnsureLevelAResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp := &dto.EnsureLevelAResponse{}
	actor := types.GetUserID(ctx)

	err := s.withConflictRetry(ctx, func(ctx context.Context) error {
		grant, err := s.GrantRepo.GetByKey(ctx, organizationID, req.Level, nil)
		if err != nil && !ierr.IsNotFound(err) {
			return err
		}

		if grant != nil && grant.IsActive && !grant.IsExpired(time.Now().UTC()) {
			resp.GrantID = grant.ID
			resp.Action = dto.ActionAlreadyActive
			return nil
		}

		if grant == nil {
			grant = req.ToGrant(ctx, organizationID)
			if err := s.GrantRepo.Create(ctx, grant); err != nil {
				return err
			}
		} else {
			grant.IsActive = true
			grant.GrantedAt = time.Now().UTC()
			grant.ValidUntil = req.ValidUntil
			grant.GrantedBy = &actor
			if err := s.GrantRepo.Update(ctx, grant); err != nil {
				return err
			}
		}

		resp.GrantID = grant.ID
		resp.Action = dto.ActionGranted

		reason := req.Reason
		if reason == "" {
			reason = "Manually granted by administrator"
		}
		return s.HistoryRepo.Create(ctx, &statuslevel.HistoryEntry{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STATUS_HISTORY_ENTRY),
			OrganizationID: organizationID,
			Level:          req.Level,
			Action:         types.StatusHistoryActionGranted,
			Reason:         reason,
			PerformedBy:    &actor,
			BaseModel:      types.GetDefaultBaseModel(ctx),
		})
	})
	if err != nil {
		return nil, err
	}

	if resp.Action == dto.ActionGranted {
		s.publishStatusEvent(ctx, types.WebhookEventStatusLevelGranted, organizationID, req.Level, "manual grant")
		s.invalidateSummary(ctx, organizationID)
	}

	return resp, nil
}

func (s *statusLevelService) RevokeManualLevel(ctx context.Context, organizationID string, req dto.RevokeManualGrantRequest) (*dto.RevokeLevelAResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp := &dto.RevokeLevelAResponse{}
	actor := types.GetUserID(ctx)

	err := s.withConflictRetry(ctx, func(ctx context.Context) error {
		grant, err := s.GrantRepo.GetByKey(ctx, organizationID, req.Level, nil)
		if err != nil {
			if ierr.IsNotFound(err) {
				resp.Action = dto.ActionNotFound
				return nil
			}
			return err
		}

		if !grant.IsActive {
			resp.Action = dto.ActionNotFound
			return nil
		}

		grant.IsActive = false
		if err := s.GrantRepo.Update(ctx, grant); err != nil {
			return err
		}

		resp.Action = dto.ActionRevoked

		return s.HistoryRepo.Create(ctx, &statuslevel.HistoryEntry{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STATUS_HISTORY_ENTRY),
			OrganizationID: organizationID,
			Level:          req.Level,
			Action:         types.StatusHistoryActionRevoked,
			Reason:         req.Reason,
			PerformedBy:    &actor,
			BaseModel:      types.GetDefaultBaseModel(ctx),
		})
	})
	if err != nil {
		return nil, err
	}

	if resp.Action == dto.ActionRevoked {
		s.publishStatusEvent(ctx, types.WebhookEventStatusLevelRevoked, organizationID, req.Level, req.Reason)
		s.invalidateSummary(ctx, organizationID)
	}

	return resp, nil
}

// appendHistory is the best-effort audit write used outside the main
// transaction. The ledger state is authoritative; a failed history append
// is an alert, not a rollback.
func (s *statusLevelService) appendHistory(ctx context.Context, organizationID string, level types.StatusLevel, action types.StatusHistoryAction, reason string, performedBy *string) {
	err := s.HistoryRepo.Create(ctx, &statuslevel.HistoryEntry{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STATUS_HISTORY_ENTRY),
		OrganizationID: organizationID,
		Level:          level,
		Action:         action,
		Reason:         reason,
		PerformedBy:    performedBy,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	})
	if err != nil {
		s.Logger.Errorw("failed to append status history entry",
			"error", err,
			"organization_id", organizationID,
			"level", level,
			"action", action,
		)
	}
}

func (s *statusLevelService) publishStatusEvent(ctx context.Context, eventName, organizationID string, level types.StatusLevel, reason string) {
	if s.WebhookPublisher == nil {
		return
	}

	payload, err := json.Marshal(map[string]any{
		"organization_id": organizationID,
		"level":           level,
		"reason":          reason,
	})
	if err != nil {
		s.Logger.Errorw("failed to marshal status webhook payload",
			"error", err,
			"organization_id", organizationID,
		)
		return
	}

	event := &types.WebhookEvent{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_WEBHOOK_EVENT),
		EventName:     eventName,
		TenantID:      types.GetTenantID(ctx),
		EnvironmentID: types.GetEnvironmentID(ctx),
		UserID:        types.GetUserID(ctx),
		Timestamp:     time.Now().UTC(),
		Payload:       payload,
	}

	if err := s.WebhookPublisher.PublishWebhook(ctx, event); err != nil {
		s.Logger.Errorw("failed to publish status webhook event",
			"error", err,
			"event_name", eventName,
			"organization_id", organizationID,
		)
	}
}

func (s *statusLevelService) invalidateSummary(ctx context.Context, organizationID string) {
	if s.Cache == nil {
		return
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixStatusSummary, types.GetTenantID(ctx), organizationID))
}
