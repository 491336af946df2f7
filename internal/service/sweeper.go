package service

import (
	"context"
	"time"

	"github.com/chestno/chestno/internal/api/dto"
	"github.com/chestno/chestno/internal/types"
)

// ProcessExpiredGracePeriods scans cancelled subscriptions whose grace
// window lapsed without a cancellation event landing after expiry, and
// revokes their Level A grants. Failures on individual organizations are
// counted and logged so one bad row cannot stall the rest of the run.
func (s *statusLevelService) ProcessExpiredGracePeriods(ctx context.Context) (*dto.SweepResponse, error) {
	now := time.Now().UTC()

	filter := types.NewNoLimitSubscriptionFilter()
	filter.SubscriptionStatus = []types.SubscriptionStatus{types.SubscriptionStatusCancelled}
	filter.GraceEndedBefore = &now

	subs, err := s.SubRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.SweepResponse{
		Scanned: len(subs),
	}

	for _, sub := range subs {
		revoked, err := s.RevokeLevelAForSubscription(ctx, sub.OrganizationID, sub.ID, ReasonGracePeriodExpirySweep, nil)
		if err != nil {
			resp.Failed++
			s.Logger.Errorw("failed to revoke status level during grace period sweep",
				"error", err,
				"organization_id", sub.OrganizationID,
				"subscription_id", sub.ID,
			)
			continue
		}

		// not_found means the webhook path already revoked this grant
		if revoked.Action == dto.ActionRevoked {
			resp.Revoked++
		}
	}

	s.Logger.Infow("grace period sweep completed",
		"scanned", resp.Scanned,
		"revoked", resp.Revoked,
		"failed", resp.Failed,
	)

	return resp, nil
}
