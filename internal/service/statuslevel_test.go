package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"github.com/chestno/chestno/internal/api/dto"
	"github.com/chestno/chestno/internal/domain/statuslevel"
	"github.com/chestno/chestno/internal/domain/subscription"
	"github.com/chestno/chestno/internal/testutil"
	"github.com/chestno/chestno/internal/types"
)

type StatusLevelServiceTestSuite struct {
	testutil.BaseServiceTestSuite
	service  StatusLevelService
	testData struct {
		organizationID string
		subscription   *subscription.Subscription
	}
}

func TestStatusLevelService(t *testing.T) {
	suite.Run(t, new(StatusLevelServiceTestSuite))
}

func (s *StatusLevelServiceTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *StatusLevelServiceTestSuite) setupService() {
	s.service = NewStatusLevelService(ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		DB:               s.GetDB(),
		Cache:            s.GetCache(),
		SubRepo:          s.GetStores().SubscriptionRepo,
		GrantRepo:        s.GetStores().StatusLevelRepo,
		HistoryRepo:      s.GetStores().StatusHistoryRepo,
		WebhookPublisher: s.GetWebhookPublisher(),
	})
}

func (s *StatusLevelServiceTestSuite) setupTestData() {
	s.testData.organizationID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORGANIZATION)
	s.testData.subscription = &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		OrganizationID:     s.testData.organizationID,
		SubscriptionStatus: types.SubscriptionStatusTrialing,
		Version:            1,
		BaseModel:          types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), s.testData.subscription))
}

func (s *StatusLevelServiceTestSuite) statusChange(status types.SubscriptionStatus) dto.SubscriptionStatusChangeRequest {
	return dto.SubscriptionStatusChangeRequest{
		OrganizationID: s.testData.organizationID,
		SubscriptionID: s.testData.subscription.ID,
		NewStatus:      status,
	}
}

func (s *StatusLevelServiceTestSuite) historyActions() []types.StatusHistoryAction {
	filter := types.NewStatusHistoryFilter()
	filter.OrganizationID = s.testData.organizationID
	entries, err := s.GetStores().StatusHistoryRepo.List(s.GetContext(), filter)
	s.NoError(err)

	actions := make([]types.StatusHistoryAction, len(entries))
	for i, entry := range entries {
		actions[i] = entry.Action
	}
	return actions
}

func (s *StatusLevelServiceTestSuite) TestActivationGrantsLevelA() {
	resp, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)
	s.Equal(dto.ActionGranted, resp.Action)
	s.NotEmpty(resp.GrantID)

	grant, err := s.GetStores().StatusLevelRepo.Get(s.GetContext(), resp.GrantID)
	s.NoError(err)
	s.True(grant.IsActive)
	s.Equal(types.StatusLevelA, grant.Level)
	s.NotNil(grant.SubscriptionID)
	s.Equal(s.testData.subscription.ID, *grant.SubscriptionID)
	s.Nil(grant.GrantedBy)

	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive, sub.SubscriptionStatus)

	actions := s.historyActions()
	s.Len(actions, 1)
	s.Equal(types.StatusHistoryActionAutoGranted, actions[0])
}

func (s *StatusLevelServiceTestSuite) TestOperatorGrantRecordsOperatorReason() {
	actor := "user_admin"
	resp, err := s.service.EnsureLevelA(s.GetContext(), s.testData.organizationID, &s.testData.subscription.ID, &actor)
	s.NoError(err)
	s.Equal(dto.ActionGranted, resp.Action)

	entries := s.findHistoryByAction(types.StatusHistoryActionGranted)
	s.Len(entries, 1)
	s.Equal(ReasonGrantedByOperator, entries[0].Reason)
	s.NotNil(entries[0].PerformedBy)
	s.Equal(actor, *entries[0].PerformedBy)
}

func (s *StatusLevelServiceTestSuite) TestDuplicateActivationIsIdempotent() {
	first, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)
	s.Equal(dto.ActionGranted, first.Action)

	second, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)
	s.Equal(dto.ActionAlreadyActive, second.Action)
	s.Equal(first.GrantID, second.GrantID)

	// Redelivery must not add a second ledger row or history entry
	count, err := s.GetStores().StatusLevelRepo.Count(s.GetContext(), types.NewNoLimitStatusLevelGrantFilter())
	s.NoError(err)
	s.Equal(1, count)
	s.Len(s.historyActions(), 1)
}

func (s *StatusLevelServiceTestSuite) TestPastDueStartsGracePeriod() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)

	resp, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusPastDue))
	s.NoError(err)
	s.Equal(dto.ActionGracePeriodStarted, resp.Action)
	s.NotNil(resp.GracePeriodEndsAt)

	expectedEnd := time.Now().UTC().Add(14 * 24 * time.Hour)
	s.WithinDuration(expectedEnd, *resp.GracePeriodEndsAt, time.Minute)

	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusPastDue, sub.SubscriptionStatus)
	s.Equal(14, *sub.GracePeriodDays)

	// Level A stays active during the grace window
	grants, err := s.GetStores().StatusLevelRepo.ListActiveByOrganization(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Len(grants, 1)
}

func (s *StatusLevelServiceTestSuite) TestPastDueReentryResetsGraceWindow() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)

	first, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusPastDue))
	s.NoError(err)

	// A shorter override on re-entry must land earlier than the first
	// window. A reset, not an extension.
	req := s.statusChange(types.SubscriptionStatusPastDue)
	req.GracePeriodDays = lo.ToPtr(7)
	second, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), req)
	s.NoError(err)
	s.True(second.GracePeriodEndsAt.Before(*first.GracePeriodEndsAt))

	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(7, *sub.GracePeriodDays)
}

func (s *StatusLevelServiceTestSuite) TestRecoveryFromGraceClearsWindowAndRenews() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)
	_, err = s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusPastDue))
	s.NoError(err)

	resp, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)
	s.Equal(dto.ActionRenewed, resp.Action)

	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive, sub.SubscriptionStatus)
	s.Nil(sub.GracePeriodDays)
	s.Nil(sub.GracePeriodEndsAt)

	actions := s.historyActions()
	s.Contains(actions, types.StatusHistoryActionRenewed)
}

func (s *StatusLevelServiceTestSuite) TestCancellationWithinGraceRetainsLevel() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)
	_, err = s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusPastDue))
	s.NoError(err)

	resp, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusCancelled))
	s.NoError(err)
	s.Equal(dto.ActionRetained, resp.Action)
	s.NotNil(resp.GracePeriodEndsAt)

	grants, err := s.GetStores().StatusLevelRepo.ListActiveByOrganization(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Len(grants, 1)

	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, sub.SubscriptionStatus)
}

func (s *StatusLevelServiceTestSuite) TestCancellationAfterGraceExpiryRevokes() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)
	_, err = s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusPastDue))
	s.NoError(err)

	s.expireGracePeriod()

	resp, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusCancelled))
	s.NoError(err)
	s.Equal(dto.ActionRevoked, resp.Action)

	grants, err := s.GetStores().StatusLevelRepo.ListActiveByOrganization(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Empty(grants)

	entries := s.findHistoryByAction(types.StatusHistoryActionRevoked)
	s.Len(entries, 1)
	s.Equal(ReasonCancelledAfterGrace, entries[0].Reason)
}

func (s *StatusLevelServiceTestSuite) TestCancellationWithoutGraceRevokesImmediately() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)

	resp, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusCancelled))
	s.NoError(err)
	s.Equal(dto.ActionRevoked, resp.Action)

	grants, err := s.GetStores().StatusLevelRepo.ListActiveByOrganization(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Empty(grants)
}

func (s *StatusLevelServiceTestSuite) TestTrialingIsNoop() {
	resp, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusTrialing))
	s.NoError(err)
	s.Equal(dto.ActionNoop, resp.Action)

	grants, err := s.GetStores().StatusLevelRepo.ListActiveByOrganization(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Empty(grants)
	s.Empty(s.historyActions())
}

func (s *StatusLevelServiceTestSuite) TestUnknownSubscriptionIsAcknowledged() {
	req := dto.SubscriptionStatusChangeRequest{
		OrganizationID: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORGANIZATION),
		SubscriptionID: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		NewStatus:      types.SubscriptionStatusActive,
	}

	resp, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), req)
	s.NoError(err)
	s.Equal(dto.ActionNoSubscriptionFound, resp.Action)
}

func (s *StatusLevelServiceTestSuite) TestRevokeIsIdempotent() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)

	first, err := s.service.RevokeLevelAForSubscription(s.GetContext(), s.testData.organizationID, s.testData.subscription.ID, "manual revocation", nil)
	s.NoError(err)
	s.Equal(dto.ActionRevoked, first.Action)

	second, err := s.service.RevokeLevelAForSubscription(s.GetContext(), s.testData.organizationID, s.testData.subscription.ID, "manual revocation", nil)
	s.NoError(err)
	s.Equal(dto.ActionNotFound, second.Action)

	entries := s.findHistoryByAction(types.StatusHistoryActionRevoked)
	s.Len(entries, 1)
}

func (s *StatusLevelServiceTestSuite) TestRevokedLevelCanBeRegranted() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)
	_, err = s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusCancelled))
	s.NoError(err)

	resp, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)
	s.Equal(dto.ActionGranted, resp.Action)

	// Reactivation reuses the slot row instead of inserting a second one
	count, err := s.GetStores().StatusLevelRepo.Count(s.GetContext(), types.NewNoLimitStatusLevelGrantFilter())
	s.NoError(err)
	s.Equal(1, count)
}

func (s *StatusLevelServiceTestSuite) TestManualGrantSurvivesSubscriptionCancellation() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)

	granted, err := s.service.GrantManualLevel(s.GetContext(), s.testData.organizationID, dto.CreateManualGrantRequest{
		Level:  types.StatusLevelB,
		Reason: "verified documents",
	})
	s.NoError(err)
	s.Equal(dto.ActionGranted, granted.Action)

	_, err = s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusCancelled))
	s.NoError(err)

	summary, err := s.service.GetOrganizationStatusSummary(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.StatusLevelB, summary.CurrentLevel)
	s.Len(summary.Grants, 1)
}

func (s *StatusLevelServiceTestSuite) TestManualLevelASurvivesSubscriptionRevocation() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)

	granted, err := s.service.GrantManualLevel(s.GetContext(), s.testData.organizationID, dto.CreateManualGrantRequest{
		Level:  types.StatusLevelA,
		Reason: "verified documents",
	})
	s.NoError(err)
	s.Equal(dto.ActionGranted, granted.Action)

	// Two independent slot rows now hold Level A: one tied to the
	// subscription, one manual
	count, err := s.GetStores().StatusLevelRepo.Count(s.GetContext(), types.NewNoLimitStatusLevelGrantFilter())
	s.NoError(err)
	s.Equal(2, count)

	revoked, err := s.service.RevokeLevelAForSubscription(s.GetContext(), s.testData.organizationID, s.testData.subscription.ID, "payment dispute", nil)
	s.NoError(err)
	s.Equal(dto.ActionRevoked, revoked.Action)

	summary, err := s.service.GetOrganizationStatusSummary(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.StatusLevelA, summary.CurrentLevel)
	s.Len(summary.Grants, 1)
	s.Nil(summary.Grants[0].SubscriptionID)
}

func (s *StatusLevelServiceTestSuite) TestManualGrantIsIdempotent() {
	first, err := s.service.GrantManualLevel(s.GetContext(), s.testData.organizationID, dto.CreateManualGrantRequest{
		Level: types.StatusLevelC,
	})
	s.NoError(err)
	s.Equal(dto.ActionGranted, first.Action)

	second, err := s.service.GrantManualLevel(s.GetContext(), s.testData.organizationID, dto.CreateManualGrantRequest{
		Level: types.StatusLevelC,
	})
	s.NoError(err)
	s.Equal(dto.ActionAlreadyActive, second.Action)
	s.Equal(first.GrantID, second.GrantID)
}

func (s *StatusLevelServiceTestSuite) TestManualRegrantRefreshesExpiredGrant() {
	first, err := s.service.GrantManualLevel(s.GetContext(), s.testData.organizationID, dto.CreateManualGrantRequest{
		Level:      types.StatusLevelB,
		ValidUntil: lo.ToPtr(time.Now().UTC().Add(time.Hour)),
	})
	s.NoError(err)
	s.Equal(dto.ActionGranted, first.Action)

	s.expireManualGrant(types.StatusLevelB)

	summary, err := s.service.GetOrganizationStatusSummary(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.StatusLevelNone, summary.CurrentLevel)

	freshExpiry := time.Now().UTC().Add(48 * time.Hour)
	second, err := s.service.GrantManualLevel(s.GetContext(), s.testData.organizationID, dto.CreateManualGrantRequest{
		Level:      types.StatusLevelB,
		ValidUntil: lo.ToPtr(freshExpiry),
	})
	s.NoError(err)
	s.Equal(dto.ActionGranted, second.Action)
	s.Equal(first.GrantID, second.GrantID)

	grant, err := s.GetStores().StatusLevelRepo.GetByKey(s.GetContext(), s.testData.organizationID, types.StatusLevelB, nil)
	s.NoError(err)
	s.NotNil(grant.ValidUntil)
	s.WithinDuration(freshExpiry, *grant.ValidUntil, time.Second)

	summary, err = s.service.GetOrganizationStatusSummary(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.StatusLevelB, summary.CurrentLevel)
}

func (s *StatusLevelServiceTestSuite) TestManualRevoke() {
	_, err := s.service.GrantManualLevel(s.GetContext(), s.testData.organizationID, dto.CreateManualGrantRequest{
		Level: types.StatusLevelC,
	})
	s.NoError(err)

	resp, err := s.service.RevokeManualLevel(s.GetContext(), s.testData.organizationID, dto.RevokeManualGrantRequest{
		Level:  types.StatusLevelC,
		Reason: "documents expired",
	})
	s.NoError(err)
	s.Equal(dto.ActionRevoked, resp.Action)

	missing, err := s.service.RevokeManualLevel(s.GetContext(), s.testData.organizationID, dto.RevokeManualGrantRequest{
		Level:  types.StatusLevelC,
		Reason: "documents expired",
	})
	s.NoError(err)
	s.Equal(dto.ActionNotFound, missing.Action)
}

func (s *StatusLevelServiceTestSuite) TestSummaryReportsHighestLevel() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)
	_, err = s.service.GrantManualLevel(s.GetContext(), s.testData.organizationID, dto.CreateManualGrantRequest{
		Level: types.StatusLevelC,
	})
	s.NoError(err)

	summary, err := s.service.GetOrganizationStatusSummary(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.StatusLevelC, summary.CurrentLevel)
	s.Len(summary.Grants, 2)
	s.NotNil(summary.Subscription)
	s.Equal(types.SubscriptionStatusActive, summary.Subscription.Status)
}

func (s *StatusLevelServiceTestSuite) TestSummaryWithNoGrants() {
	summary, err := s.service.GetOrganizationStatusSummary(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.StatusLevelNone, summary.CurrentLevel)
	s.Empty(summary.Grants)
}

func (s *StatusLevelServiceTestSuite) TestSummaryIgnoresExpiredManualGrants() {
	_, err := s.service.GrantManualLevel(s.GetContext(), s.testData.organizationID, dto.CreateManualGrantRequest{
		Level:      types.StatusLevelB,
		ValidUntil: lo.ToPtr(time.Now().UTC().Add(time.Hour)),
	})
	s.NoError(err)

	s.expireManualGrant(types.StatusLevelB)

	summary, err := s.service.GetOrganizationStatusSummary(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.StatusLevelNone, summary.CurrentLevel)
	s.Empty(summary.Grants)
}

func (s *StatusLevelServiceTestSuite) TestSummaryIsInvalidatedOnMutation() {
	summary, err := s.service.GetOrganizationStatusSummary(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.StatusLevelNone, summary.CurrentLevel)

	_, err = s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)

	summary, err = s.service.GetOrganizationStatusSummary(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.Equal(types.StatusLevelA, summary.CurrentLevel)
}

func (s *StatusLevelServiceTestSuite) TestGetStatusHistory() {
	_, err := s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusActive))
	s.NoError(err)
	_, err = s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusPastDue))
	s.NoError(err)
	_, err = s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusCancelled))
	s.NoError(err)

	history, err := s.service.GetStatusHistory(s.GetContext(), s.testData.organizationID, nil)
	s.NoError(err)
	s.Equal(2, history.Pagination.Total)

	// Action filter narrows the trail
	filter := types.NewStatusHistoryFilter()
	filter.Actions = []types.StatusHistoryAction{types.StatusHistoryActionSuspended}
	history, err = s.service.GetStatusHistory(s.GetContext(), s.testData.organizationID, filter)
	s.NoError(err)
	s.Equal(1, history.Pagination.Total)
	s.Equal(ReasonGracePeriodStarted, history.Items[0].Reason)
}

func (s *StatusLevelServiceTestSuite) TestIsGracePeriodEnded() {
	ended, err := s.service.IsGracePeriodEnded(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.False(ended)

	_, err = s.service.HandleSubscriptionStatusChange(s.GetContext(), s.statusChange(types.SubscriptionStatusPastDue))
	s.NoError(err)

	ended, err = s.service.IsGracePeriodEnded(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.False(ended)

	s.expireGracePeriod()

	ended, err = s.service.IsGracePeriodEnded(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	s.True(ended)
}

// expireGracePeriod rewrites the grace window so it ended an hour ago
// expireManualGrant rewinds the manual slot's expiry so the grant is stale
// without going through request validation.
func (s *StatusLevelServiceTestSuite) expireManualGrant(level types.StatusLevel) {
	grant, err := s.GetStores().StatusLevelRepo.GetByKey(s.GetContext(), s.testData.organizationID, level, nil)
	s.NoError(err)
	grant.ValidUntil = lo.ToPtr(time.Now().UTC().Add(-time.Hour))
	s.NoError(s.GetStores().StatusLevelRepo.Update(s.GetContext(), grant))
}

func (s *StatusLevelServiceTestSuite) expireGracePeriod() {
	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.testData.organizationID)
	s.NoError(err)
	sub.GracePeriodEndsAt = lo.ToPtr(time.Now().UTC().Add(-time.Hour))
	s.NoError(s.GetStores().SubscriptionRepo.Update(s.GetContext(), sub))
}

func (s *StatusLevelServiceTestSuite) findHistoryByAction(action types.StatusHistoryAction) []*statuslevel.HistoryEntry {
	filter := types.NewStatusHistoryFilter()
	filter.OrganizationID = s.testData.organizationID
	filter.Actions = []types.StatusHistoryAction{action}
	entries, err := s.GetStores().StatusHistoryRepo.List(s.GetContext(), filter)
	s.NoError(err)
	return entries
}
