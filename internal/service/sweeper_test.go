package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"github.com/chestno/chestno/internal/domain/statuslevel"
	"github.com/chestno/chestno/internal/domain/subscription"
	"github.com/chestno/chestno/internal/testutil"
	"github.com/chestno/chestno/internal/types"
)

type GracePeriodSweeperTestSuite struct {
	testutil.BaseServiceTestSuite
	service StatusLevelService
}

func TestGracePeriodSweeper(t *testing.T) {
	suite.Run(t, new(GracePeriodSweeperTestSuite))
}

func (s *GracePeriodSweeperTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
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

// seedOrganization creates a subscription in the given billing status with
// an optional grace window and an active Level A grant tied to it.
func (s *GracePeriodSweeperTestSuite) seedOrganization(status types.SubscriptionStatus, graceEndsAt *time.Time, withGrant bool) (string, string) {
	orgID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORGANIZATION)
	subID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION)

	sub := &subscription.Subscription{
		ID:                 subID,
		OrganizationID:     orgID,
		SubscriptionStatus: status,
		GracePeriodEndsAt:  graceEndsAt,
		Version:            1,
		BaseModel:          types.GetDefaultBaseModel(s.GetContext()),
	}
	if graceEndsAt != nil {
		sub.GracePeriodDays = lo.ToPtr(types.DefaultGracePeriodDays)
	}
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), sub))

	if withGrant {
		grant := &statuslevel.Grant{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STATUS_LEVEL_GRANT),
			OrganizationID: orgID,
			Level:          types.StatusLevelA,
			SubscriptionID: lo.ToPtr(subID),
			IsActive:       true,
			GrantedAt:      time.Now().UTC().Add(-30 * 24 * time.Hour),
			Version:        1,
			BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
		}
		s.NoError(s.GetStores().StatusLevelRepo.Create(s.GetContext(), grant))
	}

	return orgID, subID
}

func (s *GracePeriodSweeperTestSuite) TestSweepRevokesExpiredGracePeriods() {
	expired := lo.ToPtr(time.Now().UTC().Add(-time.Hour))
	running := lo.ToPtr(time.Now().UTC().Add(48 * time.Hour))

	expiredOrg, _ := s.seedOrganization(types.SubscriptionStatusCancelled, expired, true)
	runningOrg, _ := s.seedOrganization(types.SubscriptionStatusCancelled, running, true)
	activeOrg, _ := s.seedOrganization(types.SubscriptionStatusActive, nil, true)

	resp, err := s.service.ProcessExpiredGracePeriods(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Scanned)
	s.Equal(1, resp.Revoked)
	s.Equal(0, resp.Failed)

	grants, err := s.GetStores().StatusLevelRepo.ListActiveByOrganization(s.GetContext(), expiredOrg)
	s.NoError(err)
	s.Empty(grants)

	// Organizations still inside their window or fully active are untouched
	for _, orgID := range []string{runningOrg, activeOrg} {
		grants, err := s.GetStores().StatusLevelRepo.ListActiveByOrganization(s.GetContext(), orgID)
		s.NoError(err)
		s.Len(grants, 1)
	}
}

func (s *GracePeriodSweeperTestSuite) TestSweepRecordsDedicatedReason() {
	orgID, _ := s.seedOrganization(types.SubscriptionStatusCancelled, lo.ToPtr(time.Now().UTC().Add(-time.Hour)), true)

	_, err := s.service.ProcessExpiredGracePeriods(s.GetContext())
	s.NoError(err)

	filter := types.NewStatusHistoryFilter()
	filter.OrganizationID = orgID
	filter.Actions = []types.StatusHistoryAction{types.StatusHistoryActionRevoked}
	entries, err := s.GetStores().StatusHistoryRepo.List(s.GetContext(), filter)
	s.NoError(err)
	s.Len(entries, 1)
	s.Equal(ReasonGracePeriodExpirySweep, entries[0].Reason)
}

func (s *GracePeriodSweeperTestSuite) TestSweepIsIdempotent() {
	s.seedOrganization(types.SubscriptionStatusCancelled, lo.ToPtr(time.Now().UTC().Add(-time.Hour)), true)

	first, err := s.service.ProcessExpiredGracePeriods(s.GetContext())
	s.NoError(err)
	s.Equal(1, first.Revoked)

	// The grant is already inactive on the second pass
	second, err := s.service.ProcessExpiredGracePeriods(s.GetContext())
	s.NoError(err)
	s.Equal(1, second.Scanned)
	s.Equal(0, second.Revoked)
	s.Equal(0, second.Failed)
}

func (s *GracePeriodSweeperTestSuite) TestSweepWithNothingToDo() {
	resp, err := s.service.ProcessExpiredGracePeriods(s.GetContext())
	s.NoError(err)
	s.Equal(0, resp.Scanned)
	s.Equal(0, resp.Revoked)
	s.Equal(0, resp.Failed)
}

func (s *GracePeriodSweeperTestSuite) TestSweepHandlesMissingGrant() {
	// Cancelled with expired grace but the grant was never created
	s.seedOrganization(types.SubscriptionStatusCancelled, lo.ToPtr(time.Now().UTC().Add(-time.Hour)), false)

	resp, err := s.service.ProcessExpiredGracePeriods(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Scanned)
	s.Equal(0, resp.Revoked)
	s.Equal(0, resp.Failed)
}
