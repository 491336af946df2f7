package testutil

import (
	"context"
	"time"

	"github.com/chestno/chestno/internal/cache"
	"github.com/chestno/chestno/internal/config"
	"github.com/chestno/chestno/internal/domain/statuslevel"
	"github.com/chestno/chestno/internal/domain/subscription"
	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/postgres"
	"github.com/chestno/chestno/internal/types"
	"github.com/chestno/chestno/internal/validator"
	webhookPublisher "github.com/chestno/chestno/internal/webhook/publisher"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	SubscriptionRepo  subscription.Repository
	StatusLevelRepo   statuslevel.Repository
	StatusHistoryRepo statuslevel.HistoryRepository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx              context.Context
	stores           Stores
	webhookPublisher webhookPublisher.WebhookPublisher
	db               postgres.IClient
	cache            cache.Cache
	logger           *logger.Logger
	config           *config.Configuration
	now              time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	// Initialize logger and test config
	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger()
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		SubscriptionRepo:  NewInMemorySubscriptionStore(),
		StatusLevelRepo:   NewInMemoryStatusLevelGrantStore(),
		StatusHistoryRepo: NewInMemoryStatusHistoryStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.cache = cache.NewInMemoryCache(s.config)

	pubsub := NewInMemoryPubSub()
	publisher, err := webhookPublisher.NewPublisher(pubsub, s.config, s.logger)
	if err != nil {
		s.T().Fatalf("failed to create webhook publisher: %v", err)
	}
	s.webhookPublisher = publisher
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.SubscriptionRepo.(*InMemorySubscriptionStore).Clear()
	s.stores.StatusLevelRepo.(*InMemoryStatusLevelGrantStore).Clear()
	s.stores.StatusHistoryRepo.(*InMemoryStatusHistoryStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the mock db client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetCache returns the per-test cache instance
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetWebhookPublisher returns the test webhook publisher
func (s *BaseServiceTestSuite) GetWebhookPublisher() webhookPublisher.WebhookPublisher {
	return s.webhookPublisher
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
