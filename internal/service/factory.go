package service

import (
	"github.com/chestno/chestno/internal/cache"
	"github.com/chestno/chestno/internal/config"
	"github.com/chestno/chestno/internal/domain/statuslevel"
	"github.com/chestno/chestno/internal/domain/subscription"
	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/postgres"
	webhookPublisher "github.com/chestno/chestno/internal/webhook/publisher"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache

	// Repositories
	SubRepo     subscription.Repository
	GrantRepo   statuslevel.Repository
	HistoryRepo statuslevel.HistoryRepository

	// Publishers
	WebhookPublisher webhookPublisher.WebhookPublisher
}

// NewServiceParams assembles the common service dependencies for fx
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cacheClient cache.Cache,
	subRepo subscription.Repository,
	grantRepo statuslevel.Repository,
	historyRepo statuslevel.HistoryRepository,
	webhookPublisher webhookPublisher.WebhookPublisher,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           config,
		DB:               db,
		Cache:            cacheClient,
		SubRepo:          subRepo,
		GrantRepo:        grantRepo,
		HistoryRepo:      historyRepo,
		WebhookPublisher: webhookPublisher,
	}
}
