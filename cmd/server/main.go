package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/chestno/chestno/internal/api"
	"github.com/chestno/chestno/internal/api/cron"
	v1 "github.com/chestno/chestno/internal/api/v1"
	"github.com/chestno/chestno/internal/cache"
	"github.com/chestno/chestno/internal/config"
	"github.com/chestno/chestno/internal/httpclient"
	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/postgres"
	pubsubRouter "github.com/chestno/chestno/internal/pubsub/router"
	"github.com/chestno/chestno/internal/repository"
	"github.com/chestno/chestno/internal/service"
	"github.com/chestno/chestno/internal/types"
	"github.com/chestno/chestno/internal/validator"
	"github.com/chestno/chestno/internal/webhook"
)

// @title Chestno Status API
// @version 1.0
// @description Organization status level lifecycle service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,

			// Cache
			provideCache,

			// Postgres
			postgres.NewDB,
			provideDBClient,

			// HTTP client for webhook delivery
			httpclient.NewDefaultClient,

			// Repositories
			repository.NewSubscriptionRepository,
			repository.NewStatusLevelGrantRepository,
			repository.NewStatusHistoryRepository,

			// PubSub router
			pubsubRouter.NewRouter,
		),
	)

	// Webhook module (must be initialised before services)
	opts = append(opts, webhook.Module)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewStatusLevelService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideCache(cfg *config.Configuration, log *logger.Logger) cache.Cache {
	return cache.Initialize(cfg, log)
}

func provideDBClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideHandlers(
	logger *logger.Logger,
	statusLevelService service.StatusLevelService,
) api.Handlers {
	return api.Handlers{
		Health:          v1.NewHealthHandler(),
		Webhook:         v1.NewWebhookHandler(statusLevelService, logger),
		Organization:    v1.NewOrganizationHandler(statusLevelService, logger),
		CronStatusLevel: cron.NewStatusLevelHandler(statusLevelService, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	router *pubsubRouter.Router,
	webhookService *webhook.WebhookService,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		startMessageRouter(lc, router, webhookService, log)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
		startMessageRouter(lc, router, webhookService, log)
	case types.ModeConsumer:
		startMessageRouter(lc, router, webhookService, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startMessageRouter(
	lc fx.Lifecycle,
	router *pubsubRouter.Router,
	webhookService *webhook.WebhookService,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := webhookService.Start(ctx, router); err != nil {
				return err
			}
			go func() {
				if err := router.Run(); err != nil {
					log.Errorw("message router stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := webhookService.Stop(); err != nil {
				log.Errorw("failed to stop webhook service", "error", err)
			}
			return router.Close()
		},
	})
}
