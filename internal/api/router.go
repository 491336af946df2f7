package api

import (
	"github.com/gin-gonic/gin"

	"github.com/chestno/chestno/internal/api/cron"
	v1 "github.com/chestno/chestno/internal/api/v1"
	"github.com/chestno/chestno/internal/rest/middleware"
)

type Handlers struct {
	Health          *v1.HealthHandler
	Webhook         *v1.WebhookHandler
	Organization    *v1.OrganizationHandler
	CronStatusLevel *cron.StatusLevelHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.TenantContextMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	// Cron routes, triggered by an external scheduler
	cronGroup := router.Group("/cron")
	registerCronRoutes(cronGroup, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Billing webhook ingress
	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/billing", handlers.Webhook.HandleBillingEvent)
	}

	// Organization status routes
	organizations := router.Group("/organizations")
	{
		organizations.GET("/:id/status", handlers.Organization.GetStatusSummary)
		organizations.GET("/:id/status/history", handlers.Organization.GetStatusHistory)
		organizations.POST("/:id/status/grants", handlers.Organization.CreateManualGrant)
		organizations.DELETE("/:id/status/grants", handlers.Organization.RevokeManualGrant)
	}
}

func registerCronRoutes(router *gin.RouterGroup, handlers Handlers) {
	statusLevels := router.Group("/status-levels")
	{
		statusLevels.POST("/sweep-grace-periods", handlers.CronStatusLevel.SweepGracePeriods)
	}
}
