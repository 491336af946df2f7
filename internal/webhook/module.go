package webhook

import (
	"go.uber.org/fx"

	"github.com/chestno/chestno/internal/config"
	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/pubsub"
	"github.com/chestno/chestno/internal/pubsub/memory"
	"github.com/chestno/chestno/internal/types"
	"github.com/chestno/chestno/internal/webhook/handler"
	"github.com/chestno/chestno/internal/webhook/publisher"
)

// Module provides all webhook-related dependencies
var Module = fx.Options(
	fx.Provide(
		// PubSub for queueing webhook events
		providePubSub,

		// Publisher for emitting webhook events
		publisher.NewPublisher,

		// Handler for delivering webhook events
		handler.NewHandler,

		// Main webhook service
		NewWebhookService,
	),
)

func providePubSub(
	cfg *config.Configuration,
	logger *logger.Logger,
) pubsub.PubSub {
	switch cfg.Webhook.PubSub {
	case types.MemoryPubSub:
		return memory.NewPubSub(cfg, logger)
	}
	panic("unsupported pubsub type")
}
