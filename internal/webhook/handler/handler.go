package handler

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/chestno/chestno/internal/config"
	"github.com/chestno/chestno/internal/httpclient"
	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/pubsub"
	pubsubRouter "github.com/chestno/chestno/internal/pubsub/router"
	"github.com/chestno/chestno/internal/types"
)

// Handler interface for processing webhook events
type Handler interface {
	RegisterHandler(router *pubsubRouter.Router)
}

// handler delivers queued webhook events to tenant endpoints
type handler struct {
	pubSub pubsub.PubSub
	config *config.Webhook
	client httpclient.Client
	logger *logger.Logger
}

// NewHandler creates a new webhook delivery handler
func NewHandler(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	client httpclient.Client,
	logger *logger.Logger,
) (Handler, error) {
	return &handler{
		pubSub: pubSub,
		config: &cfg.Webhook,
		client: client,
		logger: logger,
	}, nil
}

func (h *handler) RegisterHandler(router *pubsubRouter.Router) {
	router.AddNoPublishHandler(
		"webhook_handler",
		h.config.Topic,
		h.pubSub,
		h.processMessage,
	)
}

// processMessage processes a single webhook message
func (h *handler) processMessage(msg *message.Message) error {
	ctx := msg.Context()

	var event types.WebhookEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.logger.Errorw("failed to unmarshal webhook event",
			"error", err,
			"message_uuid", msg.UUID,
		)
		return nil // Don't retry on unmarshal errors
	}

	ctx = context.WithValue(ctx, types.CtxTenantID, event.TenantID)
	ctx = context.WithValue(ctx, types.CtxEnvironmentID, event.EnvironmentID)
	ctx = context.WithValue(ctx, types.CtxUserID, event.UserID)

	// Resolve tenant delivery config
	tenantCfg, ok := h.config.Tenants[event.TenantID]
	if !ok {
		h.logger.Warnw("tenant webhook config not found",
			"tenant_id", event.TenantID,
			"message_uuid", msg.UUID,
		)
		// Don't retry if tenant not found
		return nil
	}

	if !tenantCfg.Enabled {
		h.logger.Debugw("webhooks disabled for tenant",
			"tenant_id", event.TenantID,
			"message_uuid", msg.UUID,
		)
		return nil
	}

	for _, excludedEvent := range tenantCfg.ExcludedEvents {
		if excludedEvent == event.EventName {
			h.logger.Debugw("event excluded for tenant",
				"tenant_id", event.TenantID,
				"event", event.EventName,
			)
			return nil
		}
	}

	body, err := json.Marshal(&event)
	if err != nil {
		return err
	}

	req := &httpclient.Request{
		Method:  "POST",
		URL:     tenantCfg.Endpoint,
		Headers: tenantCfg.Headers,
		Body:    body,
	}

	resp, err := h.client.Send(ctx, req)
	if err != nil {
		h.logger.Errorw("failed to send webhook",
			"error", err,
			"message_uuid", msg.UUID,
			"tenant_id", event.TenantID,
			"event", event.EventName,
		)
		if !pubsubRouter.ShouldRetry(h.logger, err) {
			return nil
		}
		return err
	}

	h.logger.Infow("webhook sent successfully",
		"message_uuid", msg.UUID,
		"tenant_id", event.TenantID,
		"event", event.EventName,
		"status_code", resp.StatusCode,
	)

	return nil
}
