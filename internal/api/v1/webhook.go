package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chestno/chestno/internal/api/dto"
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/service"
)

type WebhookHandler struct {
	service service.StatusLevelService
	log     *logger.Logger
}

func NewWebhookHandler(
	service service.StatusLevelService,
	log *logger.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log,
	}
}

// @Summary Ingest a billing subscription event
// @Description Apply a subscription status transition from the billing provider
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param event body dto.BillingWebhookRequest true "Billing event"
// @Success 200 {object} dto.BillingWebhookResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /webhooks/billing [post]
func (h *WebhookHandler) HandleBillingEvent(c *gin.Context) {
	var req dto.BillingWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.HandleSubscriptionStatusChange(c.Request.Context(), dto.SubscriptionStatusChangeRequest{
		OrganizationID:  req.OrganizationID,
		SubscriptionID:  req.SubscriptionID,
		NewStatus:       req.NewStatus,
		GracePeriodDays: req.GracePeriodDays,
	})
	if err != nil {
		h.log.Errorw("failed to process billing event",
			"error", err,
			"organization_id", req.OrganizationID,
			"subscription_id", req.SubscriptionID,
		)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.BillingWebhookResponse{
		SubscriptionStatusChangeResponse: resp,
	})
}
