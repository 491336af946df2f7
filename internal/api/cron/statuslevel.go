package cron

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/service"
)

// StatusLevelHandler handles status level related cron jobs
type StatusLevelHandler struct {
	statusLevelService service.StatusLevelService
	logger             *logger.Logger
}

// NewStatusLevelHandler creates a new status level cron handler
func NewStatusLevelHandler(
	statusLevelService service.StatusLevelService,
	logger *logger.Logger,
) *StatusLevelHandler {
	return &StatusLevelHandler{
		statusLevelService: statusLevelService,
		logger:             logger,
	}
}

// SweepGracePeriods revokes status levels for cancelled subscriptions whose
// grace period has expired. Catches organizations whose cancellation event
// arrived while the grace window was still open.
func (h *StatusLevelHandler) SweepGracePeriods(c *gin.Context) {
	h.logger.Infow("starting grace period sweep cron job")

	response, err := h.statusLevelService.ProcessExpiredGracePeriods(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to process expired grace periods",
			"error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("completed grace period sweep cron job",
		"scanned", response.Scanned,
		"revoked", response.Revoked,
		"failed", response.Failed,
	)
	c.JSON(http.StatusOK, response)
}
