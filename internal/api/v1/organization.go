package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chestno/chestno/internal/api/dto"
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/service"
	"github.com/chestno/chestno/internal/types"
)

type OrganizationHandler struct {
	service service.StatusLevelService
	log     *logger.Logger
}

func NewOrganizationHandler(
	service service.StatusLevelService,
	log *logger.Logger,
) *OrganizationHandler {
	return &OrganizationHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get organization status summary
// @Description Get the organization's current status level and active grants
// @Tags Organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationStatusSummaryResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /organizations/{id}/status [get]
func (h *OrganizationHandler) GetStatusSummary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("organization id is required").
			WithHint("Organization ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetOrganizationStatusSummary(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get organization status history
// @Description Get the organization's status level audit trail
// @Tags Organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param filter query types.StatusHistoryFilter false "Filter"
// @Success 200 {object} dto.ListStatusHistoryResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /organizations/{id}/status/history [get]
func (h *OrganizationHandler) GetStatusHistory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("organization id is required").
			WithHint("Organization ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	var filter types.StatusHistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetStatusHistory(c.Request.Context(), id, &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Grant a status level manually
// @Description Grant a status level independent of any subscription
// @Tags Organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param grant body dto.CreateManualGrantRequest true "Grant"
// @Success 201 {object} dto.EnsureLevelAResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /organizations/{id}/status/grants [post]
func (h *OrganizationHandler) CreateManualGrant(c *gin.Context) {
	id := c.Param("id")

	var req dto.CreateManualGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GrantManualLevel(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Revoke a manually granted status level
// @Description Revoke a subscription-independent status level grant
// @Tags Organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param revoke body dto.RevokeManualGrantRequest true "Revocation"
// @Success 200 {object} dto.RevokeLevelAResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /organizations/{id}/status/grants [delete]
func (h *OrganizationHandler) RevokeManualGrant(c *gin.Context) {
	id := c.Param("id")

	var req dto.RevokeManualGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RevokeManualLevel(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
