package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
	"github.com/abecha/sms_forfait_app/internal/dto"
	"github.com/abecha/sms_forfait_app/internal/middleware"
)

// campaignHandler handles HTTP requests on individual campaigns, including
// the dispatch workflow.
type campaignHandler struct {
	campaignService portssvc.CampaignSvcFacade
	dispatchService portssvc.DispatchSvcFacade
}

func newCampaignHandler(cs portssvc.CampaignSvcFacade, ds portssvc.DispatchSvcFacade) *campaignHandler {
	return &campaignHandler{
		campaignService: cs,
		dispatchService: ds,
	}
}

// registerCampaignRoutes registers routes on individual campaigns.
func registerCampaignRoutes(rg *gin.RouterGroup, campaignService portssvc.CampaignSvcFacade, dispatchService portssvc.DispatchSvcFacade) {
	h := newCampaignHandler(campaignService, dispatchService)

	campaigns := rg.Group("/campaigns")
	{
		view := campaigns.Group("", middleware.RequireCapability(domain.CapViewCompanyActivity))
		{
			view.GET("/:campaignID", h.getCampaignByID)
			view.GET("/:campaignID/dispatches", h.listDispatches)
		}

		manage := campaigns.Group("", middleware.RequireCapability(domain.CapManageCampaigns))
		{
			manage.PUT("/:campaignID", h.updateCampaign)
		}

		dispatch := campaigns.Group("", middleware.RequireCapability(domain.CapDispatchCampaign))
		{
			dispatch.POST("/:campaignID/estimate", h.estimateDispatch)
			dispatch.POST("/:campaignID/dispatch", h.dispatchCampaign)
		}
	}
}

// getCampaignByID godoc
// @Summary Get a campaign
// @Description Retrieves a campaign by ID
// @Tags campaigns
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Success 200 {object} dto.CampaignResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns/{campaignID} [get]
func (h *campaignHandler) getCampaignByID(c *gin.Context) {
	campaign, err := h.campaignService.GetCampaignByID(c.Request.Context(), c.Param("campaignID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve campaign")
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

// updateCampaign godoc
// @Summary Update a campaign
// @Description Updates the message or recipient list of a campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Param campaign body dto.UpdateCampaignRequest true "Fields to update"
// @Success 200 {object} dto.CampaignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns/{campaignID} [put]
func (h *campaignHandler) updateCampaign(c *gin.Context) {
	var req dto.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.campaignService.UpdateCampaign(c.Request.Context(), c.Param("campaignID"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to update campaign")
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignResponse(updated))
}

// estimateDispatch godoc
// @Summary Estimate a dispatch
// @Description Quotes what sending the campaign would cost, without sending anything. Recipients given in the body replace the campaign's stored list.
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Param request body dto.DispatchRequest false "Optional recipient override"
// @Success 200 {object} dto.DispatchEstimateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns/{campaignID}/estimate [post]
func (h *campaignHandler) estimateDispatch(c *gin.Context) {
	var req dto.DispatchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	estimate, err := h.dispatchService.EstimateDispatch(c.Request.Context(), c.Param("campaignID"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to estimate dispatch")
		return
	}

	c.JSON(http.StatusOK, estimate)
}

// dispatchCampaign godoc
// @Summary Dispatch a campaign
// @Description Sends the campaign and charges the cost to the company's balance. Recipients given in the body replace the campaign's stored list.
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Param request body dto.DispatchRequest false "Optional recipient override"
// @Success 200 {object} dto.DispatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns/{campaignID}/dispatch [post]
func (h *campaignHandler) dispatchCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DispatchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.dispatchService.DispatchCampaign(c.Request.Context(), c.Param("campaignID"), req, requestingUserID, middleware.RequestComment(c))
	if err != nil {
		respondWithError(c, err, "Failed to dispatch campaign")
		return
	}

	logger.Info("Campaign dispatched via API",
		slog.String("campaign_id", resp.Dispatch.CampaignID),
		slog.Int("success_count", resp.Dispatch.SuccessCount),
	)
	c.JSON(http.StatusOK, resp)
}

// listDispatches godoc
// @Summary List campaign dispatches
// @Description Retrieves a paginated list of a campaign's dispatch events
// @Tags campaigns
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListDispatchesResponse
// @Security BearerAuth
// @Router /campaigns/{campaignID}/dispatches [get]
func (h *campaignHandler) listDispatches(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.dispatchService.ListDispatchesByCampaign(c.Request.Context(), c.Param("campaignID"), params)
	if err != nil {
		respondWithError(c, err, "Failed to list dispatches")
		return
	}

	c.JSON(http.StatusOK, resp)
}
