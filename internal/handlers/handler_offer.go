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

// offerHandler handles HTTP requests related to the offer catalog.
type offerHandler struct {
	offerService portssvc.OfferSvcFacade
}

func newOfferHandler(os portssvc.OfferSvcFacade) *offerHandler {
	return &offerHandler{offerService: os}
}

// registerOfferRoutes registers routes related to offers.
func registerOfferRoutes(rg *gin.RouterGroup, offerService portssvc.OfferSvcFacade) {
	h := newOfferHandler(offerService)

	offers := rg.Group("/offers")
	{
		offers.GET("", h.listOffers)
		offers.GET("/current", h.getCurrentOffer)
		offers.GET("/:offerID", h.getOfferByID)

		manage := offers.Group("", middleware.RequireCapability(domain.CapManageOffers))
		{
			manage.POST("", h.createOffer)
			manage.PUT("/:offerID", h.updateOffer)
		}
	}
}

// createOffer godoc
// @Summary Publish an offer
// @Description Publishes a new offer, which becomes the current one
// @Tags offers
// @Accept json
// @Produce json
// @Param offer body dto.CreateOfferRequest true "Offer details"
// @Success 201 {object} dto.OfferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /offers [post]
func (h *offerHandler) createOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	offer, err := h.offerService.CreateOffer(c.Request.Context(), req, creatorUserID, middleware.RequestComment(c))
	if err != nil {
		respondWithError(c, err, "Failed to publish offer")
		return
	}

	logger.Info("Offer published via API", slog.String("offer_id", offer.OfferID))
	c.JSON(http.StatusCreated, dto.ToOfferResponse(offer))
}

// updateOffer godoc
// @Summary Update an offer
// @Description Updates the designation or price of an offer
// @Tags offers
// @Accept json
// @Produce json
// @Param offerID path string true "Offer ID"
// @Param offer body dto.UpdateOfferRequest true "Fields to update"
// @Success 200 {object} dto.OfferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /offers/{offerID} [put]
func (h *offerHandler) updateOffer(c *gin.Context) {
	var req dto.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.offerService.UpdateOffer(c.Request.Context(), c.Param("offerID"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to update offer")
		return
	}

	c.JSON(http.StatusOK, dto.ToOfferResponse(updated))
}

// listOffers godoc
// @Summary List offers
// @Description Retrieves a paginated list of offers
// @Tags offers
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListOffersResponse
// @Security BearerAuth
// @Router /offers [get]
func (h *offerHandler) listOffers(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.offerService.ListOffers(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list offers")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getCurrentOffer godoc
// @Summary Get the current offer
// @Description Retrieves the single offer currently on sale
// @Tags offers
// @Produce json
// @Success 200 {object} dto.OfferResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /offers/current [get]
func (h *offerHandler) getCurrentOffer(c *gin.Context) {
	offer, err := h.offerService.GetCurrentOffer(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to retrieve current offer")
		return
	}

	c.JSON(http.StatusOK, dto.ToOfferResponse(offer))
}

// getOfferByID godoc
// @Summary Get an offer
// @Description Retrieves an offer by ID
// @Tags offers
// @Produce json
// @Param offerID path string true "Offer ID"
// @Success 200 {object} dto.OfferResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /offers/{offerID} [get]
func (h *offerHandler) getOfferByID(c *gin.Context) {
	offer, err := h.offerService.GetOfferByID(c.Request.Context(), c.Param("offerID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve offer")
		return
	}

	c.JSON(http.StatusOK, dto.ToOfferResponse(offer))
}
