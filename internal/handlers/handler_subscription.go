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

// subscriptionHandler handles HTTP requests related to subscriptions.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{subscriptionService: ss}
}

// registerSubscriptionRoutes registers routes related to subscriptions.
func registerSubscriptionRoutes(rg *gin.RouterGroup, subscriptionService portssvc.SubscriptionSvcFacade) {
	h := newSubscriptionHandler(subscriptionService)

	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.POST("", middleware.RequireCapability(domain.CapCreateSubscription), h.createSubscription)
		subscriptions.GET("/pending", middleware.RequireCapability(domain.CapActivateSubscrip), h.listPendingSubscriptions)
		subscriptions.GET("/:subscriptionID", middleware.RequireCapability(domain.CapViewCompanyActivity), h.getSubscriptionByID)
		subscriptions.POST("/:subscriptionID/activate", middleware.RequireCapability(domain.CapActivateSubscrip), h.activateSubscription)
	}
}

// createSubscription godoc
// @Summary Purchase a subscription
// @Description Records the purchase of an offer by a company. The subscription stays pending until a validator activates it.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body dto.CreateSubscriptionRequest true "Subscription details"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *subscriptionHandler) createSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), req, creatorUserID, middleware.RequestComment(c))
	if err != nil {
		respondWithError(c, err, "Failed to create subscription")
		return
	}

	logger.Info("Subscription created via API", slog.String("subscription_id", sub.SubscriptionID))
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub))
}

// activateSubscription godoc
// @Summary Activate a subscription
// @Description Activates a pending subscription and grants its offer's credits. Activating twice returns a conflict.
// @Tags subscriptions
// @Produce json
// @Param subscriptionID path string true "Subscription ID"
// @Success 200 {object} dto.ActivateSubscriptionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID}/activate [post]
func (h *subscriptionHandler) activateSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	validatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.subscriptionService.ActivateSubscription(c.Request.Context(), c.Param("subscriptionID"), validatorUserID, middleware.RequestComment(c))
	if err != nil {
		respondWithError(c, err, "Failed to activate subscription")
		return
	}

	logger.Info("Subscription activated via API",
		slog.String("subscription_id", resp.Subscription.SubscriptionID),
		slog.String("entry_id", resp.Entry.EntryID),
	)
	c.JSON(http.StatusOK, resp)
}

// listPendingSubscriptions godoc
// @Summary List pending subscriptions
// @Description Retrieves a paginated list of subscriptions awaiting activation
// @Tags subscriptions
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListSubscriptionsResponse
// @Security BearerAuth
// @Router /subscriptions/pending [get]
func (h *subscriptionHandler) listPendingSubscriptions(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.subscriptionService.ListPendingSubscriptions(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list pending subscriptions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getSubscriptionByID godoc
// @Summary Get a subscription
// @Description Retrieves a subscription by ID
// @Tags subscriptions
// @Produce json
// @Param subscriptionID path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID} [get]
func (h *subscriptionHandler) getSubscriptionByID(c *gin.Context) {
	sub, err := h.subscriptionService.GetSubscriptionByID(c.Request.Context(), c.Param("subscriptionID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve subscription")
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}
