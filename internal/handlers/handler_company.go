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

// companyHandler handles HTTP requests related to companies and their
// activity views.
type companyHandler struct {
	companyService      portssvc.CompanySvcFacade
	ledgerService       portssvc.LedgerSvcFacade
	subscriptionService portssvc.SubscriptionSvcFacade
	campaignService     portssvc.CampaignSvcFacade
}

func newCompanyHandler(
	cs portssvc.CompanySvcFacade,
	ls portssvc.LedgerSvcFacade,
	ss portssvc.SubscriptionSvcFacade,
	cps portssvc.CampaignSvcFacade,
) *companyHandler {
	return &companyHandler{
		companyService:      cs,
		ledgerService:       ls,
		subscriptionService: ss,
		campaignService:     cps,
	}
}

// registerCompanyRoutes registers routes related to companies.
func registerCompanyRoutes(
	rg *gin.RouterGroup,
	companyService portssvc.CompanySvcFacade,
	ledgerService portssvc.LedgerSvcFacade,
	subscriptionService portssvc.SubscriptionSvcFacade,
	campaignService portssvc.CampaignSvcFacade,
) {
	h := newCompanyHandler(companyService, ledgerService, subscriptionService, campaignService)

	companies := rg.Group("/companies")
	{
		manage := companies.Group("", middleware.RequireCapability(domain.CapManageCompanies))
		{
			manage.POST("", h.createCompany)
			manage.PUT("/:companyID", h.updateCompany)
		}

		view := companies.Group("", middleware.RequireCapability(domain.CapViewCompanyActivity))
		{
			view.GET("", h.listCompanies)
			view.GET("/:companyID", h.getCompanyByID)
			view.GET("/:companyID/dashboard", h.getDashboard)
			view.GET("/:companyID/balance", h.getBalance)
			view.GET("/:companyID/ledger", h.listLedgerEntries)
			view.GET("/:companyID/subscriptions", h.listSubscriptions)
			view.GET("/:companyID/campaigns", h.listCampaigns)
		}

		campaigns := companies.Group("", middleware.RequireCapability(domain.CapManageCampaigns))
		{
			campaigns.POST("/:companyID/campaigns", h.createCampaign)
		}
	}
}

// createCompany godoc
// @Summary Register a company
// @Description Registers a company and auto-provisions its operator account. The operator password is returned once.
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CreateCompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.companyService.CreateCompany(c.Request.Context(), req, creatorUserID, middleware.RequestComment(c))
	if err != nil {
		respondWithError(c, err, "Failed to register company")
		return
	}

	logger.Info("Company registered via API", slog.String("company_id", resp.Company.CompanyID))
	c.JSON(http.StatusCreated, resp)
}

// updateCompany godoc
// @Summary Update a company
// @Description Updates the mutable fields of a company
// @Tags companies
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param company body dto.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.companyService.UpdateCompany(c.Request.Context(), c.Param("companyID"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to update company")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(updated))
}

// listCompanies godoc
// @Summary List companies
// @Description Retrieves a paginated list of registered companies
// @Tags companies
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListCompaniesResponse
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.companyService.ListCompanies(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list companies")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getCompanyByID godoc
// @Summary Get a company
// @Description Retrieves a company by ID
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID} [get]
func (h *companyHandler) getCompanyByID(c *gin.Context) {
	company, err := h.companyService.GetCompanyByID(c.Request.Context(), c.Param("companyID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve company")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// getDashboard godoc
// @Summary Company dashboard
// @Description Summarizes the company's credit activity: balance, lifetime credits and last consumption
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.CompanyDashboardResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/dashboard [get]
func (h *companyHandler) getDashboard(c *gin.Context) {
	dash, err := h.companyService.GetDashboard(c.Request.Context(), c.Param("companyID"))
	if err != nil {
		respondWithError(c, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dash)
}

// getBalance godoc
// @Summary Company balance
// @Description Retrieves the company's current credit balance
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.BalanceResponse
// @Security BearerAuth
// @Router /companies/{companyID}/balance [get]
func (h *companyHandler) getBalance(c *gin.Context) {
	companyID := c.Param("companyID")

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), companyID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{CompanyID: companyID, Balance: balance})
}

// listLedgerEntries godoc
// @Summary Company ledger
// @Description Retrieves a paginated list of the company's ledger entries, newest first
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Security BearerAuth
// @Router /companies/{companyID}/ledger [get]
func (h *companyHandler) listLedgerEntries(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.ledgerService.ListEntriesByCompany(c.Request.Context(), c.Param("companyID"), params)
	if err != nil {
		respondWithError(c, err, "Failed to list ledger entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listSubscriptions godoc
// @Summary Company subscriptions
// @Description Retrieves a paginated list of the company's subscriptions
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListSubscriptionsResponse
// @Security BearerAuth
// @Router /companies/{companyID}/subscriptions [get]
func (h *companyHandler) listSubscriptions(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.subscriptionService.ListSubscriptionsByCompany(c.Request.Context(), c.Param("companyID"), params)
	if err != nil {
		respondWithError(c, err, "Failed to list subscriptions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listCampaigns godoc
// @Summary Company campaigns
// @Description Retrieves a paginated list of the company's campaigns
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListCampaignsResponse
// @Security BearerAuth
// @Router /companies/{companyID}/campaigns [get]
func (h *companyHandler) listCampaigns(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.campaignService.ListCampaignsByCompany(c.Request.Context(), c.Param("companyID"), params)
	if err != nil {
		respondWithError(c, err, "Failed to list campaigns")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// createCampaign godoc
// @Summary Create a campaign
// @Description Creates a message campaign for the company. Titles are unique per company and recipients must be valid phone numbers.
// @Tags campaigns
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param campaign body dto.CreateCampaignRequest true "Campaign details"
// @Success 201 {object} dto.CampaignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/campaigns [post]
func (h *companyHandler) createCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	campaign, err := h.campaignService.CreateCampaign(c.Request.Context(), c.Param("companyID"), req, creatorUserID, middleware.RequestComment(c))
	if err != nil {
		respondWithError(c, err, "Failed to create campaign")
		return
	}

	logger.Info("Campaign created via API", slog.String("campaign_id", campaign.CampaignID))
	c.JSON(http.StatusCreated, dto.ToCampaignResponse(campaign))
}
