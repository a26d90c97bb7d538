package services

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/dto"
)

// CampaignReaderSvc defines read operations for campaign data
type CampaignReaderSvc interface {
	// GetCampaignByID retrieves a specific campaign by its ID.
	GetCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error)

	// ListCampaignsByCompany retrieves a paginated list of a company's campaigns.
	ListCampaignsByCompany(ctx context.Context, companyID string, params dto.ListParams) (*dto.ListCampaignsResponse, error)
}

// CampaignWriterSvc defines write operations for campaign data
type CampaignWriterSvc interface {
	// CreateCampaign persists a new campaign. Titles are unique per company,
	// compared case-insensitively, and recipients must be valid phone numbers.
	CreateCampaign(ctx context.Context, companyID string, req dto.CreateCampaignRequest, creatorUserID string, comment string) (*domain.Campaign, error)

	// UpdateCampaign updates campaign details.
	UpdateCampaign(ctx context.Context, campaignID string, req dto.UpdateCampaignRequest, requestingUserID string) (*domain.Campaign, error)
}

// CampaignSvcFacade combines all campaign-related service interfaces
type CampaignSvcFacade interface {
	CampaignReaderSvc
	CampaignWriterSvc
}
