package repositories

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
)

// CampaignReader defines read operations for campaign data
type CampaignReader interface {
	// FindCampaignByID retrieves a specific campaign by its unique identifier.
	FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error)

	// FindCampaignByTitle retrieves a company's campaign by title. The lookup
	// is case-insensitive.
	FindCampaignByTitle(ctx context.Context, companyID string, title string) (*domain.Campaign, error)

	// ListCampaignsByCompany retrieves a paginated list of a company's campaigns.
	ListCampaignsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Campaign, *string, error)
}

// CampaignWriter defines write operations for campaign data
type CampaignWriter interface {
	// SaveCampaign persists a new campaign.
	SaveCampaign(ctx context.Context, campaign domain.Campaign) error

	// UpdateCampaign updates the mutable fields of a campaign.
	UpdateCampaign(ctx context.Context, campaign domain.Campaign) error
}

// CampaignRepositoryFacade combines all campaign-related repository interfaces
type CampaignRepositoryFacade interface {
	CampaignReader
	CampaignWriter
}

// CampaignRepositoryWithTx extends CampaignRepositoryFacade with transaction capabilities
type CampaignRepositoryWithTx interface {
	CampaignRepositoryFacade
	TransactionManager
}
