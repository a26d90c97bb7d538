package dto

import (
	"time"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
)

// CreateCampaignRequest defines the data needed to create a campaign.
type CreateCampaignRequest struct {
	Title      string   `json:"title" binding:"required,max=100"`
	Message    string   `json:"message" binding:"required,max=1000"`
	Recipients []string `json:"recipients" binding:"required,min=1,dive,required"`
}

// UpdateCampaignRequest defines the data allowed for updating a campaign.
type UpdateCampaignRequest struct {
	Message    *string  `json:"message" binding:"omitempty,max=1000"`
	Recipients []string `json:"recipients" binding:"omitempty,min=1,dive,required"`
}

// CampaignResponse defines the data returned for a campaign.
type CampaignResponse struct {
	CampaignID     string    `json:"campaignID"`
	CompanyID      string    `json:"companyID"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	RecipientCount int       `json:"recipientCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListCampaignsResponse wraps a page of campaigns.
type ListCampaignsResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToCampaignResponse converts a domain.Campaign to CampaignResponse DTO.
func ToCampaignResponse(c *domain.Campaign) CampaignResponse {
	return CampaignResponse{
		CampaignID:     c.CampaignID,
		CompanyID:      c.CompanyID,
		Title:          c.Title,
		Message:        c.Message,
		RecipientCount: len(c.Recipients),
		CreatedAt:      c.CreatedAt,
	}
}

// ToListCampaignsResponse converts a page of domain.Campaign to ListCampaignsResponse DTO.
func ToListCampaignsResponse(campaigns []domain.Campaign, nextToken *string) ListCampaignsResponse {
	responses := make([]CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		responses[i] = ToCampaignResponse(&campaign)
	}
	return ListCampaignsResponse{
		Campaigns: responses,
		NextToken: nextToken,
	}
}
