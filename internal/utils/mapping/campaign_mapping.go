package mapping

import (
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/models"
)

// ToModelCampaign converts a domain Campaign to a model Campaign
func ToModelCampaign(d domain.Campaign) models.Campaign {
	return models.Campaign{
		CampaignID:  d.CampaignID,
		CompanyID:   d.CompanyID,
		Title:       d.Title,
		Message:     d.Message,
		Recipients:  d.Recipients,
		Comment:     d.Comment,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCampaign converts a model Campaign to a domain Campaign
func ToDomainCampaign(m models.Campaign) domain.Campaign {
	return domain.Campaign{
		CampaignID:  m.CampaignID,
		CompanyID:   m.CompanyID,
		Title:       m.Title,
		Message:     m.Message,
		Recipients:  m.Recipients,
		Comment:     m.Comment,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCampaignSlice converts a slice of model Campaigns to a slice of domain Campaigns
func ToDomainCampaignSlice(ms []models.Campaign) []domain.Campaign {
	ds := make([]domain.Campaign, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCampaign(m)
	}
	return ds
}
