package mapping

import (
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/models"
)

// ToModelDispatchEvent converts a domain DispatchEvent to a model DispatchEvent
func ToModelDispatchEvent(d domain.DispatchEvent) models.DispatchEvent {
	return models.DispatchEvent{
		DispatchID:     d.DispatchID,
		CampaignID:     d.CampaignID,
		CompanyID:      d.CompanyID,
		RecipientCount: d.RecipientCount,
		SuccessCount:   d.SuccessCount,
		MessageParts:   d.MessageParts,
		UnitPrice:      d.UnitPrice,
		TotalCost:      d.TotalCost,
		Comment:        d.Comment,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDispatchEvent converts a model DispatchEvent to a domain DispatchEvent
func ToDomainDispatchEvent(m models.DispatchEvent) domain.DispatchEvent {
	return domain.DispatchEvent{
		DispatchID:     m.DispatchID,
		CampaignID:     m.CampaignID,
		CompanyID:      m.CompanyID,
		RecipientCount: m.RecipientCount,
		SuccessCount:   m.SuccessCount,
		MessageParts:   m.MessageParts,
		UnitPrice:      m.UnitPrice,
		TotalCost:      m.TotalCost,
		Comment:        m.Comment,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDispatchEventSlice converts a slice of model DispatchEvents to a slice of domain DispatchEvents
func ToDomainDispatchEventSlice(ms []models.DispatchEvent) []domain.DispatchEvent {
	ds := make([]domain.DispatchEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDispatchEvent(m)
	}
	return ds
}
