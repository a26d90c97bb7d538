package mapping

import (
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/models"
)

// ToModelOffer converts a domain Offer to a model Offer
func ToModelOffer(d domain.Offer) models.Offer {
	return models.Offer{
		OfferID:     d.OfferID,
		Designation: d.Designation,
		Credits:     d.Credits,
		Price:       d.Price,
		IsCurrent:   d.IsCurrent,
		Comment:     d.Comment,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOffer converts a model Offer to a domain Offer
func ToDomainOffer(m models.Offer) domain.Offer {
	return domain.Offer{
		OfferID:     m.OfferID,
		Designation: m.Designation,
		Credits:     m.Credits,
		Price:       m.Price,
		IsCurrent:   m.IsCurrent,
		Comment:     m.Comment,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOfferSlice converts a slice of model Offers to a slice of domain Offers
func ToDomainOfferSlice(ms []models.Offer) []domain.Offer {
	ds := make([]domain.Offer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOffer(m)
	}
	return ds
}
