package mapping

import (
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/models"
)

// ToModelSubscription converts a domain Subscription to a model Subscription
func ToModelSubscription(d domain.Subscription) models.Subscription {
	return models.Subscription{
		SubscriptionID: d.SubscriptionID,
		CompanyID:      d.CompanyID,
		OfferID:        d.OfferID,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Status:         models.SubscriptionStatus(d.Status),
		ActivatedBy:    d.ActivatedBy,
		Comment:        d.Comment,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubscription converts a model Subscription to a domain Subscription
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID: m.SubscriptionID,
		CompanyID:      m.CompanyID,
		OfferID:        m.OfferID,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		Status:         domain.SubscriptionStatus(m.Status),
		ActivatedBy:    m.ActivatedBy,
		Comment:        m.Comment,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSubscriptionSlice converts a slice of model Subscriptions to a slice of domain Subscriptions
func ToDomainSubscriptionSlice(ms []models.Subscription) []domain.Subscription {
	ds := make([]domain.Subscription, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSubscription(m)
	}
	return ds
}
