package mapping

import (
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:        d.EntryID,
		CompanyID:      d.CompanyID,
		SubscriptionID: d.SubscriptionID,
		CampaignID:     d.CampaignID,
		Initial:        d.Initial,
		Credit:         d.Credit,
		Debit:          d.Debit,
		Comment:        d.Comment,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        m.EntryID,
		CompanyID:      m.CompanyID,
		SubscriptionID: m.SubscriptionID,
		CampaignID:     m.CampaignID,
		Initial:        m.Initial,
		Credit:         m.Credit,
		Debit:          m.Debit,
		Comment:        m.Comment,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to a slice of domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
