package dto

import (
	"time"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID        string          `json:"entryID"`
	CompanyID      string          `json:"companyID"`
	SubscriptionID *string         `json:"subscriptionID,omitempty"`
	CampaignID     *string         `json:"campaignID,omitempty"`
	Initial        decimal.Decimal `json:"initial"`
	Credit         decimal.Decimal `json:"credit"`
	Debit          decimal.Decimal `json:"debit"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ListLedgerEntriesResponse wraps a page of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// BalanceResponse carries the current credit balance of a company.
type BalanceResponse struct {
	CompanyID string          `json:"companyID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:        e.EntryID,
		CompanyID:      e.CompanyID,
		SubscriptionID: e.SubscriptionID,
		CampaignID:     e.CampaignID,
		Initial:        e.Initial,
		Credit:         e.Credit,
		Debit:          e.Debit,
		Balance:        e.Balance(),
		CreatedAt:      e.CreatedAt,
	}
}

// ToListLedgerEntriesResponse converts a page of domain.LedgerEntry to ListLedgerEntriesResponse DTO.
func ToListLedgerEntriesResponse(entries []domain.LedgerEntry, nextToken *string) ListLedgerEntriesResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToLedgerEntryResponse(&entry)
	}
	return ListLedgerEntriesResponse{
		Entries:   responses,
		NextToken: nextToken,
	}
}
