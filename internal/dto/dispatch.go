package dto

import (
	"time"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DispatchRequest optionally names the recipients of one send or estimate.
// When empty, the campaign's stored recipient list is used.
type DispatchRequest struct {
	Recipients []string `json:"recipients" binding:"omitempty,min=1"`
}

// DispatchEstimateResponse quotes what sending a campaign would cost without
// sending anything.
type DispatchEstimateResponse struct {
	CampaignID     string          `json:"campaignID"`
	RecipientCount int             `json:"recipientCount"`
	MessageParts   int             `json:"messageParts"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	Balance        decimal.Decimal `json:"balance"`
}

// DispatchResponse returns the recorded dispatch event and, for billed sends,
// the ledger entry that charged it.
type DispatchResponse struct {
	Dispatch DispatchEventResponse `json:"dispatch"`
	Entry    *LedgerEntryResponse  `json:"entry,omitempty"`
}

// DispatchEventResponse defines the data returned for a dispatch event.
type DispatchEventResponse struct {
	DispatchID     string          `json:"dispatchID"`
	CampaignID     string          `json:"campaignID"`
	CompanyID      string          `json:"companyID"`
	RecipientCount int             `json:"recipientCount"`
	SuccessCount   int             `json:"successCount"`
	MessageParts   int             `json:"messageParts"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ListDispatchesResponse wraps a page of dispatch events.
type ListDispatchesResponse struct {
	Dispatches []DispatchEventResponse `json:"dispatches"`
	NextToken  *string                 `json:"nextToken,omitempty"`
}

// ToDispatchEventResponse converts a domain.DispatchEvent to DispatchEventResponse DTO.
func ToDispatchEventResponse(d *domain.DispatchEvent) DispatchEventResponse {
	return DispatchEventResponse{
		DispatchID:     d.DispatchID,
		CampaignID:     d.CampaignID,
		CompanyID:      d.CompanyID,
		RecipientCount: d.RecipientCount,
		SuccessCount:   d.SuccessCount,
		MessageParts:   d.MessageParts,
		UnitPrice:      d.UnitPrice,
		TotalCost:      d.TotalCost,
		CreatedAt:      d.CreatedAt,
	}
}

// ToListDispatchesResponse converts a page of domain.DispatchEvent to ListDispatchesResponse DTO.
func ToListDispatchesResponse(events []domain.DispatchEvent, nextToken *string) ListDispatchesResponse {
	responses := make([]DispatchEventResponse, len(events))
	for i, event := range events {
		responses[i] = ToDispatchEventResponse(&event)
	}
	return ListDispatchesResponse{
		Dispatches: responses,
		NextToken:  nextToken,
	}
}
