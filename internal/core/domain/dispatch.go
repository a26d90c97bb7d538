package domain

import "github.com/shopspring/decimal"

// DispatchEvent records one attempt to send a campaign: how many recipients
// were targeted, how many sends the gateway accepted, and what the attempt
// cost. Failed attempts are recorded with SuccessCount zero and no ledger
// debit, so the audit trail keeps them without charging the company.
type DispatchEvent struct {
	DispatchID     string          `json:"dispatchID"` // Primary Key (UUID)
	CampaignID     string          `json:"campaignID"`
	CompanyID      string          `json:"companyID"`
	RecipientCount int             `json:"recipientCount"`
	SuccessCount   int             `json:"successCount"`
	MessageParts   int             `json:"messageParts"` // billable parts per recipient
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	Comment        string          `json:"comment"`
	AuditFields
}
