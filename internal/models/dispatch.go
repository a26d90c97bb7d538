package models

import "github.com/shopspring/decimal"

// DispatchEvent represents one send attempt row.
type DispatchEvent struct {
	DispatchID     string          `db:"dispatch_id"`
	CampaignID     string          `db:"campaign_id"`
	CompanyID      string          `db:"company_id"`
	RecipientCount int             `db:"recipient_count"`
	SuccessCount   int             `db:"success_count"`
	MessageParts   int             `db:"message_parts"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	TotalCost      decimal.Decimal `db:"total_cost"`
	Comment        string          `db:"comment"`
	AuditFields
}
