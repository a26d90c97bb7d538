package domain

import "github.com/shopspring/decimal"

// Offer is a purchasable catalog item: a quantity of SMS credits for a price.
// At most one offer is flagged current at a time; creating a new offer clears
// the flag on every other row inside the same transaction.
type Offer struct {
	OfferID     string          `json:"offerID"` // Primary Key (UUID)
	Designation string          `json:"designation"`
	Credits     decimal.Decimal `json:"credits"` // SMS credits granted on activation
	Price       decimal.Decimal `json:"price"`
	IsCurrent   bool            `json:"isCurrent"`
	Comment     string          `json:"comment"`
	AuditFields
}
