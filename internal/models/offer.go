package models

import "github.com/shopspring/decimal"

// Offer represents an offer row.
type Offer struct {
	OfferID     string          `db:"offer_id"`
	Designation string          `db:"designation"`
	Credits     decimal.Decimal `db:"credits"`
	Price       decimal.Decimal `db:"price"`
	IsCurrent   bool            `db:"is_current"`
	Comment     string          `db:"comment"`
	AuditFields
}
