package models

import "github.com/shopspring/decimal"

// LedgerEntry represents one immutable ledger row. Rows are append-only;
// there is no update path for this table.
type LedgerEntry struct {
	EntryID        string          `db:"entry_id"`
	CompanyID      string          `db:"company_id"`
	SubscriptionID *string         `db:"subscription_id"` // Nullable
	CampaignID     *string         `db:"campaign_id"`     // Nullable
	Initial        decimal.Decimal `db:"initial"`
	Credit         decimal.Decimal `db:"entree"`
	Debit          decimal.Decimal `db:"sortie"`
	Comment        string          `db:"comment"`
	AuditFields
}
