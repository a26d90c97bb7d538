package domain

import "github.com/shopspring/decimal"

// LedgerEntry is one immutable row of a company's credit ledger. Each entry
// snapshots the balance before the movement (Initial) plus exactly one of a
// credit (subscription activation) or a debit (campaign dispatch). The
// running balance is never stored as mutable state; it is always derived
// from the newest entry.
//
// Invariant for every entry: Balance() == Initial + Credit - Debit, and the
// Initial of an entry equals the Balance() of the entry that precedes it in
// the company's chain (or zero for the first entry).
type LedgerEntry struct {
	EntryID        string          `json:"entryID"` // Primary Key (UUID)
	CompanyID      string          `json:"companyID"`
	SubscriptionID *string         `json:"subscriptionID,omitempty"` // set on credit entries
	CampaignID     *string         `json:"campaignID,omitempty"`     // set on debit entries
	Initial        decimal.Decimal `json:"initial"`
	Credit         decimal.Decimal `json:"credit"`
	Debit          decimal.Decimal `json:"debit"`
	Comment        string          `json:"comment"`
	AuditFields
}

// Balance returns the credit balance after this entry is applied.
func (e LedgerEntry) Balance() decimal.Decimal {
	return e.Initial.Add(e.Credit).Sub(e.Debit)
}

// NewCreditEntry builds the successor entry that adds credits to the chain
// whose newest entry is prev (nil when the chain is empty).
func NewCreditEntry(prev *LedgerEntry, companyID, subscriptionID string, credits decimal.Decimal) LedgerEntry {
	entry := LedgerEntry{
		CompanyID:      companyID,
		SubscriptionID: &subscriptionID,
		Credit:         credits,
	}
	if prev != nil {
		entry.Initial = prev.Balance()
	}
	return entry
}

// NewDebitEntry builds the successor entry that consumes credits from the
// chain whose newest entry is prev. The caller must have verified that the
// chain is non-empty and holds at least cost credits.
func NewDebitEntry(prev LedgerEntry, campaignID string, cost decimal.Decimal) LedgerEntry {
	return LedgerEntry{
		CompanyID:  prev.CompanyID,
		CampaignID: &campaignID,
		Initial:    prev.Balance(),
		Debit:      cost,
	}
}
