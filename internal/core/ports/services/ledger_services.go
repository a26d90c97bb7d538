package services

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade defines read operations over a company's credit ledger.
// The ledger itself is written only by subscription activation and campaign
// dispatch.
type LedgerSvcFacade interface {
	// GetBalance derives the current balance from the newest ledger entry.
	// A company with no entries has a zero balance.
	GetBalance(ctx context.Context, companyID string) (decimal.Decimal, error)

	// ListEntriesByCompany retrieves a paginated list of a company's ledger
	// entries, newest first.
	ListEntriesByCompany(ctx context.Context, companyID string, params dto.ListParams) (*dto.ListLedgerEntriesResponse, error)
}
