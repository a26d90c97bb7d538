package services

import (
	"context"

	"github.com/shopspring/decimal"

	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
	"github.com/abecha/sms_forfait_app/internal/dto"
)

// ledgerService exposes read access to the credit ledger. Writes happen only
// through activation and dispatch.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetBalance derives the balance from the newest entry; an empty chain is a
// zero balance.
func (s *ledgerService) GetBalance(ctx context.Context, companyID string) (decimal.Decimal, error) {
	newest, err := s.ledgerRepo.FindNewestEntry(ctx, companyID)
	if err != nil {
		return decimal.Zero, err
	}
	if newest == nil {
		return decimal.Zero, nil
	}
	return newest.Balance(), nil
}

func (s *ledgerService) ListEntriesByCompany(ctx context.Context, companyID string, params dto.ListParams) (*dto.ListLedgerEntriesResponse, error) {
	entries, nextToken, err := s.ledgerRepo.ListEntriesByCompany(ctx, companyID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListLedgerEntriesResponse(entries, nextToken)
	return &resp, nil
}
