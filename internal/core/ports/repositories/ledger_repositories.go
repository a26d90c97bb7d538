package repositories

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for ledger data
type LedgerReader interface {
	// FindNewestEntry retrieves the newest ledger entry of a company, or nil
	// when the company has no entries yet. The newest entry carries the
	// current balance.
	FindNewestEntry(ctx context.Context, companyID string) (*domain.LedgerEntry, error)

	// FindNewestDebit retrieves the newest debit entry of a company, or nil.
	FindNewestDebit(ctx context.Context, companyID string) (*domain.LedgerEntry, error)

	// SumCredits returns the total credits ever granted to a company.
	SumCredits(ctx context.Context, companyID string) (decimal.Decimal, error)

	// ListEntriesByCompany retrieves a paginated list of a company's ledger
	// entries, newest first, using token-based pagination.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines the append operations of the ledger. Both methods
// serialize per company: they take a transaction-scoped advisory lock on the
// company, re-read the newest entry under the lock, and derive the new
// entry's initial balance from it, so concurrent appends cannot both chain
// off the same predecessor.
type LedgerWriter interface {
	// AppendCredit marks the pending subscription activated and appends the
	// credit entry that grants its offer's credits, in one transaction.
	// Returns apperrors.ErrConflict when the subscription is not pending.
	AppendCredit(ctx context.Context, subscription domain.Subscription, credits decimal.Decimal, activatedBy string) (*domain.LedgerEntry, error)

	// AppendDebit persists a successful dispatch event and appends the debit
	// entry that charges its total cost, in one transaction. Returns an
	// apperrors.InsufficientBalanceError when the balance under the lock no
	// longer covers the cost.
	AppendDebit(ctx context.Context, event domain.DispatchEvent, createdBy string) (*domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
