package repositories

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
)

// DispatchReader defines read operations for dispatch event data
type DispatchReader interface {
	// FindDispatchByID retrieves a specific dispatch event by its unique identifier.
	FindDispatchByID(ctx context.Context, dispatchID string) (*domain.DispatchEvent, error)

	// ListDispatchesByCampaign retrieves a paginated list of a campaign's dispatch events.
	ListDispatchesByCampaign(ctx context.Context, campaignID string, limit int, nextToken *string) ([]domain.DispatchEvent, *string, error)
}

// DispatchWriter defines write operations for dispatch event data
type DispatchWriter interface {
	// SaveDispatchEvent persists a dispatch event on its own, outside any
	// ledger transaction. Used for failed sends, which are recorded but not
	// charged.
	SaveDispatchEvent(ctx context.Context, event domain.DispatchEvent) error
}

// DispatchRepositoryFacade combines all dispatch-related repository interfaces
type DispatchRepositoryFacade interface {
	DispatchReader
	DispatchWriter
}

// DispatchRepositoryWithTx extends DispatchRepositoryFacade with transaction capabilities
type DispatchRepositoryWithTx interface {
	DispatchRepositoryFacade
	TransactionManager
}
