package repositories

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
)

// OfferReader defines read operations for offer data
type OfferReader interface {
	// FindOfferByID retrieves a specific offer by its unique identifier.
	FindOfferByID(ctx context.Context, offerID string) (*domain.Offer, error)

	// FindCurrentOffer retrieves the single offer flagged as current.
	FindCurrentOffer(ctx context.Context) (*domain.Offer, error)

	// ListOffers retrieves a paginated list of offers using token-based pagination.
	ListOffers(ctx context.Context, limit int, nextToken *string) ([]domain.Offer, *string, error)
}

// OfferWriter defines write operations for offer data
type OfferWriter interface {
	// SaveCurrentOffer persists a new offer and clears the current flag on
	// every other offer within the same transaction, so exactly one offer is
	// current afterwards.
	SaveCurrentOffer(ctx context.Context, offer domain.Offer) error

	// UpdateOffer updates the mutable fields of an offer.
	UpdateOffer(ctx context.Context, offer domain.Offer) error
}

// OfferRepositoryFacade combines all offer-related repository interfaces
type OfferRepositoryFacade interface {
	OfferReader
	OfferWriter
}

// OfferRepositoryWithTx extends OfferRepositoryFacade with transaction capabilities
type OfferRepositoryWithTx interface {
	OfferRepositoryFacade
	TransactionManager
}
