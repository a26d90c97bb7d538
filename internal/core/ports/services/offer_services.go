package services

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/dto"
)

// OfferReaderSvc defines read operations for offer data
type OfferReaderSvc interface {
	// GetOfferByID retrieves a specific offer by its ID.
	GetOfferByID(ctx context.Context, offerID string) (*domain.Offer, error)

	// GetCurrentOffer retrieves the offer currently on sale.
	GetCurrentOffer(ctx context.Context) (*domain.Offer, error)

	// ListOffers retrieves a paginated list of offers.
	ListOffers(ctx context.Context, params dto.ListParams) (*dto.ListOffersResponse, error)
}

// OfferWriterSvc defines write operations for offer data
type OfferWriterSvc interface {
	// CreateOffer publishes a new offer and makes it the current one.
	CreateOffer(ctx context.Context, req dto.CreateOfferRequest, creatorUserID string, comment string) (*domain.Offer, error)

	// UpdateOffer updates offer details.
	UpdateOffer(ctx context.Context, offerID string, req dto.UpdateOfferRequest, requestingUserID string) (*domain.Offer, error)
}

// OfferSvcFacade combines all offer-related service interfaces
type OfferSvcFacade interface {
	OfferReaderSvc
	OfferWriterSvc
}
