package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
	"github.com/abecha/sms_forfait_app/internal/dto"
	"github.com/abecha/sms_forfait_app/internal/middleware"
)

// offerService manages the offer catalog.
type offerService struct {
	offerRepo portsrepo.OfferRepositoryFacade
}

// NewOfferService creates a new OfferService.
func NewOfferService(offerRepo portsrepo.OfferRepositoryFacade) portssvc.OfferSvcFacade {
	return &offerService{offerRepo: offerRepo}
}

var _ portssvc.OfferSvcFacade = (*offerService)(nil)

// CreateOffer publishes a new offer. The repository clears the current flag
// on every other offer in the same transaction.
func (s *offerService) CreateOffer(ctx context.Context, req dto.CreateOfferRequest, creatorUserID string, comment string) (*domain.Offer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Credits.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: credits must be positive", apperrors.ErrValidation)
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	offer := domain.Offer{
		OfferID:     uuid.NewString(),
		Designation: req.Designation,
		Credits:     req.Credits,
		Price:       req.Price,
		IsCurrent:   true,
		Comment:     comment,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.offerRepo.SaveCurrentOffer(ctx, offer); err != nil {
		logger.Error("Failed to save offer", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Offer published", slog.String("offer_id", offer.OfferID), slog.String("credits", offer.Credits.String()))
	return &offer, nil
}

func (s *offerService) UpdateOffer(ctx context.Context, offerID string, req dto.UpdateOfferRequest, requestingUserID string) (*domain.Offer, error) {
	offer, err := s.offerRepo.FindOfferByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if req.Designation != nil {
		offer.Designation = *req.Designation
	}
	if req.Price != nil {
		if req.Price.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
		}
		offer.Price = *req.Price
	}

	offer.LastUpdatedAt = time.Now().UTC()
	offer.LastUpdatedBy = requestingUserID

	if err := s.offerRepo.UpdateOffer(ctx, *offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *offerService) GetOfferByID(ctx context.Context, offerID string) (*domain.Offer, error) {
	return s.offerRepo.FindOfferByID(ctx, offerID)
}

func (s *offerService) GetCurrentOffer(ctx context.Context) (*domain.Offer, error) {
	return s.offerRepo.FindCurrentOffer(ctx)
}

func (s *offerService) ListOffers(ctx context.Context, params dto.ListParams) (*dto.ListOffersResponse, error) {
	offers, nextToken, err := s.offerRepo.ListOffers(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListOffersResponse(offers, nextToken)
	return &resp, nil
}
