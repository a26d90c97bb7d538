package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
	"github.com/abecha/sms_forfait_app/internal/dto"
	"github.com/abecha/sms_forfait_app/internal/middleware"
)

// subscriptionService manages subscription purchase and activation.
type subscriptionService struct {
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	offerRepo        portsrepo.OfferRepositoryFacade
	companyRepo      portsrepo.CompanyRepositoryFacade
	ledgerRepo       portsrepo.LedgerRepositoryFacade
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade,
	offerRepo portsrepo.OfferRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		offerRepo:        offerRepo,
		companyRepo:      companyRepo,
		ledgerRepo:       ledgerRepo,
	}
}

var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

// CreateSubscription records the purchase of an offer by a company. The
// subscription starts pending; its credits exist nowhere until activation.
func (s *subscriptionService) CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest, creatorUserID string, comment string) (*domain.Subscription, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID); err != nil {
		return nil, fmt.Errorf("company lookup failed: %w", err)
	}
	if _, err := s.offerRepo.FindOfferByID(ctx, req.OfferID); err != nil {
		return nil, fmt.Errorf("offer lookup failed: %w", err)
	}

	now := time.Now().UTC()
	subscription := domain.Subscription{
		SubscriptionID: uuid.NewString(),
		CompanyID:      req.CompanyID,
		OfferID:        req.OfferID,
		StartDate:      now,
		EndDate:        now.Add(domain.SubscriptionTerm),
		Status:         domain.SubscriptionPending,
		Comment:        comment,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.subscriptionRepo.SaveSubscription(ctx, subscription); err != nil {
		logger.Error("Failed to save subscription", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Subscription created",
		slog.String("subscription_id", subscription.SubscriptionID),
		slog.String("company_id", subscription.CompanyID),
	)
	return &subscription, nil
}

// ActivateSubscription flips a pending subscription to activated and mints
// the credit entry that grants its offer's credits. Repository-level locking
// makes the flip and the mint atomic; a repeated activation returns
// ErrConflict and mints nothing.
func (s *subscriptionService) ActivateSubscription(ctx context.Context, subscriptionID string, validatorUserID string, comment string) (*dto.ActivateSubscriptionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	subscription, err := s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if subscription.Status != domain.SubscriptionPending {
		return nil, fmt.Errorf("subscription %s is not pending: %w", subscriptionID, apperrors.ErrConflict)
	}

	offer, err := s.offerRepo.FindOfferByID(ctx, subscription.OfferID)
	if err != nil {
		return nil, fmt.Errorf("offer lookup failed: %w", err)
	}

	subscription.Comment = comment
	entry, err := s.ledgerRepo.AppendCredit(ctx, *subscription, offer.Credits, validatorUserID)
	if err != nil {
		logger.Warn("Subscription activation failed",
			slog.String("subscription_id", subscriptionID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	// Re-read for the status and activator written inside the transaction.
	activated, err := s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	logger.Info("Subscription activated",
		slog.String("subscription_id", subscriptionID),
		slog.String("entry_id", entry.EntryID),
		slog.String("credits", entry.Credit.String()),
	)

	return &dto.ActivateSubscriptionResponse{
		Subscription: dto.ToSubscriptionResponse(activated),
		Entry:        dto.ToLedgerEntryResponse(entry),
	}, nil
}

func (s *subscriptionService) GetSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	return s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID)
}

func (s *subscriptionService) ListSubscriptionsByCompany(ctx context.Context, companyID string, params dto.ListParams) (*dto.ListSubscriptionsResponse, error) {
	subs, nextToken, err := s.subscriptionRepo.ListSubscriptionsByCompany(ctx, companyID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListSubscriptionsResponse(subs, nextToken)
	return &resp, nil
}

func (s *subscriptionService) ListPendingSubscriptions(ctx context.Context, params dto.ListParams) (*dto.ListSubscriptionsResponse, error) {
	subs, nextToken, err := s.subscriptionRepo.ListPendingSubscriptions(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListSubscriptionsResponse(subs, nextToken)
	return &resp, nil
}
