package services

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/dto"
)

// SubscriptionReaderSvc defines read operations for subscription data
type SubscriptionReaderSvc interface {
	// GetSubscriptionByID retrieves a specific subscription by its ID.
	GetSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)

	// ListSubscriptionsByCompany retrieves a paginated list of a company's subscriptions.
	ListSubscriptionsByCompany(ctx context.Context, companyID string, params dto.ListParams) (*dto.ListSubscriptionsResponse, error)

	// ListPendingSubscriptions retrieves subscriptions awaiting activation.
	ListPendingSubscriptions(ctx context.Context, params dto.ListParams) (*dto.ListSubscriptionsResponse, error)
}

// SubscriptionWriterSvc defines write operations for subscription data
type SubscriptionWriterSvc interface {
	// CreateSubscription records the purchase of an offer by a company. The
	// subscription starts pending and grants nothing until activated.
	CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest, creatorUserID string, comment string) (*domain.Subscription, error)

	// ActivateSubscription activates a pending subscription and mints the
	// credit ledger entry for its offer's credits. Activating a subscription
	// that is not pending returns apperrors.ErrConflict.
	ActivateSubscription(ctx context.Context, subscriptionID string, validatorUserID string, comment string) (*dto.ActivateSubscriptionResponse, error)
}

// SubscriptionSvcFacade combines all subscription-related service interfaces
type SubscriptionSvcFacade interface {
	SubscriptionReaderSvc
	SubscriptionWriterSvc
}
