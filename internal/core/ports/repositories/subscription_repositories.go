package repositories

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
)

// SubscriptionReader defines read operations for subscription data
type SubscriptionReader interface {
	// FindSubscriptionByID retrieves a specific subscription by its unique identifier.
	FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)

	// FindNewestSubscription retrieves the most recently purchased
	// subscription of a company regardless of status, or ErrNotFound when
	// the company has never purchased one. Callers decide whether the
	// returned subscription is usable.
	FindNewestSubscription(ctx context.Context, companyID string) (*domain.Subscription, error)

	// ListSubscriptionsByCompany retrieves a paginated list of a company's subscriptions.
	ListSubscriptionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Subscription, *string, error)

	// ListPendingSubscriptions retrieves a paginated list of subscriptions awaiting activation.
	ListPendingSubscriptions(ctx context.Context, limit int, nextToken *string) ([]domain.Subscription, *string, error)
}

// SubscriptionWriter defines write operations for subscription data
type SubscriptionWriter interface {
	// SaveSubscription persists a new pending subscription.
	SaveSubscription(ctx context.Context, subscription domain.Subscription) error
}

// SubscriptionRepositoryFacade combines all subscription-related repository interfaces
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
}

// SubscriptionRepositoryWithTx extends SubscriptionRepositoryFacade with transaction capabilities
type SubscriptionRepositoryWithTx interface {
	SubscriptionRepositoryFacade
	TransactionManager
}
