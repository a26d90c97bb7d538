package dto

import (
	"time"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
)

// CreateSubscriptionRequest defines the data needed to purchase a subscription.
type CreateSubscriptionRequest struct {
	CompanyID string `json:"companyID" binding:"required,uuid"`
	OfferID   string `json:"offerID" binding:"required,uuid"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID string    `json:"subscriptionID"`
	CompanyID      string    `json:"companyID"`
	OfferID        string    `json:"offerID"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Status         string    `json:"status"`
	ActivatedBy    *string   `json:"activatedBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ActivateSubscriptionResponse returns the activated subscription together
// with the ledger entry that granted its credits.
type ActivateSubscriptionResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	Entry        LedgerEntryResponse  `json:"entry"`
}

// ListSubscriptionsResponse wraps a page of subscriptions.
type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// ToSubscriptionResponse converts a domain.Subscription to SubscriptionResponse DTO.
func ToSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID: s.SubscriptionID,
		CompanyID:      s.CompanyID,
		OfferID:        s.OfferID,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		Status:         string(s.Status),
		ActivatedBy:    s.ActivatedBy,
		CreatedAt:      s.CreatedAt,
	}
}

// ToListSubscriptionsResponse converts a page of domain.Subscription to ListSubscriptionsResponse DTO.
func ToListSubscriptionsResponse(subs []domain.Subscription, nextToken *string) ListSubscriptionsResponse {
	responses := make([]SubscriptionResponse, len(subs))
	for i, sub := range subs {
		responses[i] = ToSubscriptionResponse(&sub)
	}
	return ListSubscriptionsResponse{
		Subscriptions: responses,
		NextToken:     nextToken,
	}
}
