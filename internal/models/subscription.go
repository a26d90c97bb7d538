package models

import "time"

// SubscriptionStatus indicates the state of a subscription row.
type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "PENDING"
	SubscriptionActivated SubscriptionStatus = "ACTIVATED"
)

// Subscription represents a subscription row.
type Subscription struct {
	SubscriptionID string             `db:"subscription_id"`
	CompanyID      string             `db:"company_id"`
	OfferID        string             `db:"offer_id"`
	StartDate      time.Time          `db:"start_date"`
	EndDate        time.Time          `db:"end_date"`
	Status         SubscriptionStatus `db:"status"`
	ActivatedBy    *string            `db:"activated_by"` // Nullable
	Comment        string             `db:"comment"`
	AuditFields
}
