package domain

import "time"

// SubscriptionStatus indicates the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "PENDING"
	SubscriptionActivated SubscriptionStatus = "ACTIVATED"
)

// SubscriptionTerm is the fixed validity period of a purchased subscription.
const SubscriptionTerm = 30 * 24 * time.Hour

// Subscription represents one purchased offer for one company. It is created
// PENDING at purchase time and transitions to ACTIVATED exactly once, when a
// VALIDATEUR triggers activation and the ledger entry is minted.
type Subscription struct {
	SubscriptionID string             `json:"subscriptionID"` // Primary Key (UUID)
	CompanyID      string             `json:"companyID"`
	OfferID        string             `json:"offerID"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"` // StartDate + SubscriptionTerm
	Status         SubscriptionStatus `json:"status"`
	ActivatedBy    *string            `json:"activatedBy,omitempty"` // UserID of the validator
	Comment        string             `json:"comment"`
	AuditFields
}

// IsActive reports whether the subscription is usable at the given instant:
// it must have been activated and its end date must not have passed. The
// comparison is at day granularity, matching how end dates are stored.
func (s Subscription) IsActive(now time.Time) bool {
	if s.Status != SubscriptionActivated {
		return false
	}
	day := func(t time.Time) time.Time {
		y, m, d := t.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return !day(now).After(day(s.EndDate))
}
