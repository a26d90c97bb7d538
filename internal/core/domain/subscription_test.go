package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscription_IsActive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name   string
		status SubscriptionStatus
		end    time.Time
		want   bool
	}{
		{name: "pending never active", status: SubscriptionPending, end: now.AddDate(0, 0, 10), want: false},
		{name: "activated within term", status: SubscriptionActivated, end: now.AddDate(0, 0, 10), want: true},
		{name: "activated on last day", status: SubscriptionActivated, end: now, want: true},
		{name: "activated same day later hour", status: SubscriptionActivated, end: now.Add(-2 * time.Hour), want: true},
		{name: "activated expired", status: SubscriptionActivated, end: now.AddDate(0, 0, -1), want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sub := Subscription{Status: tc.status, EndDate: tc.end}
			assert.Equal(t, tc.want, sub.IsActive(now))
		})
	}
}
