package domain

import "time"

// RefreshToken is one row of the refresh-token whitelist. A token may be
// exchanged for a new access/refresh pair exactly once; the exchange marks
// it used, so a replayed token is rejected.
type RefreshToken struct {
	TokenID   string    `json:"tokenID"` // Primary Key (UUID)
	UserID    string    `json:"userID"`
	Token     string    `json:"-"`
	IsUsed    bool      `json:"isUsed"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
