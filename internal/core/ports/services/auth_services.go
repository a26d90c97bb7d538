package services

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/dto"
)

// AuthSvcFacade defines the authentication service: login, refresh-token
// rotation against the whitelist, and logout.
type AuthSvcFacade interface {
	// Login verifies credentials and issues an access/refresh token pair.
	// The refresh token is whitelisted until used or expired.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// Refresh exchanges an unused whitelisted refresh token for a fresh pair
	// and marks the presented token used.
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)

	// Logout revokes every whitelisted refresh token of the user.
	Logout(ctx context.Context, userID string) error
}
