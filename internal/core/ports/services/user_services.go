package services

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by its ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, params dto.ListParams) (*dto.ListUsersResponse, error)

	// GetCompanyForUser resolves the company a USER-role account is bound to.
	GetCompanyForUser(ctx context.Context, userID string) (*domain.AccessGrant, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser persists a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string, comment string) (*domain.User, error)

	// UpdateUser updates user details.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// DeactivateUser marks a user as inactive. Superuser accounts cannot be
	// deactivated.
	DeactivateUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserAuthenticatorSvc defines authentication operations for users
type UserAuthenticatorSvc interface {
	// AuthenticateUser verifies a username/password pair and returns the user.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
