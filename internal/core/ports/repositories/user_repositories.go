package repositories

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by its unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by its login name.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users using token-based pagination.
	ListUsers(ctx context.Context, limit int, nextToken *string) ([]domain.User, *string, error)

	// MaxOperatorSequence returns the highest numeric suffix among the
	// auto-provisioned "user-NNNN" operator usernames, or zero when none
	// exist. The next provisioned company gets suffix max+1.
	MaxOperatorSequence(ctx context.Context) (int, error)

	// FindGrantByUserID retrieves the company grant of a user, if any.
	FindGrantByUserID(ctx context.Context, userID string) (*domain.AccessGrant, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates the mutable fields of a user.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// UserRepositoryWithTx extends UserRepositoryFacade with transaction capabilities
type UserRepositoryWithTx interface {
	UserRepositoryFacade
	TransactionManager
}
