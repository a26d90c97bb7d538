package repositories

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
)

// TokenReader defines read operations for the refresh-token whitelist
type TokenReader interface {
	// FindRefreshToken retrieves a whitelisted refresh token by its value.
	FindRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error)
}

// TokenWriter defines write operations for the refresh-token whitelist
type TokenWriter interface {
	// SaveRefreshToken whitelists a freshly issued refresh token.
	SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error

	// MarkTokenUsed marks a refresh token consumed so a replay is rejected.
	MarkTokenUsed(ctx context.Context, tokenID string) error

	// DeleteTokensForUser removes every whitelisted token of a user.
	DeleteTokensForUser(ctx context.Context, userID string) error
}

// TokenRepositoryFacade combines all token-related repository interfaces
type TokenRepositoryFacade interface {
	TokenReader
	TokenWriter
}

// TokenRepositoryWithTx extends TokenRepositoryFacade with transaction capabilities
type TokenRepositoryWithTx interface {
	TokenRepositoryFacade
	TransactionManager
}
