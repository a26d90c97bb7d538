package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	"github.com/abecha/sms_forfait_app/internal/models"
	"github.com/abecha/sms_forfait_app/internal/utils/mapping"
)

type PgxTokenRepository struct {
	BaseRepository
}

func newPgxTokenRepository(db *pgxpool.Pool) *PgxTokenRepository {
	return &PgxTokenRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxTokenRepository implements portsrepo.TokenRepositoryWithTx
var _ portsrepo.TokenRepositoryWithTx = (*PgxTokenRepository)(nil)

func (r *PgxTokenRepository) SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error {
	m := mapping.ToModelRefreshToken(token)
	query := `
        INSERT INTO refresh_tokens (token_id, user_id, token, is_used, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.TokenID,
		m.UserID,
		m.Token,
		m.IsUsed,
		m.ExpiresAt,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (r *PgxTokenRepository) FindRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	query := `
        SELECT token_id, user_id, token, is_used, expires_at, created_at
        FROM refresh_tokens
        WHERE token = $1;
    `
	var m models.RefreshToken
	err := r.Pool.QueryRow(ctx, query, token).Scan(
		&m.TokenID,
		&m.UserID,
		&m.Token,
		&m.IsUsed,
		&m.ExpiresAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}

	result := mapping.ToDomainRefreshToken(m)
	return &result, nil
}

// MarkTokenUsed consumes a refresh token. Marking an already-used token
// affects zero rows and returns ErrConflict, which rejects replays.
func (r *PgxTokenRepository) MarkTokenUsed(ctx context.Context, tokenID string) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE refresh_tokens SET is_used = TRUE WHERE token_id = $1 AND is_used = FALSE;`, tokenID)
	if err != nil {
		return fmt.Errorf("failed to mark refresh token used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *PgxTokenRepository) DeleteTokensForUser(ctx context.Context, userID string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to delete refresh tokens for user %s: %w", userID, err)
	}
	return nil
}
