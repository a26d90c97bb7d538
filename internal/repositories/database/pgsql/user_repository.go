package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	"github.com/abecha/sms_forfait_app/internal/models"
	"github.com/abecha/sms_forfait_app/internal/utils/mapping"
	"github.com/abecha/sms_forfait_app/internal/utils/pagination"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryWithTx
var _ portsrepo.UserRepositoryWithTx = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, password_hash, role, is_active, is_super, comment, created_at, created_by, last_updated_at, last_updated_by`

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Role,
		&m.IsActive,
		&m.IsSuper,
		&m.Comment,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func insertUserTx(ctx context.Context, tx pgx.Tx, m models.User) error {
	query := `
        INSERT INTO users (user_id, username, password_hash, role, is_active, is_super, comment, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := tx.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Role,
		m.IsActive,
		m.IsSuper,
		m.Comment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %s already taken: %w", m.Username, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertUserTx(ctx, tx, mapping.ToModelUser(user)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertGrantTx(ctx context.Context, tx pgx.Tx, m models.AccessGrant) error {
	query := `
        INSERT INTO access_grants (grant_id, user_id, company_id, comment, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := tx.Exec(ctx, query,
		m.GrantID,
		m.UserID,
		m.CompanyID,
		m.Comment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save access grant: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET password_hash = $2, is_active = $3, comment = $4, last_updated_at = $5, last_updated_by = $6
        WHERE user_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.PasswordHash,
		m.IsActive,
		m.Comment,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	domainUser := mapping.ToDomainUser(*m)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	domainUser := mapping.ToDomainUser(*m)
	return &domainUser, nil
}

// ListUsers retrieves a paginated list of users using token-based pagination.
func (r *PgxUserRepository) ListUsers(ctx context.Context, limit int, nextToken *string) ([]domain.User, *string, error) {
	limit = pagination.ClampLimit(limit)
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + userColumns + ` FROM users`
	orderByClause := `ORDER BY created_at DESC, user_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `WHERE (created_at, user_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	defer rows.Close()

	users := make([]models.User, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan user row", scanErr)
		}
		users = append(users, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating user rows", err)
	}

	var nextTokenVal *string
	if len(users) > limit {
		last := users[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.UserID)
		nextTokenVal = &token
		users = users[:limit]
	}

	return mapping.ToDomainUserSlice(users), nextTokenVal, nil
}

// MaxOperatorSequence returns the highest numeric suffix among the
// auto-provisioned "user-NNNN" usernames, or zero when none exist. Deriving
// from the maximum keeps the sequence collision-free even when other
// USER-role accounts are created by hand.
func (r *PgxUserRepository) MaxOperatorSequence(ctx context.Context) (int, error) {
	query := `
        SELECT COALESCE(MAX(substring(username FROM '^user-(\d+)$')::int), 0)
        FROM users
        WHERE username ~ '^user-\d+$';
    `
	var maxSeq int
	if err := r.Pool.QueryRow(ctx, query).Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("failed to resolve max operator sequence: %w", err)
	}
	return maxSeq, nil
}

func (r *PgxUserRepository) FindGrantByUserID(ctx context.Context, userID string) (*domain.AccessGrant, error) {
	query := `
        SELECT grant_id, user_id, company_id, comment, created_at, created_by, last_updated_at, last_updated_by
        FROM access_grants
        WHERE user_id = $1;
    `
	var m models.AccessGrant
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.GrantID,
		&m.UserID,
		&m.CompanyID,
		&m.Comment,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find grant for user %s: %w", userID, err)
	}

	grant := mapping.ToDomainAccessGrant(m)
	return &grant, nil
}
